package data

import "encoding/json"

const (
	CycleStatusPlanned    string = "planned"
	CycleStatusInProgress string = "in progress"
	CycleStatusCompleted  string = "completed"
)

type ReviewCycle struct {
	Id          int64  `json:"id,omitempty"`
	CycleName   string `json:"cycle_name"`
	StartDate   string `json:"start_date"` //YYYY-MM-DD
	EndDate     string `json:"end_date"`   //YYYY-MM-DD
	Status      string `json:"status"`
	Description string `json:"description"`
}

func (r *ReviewCycle) Label() string {
	return r.CycleName
}

func (r *ReviewCycle) MarshalBinary() ([]byte, error) {
	return json.Marshal(r)
}

func (r *ReviewCycle) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, r)
}
