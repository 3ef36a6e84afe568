package data

import "encoding/json"

const (
	RatingMin float64 = 0
	RatingMax float64 = 5
)

type Review struct {
	Id            int64   `json:"id,omitempty"`
	EmpId         int64   `json:"emp_id"`
	EmpName       string  `json:"emp_name"`
	ReviewCycleId int64   `json:"review_cycle_id"`
	ReviewerId    int64   `json:"reviewer_id"`
	ReviewerName  string  `json:"reviewer_name"`
	Rating        float64 `json:"rating"`
	Comments      string  `json:"comments"`
	Status        string  `json:"status"`
	CreatedDate   string  `json:"created_date"`
}

func (r *Review) Label() string {
	return "review for: " + r.EmpName
}

func (r *Review) MarshalBinary() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Review) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, r)
}
