package data

import "encoding/json"

type Goal struct {
	Id              int64  `json:"id,omitempty"`
	Title           string `json:"title"`
	DescriptionText string `json:"descriptionText"`
	Status          string `json:"status"`
	EmpId           int64  `json:"emp_id"`
	EmpName         string `json:"emp_name"`
	CreatedBy       string `json:"created_by"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
}

func (g *Goal) Label() string {
	return g.Title
}

func (g *Goal) MarshalBinary() ([]byte, error) {
	return json.Marshal(g)
}

func (g *Goal) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, g)
}
