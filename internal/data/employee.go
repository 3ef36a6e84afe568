package data

import "encoding/json"

type Employee struct {
	Id         int64  `json:"id,omitempty"`
	EmpCode    string `json:"emp_code"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	PhoneNo    string `json:"phoneNo"`
	Password   string `json:"password,omitempty"`
	Department string `json:"department"`
	JobTitle   string `json:"job_title"`
	Gender     string `json:"gender"` //male or female
	ManagerId  *int64 `json:"manager_id,omitempty"`
	Active     string `json:"active"` //yes or no
}

func (e *Employee) Label() string {
	return e.FirstName + " " + e.LastName
}

func (e *Employee) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Employee) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, e)
}
