package data

import "encoding"

const (
	RouteEmployeesRead     string = "/fetchall"
	RouteEmployeeCreate    string = "/register"
	RouteReviewCyclesRead  string = "/cyclesfetchall"
	RouteReviewCycleCreate string = "/CyclesSave"
	RouteGoalsRead         string = "/goalfetchall"
	RouteGoalCreate        string = "/savegoals"
	RouteReviewsRead       string = "/reviewsfetchall"
	RouteReviewCreate      string = "/saveReviews"
)

// Record is anything the seeder can submit; Label is what gets printed
// once the backend has accepted it.
type Record interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Label() string
}

type Response struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}
