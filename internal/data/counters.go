package data

type Counters struct {
	Successes map[string]int `json:"successes,omitempty"`
	Failures  map[string]int `json:"failures,omitempty"`
}

type Timers struct {
	Totals   map[string]int64 `json:"totals,omitempty"`   //nanoseconds
	Averages map[string]int64 `json:"averages,omitempty"` //nanoseconds
}

type Summary struct {
	Employees    int       `json:"employees"`
	ReviewCycles int       `json:"review_cycles"`
	Goals        int       `json:"goals"`
	Reviews      int       `json:"reviews"`
	Counters     *Counters `json:"counters,omitempty"`
	Timers       *Timers   `json:"timers,omitempty"`
}
