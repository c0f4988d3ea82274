package client

import "github.com/2beens/gymlog/pkg"

type Set struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type Workout struct {
	Date     string            `json:"date"`
	Exercise string            `json:"exercise"`
	Sets     []Set             `json:"sets"`
	Duration pkg.Optional[int] `json:"duration"`
}

// NewWorkout is the create request body. Nil Sets and None Duration encode as null.
type NewWorkout struct {
	Date     string            `json:"date"`
	Exercise string            `json:"exercise"`
	Sets     []Set             `json:"sets"`
	Duration pkg.Optional[int] `json:"duration"`
}

type Daily struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

// StatsSnapshot fields are pointers or nil-able so absent values can be told apart.
type StatsSnapshot struct {
	WeeklyVolume  *float64           `json:"weeklyVolume"`
	MonthlyVolume *float64           `json:"monthlyVolume"`
	BestOneRm     map[string]float64 `json:"bestOneRm"`
	DailyVolumes  []Daily            `json:"dailyVolumes"`
}
