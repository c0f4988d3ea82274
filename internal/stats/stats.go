package stats

import (
	"math"
	"sort"
	"time"

	"github.com/2beens/gymlog/internal/workouts"
)

const (
	weekDays  = 7
	monthDays = 30
)

type Daily struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

type Snapshot struct {
	WeeklyVolume  float64            `json:"weeklyVolume"`
	MonthlyVolume float64            `json:"monthlyVolume"`
	BestOneRm     map[string]float64 `json:"bestOneRm"`
	DailyVolumes  []Daily            `json:"dailyVolumes"`
}

// EpleyOneRm estimates the one rep max for a set.
func EpleyOneRm(weight float64, reps int) float64 {
	return weight * (1.0 + float64(reps)/30.0)
}

// Round1 rounds half up to one decimal place.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// Compute aggregates lifting volume and best estimated 1RM per exercise.
// Workouts without sets are ignored. Weekly covers today and the 6 days
// before it, monthly today and the 29 days before it.
func Compute(list []workouts.Workout, today time.Time) Snapshot {
	dateToVolume := map[string]float64{}
	best := map[string]float64{}

	for _, w := range list {
		if !w.HasSets() {
			continue
		}
		var volume float64
		for _, s := range w.Sets {
			volume += s.Volume()
			oneRm := EpleyOneRm(s.Weight, s.Reps)
			if current, ok := best[w.Exercise]; !ok || oneRm > current {
				best[w.Exercise] = oneRm
			}
		}
		dateToVolume[w.Date] += volume
	}

	snapshot := Snapshot{
		BestOneRm:    make(map[string]float64, len(best)),
		DailyVolumes: make([]Daily, 0, len(dateToVolume)),
	}

	dates := make([]string, 0, len(dateToVolume))
	for d := range dateToVolume {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	todayDate := civilDate(today)
	weekStart := todayDate.AddDate(0, 0, -(weekDays - 1))
	monthStart := todayDate.AddDate(0, 0, -(monthDays - 1))

	var weekly, monthly float64
	for _, d := range dates {
		volume := dateToVolume[d]
		snapshot.DailyVolumes = append(snapshot.DailyVolumes, Daily{Date: d, Volume: Round1(volume)})

		date, err := time.Parse(workouts.DateLayout, d)
		if err != nil {
			continue
		}
		if inRange(date, weekStart, todayDate) {
			weekly += volume
		}
		if inRange(date, monthStart, todayDate) {
			monthly += volume
		}
	}

	for exercise, oneRm := range best {
		snapshot.BestOneRm[exercise] = Round1(oneRm)
	}
	snapshot.WeeklyVolume = Round1(weekly)
	snapshot.MonthlyVolume = Round1(monthly)

	return snapshot
}

// civilDate drops the clock part, keeping the calendar day of t's location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}
