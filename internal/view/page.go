package view

import "time"

const (
	NoticeStatsUnavailable    = "Stats are unavailable right now."
	NoticeStatsStale          = "Could not refresh stats, showing the last loaded ones."
	NoticeWorkoutsUnavailable = "Recent workouts are unavailable right now."
	NoticeWorkoutsStale       = "Could not refresh recent workouts, showing the last loaded ones."
)

// Result is the outcome of loading one page region.
type Result[T any] struct {
	Value T
	Err   error
}

func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Rendered remembers the last successful render of each region.
type Rendered struct {
	Stats    *StatsView
	Workouts []WorkoutRow
}

type Page struct {
	Form  FormValues
	Alert string

	Stats       StatsView
	HasStats    bool
	StatsNotice string

	Workouts       []WorkoutRow
	HasWorkouts    bool
	WorkoutsNotice string
}

// BuildPage merges the region results with the prior render. A failed region
// keeps its prior render when there is one. The returned Rendered replaces prior.
func BuildPage(
	form FormValues,
	alert string,
	stats Result[StatsView],
	recent Result[[]WorkoutRow],
	prior Rendered,
) (Page, Rendered) {
	page := Page{
		Form:  form,
		Alert: alert,
	}
	next := prior

	switch {
	case stats.Err == nil:
		sv := stats.Value
		page.Stats, page.HasStats = sv, true
		next.Stats = &sv
	case prior.Stats != nil:
		page.Stats, page.HasStats = *prior.Stats, true
		page.StatsNotice = NoticeStatsStale
	default:
		page.StatsNotice = NoticeStatsUnavailable
	}

	switch {
	case recent.Err == nil:
		rows := recent.Value
		if rows == nil {
			rows = []WorkoutRow{}
		}
		page.Workouts, page.HasWorkouts = rows, true
		next.Workouts = rows
	case prior.Workouts != nil:
		page.Workouts, page.HasWorkouts = prior.Workouts, true
		page.WorkoutsNotice = NoticeWorkoutsStale
	default:
		page.WorkoutsNotice = NoticeWorkoutsUnavailable
	}

	return page, next
}

// TodayISO is the local calendar date of now, YYYY-MM-DD.
func TodayISO(now time.Time) string {
	return now.Format("2006-01-02")
}
