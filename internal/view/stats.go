package view

import (
	"sort"
	"strings"

	"github.com/2beens/gymlog/internal/client"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	BestsLabel       = "Best 1RM:"
	BestsPlaceholder = "No 1RM data yet."
	BestsSeparator   = " • "
)

type BestEntry struct {
	Exercise string
	Value    string
}

type StatsView struct {
	Weekly  string
	Monthly string
	// Bests is sorted by exercise name, empty means show the placeholder.
	Bests []BestEntry
	Chart ChartView
}

func RenderStats(snapshot *client.StatsSnapshot, surface Surface) StatsView {
	if snapshot == nil {
		snapshot = &client.StatsSnapshot{}
	}

	v := StatsView{
		Weekly:  FormatNumber(orZero(snapshot.WeeklyVolume)),
		Monthly: FormatNumber(orZero(snapshot.MonthlyVolume)),
		Bests:   sortedBests(snapshot.BestOneRm),
	}

	dailies := snapshot.DailyVolumes
	if dailies == nil {
		dailies = []client.Daily{}
	}
	v.Chart = RenderChart(dailies, surface)

	return v
}

// BestsText is the plain text of the bests region, without the label.
func (v StatsView) BestsText() string {
	if len(v.Bests) == 0 {
		return BestsPlaceholder
	}
	parts := make([]string, 0, len(v.Bests))
	for _, b := range v.Bests {
		parts = append(parts, b.Exercise+": "+b.Value)
	}
	return strings.Join(parts, BestsSeparator)
}

func sortedBests(bests map[string]float64) []BestEntry {
	entries := make([]BestEntry, 0, len(bests))
	for exercise, value := range bests {
		entries = append(entries, BestEntry{Exercise: exercise, Value: FormatNumber(value)})
	}

	coll := collate.New(language.Und)
	sort.SliceStable(entries, func(i, j int) bool {
		if c := coll.CompareString(entries[i].Exercise, entries[j].Exercise); c != 0 {
			return c < 0
		}
		return entries[i].Exercise < entries[j].Exercise
	})
	return entries
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
