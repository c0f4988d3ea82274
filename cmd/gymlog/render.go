package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/2beens/gymlog/internal/view"

	"github.com/charmbracelet/lipgloss"
)

const rowFormat = "%-12s %-20s %s"

var (
	brand  = lipgloss.AdaptiveColor{Light: "30", Dark: "86"}
	subtle = lipgloss.AdaptiveColor{Light: "245", Dark: "244"}

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(brand)
	labelStyle = lipgloss.NewStyle().Foreground(subtle)
	boldStyle  = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

func printStats(w io.Writer, v view.StatsView) {
	fmt.Fprintln(w, titleStyle.Render("Stats"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Weekly volume: "), v.Weekly)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Monthly volume:"), v.Monthly)
	if len(v.Bests) == 0 {
		fmt.Fprintln(w, view.BestsPlaceholder)
	} else {
		fmt.Fprintf(w, "%s %s\n", boldStyle.Render(view.BestsLabel), v.BestsText())
	}
	fmt.Fprintln(w)
}

func printWorkouts(w io.Writer, rows []view.WorkoutRow) {
	fmt.Fprintln(w, titleStyle.Render("Recent workouts"))
	if len(rows) == 0 {
		fmt.Fprintln(w, labelStyle.Render("No workouts yet."))
		return
	}
	fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf(rowFormat, "Date", "Exercise", "Details")))
	for _, row := range rows {
		fmt.Fprintln(w, strings.TrimRight(fmt.Sprintf(rowFormat, row.Date, row.Exercise, row.Details), " "))
	}
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintln(w, okStyle.Render(msg))
}

func printAlert(w io.Writer, msg string) {
	fmt.Fprintln(w, alertStyle.Render(msg))
}
