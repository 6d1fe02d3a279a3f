package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/planstore"
)

const timeLayout = "2006-01-02 15:04"

func printPlan(w io.Writer, p *plan.GeneratedPlan) {
	if p.UserProfile != nil {
		fmt.Fprintf(w, "Plan for %s (%s, %s)\n", p.UserProfile.Name, p.UserProfile.FitnessGoal, p.UserProfile.FitnessLevel)
	}
	if !p.GeneratedAt.IsZero() {
		fmt.Fprintf(w, "Generated: %s\n", p.GeneratedAt.Local().Format(timeLayout))
	}

	fmt.Fprintln(w, "\nWorkout")
	for _, day := range p.WorkoutPlan {
		header := fmt.Sprintf("Day %d - %s: %s", day.Day, day.DayName, day.Focus)
		if day.Duration != "" {
			header += " (" + day.Duration + ")"
		}
		fmt.Fprintf(w, "  %s\n", header)
		for _, ex := range day.Exercises {
			fmt.Fprintf(w, "    - %s: %d x %s, rest %s\n", ex.Name, ex.Sets, ex.Reps, ex.Rest)
		}
	}

	fmt.Fprintln(w, "\nDiet")
	for _, day := range p.DietPlan {
		fmt.Fprintf(w, "  Day %d (%s kcal)\n", day.Day, kcal(day.TotalCalories))
		for _, meal := range day.Meals {
			names := make([]string, 0, len(meal.Items))
			for _, item := range meal.Items {
				names = append(names, item.Name)
			}
			fmt.Fprintf(w, "    - %s at %s: %s\n", meal.MealType, meal.Time, strings.Join(names, ", "))
		}
	}

	stats := plan.CalculateStats(p)
	fmt.Fprintf(w, "\n%s, %d tips, ~%d kcal/day\n", plan.Summary(p), stats.TotalTips, stats.AverageCaloriesPerDay)
}

func printHistory(w io.Writer, items []plan.HistoryItem, source planstore.Source) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No saved plans")
		return
	}

	fmt.Fprintf(w, "%d saved plans (%s)\n", len(items), source)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSAVED\tFOR\tSUMMARY")
	for _, item := range items {
		name := "-"
		if item.Plan.UserProfile != nil {
			name = item.Plan.UserProfile.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.ID, item.SavedAt.Local().Format(timeLayout), name, plan.Summary(&item.Plan))
	}
	_ = tw.Flush()
}

func kcal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
