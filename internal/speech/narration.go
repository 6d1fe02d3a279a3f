package speech

import (
	"fmt"
	"strings"

	"github.com/2beens/fitcoach/internal/plan"
)

type Section string

const (
	SectionWorkout Section = "workout"
	SectionDiet    Section = "diet"
	SectionTips    Section = "tips"
	SectionFull    Section = "full"
)

// ParseSection maps a selector to a Section. Empty means the full plan.
func ParseSection(s string) (Section, error) {
	switch Section(strings.ToLower(strings.TrimSpace(s))) {
	case "", SectionFull:
		return SectionFull, nil
	case SectionWorkout:
		return SectionWorkout, nil
	case SectionDiet:
		return SectionDiet, nil
	case SectionTips:
		return SectionTips, nil
	default:
		return "", fmt.Errorf("unknown section: %q", s)
	}
}

// Narrate flattens the selected part of a plan into the text that gets spoken.
func Narrate(p *plan.GeneratedPlan, section Section) string {
	var sb strings.Builder

	if section == SectionWorkout || section == SectionFull {
		sb.WriteString("WORKOUT PLAN\n\n")
		for _, day := range p.WorkoutPlan {
			fmt.Fprintf(&sb, "%s - %s\n", day.DayName, day.Focus)
			for _, ex := range day.Exercises {
				fmt.Fprintf(&sb, "%s: %d sets of %s. Rest %s.\n", ex.Name, ex.Sets, ex.Reps, ex.Rest)
				if ex.Notes != "" {
					fmt.Fprintf(&sb, "Note: %s\n", ex.Notes)
				}
			}
			sb.WriteString("\n")
		}
	}

	if section == SectionDiet || section == SectionFull {
		sb.WriteString("\nDIET PLAN\n\n")
		for _, day := range p.DietPlan {
			fmt.Fprintf(&sb, "Day %d:\n", day.Day)
			for _, meal := range day.Meals {
				fmt.Fprintf(&sb, "%s at %s:\n", meal.MealType, meal.Time)
				for _, item := range meal.Items {
					fmt.Fprintf(&sb, "- %s: %s\n", item.Name, item.Quantity)
				}
			}
			sb.WriteString("\n")
		}
	}

	if section == SectionTips || section == SectionFull {
		sb.WriteString("\nTIPS AND MOTIVATION\n\n")
		sb.WriteString("Lifestyle Tips:\n")
		for _, tip := range p.Tips.LifestyleTips {
			fmt.Fprintf(&sb, "- %s\n", tip)
		}
		sb.WriteString("\nPosture Tips:\n")
		for _, tip := range p.Tips.PostureTips {
			fmt.Fprintf(&sb, "- %s\n", tip)
		}
		sb.WriteString("\nMotivation:\n")
		for _, line := range p.Tips.MotivationLines {
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}
