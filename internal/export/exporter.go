package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/fitcoach/internal/plan"
)

const (
	sectionSpacing = 30.0
	footerY        = 30.0
	footerText     = "Generated by AI Fitness Coach"
)

var (
	titleColor   = Color{0.2, 0.4, 0.8}
	workoutColor = Color{0.8, 0.2, 0.2}
	dietColor    = Color{0.2, 0.6, 0.2}
	tipsColor    = Color{0.6, 0.4, 0.8}
	headingColor = Color{0.2, 0.2, 0.2}
	subtleColor  = Color{0.4, 0.4, 0.4}
)

// Exporter lays a plan out as a paginated document.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// PDF renders the plan with the fpdf backend.
func (e *Exporter) PDF(p *plan.GeneratedPlan) ([]byte, error) {
	backend := NewFPDFBackend()
	e.Render(p, backend)
	return backend.Bytes()
}

// Render lays out the body, then stamps the footer on every page once the
// total page count is known.
func (e *Exporter) Render(p *plan.GeneratedPlan, backend Backend) {
	l := NewLayout(backend)

	e.header(l, p)
	e.workout(l, p.WorkoutPlan)
	e.diet(l, p.DietPlan)
	e.tips(l, p.Tips)

	total := backend.PageCount()
	footer := Style{Size: 8, Color: Gray}
	for page := 1; page <= total; page++ {
		backend.SetPage(page)
		backend.Text(Margin, footerY, footerText, footer)
		backend.Text(PageWidth-Margin-50, footerY, fmt.Sprintf("Page %d of %d", page, total), footer)
	}
}

func (e *Exporter) header(l *Layout, p *plan.GeneratedPlan) {
	l.Write("AI FITNESS COACH", Margin, Style{Size: 28, Bold: true, Color: titleColor})
	l.Skip(10)
	l.Rule(2, titleColor)
	l.Skip(20)

	if p.UserProfile != nil {
		l.Write("Personalized Plan for "+Sanitize(p.UserProfile.Name), Margin, Style{Size: 16, Bold: true, Color: Black})
		l.Skip(15)
		l.Write("Fitness Goal: "+capitalize(Sanitize(strings.ReplaceAll(p.UserProfile.FitnessGoal, "-", " "))), Margin, Style{Size: 12, Color: Black})
		l.Skip(12)
		l.Write("Fitness Level: "+capitalize(Sanitize(p.UserProfile.FitnessLevel)), Margin, Style{Size: 12, Color: Black})
		l.Skip(12)
	}

	if !p.GeneratedAt.IsZero() {
		l.Write("Generated on: "+p.GeneratedAt.Format("2006-01-02"), Margin, Style{Size: 10, Color: Gray})
	}
	l.Skip(sectionSpacing)
}

func (e *Exporter) workout(l *Layout, days []plan.WorkoutDay) {
	l.EnsureSpace(60)
	l.Write("WORKOUT PLAN", Margin, Style{Size: 18, Bold: true, Color: workoutColor})
	l.Skip(5)
	l.Rule(1, workoutColor)
	l.Skip(20)

	for _, day := range days {
		l.EnsureSpace(80)
		l.Write(Sanitize(day.DayName)+" - "+Sanitize(day.Focus), Margin, Style{Size: 14, Bold: true, Color: headingColor})
		l.Skip(8)

		if day.Duration != "" {
			l.Write("Duration: "+day.Duration, Margin+10, Style{Size: 10, Color: Gray})
			l.Skip(12)
		}

		for _, ex := range day.Exercises {
			l.EnsureSpace(40)
			l.Write(ex.Name, Margin+15, Style{Size: 11, Bold: true, Color: Black})
			l.Skip(10)

			details := fmt.Sprintf("Sets: %d  |  Reps: %s  |  Rest: %s", ex.Sets, ex.Reps, Sanitize(ex.Rest))
			l.Write(details, Margin+25, Style{Size: 9, Color: Black})
			l.Skip(10)

			if note := Sanitize(ex.Notes); note != "" {
				l.Write("Tip: "+note, Margin+25, Style{Size: 8, Color: subtleColor})
				l.Skip(10)
			}
			l.Skip(5)
		}
		l.Skip(15)
	}
	l.Skip(sectionSpacing)
}

func (e *Exporter) diet(l *Layout, days []plan.DietDay) {
	l.EnsureSpace(60)
	l.Skip(20)
	l.Write("DIET PLAN", Margin, Style{Size: 18, Bold: true, Color: dietColor})
	l.Skip(5)
	l.Rule(1, dietColor)
	l.Skip(20)

	for _, day := range days {
		l.EnsureSpace(100)
		l.Write(fmt.Sprintf("Day %d", day.Day), Margin, Style{Size: 14, Bold: true, Color: headingColor})
		l.Skip(8)

		if day.TotalCalories != 0 {
			l.Write("Total Calories: "+num(day.TotalCalories)+" kcal", Margin+10, Style{Size: 11, Color: Color{0.3, 0.5, 0.3}})
			l.Skip(12)
		}

		for _, meal := range day.Meals {
			l.EnsureSpace(50)
			l.Write(strings.ToUpper(string(meal.MealType))+" - "+Sanitize(meal.Time), Margin+15, Style{Size: 11, Bold: true, Color: Color{0.2, 0.5, 0.2}})
			l.Skip(8)

			if meal.TotalCalories != 0 {
				l.Write("Calories: "+num(meal.TotalCalories)+" kcal", Margin+25, Style{Size: 9, Color: subtleColor})
				l.Skip(10)
			}

			for _, item := range meal.Items {
				l.EnsureSpace(15)
				l.Write("- "+Sanitize(item.Name)+": "+Sanitize(item.Quantity), Margin+25, Style{Size: 9, Color: Black})
				l.Skip(10)

				if item.Calories != 0 {
					l.Write("  ("+num(item.Calories)+" kcal)", Margin+35, Style{Size: 8, Color: Gray})
					l.Skip(8)
				}
			}
			l.Skip(8)
		}
		l.Skip(15)
	}
	l.Skip(sectionSpacing)
}

func (e *Exporter) tips(l *Layout, tips plan.Tips) {
	l.EnsureSpace(100)
	l.Skip(20)
	l.Write("TIPS & MOTIVATION", Margin, Style{Size: 18, Bold: true, Color: tipsColor})
	l.Skip(5)
	l.Rule(1, tipsColor)
	l.Skip(20)

	e.tipList(l, "Lifestyle Tips", tips.LifestyleTips, func(s string) string { return "- " + s }, Black)
	l.Skip(15)
	e.tipList(l, "Posture & Form Tips", tips.PostureTips, func(s string) string { return "- " + s }, Black)
	l.Skip(15)
	e.tipList(l, "Daily Motivation", tips.MotivationLines, func(s string) string { return `"` + s + `"` }, subtleColor)
}

func (e *Exporter) tipList(l *Layout, title string, lines []string, format func(string) string, color Color) {
	l.Write(title, Margin, Style{Size: 13, Bold: true, Color: Color{0.3, 0.3, 0.3}})
	l.Skip(12)
	for _, line := range lines {
		l.EnsureSpace(20)
		l.Write(format(Sanitize(line)), Margin+15, Style{Size: 10, Color: color})
		l.Skip(12)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
