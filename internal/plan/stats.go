package plan

import (
	"fmt"
	"math"
)

type Stats struct {
	TotalWorkoutDays      int `json:"totalWorkoutDays"`
	TotalExercises        int `json:"totalExercises"`
	TotalDietDays         int `json:"totalDietDays"`
	TotalMeals            int `json:"totalMeals"`
	AverageCaloriesPerDay int `json:"averageCaloriesPerDay"`
	TotalTips             int `json:"totalTips"`
}

func CalculateStats(p *GeneratedPlan) Stats {
	s := Stats{
		TotalWorkoutDays: len(p.WorkoutPlan),
		TotalDietDays:    len(p.DietPlan),
		TotalTips:        len(p.Tips.LifestyleTips) + len(p.Tips.PostureTips) + len(p.Tips.MotivationLines),
	}
	for _, d := range p.WorkoutPlan {
		s.TotalExercises += len(d.Exercises)
	}

	var calories float64
	for _, d := range p.DietPlan {
		s.TotalMeals += len(d.Meals)
		calories += d.TotalCalories
	}
	if s.TotalDietDays > 0 {
		s.AverageCaloriesPerDay = int(math.Round(calories / float64(s.TotalDietDays)))
	}
	return s
}

func Summary(p *GeneratedPlan) string {
	s := CalculateStats(p)
	return fmt.Sprintf(
		"%d workout days, %d exercises, %d diet days, %d meals",
		s.TotalWorkoutDays, s.TotalExercises, s.TotalDietDays, s.TotalMeals,
	)
}
