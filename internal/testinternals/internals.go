// Package testinternals holds fixtures shared by package tests.
package testinternals

import (
	"time"

	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/profile"
)

// Alex is the reference intake profile used across tests.
func Alex() profile.Profile {
	return profile.Profile{
		Name:            "Alex",
		Age:             30,
		Gender:          profile.GenderMale,
		Height:          175,
		Weight:          80,
		FitnessGoal:     profile.GoalWeightLoss,
		FitnessLevel:    profile.LevelBeginner,
		WorkoutLocation: profile.LocationGym,
		DietType:        profile.DietNoRestriction,
	}
}

// SamplePlanJSON is a small plan as a model would return it, without metadata.
const SamplePlanJSON = `{
  "workoutPlan": [
    {
      "day": 1,
      "dayName": "Monday",
      "focus": "Upper Body",
      "duration": "45 minutes",
      "exercises": [
        {"name": "Push-ups", "sets": 3, "reps": "10-12", "rest": "60 seconds", "notes": "Keep core tight"},
        {"name": "Dumbbell Rows", "sets": 3, "reps": "12", "rest": "60 seconds"}
      ]
    },
    {
      "day": 2,
      "dayName": "Tuesday",
      "focus": "Cardio",
      "exercises": [
        {"name": "Jogging", "sets": 1, "reps": "20 minutes", "rest": "none"}
      ]
    }
  ],
  "dietPlan": [
    {
      "day": 1,
      "meals": [
        {
          "mealType": "breakfast",
          "time": "8:00 AM",
          "items": [
            {"name": "Oatmeal", "quantity": "1 cup", "calories": 150},
            {"name": "Banana", "quantity": "1 medium", "calories": 105}
          ],
          "totalCalories": 255
        },
        {
          "mealType": "dinner",
          "time": "7:00 PM",
          "items": [
            {"name": "Grilled Chicken", "quantity": "150g", "calories": 250, "macros": {"protein": 46, "carbs": 0, "fats": 5}}
          ]
        }
      ],
      "totalCalories": 1800
    },
    {
      "day": 2,
      "meals": [
        {
          "mealType": "lunch",
          "time": "1:00 PM",
          "items": [
            {"name": "Quinoa Salad", "quantity": "1 bowl", "calories": 400}
          ]
        }
      ],
      "totalCalories": 1701
    }
  ],
  "tips": {
    "lifestyleTips": ["Sleep 8 hours", "Drink water"],
    "postureTips": ["Keep your back straight"],
    "motivationLines": ["You can do it!"]
  }
}`

// SamplePlan is SamplePlanJSON decoded, with metadata for Alex at the given time.
func SamplePlan(generatedAt time.Time) *plan.GeneratedPlan {
	p, err := plan.Decode([]byte(SamplePlanJSON))
	if err != nil {
		panic(err)
	}
	p.GeneratedAt = generatedAt
	p.UserProfile = &plan.ProfileSummary{
		Name:         "Alex",
		FitnessGoal:  "weight-loss",
		FitnessLevel: "beginner",
	}
	return p
}
