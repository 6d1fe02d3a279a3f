package generation

import (
	"strconv"
	"strings"

	"github.com/2beens/fitcoach/internal/profile"
)

const promptOutputFormat = `**REQUIREMENTS:**
Generate a 7-day personalized plan with the following structure. Return ONLY valid JSON, no markdown, no code blocks, no explanations.

**OUTPUT FORMAT (JSON):**
{
  "workoutPlan": [
    {
      "day": 1,
      "dayName": "Monday",
      "focus": "Upper Body Strength",
      "duration": "45 minutes",
      "exercises": [
        {
          "name": "Exercise Name",
          "sets": 3,
          "reps": "10-12",
          "rest": "60 seconds",
          "notes": "Optional form tips"
        }
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
            {
              "name": "Food Item",
              "quantity": "2 eggs",
              "calories": 140,
              "macros": {
                "protein": 12,
                "carbs": 1,
                "fats": 10
              }
            }
          ],
          "totalCalories": 350
        }
      ],
      "totalCalories": 2000,
      "macros": {
        "protein": 150,
        "carbs": 200,
        "fats": 65
      }
    }
  ],
  "tips": {
    "lifestyleTips": [
      "Tip 1",
      "Tip 2"
    ],
    "postureTips": [
      "Posture tip 1",
      "Posture tip 2"
    ],
    "motivationLines": [
      "Motivational quote 1",
      "Motivational quote 2"
    ]
  }
}
`

// BuildPrompt renders the generation prompt for a validated profile.
// Optional fields produce a line only when present.
func BuildPrompt(p profile.Profile) string {
	var sb strings.Builder

	sb.WriteString("You are an expert fitness coach and nutritionist. Generate a comprehensive, personalized fitness plan for the following user:\n\n")

	sb.WriteString("**USER PROFILE:**\n")
	line(&sb, "Name", p.Name)
	line(&sb, "Age", strconv.Itoa(p.Age))
	line(&sb, "Gender", string(p.Gender))
	line(&sb, "Height", num(p.Height)+" cm")
	line(&sb, "Weight", num(p.Weight)+" kg")
	line(&sb, "BMI", strconv.FormatFloat(p.BMI(), 'f', 1, 64))
	line(&sb, "Fitness Goal", string(p.FitnessGoal))
	line(&sb, "Current Fitness Level", string(p.FitnessLevel))
	line(&sb, "Workout Location Preference", string(p.WorkoutLocation))
	line(&sb, "Diet Type", string(p.DietType))

	if p.HasDietaryRestrictions() {
		line(&sb, "Dietary Restrictions", strings.Join(nonBlank(p.DietaryRestrictions), ", "))
	}
	optionalLine(&sb, "Allergies/Restrictions", p.Allergies)
	optionalLine(&sb, "Meal Preference", p.MealPreference)
	optionalLine(&sb, "Medical History", p.MedicalHistory)
	optionalLine(&sb, "Injuries/Limitations", p.Injuries)
	optionalLine(&sb, "Stress Level", string(p.StressLevel))
	if p.SleepHours != nil {
		line(&sb, "Sleep Hours", num(*p.SleepHours)+" hours/night")
	}
	optionalLine(&sb, "Activity Level", string(p.ActivityLevel))
	optionalLine(&sb, "Additional Notes", p.Notes)

	sb.WriteString("\n")
	sb.WriteString(promptOutputFormat)
	sb.WriteString("\n**GUIDELINES:**\n")

	level, goal := string(p.FitnessLevel), string(p.FitnessGoal)
	avoid := ""
	if a := strings.TrimSpace(p.Allergies); a != "" {
		avoid = " and avoid " + a
	}
	injuries := strings.TrimSpace(p.Injuries)
	if injuries == "" {
		injuries = "no injuries"
	}

	guidelines := []string{
		"Create a 7-day workout plan appropriate for " + level + " level, targeting " + goal,
		"Exercises should be suitable for " + string(p.WorkoutLocation) + " setting",
		"Diet plan must follow " + string(p.DietType) + " diet type" + avoid,
		"Consider age (" + strconv.Itoa(p.Age) + "), current weight (" + num(p.Weight) + "kg), and goal (" + goal + ")",
		"Include proper warm-up and cool-down recommendations in workout notes",
		"Provide realistic calorie targets based on goals",
		"Make tips practical and actionable",
		"Ensure exercises are safe given: " + injuries,
		"Adjust intensity based on fitness level: " + level,
	}
	for i, g := range guidelines {
		sb.WriteString(strconv.Itoa(i+1) + ". " + g + "\n")
	}

	sb.WriteString("\nGenerate the complete plan now:")
	return sb.String()
}

func line(sb *strings.Builder, label, value string) {
	sb.WriteString("- " + label + ": " + value + "\n")
}

func optionalLine(sb *strings.Builder, label, value string) {
	if v := strings.TrimSpace(value); v != "" {
		line(sb, label, v)
	}
}

// num drops trailing zeros: 175 -> "175", 70.5 -> "70.5".
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
