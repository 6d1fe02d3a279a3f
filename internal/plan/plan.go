package plan

import (
	"strings"
	"time"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// ParseMealType folds case and surrounding space; ok is false for values
// outside the enum.
func ParseMealType(s string) (MealType, bool) {
	switch m := MealType(strings.ToLower(strings.TrimSpace(s))); m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return m, true
	default:
		return MealType(s), false
	}
}

type Exercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  string `json:"reps"`
	Rest  string `json:"rest"`
	Notes string `json:"notes,omitempty"`
}

type WorkoutDay struct {
	Day       int        `json:"day"`
	DayName   string     `json:"dayName"`
	Focus     string     `json:"focus"`
	Duration  string     `json:"duration,omitempty"`
	Exercises []Exercise `json:"exercises"`
}

type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

type MealItem struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories,omitempty"`
	Macros   *Macros `json:"macros,omitempty"`
}

type Meal struct {
	MealType      MealType   `json:"mealType"`
	Time          string     `json:"time"`
	Items         []MealItem `json:"items"`
	TotalCalories float64    `json:"totalCalories,omitempty"`
}

type DietDay struct {
	Day           int     `json:"day"`
	Meals         []Meal  `json:"meals"`
	TotalCalories float64 `json:"totalCalories,omitempty"`
	Macros        *Macros `json:"macros,omitempty"`
}

type Tips struct {
	LifestyleTips   []string `json:"lifestyleTips"`
	PostureTips     []string `json:"postureTips"`
	MotivationLines []string `json:"motivationLines"`
}

// ProfileSummary is the narrow slice of the intake profile kept with a plan.
type ProfileSummary struct {
	Name         string `json:"name"`
	FitnessGoal  string `json:"fitnessGoal"`
	FitnessLevel string `json:"fitnessLevel"`
}

type GeneratedPlan struct {
	WorkoutPlan []WorkoutDay    `json:"workoutPlan"`
	DietPlan    []DietDay       `json:"dietPlan"`
	Tips        Tips            `json:"tips"`
	GeneratedAt time.Time       `json:"generatedAt"`
	UserProfile *ProfileSummary `json:"userProfile,omitempty"`
}

// HistoryItem is a saved plan. Id is "<unix millis>-<9 base36 chars>" for
// locally saved plans and the decimal row id for remote ones.
type HistoryItem struct {
	ID      string        `json:"id"`
	Plan    GeneratedPlan `json:"plan"`
	SavedAt time.Time     `json:"savedAt"`
}

// Repair replaces absent lists with empty ones, so consumers can range
// without nil checks and the plan re-serializes with [] instead of null.
func (p *GeneratedPlan) Repair() {
	if p.WorkoutPlan == nil {
		p.WorkoutPlan = []WorkoutDay{}
	}
	if p.DietPlan == nil {
		p.DietPlan = []DietDay{}
	}
	for i := range p.WorkoutPlan {
		if p.WorkoutPlan[i].Exercises == nil {
			p.WorkoutPlan[i].Exercises = []Exercise{}
		}
	}
	for i := range p.DietPlan {
		if p.DietPlan[i].Meals == nil {
			p.DietPlan[i].Meals = []Meal{}
		}
		for j := range p.DietPlan[i].Meals {
			if p.DietPlan[i].Meals[j].Items == nil {
				p.DietPlan[i].Meals[j].Items = []MealItem{}
			}
		}
	}
	if p.Tips.LifestyleTips == nil {
		p.Tips.LifestyleTips = []string{}
	}
	if p.Tips.PostureTips == nil {
		p.Tips.PostureTips = []string{}
	}
	if p.Tips.MotivationLines == nil {
		p.Tips.MotivationLines = []string{}
	}
}
