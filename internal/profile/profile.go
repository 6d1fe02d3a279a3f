package profile

import (
	"math"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type FitnessGoal string

const (
	GoalWeightLoss     FitnessGoal = "weight-loss"
	GoalMuscleGain     FitnessGoal = "muscle-gain"
	GoalEndurance      FitnessGoal = "endurance"
	GoalGeneralFitness FitnessGoal = "general-fitness"
	GoalFlexibility    FitnessGoal = "flexibility"
	GoalStrength       FitnessGoal = "strength"
)

type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

type WorkoutLocation string

const (
	LocationHome    WorkoutLocation = "home"
	LocationGym     WorkoutLocation = "gym"
	LocationOutdoor WorkoutLocation = "outdoor"
	LocationMixed   WorkoutLocation = "mixed"
)

type DietType string

const (
	DietVeg           DietType = "veg"
	DietNonVeg        DietType = "non-veg"
	DietVegan         DietType = "vegan"
	DietKeto          DietType = "keto"
	DietPaleo         DietType = "paleo"
	DietMediterranean DietType = "mediterranean"
	DietNoRestriction DietType = "no-restriction"
)

type StressLevel string

const (
	StressLow    StressLevel = "low"
	StressMedium StressLevel = "medium"
	StressHigh   StressLevel = "high"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly-active"
	ActivityModeratelyActive ActivityLevel = "moderately-active"
	ActivityVeryActive       ActivityLevel = "very-active"
)

// Profile is the intake record a plan is generated from. It is never persisted.
type Profile struct {
	Name            string          `json:"name" validate:"required,min=2,max=50"`
	Age             int             `json:"age" validate:"min=13,max=100"`
	Gender          Gender          `json:"gender" validate:"oneof=male female other"`
	Height          float64         `json:"height" validate:"min=100,max=250"`
	Weight          float64         `json:"weight" validate:"min=30,max=300"`
	FitnessGoal     FitnessGoal     `json:"fitnessGoal" validate:"oneof=weight-loss muscle-gain endurance general-fitness flexibility strength"`
	FitnessLevel    FitnessLevel    `json:"fitnessLevel" validate:"oneof=beginner intermediate advanced"`
	WorkoutLocation WorkoutLocation `json:"workoutLocation" validate:"oneof=home gym outdoor mixed"`
	DietType        DietType        `json:"dietType" validate:"oneof=veg non-veg vegan keto paleo mediterranean no-restriction"`

	DietaryRestrictions []string      `json:"dietaryRestrictions,omitempty"`
	Allergies           string        `json:"allergies,omitempty" validate:"max=500"`
	MealPreference      string        `json:"mealPreference,omitempty" validate:"max=200"`
	MedicalHistory      string        `json:"medicalHistory,omitempty" validate:"max=1000"`
	Injuries            string        `json:"injuries,omitempty" validate:"max=500"`
	StressLevel         StressLevel   `json:"stressLevel,omitempty" validate:"omitempty,oneof=low medium high"`
	SleepHours          *float64      `json:"sleepHours,omitempty" validate:"omitempty,min=4,max=12"`
	ActivityLevel       ActivityLevel `json:"activityLevel,omitempty" validate:"omitempty,oneof=sedentary lightly-active moderately-active very-active"`
	Notes               string        `json:"notes,omitempty" validate:"max=1000"`
}

// BMI is weight / (height in meters)^2, unrounded.
func (p Profile) BMI() float64 {
	m := p.Height / 100
	if m <= 0 {
		return 0
	}
	return p.Weight / (m * m)
}

// RoundedBMI is BMI rounded half away from zero to one decimal.
func (p Profile) RoundedBMI() float64 {
	return math.Round(p.BMI()*10) / 10
}

// HasDietaryRestrictions ignores blank entries.
func (p Profile) HasDietaryRestrictions() bool {
	for _, r := range p.DietaryRestrictions {
		if strings.TrimSpace(r) != "" {
			return true
		}
	}
	return false
}
