package illustration

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryExercise Category = "exercise"
	CategoryMeal     Category = "meal"
)

// ParseCategory maps a request type onto a category. Anything that is not
// an exercise is drawn as a meal.
func ParseCategory(s string) Category {
	if strings.EqualFold(strings.TrimSpace(s), string(CategoryExercise)) {
		return CategoryExercise
	}
	return CategoryMeal
}

// Prompt builds the image prompt for a subject.
func Prompt(subject string, category Category) string {
	if category == CategoryExercise {
		return fmt.Sprintf("High-quality, realistic fitness photograph of: %s. Gym environment, clear view of correct form, professional lighting.", subject)
	}
	return fmt.Sprintf("High-quality, appetizing food photograph of: %s. Clean plate, professional lighting, healthy aesthetics.", subject)
}
