package generation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/profile"
)

var (
	// ErrParse means the model output is not valid JSON.
	ErrParse = errors.New("failed to parse AI response")
	// ErrInvalidPlan means the model output is JSON but not a usable plan.
	ErrInvalidPlan = errors.New("AI response is not a valid plan")
)

const fence = "```"

// StripFences removes a Markdown code fence around the text, if present.
// The opening fence line is dropped whole, language tag included.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, fence) {
		return s
	}

	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, fence)
		s = strings.TrimLeftFunc(s, isLanguageTagRune)
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

func isLanguageTagRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// Normalize turns raw model output into a plan stamped with generation
// metadata taken from the validated profile.
func Normalize(raw string, p profile.Profile, now time.Time) (*plan.GeneratedPlan, error) {
	generated, err := plan.Decode([]byte(StripFences(raw)))
	if err != nil {
		if errors.Is(err, plan.ErrMalformed) {
			return nil, ErrParse
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}

	generated.GeneratedAt = now.UTC()
	generated.UserProfile = &plan.ProfileSummary{
		Name:         p.Name,
		FitnessGoal:  string(p.FitnessGoal),
		FitnessLevel: string(p.FitnessLevel),
	}
	return generated, nil
}
