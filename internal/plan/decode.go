package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// MaxDocumentSize bounds plan documents read from request bodies.
const MaxDocumentSize = 4 << 20

var (
	// ErrMalformed means the input is not syntactically valid JSON.
	ErrMalformed = errors.New("malformed plan json")
	// ErrInvalidShape means the JSON is valid but is not shaped like a plan.
	ErrInvalidShape = errors.New("invalid plan shape")
)

// ShapeError points at the part of the document that is not shaped like a plan.
type ShapeError struct {
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidShape
}

// Decode parses a plan document and checks its structure: workoutPlan and
// dietPlan must be arrays, tips an object, and every nested value must have
// the type of the plan model. Meal types must be one of the MealType values
// (case-insensitive). Absent nested lists are repaired to empty.
// Metadata (generatedAt, userProfile) is kept only when well formed.
func Decode(data []byte) (*GeneratedPlan, error) {
	if !json.Valid(data) {
		return nil, ErrMalformed
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &ShapeError{Path: "$", Reason: "plan must be a JSON object"}
	}

	p := &GeneratedPlan{}
	if err := decodeContainer(top, "workoutPlan", '[', &p.WorkoutPlan); err != nil {
		return nil, err
	}
	if err := decodeContainer(top, "dietPlan", '[', &p.DietPlan); err != nil {
		return nil, err
	}
	if err := decodeContainer(top, "tips", '{', &p.Tips); err != nil {
		return nil, err
	}

	if raw, ok := top["generatedAt"]; ok {
		var ts time.Time
		if err := json.Unmarshal(raw, &ts); err == nil {
			p.GeneratedAt = ts
		}
	}
	if raw, ok := top["userProfile"]; ok {
		var summary ProfileSummary
		if err := json.Unmarshal(raw, &summary); err == nil {
			p.UserProfile = &summary
		}
	}

	if err := checkMealTypes(p.DietPlan); err != nil {
		return nil, err
	}

	p.Repair()
	return p, nil
}

func checkMealTypes(days []DietDay) error {
	for i := range days {
		for j := range days[i].Meals {
			meal := &days[i].Meals[j]
			mealType, ok := ParseMealType(string(meal.MealType))
			if !ok {
				return &ShapeError{
					Path:   fmt.Sprintf("dietPlan[%d].meals[%d].mealType", i, j),
					Reason: fmt.Sprintf("unknown meal type %q", meal.MealType),
				}
			}
			meal.MealType = mealType
		}
	}
	return nil
}

// Read decodes a plan document from r, reading at most MaxDocumentSize bytes.
func Read(r io.Reader) (*GeneratedPlan, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, &ShapeError{Path: "$", Reason: "document too large"}
	}
	return Decode(data)
}

func decodeContainer(top map[string]json.RawMessage, key string, open byte, dst any) error {
	raw, ok := top[key]
	if !ok {
		return &ShapeError{Path: key, Reason: "missing"}
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != open {
		want := "an array"
		if open == '{' {
			want = "an object"
		}
		return &ShapeError{Path: key, Reason: "must be " + want}
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ShapeError{
				Path:   key + "." + typeErr.Field,
				Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type.Kind(), typeErr.Value),
			}
		}
		return &ShapeError{Path: key, Reason: err.Error()}
	}
	return nil
}
