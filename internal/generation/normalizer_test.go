package generation

import (
	"errors"
	"testing"
	"time"

	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/testinternals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence with whitespace", "  \n```JSON\n{\"a\":1}\n```\n\n", `{"a":1}`},
		{"missing closing fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"single line fence", "```{\"a\":1}```", `{"a":1}`},
		{"single line fence with tag", "```json{\"a\":1}```", `{"a":1}`},
		{"single line array with tag", "```JSON[1,2]```", `[1,2]`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}

func TestNormalize_FencedEqualsUnfenced(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	alex := testinternals.Alex()

	plain, err := Normalize(testinternals.SamplePlanJSON, alex, now)
	require.NoError(t, err)
	fenced, err := Normalize("```json\n"+testinternals.SamplePlanJSON+"\n```", alex, now)
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
}

func TestNormalize_SingleLineTaggedFence(t *testing.T) {
	p, err := Normalize("```json{\"workoutPlan\":[],\"dietPlan\":[],\"tips\":{}}```", testinternals.Alex(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, p.WorkoutPlan)
	assert.Empty(t, p.DietPlan)
}

func TestNormalize_Metadata(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	raw := `{"workoutPlan":[],"dietPlan":[],"tips":{},
		"generatedAt":"1999-01-01T00:00:00Z",
		"userProfile":{"name":"Someone Else","fitnessGoal":"strength","fitnessLevel":"advanced"}}`

	p, err := Normalize(raw, testinternals.Alex(), now)
	require.NoError(t, err)

	assert.True(t, now.Equal(p.GeneratedAt))
	assert.Equal(t, time.UTC, p.GeneratedAt.Location())
	assert.Equal(t, &plan.ProfileSummary{
		Name:         "Alex",
		FitnessGoal:  "weight-loss",
		FitnessLevel: "beginner",
	}, p.UserProfile)
}

func TestNormalize_InvalidJSON(t *testing.T) {
	p, err := Normalize("Sorry, I can't help with that.", testinternals.Alex(), time.Now())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrParse)
	assert.False(t, errors.Is(err, ErrInvalidPlan))

	p, err = Normalize("```json\n{\"workoutPlan\": [\n```", testinternals.Alex(), time.Now())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrParse)
}

func TestNormalize_WrongShape(t *testing.T) {
	p, err := Normalize(`{"workoutPlan":"rest all week","dietPlan":[],"tips":{}}`, testinternals.Alex(), time.Now())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrInvalidPlan)
	assert.ErrorIs(t, err, plan.ErrInvalidShape)
	assert.False(t, errors.Is(err, ErrParse))
}
