package profile

import (
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() Profile {
	return Profile{
		Name:            "Alex",
		Age:             30,
		Gender:          GenderMale,
		Height:          175,
		Weight:          80,
		FitnessGoal:     GoalWeightLoss,
		FitnessLevel:    LevelBeginner,
		WorkoutLocation: LocationGym,
		DietType:        DietNoRestriction,
	}
}

// fakeProfile returns a random profile that satisfies the schema.
func fakeProfile(f *gofakeit.Faker) Profile {
	p := Profile{
		Name:            f.FirstName() + " " + f.LastName(),
		Age:             f.IntRange(13, 100),
		Gender:          Gender(f.RandomString([]string{"male", "female", "other"})),
		Height:          float64(f.IntRange(100, 250)),
		Weight:          f.Float64Range(30, 300),
		FitnessGoal:     FitnessGoal(f.RandomString([]string{"weight-loss", "muscle-gain", "endurance", "general-fitness", "flexibility", "strength"})),
		FitnessLevel:    FitnessLevel(f.RandomString([]string{"beginner", "intermediate", "advanced"})),
		WorkoutLocation: WorkoutLocation(f.RandomString([]string{"home", "gym", "outdoor", "mixed"})),
		DietType:        DietType(f.RandomString([]string{"veg", "non-veg", "vegan", "keto", "paleo", "mediterranean", "no-restriction"})),
	}
	if f.Bool() {
		p.Allergies = f.Sentence(5)
		sleep := f.Float64Range(4, 12)
		p.SleepHours = &sleep
		p.StressLevel = StressLevel(f.RandomString([]string{"low", "medium", "high"}))
		p.ActivityLevel = ActivityLevel(f.RandomString([]string{"sedentary", "lightly-active", "moderately-active", "very-active"}))
		p.DietaryRestrictions = []string{f.Word(), f.Word()}
	}
	if len(p.Name) > 50 {
		p.Name = p.Name[:50]
	}
	return p
}

func TestValidate_RandomValidProfiles(t *testing.T) {
	v := NewValidator()
	f := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		p := fakeProfile(f)
		require.NoError(t, v.Validate(p), "profile %+v", p)
	}
}

func TestValidate_AcceptsBlankDietaryRestrictions(t *testing.T) {
	p := validProfile()
	p.DietaryRestrictions = []string{"", "gluten-free", " "}
	assert.NoError(t, NewValidator().Validate(p))
}

func TestValidate_Rejections(t *testing.T) {
	v := NewValidator()
	sleepTooShort := 3.5

	testCases := []struct {
		name      string
		mutate    func(p *Profile)
		wantField string
		wantMsg   string
	}{
		{"short name", func(p *Profile) { p.Name = "A" }, "name", "Name must be at least 2 characters"},
		{"long name", func(p *Profile) { p.Name = strings.Repeat("a", 51) }, "name", "Name must be less than 50 characters"},
		{"too young", func(p *Profile) { p.Age = 12 }, "age", "Age must be at least 13"},
		{"too old", func(p *Profile) { p.Age = 101 }, "age", "Age must be at most 100"},
		{"short", func(p *Profile) { p.Height = 99 }, "height", "Height must be at least 100"},
		{"tall", func(p *Profile) { p.Height = 251 }, "height", "Height must be at most 250"},
		{"light", func(p *Profile) { p.Weight = 29.9 }, "weight", "Weight must be at least 30"},
		{"unknown gender", func(p *Profile) { p.Gender = "robot" }, "gender", "Gender must be one of: male, female, other"},
		{"unknown goal", func(p *Profile) { p.FitnessGoal = "speed" }, "fitnessGoal", ""},
		{"unknown level", func(p *Profile) { p.FitnessLevel = "pro" }, "fitnessLevel", ""},
		{"unknown location", func(p *Profile) { p.WorkoutLocation = "office" }, "workoutLocation", ""},
		{"unknown diet", func(p *Profile) { p.DietType = "carnivore" }, "dietType", ""},
		{"unknown stress", func(p *Profile) { p.StressLevel = "extreme" }, "stressLevel", ""},
		{"unknown activity", func(p *Profile) { p.ActivityLevel = "athlete" }, "activityLevel", ""},
		{"sleep too short", func(p *Profile) { p.SleepHours = &sleepTooShort }, "sleepHours", "Sleep hours must be at least 4"},
		{"long allergies", func(p *Profile) { p.Allergies = strings.Repeat("x", 501) }, "allergies", ""},
		{"long meal preference", func(p *Profile) { p.MealPreference = strings.Repeat("x", 201) }, "mealPreference", ""},
		{"long medical history", func(p *Profile) { p.MedicalHistory = strings.Repeat("x", 1001) }, "medicalHistory", ""},
		{"long injuries", func(p *Profile) { p.Injuries = strings.Repeat("x", 501) }, "injuries", ""},
		{"long notes", func(p *Profile) { p.Notes = strings.Repeat("x", 1001) }, "notes", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProfile()
			tc.mutate(&p)

			err := v.Validate(p)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tc.wantField, verr.Fields[0].Field)
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, verr.Fields[0].Message)
			}
		})
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	err := NewValidator().Validate(Profile{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	for _, name := range []string{"name", "age", "gender", "height", "weight", "fitnessGoal", "fitnessLevel", "workoutLocation", "dietType"} {
		assert.True(t, fields[name], "missing error for %s", name)
	}
	assert.False(t, fields["stressLevel"], "optional fields stay valid when absent")
}

func TestDecode(t *testing.T) {
	v := NewValidator()

	p, err := v.Decode(strings.NewReader(`{
		"name":"Alex","age":30,"gender":"male","height":175,"weight":80,
		"fitnessGoal":"weight-loss","fitnessLevel":"beginner",
		"workoutLocation":"gym","dietType":"no-restriction","sleepHours":7.5
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Alex", p.Name)
	require.NotNil(t, p.SleepHours)
	assert.Equal(t, 7.5, *p.SleepHours)

	_, err = v.Decode(strings.NewReader(`{"name":"Alex","age":"thirty"}`))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "age", verr.Fields[0].Field)

	_, err = v.Decode(strings.NewReader(`not json`))
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "json", verr.Fields[0].Tag)
}

func TestBMI(t *testing.T) {
	p := validProfile()
	p.Height, p.Weight = 175, 70
	assert.Equal(t, 22.9, p.RoundedBMI())

	p.Weight = 80
	assert.Equal(t, 26.1, p.RoundedBMI())

	assert.InDelta(t, 26.122, p.BMI(), 0.001)
}
