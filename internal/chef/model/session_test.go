package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferencesMergeIsAdditive(t *testing.T) {
	p := Preferences{
		DietaryRestrictions: []string{"vegetarian"},
		SkillLevel:          "beginner",
		IngredientAffinities: map[string]float64{
			"tomato": 0.9,
		},
	}

	p.Merge(Preferences{
		DietaryRestrictions: []string{"vegetarian", "gluten-free"},
		FavoriteCuisines:    []string{"italian"},
		IngredientAffinities: map[string]float64{
			"tomato": 1.0,
			"basil":  0.7,
		},
	})

	assert.Equal(t, []string{"vegetarian", "gluten-free"}, p.DietaryRestrictions)
	assert.Equal(t, []string{"italian"}, p.FavoriteCuisines)
	assert.Equal(t, "beginner", p.SkillLevel)
	assert.Equal(t, 1.0, p.IngredientAffinities["tomato"])
	assert.Equal(t, 0.7, p.IngredientAffinities["basil"])
}

func TestPreferencesMergeEmptyUpdateKeepsSkillLevel(t *testing.T) {
	p := Preferences{SkillLevel: "advanced"}
	p.Merge(Preferences{})
	assert.Equal(t, "advanced", p.SkillLevel)
}

func TestImageRequestValidation(t *testing.T) {
	_, err := NewImageRequest("", StyleFoodPhotography, true, "s1")
	assert.Error(t, err)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	_, err = NewImageRequest(string(long), StyleFoodPhotography, true, "s1")
	assert.Error(t, err)

	_, err = NewImageRequest("pasta", "watercolor", true, "s1")
	assert.Error(t, err)

	req, err := NewImageRequest("pasta", "", true, "s1")
	assert.NoError(t, err)
	assert.Equal(t, StyleFoodPhotography, req.Style)
}

func TestParseImageStyle(t *testing.T) {
	got, ok := ParseImageStyle("Romantic Dinner")
	assert.True(t, ok)
	assert.Equal(t, StyleRomanticDinner, got)

	_, ok = ParseImageStyle("cubist")
	assert.False(t, ok)
}
