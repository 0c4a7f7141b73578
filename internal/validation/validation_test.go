package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portfolio/internal/errors"
)

type metric struct {
	Label string `json:"label" validate:"required"`
}

type sample struct {
	Name    string   `json:"name" validate:"required,min=2"`
	Email   string   `json:"email" validate:"required,email"`
	Rating  int      `json:"rating" validate:"min=1,max=5"`
	Link    string   `json:"link" validate:"omitempty,url"`
	Tags    []string `json:"tags" validate:"min=1"`
	Metrics []metric `json:"metrics" validate:"dive"`
}

func TestValidate_Valid(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Name: "Jo", Email: "jo@example.com", Rating: 5, Tags: []string{"go"}})
	assert.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()
	err := v.Validate(&sample{
		Name:    "J",
		Email:   "nope",
		Rating:  6,
		Link:    "not a url",
		Metrics: []metric{{}},
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)

	byField := map[string]string{}
	for _, f := range appErr.Fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "Must be at least 2 characters", byField["name"])
	assert.Equal(t, "Please enter a valid email address", byField["email"])
	assert.Equal(t, "Cannot exceed 5", byField["rating"])
	assert.Equal(t, "Must be a valid URL", byField["link"])
	assert.Equal(t, "Must contain at least 1 item(s)", byField["tags"])
	assert.Equal(t, "This field is required", byField["metrics[0].label"])
}

func TestURL(t *testing.T) {
	v := New()
	assert.True(t, v.URL("https://github.com/me/repo"))
	assert.False(t, v.URL("github"))
	assert.False(t, v.URL(""))
}
