package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "validation passes through",
			err:      Field("rating", "Rating cannot exceed 5 stars"),
			wantKind: KindValidation,
			wantMsg:  "Invalid data",
		},
		{
			name:     "unauthorized passes through",
			err:      fmt.Errorf("guard: %w", Unauthorized()),
			wantKind: KindUnauthorized,
			wantMsg:  "Unauthorized",
		},
		{
			name:     "not found collapses",
			err:      fmt.Errorf("delete project: %w", ErrNotFound),
			wantKind: KindNotFound,
			wantMsg:  "Failed to delete project",
		},
		{
			name:     "conflict collapses",
			err:      ErrConflict,
			wantKind: KindConflict,
			wantMsg:  "Failed to delete project",
		},
		{
			name:     "unknown error",
			err:      stderrors.New("boom"),
			wantKind: KindInternal,
			wantMsg:  "Failed to delete project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fail(tt.err, "Failed to delete project")
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestMapErrorToHTTP(t *testing.T) {
	v := MapErrorToHTTP(Field("rating", "too high"))
	assert.Equal(t, http.StatusBadRequest, v.StatusCode)
	assert.Equal(t, []FieldError{{Field: "rating", Message: "too high"}}, v.ToErrorResponse().Details)

	u := MapErrorToHTTP(Unauthorized())
	assert.Equal(t, http.StatusUnauthorized, u.StatusCode)
	assert.Equal(t, "Unauthorized", u.Message)

	nf := MapErrorToHTTP(Fail(ErrNotFound, "Failed to update testimonial"))
	assert.Equal(t, http.StatusInternalServerError, nf.StatusCode)
	assert.Equal(t, "Failed to update testimonial", nf.Message)

	foreign := MapErrorToHTTP(stderrors.New("db exploded"))
	assert.Equal(t, http.StatusInternalServerError, foreign.StatusCode)
	assert.NotContains(t, foreign.Message, "exploded")
}

func TestKindHelpers(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Unauthorized())
	assert.True(t, IsKind(err, KindUnauthorized))
	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(stderrors.New("x")))
	assert.Equal(t, "not_found", KindNotFound.String())
}
