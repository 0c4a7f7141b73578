package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/validation"
)

func TestContactService_Submit(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewContactService(validation.New(), zap.New(core))

	err := svc.Submit(context.Background(), model.ContactMessage{
		Name:    "Sam",
		Email:   "sam@example.com",
		Subject: "New website",
		Message: "I would like a quote for a new site.",
		Budget:  "5k",
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("contact form submission").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sam@example.com", entries[0].ContextMap()["email"])
	assert.Equal(t, "5k", entries[0].ContextMap()["budget"])
}

func TestContactService_Submit_Invalid(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewContactService(validation.New(), zap.New(core))

	err := svc.Submit(context.Background(), model.ContactMessage{Name: "S", Email: "bad", Subject: "Hi", Message: "short"})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Len(t, appErr.Fields, 4)
	assert.Zero(t, logs.Len())
}
