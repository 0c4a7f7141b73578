package service

import (
	"context"

	"go.uber.org/zap"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/validation"
)

// ContactService accepts messages from the public contact form.
type ContactService interface {
	Submit(ctx context.Context, msg model.ContactMessage) error
}

type contactService struct {
	validator *validation.Validator
	logger    *zap.Logger
}

// NewContactService creates a contact service that records messages in the log.
func NewContactService(validator *validation.Validator, logger *zap.Logger) ContactService {
	return &contactService{validator: validator, logger: logger}
}

// Submit validates msg and logs it. Nothing is persisted or mailed.
func (s *contactService) Submit(ctx context.Context, msg model.ContactMessage) error {
	if fields := s.validator.Fields(&msg); len(fields) > 0 {
		return apperrors.Validation("Invalid form data", fields...)
	}
	s.logger.Info("contact form submission",
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("subject", msg.Subject),
		zap.String("message", msg.Message),
		zap.String("budget", msg.Budget),
		zap.String("timeline", msg.Timeline),
		zap.String("projectType", msg.ProjectType),
	)
	return nil
}
