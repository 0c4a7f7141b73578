package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/cache"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
	"portfolio/internal/upload"
	"portfolio/internal/validation"
)

const publicTestimonialsKey = "portfolio:public:testimonials"

// TestimonialInput is a public testimonial submission. There is no status
// field: every submission starts out PENDING.
type TestimonialInput struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Position        string `json:"position" validate:"required,min=2"`
	Company         string `json:"company" validate:"required,min=2"`
	Content         string `json:"content" validate:"required,min=20"`
	Rating          int    `json:"rating" validate:"min=1,max=5"`
	ProjectWorkedOn string `json:"projectWorkedOn"`
	AllowContact    bool   `json:"allowContact"`

	ProfilePhoto *multipart.FileHeader `json:"-"`
}

// TestimonialPatch is a moderation update.
type TestimonialPatch struct {
	Status   *model.TestimonialStatus `json:"status"`
	Featured *bool                    `json:"featured"`
}

// TestimonialService handles testimonial submission and moderation.
type TestimonialService interface {
	ListPublic(ctx context.Context) ([]model.PublicTestimonial, error)
	List(ctx context.Context, status *model.TestimonialStatus, page model.Page) ([]model.Testimonial, model.Pagination, error)
	Submit(ctx context.Context, input TestimonialInput) (*model.Testimonial, error)
	Moderate(ctx context.Context, id uuid.UUID, patch TestimonialPatch) (*model.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type testimonialService struct {
	testimonialRepo repository.TestimonialRepository
	uploads         *upload.Store
	validator       *validation.Validator
	cache           *cache.Client
	cacheTTL        time.Duration
	now             func() time.Time
}

// NewTestimonialService creates a new testimonial service. cache may be nil.
func NewTestimonialService(testimonialRepo repository.TestimonialRepository, uploads *upload.Store, validator *validation.Validator, cache *cache.Client, cacheTTL time.Duration) TestimonialService {
	return &testimonialService{
		testimonialRepo: testimonialRepo,
		uploads:         uploads,
		validator:       validator,
		cache:           cache,
		cacheTTL:        cacheTTL,
		now:             time.Now,
	}
}

// ListPublic returns the approved testimonials in their public projection.
func (s *testimonialService) ListPublic(ctx context.Context) ([]model.PublicTestimonial, error) {
	key, cacheable := s.cache.Versioned(ctx, publicTestimonialsKey)
	var cached []model.PublicTestimonial
	if cacheable && s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	testimonials, err := s.testimonialRepo.ListApproved(ctx)
	if err != nil {
		return nil, apperrors.Fail(err, "Failed to fetch testimonials")
	}
	out := make([]model.PublicTestimonial, 0, len(testimonials))
	for i := range testimonials {
		out = append(out, testimonials[i].Public())
	}

	if cacheable {
		_ = s.cache.SetJSON(ctx, key, out, s.cacheTTL)
	}
	return out, nil
}

// List returns one page of testimonials, optionally narrowed to one status.
func (s *testimonialService) List(ctx context.Context, status *model.TestimonialStatus, page model.Page) ([]model.Testimonial, model.Pagination, error) {
	if status != nil && !status.Valid() {
		return nil, model.Pagination{}, apperrors.Field("status", "Must be one of: PENDING, APPROVED, REJECTED")
	}
	testimonials, total, err := s.testimonialRepo.List(ctx, status, page)
	if err != nil {
		return nil, model.Pagination{}, apperrors.Fail(err, "Failed to fetch testimonials")
	}
	if testimonials == nil {
		testimonials = []model.Testimonial{}
	}
	return testimonials, model.NewPagination(page, total), nil
}

// Submit validates and stores a new testimonial in the PENDING state.
func (s *testimonialService) Submit(ctx context.Context, input TestimonialInput) (*model.Testimonial, error) {
	if fields := s.validator.Fields(&input); len(fields) > 0 {
		return nil, apperrors.Validation("Invalid form data", fields...)
	}

	var image *string
	if input.ProfilePhoto != nil {
		if err := s.uploads.Check("profilePhoto", input.ProfilePhoto); err != nil {
			return nil, apperrors.Fail(err, "Failed to submit testimonial. Please try again.")
		}
		p, err := s.uploads.Save(input.ProfilePhoto, upload.DirTestimonials, "")
		if err != nil {
			return nil, apperrors.Internal("Failed to submit testimonial. Please try again.", err)
		}
		image = &p
	}

	testimonial := &model.Testimonial{
		Name:            input.Name,
		Email:           normalizeEmail(input.Email),
		Position:        input.Position,
		Company:         input.Company,
		Content:         input.Content,
		Rating:          input.Rating,
		ProjectWorkedOn: optional(input.ProjectWorkedOn),
		Image:           image,
		AllowContact:    input.AllowContact,
		Status:          model.TestimonialPending,
		SubmissionDate:  s.now(),
	}
	if err := s.testimonialRepo.Create(ctx, testimonial); err != nil {
		return nil, apperrors.Fail(err, "Failed to submit testimonial. Please try again.")
	}
	return testimonial, nil
}

// Moderate changes status and/or featured. Moving to APPROVED stamps the
// approval date; other transitions leave it untouched.
func (s *testimonialService) Moderate(ctx context.Context, id uuid.UUID, patch TestimonialPatch) (*model.Testimonial, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.Field("status", "Must be one of: PENDING, APPROVED, REJECTED")
	}

	testimonial, err := s.testimonialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Fail(err, "Failed to update testimonial")
	}

	if patch.Status != nil {
		testimonial.Status = *patch.Status
		if *patch.Status == model.TestimonialApproved {
			now := s.now()
			testimonial.ApprovalDate = &now
		}
	}
	if patch.Featured != nil {
		testimonial.Featured = *patch.Featured
	}

	if err := s.testimonialRepo.Update(ctx, testimonial); err != nil {
		return nil, apperrors.Fail(err, "Failed to update testimonial")
	}

	s.invalidate(ctx)
	return testimonial, nil
}

// Delete removes the testimonial with id. Unknown ids fail.
func (s *testimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.testimonialRepo.Delete(ctx, id); err != nil {
		return apperrors.Fail(err, "Failed to delete testimonial")
	}
	s.invalidate(ctx)
	return nil
}

func (s *testimonialService) invalidate(ctx context.Context) {
	_ = s.cache.Bump(ctx, publicTestimonialsKey)
}
