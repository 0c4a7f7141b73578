package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio/internal/model"
)

// TestimonialRepository defines testimonial persistence operations.
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *model.Testimonial) error
	Update(ctx context.Context, testimonial *model.Testimonial) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Testimonial, error)
	FindByEmail(ctx context.Context, email string) (*model.Testimonial, error)
	List(ctx context.Context, status *model.TestimonialStatus, page model.Page) ([]model.Testimonial, int64, error)
	ListApproved(ctx context.Context) ([]model.Testimonial, error)
}

type testimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository creates a new testimonial repository.
func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *model.Testimonial) error {
	return translate("create testimonial", r.db.WithContext(ctx).Create(testimonial).Error)
}

// Update writes the moderation columns of an existing testimonial.
func (r *testimonialRepository) Update(ctx context.Context, testimonial *model.Testimonial) error {
	res := r.db.WithContext(ctx).Model(testimonial).
		Select("status", "featured", "approval_date", "updated_at").
		Updates(testimonial)
	if res.Error != nil {
		return translate("update testimonial", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("update testimonial", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *testimonialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Testimonial{})
	if res.Error != nil {
		return translate("delete testimonial", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete testimonial", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *testimonialRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Testimonial, error) {
	var testimonial model.Testimonial
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&testimonial).Error; err != nil {
		return nil, translate("find testimonial", err)
	}
	return &testimonial, nil
}

func (r *testimonialRepository) FindByEmail(ctx context.Context, email string) (*model.Testimonial, error) {
	var testimonial model.Testimonial
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&testimonial).Error; err != nil {
		return nil, translate("find testimonial by email", err)
	}
	return &testimonial, nil
}

// List returns newest submissions first, optionally filtered by status.
func (r *testimonialRepository) List(ctx context.Context, status *model.TestimonialStatus, page model.Page) ([]model.Testimonial, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Testimonial{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate("count testimonials", err)
	}

	var testimonials []model.Testimonial
	if err := query.Order("submission_date DESC").Limit(page.Limit).Offset(page.Offset()).Find(&testimonials).Error; err != nil {
		return nil, 0, translate("list testimonials", err)
	}
	return testimonials, total, nil
}

// ListApproved lists the testimonials visible on the public site.
func (r *testimonialRepository) ListApproved(ctx context.Context) ([]model.Testimonial, error) {
	var testimonials []model.Testimonial
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.TestimonialApproved).
		Order("featured DESC").
		Order("approval_date DESC").
		Find(&testimonials).Error; err != nil {
		return nil, translate("list approved testimonials", err)
	}
	return testimonials, nil
}
