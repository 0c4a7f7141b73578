package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestimonialStatus is the moderation state of a testimonial.
type TestimonialStatus string

const (
	TestimonialPending  TestimonialStatus = "PENDING"
	TestimonialApproved TestimonialStatus = "APPROVED"
	TestimonialRejected TestimonialStatus = "REJECTED"
)

// Valid reports whether s is a known moderation state.
func (s TestimonialStatus) Valid() bool {
	switch s {
	case TestimonialPending, TestimonialApproved, TestimonialRejected:
		return true
	}
	return false
}

// Testimonial is a client submission. Only APPROVED ones reach the public site.
type Testimonial struct {
	ID              uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	Name            string            `json:"name" gorm:"size:255;not null"`
	Email           string            `json:"email" gorm:"size:255;not null;index"`
	Position        string            `json:"position" gorm:"size:255;not null"`
	Company         string            `json:"company" gorm:"size:255;not null"`
	Content         string            `json:"content" gorm:"type:text;not null"`
	Rating          int               `json:"rating" gorm:"not null"`
	ProjectWorkedOn *string           `json:"projectWorkedOn" gorm:"size:255"`
	Image           *string           `json:"image" gorm:"size:512"`
	AllowContact    bool              `json:"allowContact" gorm:"not null"`
	Status          TestimonialStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Featured        bool              `json:"featured" gorm:"default:false"`
	SubmissionDate  time.Time         `json:"submissionDate" gorm:"not null;index"`
	ApprovalDate    *time.Time        `json:"approvalDate"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// BeforeCreate sets UUID and submission time before creating the record.
func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.SubmissionDate.IsZero() {
		t.SubmissionDate = time.Now()
	}
	return nil
}

// PublicTestimonial is the fixed field projection served to the public site.
type PublicTestimonial struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Position        string     `json:"position"`
	Company         string     `json:"company"`
	Content         string     `json:"content"`
	Rating          int        `json:"rating"`
	ProjectWorkedOn *string    `json:"projectWorkedOn"`
	Image           *string    `json:"image"`
	Featured        bool       `json:"featured"`
	ApprovalDate    *time.Time `json:"approvalDate"`
}

// Public returns the public projection. Email and moderation fields stay private.
func (t *Testimonial) Public() PublicTestimonial {
	return PublicTestimonial{
		ID:              t.ID,
		Name:            t.Name,
		Position:        t.Position,
		Company:         t.Company,
		Content:         t.Content,
		Rating:          t.Rating,
		ProjectWorkedOn: t.ProjectWorkedOn,
		Image:           t.Image,
		Featured:        t.Featured,
		ApprovalDate:    t.ApprovalDate,
	}
}
