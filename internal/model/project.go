package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectCategory is stored in its upper-case form.
type ProjectCategory string

const (
	CategoryWebApp    ProjectCategory = "WEB_APP"
	CategoryMobileApp ProjectCategory = "MOBILE_APP"
	CategoryAPI       ProjectCategory = "API"
	CategoryLibrary   ProjectCategory = "LIBRARY"
	CategoryTool      ProjectCategory = "TOOL"
	CategoryGame      ProjectCategory = "GAME"
	CategoryOther     ProjectCategory = "OTHER"
)

// Valid reports whether c is a known category.
func (c ProjectCategory) Valid() bool {
	switch c {
	case CategoryWebApp, CategoryMobileApp, CategoryAPI, CategoryLibrary, CategoryTool, CategoryGame, CategoryOther:
		return true
	}
	return false
}

// ProjectStatus is stored in its upper-case form.
type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectPlanned    ProjectStatus = "PLANNED"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectCompleted, ProjectInProgress, ProjectPlanned:
		return true
	}
	return false
}

// ProjectMetric is a headline number shown with a project.
type ProjectMetric struct {
	Label       string `json:"label" validate:"required"`
	Value       string `json:"value" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Project is a portfolio entry managed from the admin dashboard.
// List-valued columns go through GORM's JSON serializer.
type Project struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title           string          `json:"title" gorm:"size:255;not null"`
	Description     string          `json:"description" gorm:"type:text;not null"`
	LongDescription *string         `json:"longDescription" gorm:"type:text"`
	Image           string          `json:"image" gorm:"size:512;not null"`
	Images          []string        `json:"images" gorm:"serializer:json;type:text"`
	Technologies    []string        `json:"technologies" gorm:"serializer:json;type:text;not null"`
	Category        ProjectCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Featured        bool            `json:"featured" gorm:"default:false"`
	GithubURL       *string         `json:"githubUrl" gorm:"size:512"`
	LiveURL         *string         `json:"liveUrl" gorm:"size:512"`
	Status          ProjectStatus   `json:"status" gorm:"type:varchar(20);not null"`
	StartDate       string          `json:"startDate" gorm:"size:32;not null"`
	EndDate         *string         `json:"endDate" gorm:"size:32"`
	Challenges      []string        `json:"challenges" gorm:"serializer:json;type:text"`
	Learnings       []string        `json:"learnings" gorm:"serializer:json;type:text"`
	Metrics         []ProjectMetric `json:"metrics" gorm:"serializer:json;type:text"`
	Order           int             `json:"order" gorm:"column:display_order;default:0"`
	Published       bool            `json:"published" gorm:"not null;index"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PublicProject is the shape served to the public site.
type PublicProject struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	LongDescription *string         `json:"longDescription"`
	Image           string          `json:"image"`
	Images          []string        `json:"images"`
	Technologies    []string        `json:"technologies"`
	Category        string          `json:"category"`
	Featured        bool            `json:"featured"`
	GithubURL       *string         `json:"githubUrl"`
	LiveURL         *string         `json:"liveUrl"`
	Status          string          `json:"status"`
	StartDate       string          `json:"startDate"`
	EndDate         *string         `json:"endDate"`
	Challenges      []string        `json:"challenges"`
	Learnings       []string        `json:"learnings"`
	Metrics         []ProjectMetric `json:"metrics"`
}

// Public converts the stored project into its public form: enums become
// lower-case slugs and absent lists become empty ones.
func (p *Project) Public() PublicProject {
	images := p.Images
	if images == nil {
		images = []string{p.Image}
	}
	return PublicProject{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Image:           p.Image,
		Images:          images,
		Technologies:    nonNil(p.Technologies),
		Category:        Slug(string(p.Category)),
		Featured:        p.Featured,
		GithubURL:       p.GithubURL,
		LiveURL:         p.LiveURL,
		Status:          Slug(string(p.Status)),
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Challenges:      nonNil(p.Challenges),
		Learnings:       nonNil(p.Learnings),
		Metrics:         nonNilMetrics(p.Metrics),
	}
}

// Slug turns WEB_APP into web-app.
func Slug(v string) string {
	return strings.ReplaceAll(strings.ToLower(v), "_", "-")
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilMetrics(v []ProjectMetric) []ProjectMetric {
	if v == nil {
		return []ProjectMetric{}
	}
	return v
}
