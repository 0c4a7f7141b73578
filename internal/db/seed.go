package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

// ProjectStore is the part of the project repository seeding needs.
type ProjectStore interface {
	FindByTitle(ctx context.Context, title string) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
}

// TestimonialStore is the part of the testimonial repository seeding needs.
type TestimonialStore interface {
	FindByEmail(ctx context.Context, email string) (*model.Testimonial, error)
	Create(ctx context.Context, testimonial *model.Testimonial) error
}

// SeedResult counts the rows a seed run inserted.
type SeedResult struct {
	Projects     int
	Testimonials int
}

// Seed inserts the sample testimonials and projects that are not present yet.
// Testimonials are matched by email, projects by title, so running it twice
// inserts nothing the second time.
func Seed(ctx context.Context, projects ProjectStore, testimonials TestimonialStore, logger *zap.Logger) (SeedResult, error) {
	var res SeedResult
	now := time.Now()

	for _, t := range SampleTestimonials(now) {
		_, err := testimonials.FindByEmail(ctx, t.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return res, fmt.Errorf("look up testimonial %s: %w", t.Email, err)
		}
		if err := testimonials.Create(ctx, t); err != nil {
			return res, fmt.Errorf("create testimonial %s: %w", t.Email, err)
		}
		logger.Info("created testimonial", zap.String("name", t.Name))
		res.Testimonials++
	}

	for _, p := range SampleProjects() {
		_, err := projects.FindByTitle(ctx, p.Title)
		if err == nil {
			logger.Info("project already exists", zap.String("title", p.Title))
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return res, fmt.Errorf("look up project %s: %w", p.Title, err)
		}
		if err := projects.Create(ctx, p); err != nil {
			return res, fmt.Errorf("create project %s: %w", p.Title, err)
		}
		logger.Info("created project", zap.String("title", p.Title))
		res.Projects++
	}

	return res, nil
}

// SampleTestimonials are two approved, featured testimonials and one waiting for moderation.
func SampleTestimonials(now time.Time) []*model.Testimonial {
	approved := now
	return []*model.Testimonial{
		{
			Name:            "Sarah Johnson",
			Email:           "sarah@techstartup.com",
			Position:        "Product Manager",
			Company:         "Tech Startup Inc.",
			Content:         "Technical expertise and attention to detail throughout. The project shipped ahead of schedule and exceeded every expectation we had.",
			Rating:          5,
			ProjectWorkedOn: strPtr("E-commerce Platform"),
			AllowContact:    true,
			Status:          model.TestimonialApproved,
			Featured:        true,
			ApprovalDate:    &approved,
		},
		{
			Name:            "Michael Chen",
			Email:           "michael@digitalsolutions.com",
			Position:        "CEO",
			Company:         "Digital Solutions Co.",
			Content:         "Strong technical skills combined with creative problem-solving. The platform built for us has measurably increased our sales.",
			Rating:          5,
			ProjectWorkedOn: strPtr("Task Management App"),
			AllowContact:    true,
			Status:          model.TestimonialApproved,
			Featured:        true,
			ApprovalDate:    &approved,
		},
		{
			Name:         "Emily Rodriguez",
			Email:        "emily@creativeagency.com",
			Position:     "Marketing Director",
			Company:      "Creative Agency",
			Content:      "Professional, reliable and talented. Our outdated website became a modern, responsive platform our customers love.",
			Rating:       5,
			AllowContact: true,
			Status:       model.TestimonialPending,
		},
	}
}

// SampleProjects are three published showcase projects.
func SampleProjects() []*model.Project {
	return []*model.Project{
		{
			Title:           "E-Commerce Platform",
			Description:     "A modern, full-featured e-commerce platform with payment integration",
			LongDescription: strPtr("Complete e-commerce solution featuring authentication, payment processing, inventory management, order tracking and an admin dashboard."),
			Image:           "/projects/ecommerce.jpg",
			Images:          []string{"/projects/ecommerce.jpg", "/projects/ecommerce-dashboard.jpg"},
			Technologies:    []string{"Next.js", "TypeScript", "Tailwind CSS", "Stripe", "PostgreSQL"},
			Category:        model.CategoryWebApp,
			Featured:        true,
			Status:          model.ProjectCompleted,
			StartDate:       "2024-01-15",
			EndDate:         strPtr("2024-03-20"),
			Challenges:      []string{"Payment integration complexity", "Inventory management", "Performance optimization"},
			Learnings:       []string{"Advanced rendering patterns", "Payment processing", "Database optimization"},
			Metrics: []model.ProjectMetric{
				{Label: "Performance Score", Value: "98/100", Description: "Lighthouse performance score"},
				{Label: "Load Time", Value: "1.2s", Description: "Average page load time"},
			},
			Order:     1,
			Published: true,
		},
		{
			Title:           "Task Management App",
			Description:     "Collaborative task management application with real-time updates and team features",
			LongDescription: strPtr("Task management with real-time collaboration, project organization, deadline tracking and team communication."),
			Image:           "/projects/task-manager.jpg",
			Images:          []string{"/projects/task-manager.jpg", "/projects/task-manager-board.jpg"},
			Technologies:    []string{"React", "Node.js", "Socket.io", "MongoDB", "Express"},
			Category:        model.CategoryWebApp,
			Featured:        true,
			Status:          model.ProjectCompleted,
			StartDate:       "2023-10-01",
			EndDate:         strPtr("2023-12-15"),
			Challenges:      []string{"Real-time synchronization", "Complex state management", "User permissions"},
			Learnings:       []string{"WebSocket implementation", "Real-time data handling", "Team collaboration features"},
			Metrics: []model.ProjectMetric{
				{Label: "Active Users", Value: "500+", Description: "Monthly active users"},
				{Label: "Uptime", Value: "99.9%", Description: "Service availability"},
			},
			Order:     2,
			Published: true,
		},
		{
			Title:           "Weather Data API",
			Description:     "RESTful API service providing weather data with caching and analytics",
			LongDescription: strPtr("Weather API aggregating several data sources, with caching, rate limiting and an analytics dashboard."),
			Image:           "/projects/weather-api.jpg",
			Images:          []string{"/projects/weather-api.jpg", "/projects/weather-dashboard.jpg"},
			Technologies:    []string{"Go", "Redis", "PostgreSQL", "Docker"},
			Category:        model.CategoryAPI,
			Status:          model.ProjectCompleted,
			StartDate:       "2023-08-01",
			EndDate:         strPtr("2023-09-30"),
			Challenges:      []string{"Data source integration", "Caching strategy", "Rate limiting"},
			Learnings:       []string{"API design patterns", "Caching strategies", "Performance optimization"},
			Metrics: []model.ProjectMetric{
				{Label: "API Calls", Value: "1M+", Description: "Monthly API requests"},
				{Label: "Response Time", Value: "150ms", Description: "Average response time"},
			},
			Order:     3,
			Published: true,
		},
	}
}

func strPtr(s string) *string {
	return &s
}
