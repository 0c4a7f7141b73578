package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// memProjects is an in-memory ProjectRepository with the same ordering and
// not-found rules as the GORM one.
type memProjects struct {
	mu   sync.Mutex
	rows map[uuid.UUID]model.Project
	seq  int
}

func newMemProjects() *memProjects {
	return &memProjects{rows: map[uuid.UUID]model.Project{}}
}

func (m *memProjects) Create(ctx context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.seq++
	p.CreatedAt = time.Unix(int64(m.seq), 0)
	m.rows[p.ID] = *p
	return nil
}

func (m *memProjects) Update(ctx context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.rows[p.ID] = *p
	return nil
}

func (m *memProjects) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memProjects) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (m *memProjects) FindByTitle(ctx context.Context, title string) (*model.Project, error) {
	for _, p := range m.sorted(nil) {
		if p.Title == title {
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memProjects) List(ctx context.Context, filter repository.ProjectFilter, page model.Page) ([]model.Project, int64, error) {
	all := m.sorted(filter.Published)
	total := int64(len(all))
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *memProjects) ListPublished(ctx context.Context) ([]model.Project, error) {
	published := true
	return m.sorted(&published), nil
}

func (m *memProjects) sorted(published *bool) []model.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Project{}
	for _, p := range m.rows {
		if published != nil && p.Published != *published {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out
}

// memTestimonials is an in-memory TestimonialRepository.
type memTestimonials struct {
	mu   sync.Mutex
	rows map[uuid.UUID]model.Testimonial
}

func newMemTestimonials() *memTestimonials {
	return &memTestimonials{rows: map[uuid.UUID]model.Testimonial{}}
}

func (m *memTestimonials) Create(ctx context.Context, t *model.Testimonial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	m.rows[t.ID] = *t
	return nil
}

func (m *memTestimonials) Update(ctx context.Context, t *model.Testimonial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[t.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.rows[t.ID] = *t
	return nil
}

func (m *memTestimonials) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memTestimonials) FindByID(ctx context.Context, id uuid.UUID) (*model.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (m *memTestimonials) FindByEmail(ctx context.Context, email string) (*model.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.rows {
		if t.Email == email {
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memTestimonials) List(ctx context.Context, status *model.TestimonialStatus, page model.Page) ([]model.Testimonial, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Testimonial{}
	for _, t := range m.rows {
		if status == nil || t.Status == *status {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmissionDate.After(out[j].SubmissionDate) })
	total := int64(len(out))
	start := page.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + page.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (m *memTestimonials) ListApproved(ctx context.Context) ([]model.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Testimonial{}
	for _, t := range m.rows {
		if t.Status == model.TestimonialApproved {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		return out[i].ApprovalDate.After(*out[j].ApprovalDate)
	})
	return out, nil
}
