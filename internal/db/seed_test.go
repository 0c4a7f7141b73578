package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) FindByTitle(ctx context.Context, title string) (*model.Project, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) Create(ctx context.Context, project *model.Project) error {
	return m.Called(ctx, project).Error(0)
}

type MockTestimonialStore struct {
	mock.Mock
}

func (m *MockTestimonialStore) FindByEmail(ctx context.Context, email string) (*model.Testimonial, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Testimonial), args.Error(1)
}

func (m *MockTestimonialStore) Create(ctx context.Context, testimonial *model.Testimonial) error {
	return m.Called(ctx, testimonial).Error(0)
}

func TestSeed_InsertsOnlyMissingRows(t *testing.T) {
	ctx := context.Background()
	projects := new(MockProjectStore)
	testimonials := new(MockTestimonialStore)

	testimonials.On("FindByEmail", ctx, "sarah@techstartup.com").Return(&model.Testimonial{}, nil)
	testimonials.On("FindByEmail", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound)
	testimonials.On("Create", ctx, mock.AnythingOfType("*model.Testimonial")).Return(nil)

	projects.On("FindByTitle", ctx, "Weather Data API").Return(&model.Project{}, nil)
	projects.On("FindByTitle", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound)
	projects.On("Create", ctx, mock.AnythingOfType("*model.Project")).Return(nil)

	res, err := Seed(ctx, projects, testimonials, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Projects: 2, Testimonials: 2}, res)
	testimonials.AssertNumberOfCalls(t, "Create", 2)
	projects.AssertNumberOfCalls(t, "Create", 2)
}

func TestSeed_LookupFailure(t *testing.T) {
	ctx := context.Background()
	projects := new(MockProjectStore)
	testimonials := new(MockTestimonialStore)
	testimonials.On("FindByEmail", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := Seed(ctx, projects, testimonials, zap.NewNop())
	assert.ErrorContains(t, err, "connection refused")
	projects.AssertNotCalled(t, "FindByTitle", mock.Anything, mock.Anything)
}

func TestSamples(t *testing.T) {
	for _, p := range SampleProjects() {
		assert.True(t, p.Category.Valid(), p.Title)
		assert.True(t, p.Status.Valid(), p.Title)
		assert.NotEmpty(t, p.Technologies, p.Title)
	}
	for _, tm := range SampleTestimonials(time.Now()) {
		assert.GreaterOrEqual(t, len(tm.Content), 20)
		if tm.Status == model.TestimonialApproved {
			assert.NotNil(t, tm.ApprovalDate)
		}
	}
}
