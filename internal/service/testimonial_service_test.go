package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/internal/cache"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/upload"
	"portfolio/internal/validation"
)

type testimonialFixture struct {
	svc  *testimonialService
	repo *MockTestimonialRepository
	mr   *miniredis.Miniredis
	root string
	now  time.Time
}

func newTestimonialFixture(t *testing.T) *testimonialFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })

	root := t.TempDir()
	repo := new(MockTestimonialRepository)
	svc := NewTestimonialService(repo, upload.NewStore(root, 1<<20), validation.New(), client, time.Minute).(*testimonialService)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return &testimonialFixture{svc: svc, repo: repo, mr: mr, root: root, now: now}
}

func validTestimonialInput() TestimonialInput {
	return TestimonialInput{
		Name:         "Jane Doe",
		Email:        "Jane@Example.com",
		Position:     "CTO",
		Company:      "Acme",
		Content:      "Delivered on time and communicated clearly.",
		Rating:       5,
		AllowContact: true,
	}
}

func TestTestimonialService_Submit(t *testing.T) {
	ctx := context.Background()
	f := newTestimonialFixture(t)

	input := validTestimonialInput()
	input.ProfilePhoto = formFile(t, "profilePhoto", "me.png", pngBytes)

	var saved *model.Testimonial
	f.repo.On("Create", ctx, mock.AnythingOfType("*model.Testimonial")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.Testimonial) }).
		Return(nil)

	got, err := f.svc.Submit(ctx, input)
	require.NoError(t, err)
	require.Same(t, saved, got)

	assert.Equal(t, model.TestimonialPending, got.Status)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, f.now, got.SubmissionDate)
	assert.Nil(t, got.ApprovalDate)
	assert.Nil(t, got.ProjectWorkedOn)
	require.NotNil(t, got.Image)
	assert.Regexp(t, `^/testimonials/\d+-[0-9a-f]{8}\.png$`, *got.Image)
	assert.Equal(t, 1, countFiles(t, filepath.Join(f.root, upload.DirTestimonials)))
}

func TestTestimonialService_Submit_Invalid(t *testing.T) {
	ctx := context.Background()
	f := newTestimonialFixture(t)

	input := validTestimonialInput()
	input.Rating = 6
	input.Content = "too short"
	input.ProfilePhoto = formFile(t, "profilePhoto", "me.png", pngBytes)

	_, err := f.svc.Submit(ctx, input)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)

	fields := map[string]bool{}
	for _, fe := range appErr.Fields {
		fields[fe.Field] = true
	}
	assert.True(t, fields["rating"])
	assert.True(t, fields["content"])
	assert.Equal(t, 0, countFiles(t, filepath.Join(f.root, upload.DirTestimonials)))
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTestimonialService_Moderate(t *testing.T) {
	ctx := context.Background()

	t.Run("approve stamps approval date", func(t *testing.T) {
		f := newTestimonialFixture(t)

		id := uuid.New()
		existing := &model.Testimonial{ID: id, Status: model.TestimonialPending}
		f.repo.On("FindByID", ctx, id).Return(existing, nil)
		f.repo.On("Update", ctx, existing).Return(nil)

		status := model.TestimonialApproved
		featured := true
		got, err := f.svc.Moderate(ctx, id, TestimonialPatch{Status: &status, Featured: &featured})
		require.NoError(t, err)
		assert.Equal(t, model.TestimonialApproved, got.Status)
		assert.True(t, got.Featured)
		require.NotNil(t, got.ApprovalDate)
		assert.Equal(t, f.now, *got.ApprovalDate)
		assert.Equal(t, "1", generation(f.mr, publicTestimonialsKey))
	})

	t.Run("reject leaves approval date alone", func(t *testing.T) {
		f := newTestimonialFixture(t)
		id := uuid.New()
		existing := &model.Testimonial{ID: id, Status: model.TestimonialPending}
		f.repo.On("FindByID", ctx, id).Return(existing, nil)
		f.repo.On("Update", ctx, existing).Return(nil)

		status := model.TestimonialRejected
		got, err := f.svc.Moderate(ctx, id, TestimonialPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, model.TestimonialRejected, got.Status)
		assert.Nil(t, got.ApprovalDate)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newTestimonialFixture(t)
		status := model.TestimonialStatus("ARCHIVED")
		_, err := f.svc.Moderate(ctx, uuid.New(), TestimonialPatch{Status: &status})
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newTestimonialFixture(t)
		id := uuid.New()
		f.repo.On("FindByID", ctx, id).Return(nil, apperrors.ErrNotFound)

		featured := true
		_, err := f.svc.Moderate(ctx, id, TestimonialPatch{Featured: &featured})
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Failed to update testimonial", appErr.Message)
	})
}

func TestTestimonialService_ListPublic(t *testing.T) {
	ctx := context.Background()
	f := newTestimonialFixture(t)

	approved := f.now
	f.repo.On("ListApproved", ctx).Return([]model.Testimonial{{
		ID:           uuid.New(),
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		Rating:       5,
		Status:       model.TestimonialApproved,
		ApprovalDate: &approved,
	}}, nil).Once()

	list, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jane Doe", list[0].Name)
	assert.True(t, f.mr.Exists(publicTestimonialsKey+":0"))

	again, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 1)
	f.repo.AssertNumberOfCalls(t, "ListApproved", 1)
}

func TestTestimonialService_ListPublic_ApprovalDuringLoad(t *testing.T) {
	ctx := context.Background()
	f := newTestimonialFixture(t)

	id := uuid.New()
	pending := &model.Testimonial{ID: id, Name: "Jane Doe", Rating: 5, Status: model.TestimonialPending}
	f.repo.On("FindByID", ctx, id).Return(pending, nil)
	f.repo.On("Update", ctx, pending).Return(nil)

	status := model.TestimonialApproved
	f.repo.On("ListApproved", ctx).Return([]model.Testimonial{}, nil).Run(func(mock.Arguments) {
		_, err := f.svc.Moderate(ctx, id, TestimonialPatch{Status: &status})
		require.NoError(t, err)
	}).Once()
	f.repo.On("ListApproved", ctx).Return([]model.Testimonial{*pending}, nil).Once()

	stale, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, stale)

	fresh, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, id, fresh[0].ID)
}

func TestTestimonialService_List(t *testing.T) {
	ctx := context.Background()
	f := newTestimonialFixture(t)

	status := model.TestimonialPending
	page := model.NewPage(1, 10)
	f.repo.On("List", ctx, &status, page).Return([]model.Testimonial{}, int64(0), nil)

	list, pagination, err := f.svc.List(ctx, &status, page)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int64(0), pagination.Pages)

	bad := model.TestimonialStatus("nope")
	_, _, err = f.svc.List(ctx, &bad, page)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestTestimonialService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newTestimonialFixture(t)

	id := uuid.New()
	f.repo.On("Delete", ctx, id).Return(apperrors.ErrNotFound)
	err := f.svc.Delete(ctx, id)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
