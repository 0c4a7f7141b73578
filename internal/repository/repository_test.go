package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"portfolio/internal/db"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "portfolio.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func seedProject(t *testing.T, repo ProjectRepository, title string, featured, published bool, order int, created time.Time) *model.Project {
	t.Helper()
	p := &model.Project{
		Title:        title,
		Description:  title + " description",
		Image:        "/projects/" + title + ".png",
		Technologies: []string{"Go"},
		Category:     model.CategoryWebApp,
		Status:       model.ProjectCompleted,
		StartDate:    "2024-01",
		Featured:     featured,
		Published:    published,
		Order:        order,
		CreatedAt:    created,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func projectTitles(projects []model.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

func TestProjectRepository_Ordering(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedProject(t, repo, "older", false, true, 1, base)
	seedProject(t, repo, "newer", false, true, 1, base.Add(time.Hour))
	seedProject(t, repo, "pinned", true, true, 9, base)
	seedProject(t, repo, "draft", false, false, 0, base)

	published, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pinned", "newer", "older"}, projectTitles(published))
	assert.Equal(t, []string{"Go"}, published[0].Technologies)

	all, total, err := repo.List(ctx, ProjectFilter{}, model.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, []string{"pinned", "draft", "newer", "older"}, projectTitles(all))
}

func TestProjectRepository_ListPage(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedProject(t, repo, "first", false, true, 1, base)
	seedProject(t, repo, "second", false, true, 2, base)
	seedProject(t, repo, "third", false, true, 3, base)
	seedProject(t, repo, "hidden", false, false, 0, base)

	onlyPublished := true
	page, total, err := repo.List(ctx, ProjectFilter{Published: &onlyPublished}, model.NewPage(2, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"second"}, projectTitles(page))
	assert.Equal(t, model.Pagination{Page: 2, Limit: 1, Total: 3, Pages: 3}, model.NewPagination(model.NewPage(2, 1), total))

	unpublished := false
	page, total, err = repo.List(ctx, ProjectFilter{Published: &unpublished}, model.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"hidden"}, projectTitles(page))
}

func TestProjectRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t))
	p := seedProject(t, repo, "draft", false, false, 0, time.Now())

	p.Published = true
	p.Technologies = []string{"Go", "Redis"}
	require.NoError(t, repo.Update(ctx, p))

	published, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, p.ID, published[0].ID)
	assert.Equal(t, []string{"Go", "Redis"}, published[0].Technologies)

	found, err := repo.FindByTitle(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), apperrors.ErrNotFound)

	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &model.Project{ID: uuid.New(), Title: "ghost"}), apperrors.ErrNotFound)
}

func TestTestimonialRepository_ListPage(t *testing.T) {
	ctx := context.Background()
	repo := NewTestimonialRepository(newTestDB(t))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		tm := &model.Testimonial{
			Name:           "Client",
			Email:          "client@example.com",
			Position:       "CTO",
			Company:        "Acme",
			Content:        "Delivered on time and communicated clearly.",
			Rating:         5,
			Status:         model.TestimonialPending,
			SubmissionDate: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, tm))
		ids[i] = tm.ID
	}

	// Newest first: page 2 of 1 is the middle submission.
	page, total, err := repo.List(ctx, nil, model.NewPage(2, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)

	approved := model.TestimonialApproved
	page, total, err = repo.List(ctx, &approved, model.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, page)
}

func TestTestimonialRepository_Moderation(t *testing.T) {
	ctx := context.Background()
	repo := NewTestimonialRepository(newTestDB(t))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	create := func(name string) *model.Testimonial {
		tm := &model.Testimonial{
			Name:           name,
			Email:          name + "@example.com",
			Position:       "CTO",
			Company:        "Acme",
			Content:        "Delivered on time and communicated clearly.",
			Rating:         5,
			Status:         model.TestimonialPending,
			SubmissionDate: base,
		}
		require.NoError(t, repo.Create(ctx, tm))
		return tm
	}
	early, late, plain := create("early"), create("late"), create("plain")

	approve := func(tm *model.Testimonial, at time.Time, featured bool) {
		tm.Status = model.TestimonialApproved
		tm.ApprovalDate = &at
		tm.Featured = featured
		require.NoError(t, repo.Update(ctx, tm))
	}
	approve(early, base.Add(time.Hour), false)
	approve(late, base.Add(2*time.Hour), false)
	approve(plain, base, true)

	list, err := repo.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uuid.UUID{plain.ID, late.ID, early.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
	require.NotNil(t, list[1].ApprovalDate)
	assert.True(t, list[1].ApprovalDate.Equal(base.Add(2*time.Hour)))

	require.NoError(t, repo.Delete(ctx, early.ID))
	assert.ErrorIs(t, repo.Delete(ctx, early.ID), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &model.Testimonial{ID: uuid.New(), Status: model.TestimonialRejected}), apperrors.ErrNotFound)
}

func TestAdminRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminRepository(newTestDB(t))

	admin := &model.Admin{Email: "admin@example.com", PasswordHash: "x", Name: "Admin"}
	require.NoError(t, repo.Create(ctx, admin))

	err := repo.Create(ctx, &model.Admin{Email: "admin@example.com", PasswordHash: "y", Name: "Other"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	found, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
