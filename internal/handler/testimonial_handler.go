package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"portfolio/internal/model"
	"portfolio/internal/service"
)

// TestimonialHandler handles testimonial submission and moderation endpoints.
type TestimonialHandler struct {
	testimonialService service.TestimonialService
}

// NewTestimonialHandler creates a new testimonial handler.
func NewTestimonialHandler(testimonialService service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonialService: testimonialService}
}

// SubmitTestimonialResponse acknowledges a public submission.
type SubmitTestimonialResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

// TestimonialListResponse is one page of testimonials.
type TestimonialListResponse struct {
	Testimonials []model.Testimonial `json:"testimonials"`
	Pagination   model.Pagination    `json:"pagination"`
}

// TestimonialResponse acknowledges a moderation update.
type TestimonialResponse struct {
	Message     string             `json:"message"`
	Testimonial *model.Testimonial `json:"testimonial"`
}

// ModerateTestimonialRequest changes status and/or featured of one testimonial.
type ModerateTestimonialRequest struct {
	ID string `json:"id"`
	service.TestimonialPatch
}

// ListPublic godoc
// @Summary Approved testimonials
// @Tags testimonials
// @Produce json
// @Success 200 {array} model.PublicTestimonial
// @Failure 500 {object} errors.ErrorResponse
// @Router /testimonials [get]
func (h *TestimonialHandler) ListPublic(c echo.Context) error {
	testimonials, err := h.testimonialService.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, testimonials)
}

// Submit godoc
// @Summary Submit a testimonial for moderation
// @Tags testimonials
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param position formData string true "Position"
// @Param company formData string true "Company"
// @Param content formData string true "Testimonial text, at least 20 characters"
// @Param rating formData int true "Rating from 1 to 5"
// @Param projectWorkedOn formData string false "Project worked on"
// @Param allowContact formData bool false "May be contacted"
// @Param profilePhoto formData file false "Profile photo"
// @Success 200 {object} SubmitTestimonialResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /testimonials [post]
func (h *TestimonialHandler) Submit(c echo.Context) error {
	rating, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("rating")))
	input := service.TestimonialInput{
		Name:            strings.TrimSpace(c.FormValue("name")),
		Email:           strings.TrimSpace(c.FormValue("email")),
		Position:        strings.TrimSpace(c.FormValue("position")),
		Company:         strings.TrimSpace(c.FormValue("company")),
		Content:         strings.TrimSpace(c.FormValue("content")),
		Rating:          rating,
		ProjectWorkedOn: strings.TrimSpace(c.FormValue("projectWorkedOn")),
		AllowContact:    formBool(c, "allowContact"),
		ProfilePhoto:    formFile(c, "profilePhoto"),
	}

	testimonial, err := h.testimonialService.Submit(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SubmitTestimonialResponse{
		Message: "Testimonial submitted successfully! Thank you for sharing your experience.",
		ID:      testimonial.ID,
	})
}

// List godoc
// @Summary All testimonials, paged
// @Tags admin-testimonials
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} TestimonialListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/testimonials [get]
func (h *TestimonialHandler) List(c echo.Context) error {
	var status *model.TestimonialStatus
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		s := model.TestimonialStatus(strings.ToUpper(raw))
		status = &s
	}

	testimonials, pagination, err := h.testimonialService.List(c.Request().Context(), status, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TestimonialListResponse{Testimonials: testimonials, Pagination: pagination})
}

// Moderate godoc
// @Summary Approve, reject or feature a testimonial
// @Tags admin-testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ModerateTestimonialRequest true "Testimonial id and changes"
// @Success 200 {object} TestimonialResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/testimonials [patch]
func (h *TestimonialHandler) Moderate(c echo.Context) error {
	var req ModerateTestimonialRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	id, err := parseID(req.ID, "Testimonial ID is required", "Failed to update testimonial")
	if err != nil {
		return err
	}

	testimonial, err := h.testimonialService.Moderate(c.Request().Context(), id, req.TestimonialPatch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TestimonialResponse{Message: "Testimonial updated successfully", Testimonial: testimonial})
}

// Delete godoc
// @Summary Delete a testimonial
// @Tags admin-testimonials
// @Produce json
// @Security BearerAuth
// @Param id query string true "Testimonial ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/testimonials [delete]
func (h *TestimonialHandler) Delete(c echo.Context) error {
	id, err := idFromQuery(c, "Testimonial ID is required", "Failed to delete testimonial")
	if err != nil {
		return err
	}
	if err := h.testimonialService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Testimonial deleted successfully"})
}
