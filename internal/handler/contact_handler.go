package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/model"
	"portfolio/internal/service"
)

// ContactHandler handles the public contact form.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit godoc
// @Summary Send a message through the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body model.ContactMessage true "Message"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var msg model.ContactMessage
	if err := bindJSON(c, &msg); err != nil {
		return err
	}
	if err := h.contactService.Submit(c.Request().Context(), msg); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Message sent successfully!"})
}
