package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SystemHandler serves the small operational endpoints.
type SystemHandler struct {
	siteURL string
	now     func() time.Time
}

// NewSystemHandler creates a system handler for the site at siteURL.
func NewSystemHandler(siteURL string) *SystemHandler {
	return &SystemHandler{siteURL: siteURL, now: time.Now}
}

// PingResponse is the body of the API smoke test.
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Healthz is the liveness probe.
func (h *SystemHandler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ping godoc
// @Summary API smoke test
// @Tags system
// @Produce json
// @Success 200 {object} PingResponse
// @Router /test [get]
func (h *SystemHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, PingResponse{
		Message:   "API is working!",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	})
}

// Robots serves robots.txt pointing crawlers at the sitemap.
func (h *SystemHandler) Robots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml", h.siteURL)
	return c.String(http.StatusOK, body)
}
