package handler

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

// PrincipalKey is the echo context key the admin middleware stores the
// authenticated *auth.Principal under.
const PrincipalKey = "admin"

// MessageResponse is the body of plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// principal returns the admin resolved by the admin middleware.
func principal(c echo.Context) (*auth.Principal, error) {
	p, ok := c.Get(PrincipalKey).(*auth.Principal)
	if !ok || p == nil {
		return nil, apperrors.Unauthorized()
	}
	return p, nil
}

// pageFromQuery reads page and limit. Missing or malformed values fall back to defaults.
func pageFromQuery(c echo.Context) model.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return model.NewPage(page, limit)
}

// idFromQuery reads the ?id= parameter of delete requests. A malformed id
// cannot match a row and is reported like a missing one.
func idFromQuery(c echo.Context, required, failure string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.QueryParam("id"))
	if raw == "" {
		return uuid.Nil, apperrors.Field("id", required)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Fail(apperrors.ErrNotFound, failure)
	}
	return id, nil
}

// parseID turns the id carried in a JSON body into a UUID.
func parseID(raw, required, failure string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, apperrors.Field("id", required)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Fail(apperrors.ErrNotFound, failure)
	}
	return id, nil
}

// bindJSON decodes the request body, reporting malformed JSON as a validation error.
func bindJSON(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return apperrors.Field("body", "Invalid JSON body")
	}
	return nil
}

// formJSON decodes a form field that carries a JSON document. An absent or
// empty field leaves dst untouched.
func formJSON(c echo.Context, field string, dst interface{}) *apperrors.FieldError {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return &apperrors.FieldError{Field: field, Message: "Must be a JSON array"}
	}
	return nil
}

// formBool is true only for the literal "true".
func formBool(c echo.Context, field string) bool {
	return c.FormValue(field) == "true"
}

// formFile returns the named upload, or nil when it is absent or empty.
func formFile(c echo.Context, field string) *multipart.FileHeader {
	files := formFiles(c, field)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// formFiles returns every non-empty upload sent under field.
func formFiles(c echo.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	var out []*multipart.FileHeader
	for _, fh := range form.File[field] {
		if fh != nil && fh.Size > 0 {
			out = append(out, fh)
		}
	}
	return out
}
