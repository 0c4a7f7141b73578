package router

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"portfolio/docs"
	"portfolio/internal/auth"
	"portfolio/internal/config"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/handler"
	"portfolio/internal/validation"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Auth        *handler.AuthHandler
	Project     *handler.ProjectHandler
	Testimonial *handler.TestimonialHandler
	Contact     *handler.ContactHandler
	System      *handler.SystemHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, logger *zap.Logger, guard *auth.Guard, h Handlers) {
	e.HTTPErrorHandler = handler.ErrorHandler(logger)
	e.Validator = validation.New()

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = strings.TrimRight(host, "/")
	}

	e.GET("/healthz", h.System.Healthz)
	e.GET("/robots.txt", h.System.Robots)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/", cfg.PublicDir)

	api := e.Group("/api")
	limited := RateLimit(cfg.PublicRateLimit)

	// Public routes
	api.GET("/test", h.System.Ping)
	api.GET("/projects", h.Project.ListPublic)
	api.GET("/testimonials", h.Testimonial.ListPublic)
	api.POST("/testimonials", h.Testimonial.Submit, limited)
	api.POST("/contact", h.Contact.Submit, limited)
	api.POST("/admin/login", h.Auth.Login, limited)

	// Admin routes (require a valid, unrevoked admin token)
	admin := api.Group("/admin", AdminAuth(guard))

	admin.POST("/logout", h.Auth.Logout)
	admin.GET("/me", h.Auth.Me)
	admin.PATCH("/password", h.Auth.ChangePassword)

	admin.GET("/projects", h.Project.List)
	admin.POST("/projects", h.Project.Create)
	admin.PATCH("/projects", h.Project.Update)
	admin.DELETE("/projects", h.Project.Delete)

	admin.GET("/testimonials", h.Testimonial.List)
	admin.PATCH("/testimonials", h.Testimonial.Moderate)
	admin.DELETE("/testimonials", h.Testimonial.Delete)
}

// AdminAuth resolves the bearer token through guard and stores the principal
// under handler.PrincipalKey. Every authentication failure answers 401;
// a failing admin lookup answers 500.
func AdminAuth(guard *auth.Guard) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.PrincipalKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return guard.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var appErr *apperrors.Error
			if errors.As(err, &appErr) && appErr.Kind == apperrors.KindInternal {
				return appErr
			}
			return apperrors.Unauthorized()
		},
	})
}

// RateLimit allows requestsPerMinute per client IP. Zero or less disables it.
func RateLimit(requestsPerMinute int) echo.MiddlewareFunc {
	if requestsPerMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echo.WrapMiddleware(httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too many requests, please try again later.","code":"TOO_MANY_REQUESTS"}`))
		}),
	))
}
