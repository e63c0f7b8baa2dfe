package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/doanvu/school-eval-api/internal/apperr"
	"github.com/doanvu/school-eval-api/internal/auth"
	"github.com/doanvu/school-eval-api/internal/ctxutil"
	"github.com/doanvu/school-eval-api/internal/evaluation"
	"github.com/doanvu/school-eval-api/internal/metrics"
	"github.com/doanvu/school-eval-api/internal/models"
	"github.com/doanvu/school-eval-api/internal/observability"
	"github.com/doanvu/school-eval-api/internal/quickaction"
)

const identityKey = "identity"

type Server struct {
	Echo     *echo.Echo
	svc      *evaluation.Service
	registry *quickaction.Registry
	verifier *auth.Verifier
	db       *sql.DB
	log      *zap.SugaredLogger
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func New(svc *evaluation.Service, registry *quickaction.Registry, verifier *auth.Verifier, database *sql.DB, log *zap.SugaredLogger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}

	s := &Server{Echo: e, svc: svc, registry: registry, verifier: verifier, db: database, log: log}
	e.HTTPErrorHandler = s.errorHandler
	e.Use(s.observe)

	e.GET("/healthz", s.healthz)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("", s.authenticate)
	api.GET("/evaluations", s.listEvaluations)
	api.GET("/evaluations/export", s.exportEvaluations)
	api.GET("/evaluations/student/:id", s.listByStudent)
	api.GET("/evaluations/student/:id/class/:classID", s.listByStudentClass)
	api.GET("/evaluations/student/:id/summary", s.studentSummary)
	api.GET("/evaluations/student/:id/class/:classID/summary", s.studentClassSummary)
	api.POST("/evaluations", s.createEvaluation)
	api.POST("/evaluations/quick", s.quickCreate)
	api.DELETE("/evaluations/:id", s.deleteEvaluation)

	api.GET("/quick-actions", s.listQuickActions)
	api.POST("/quick-actions", s.addQuickAction)
	api.PUT("/quick-actions/:id", s.editQuickAction)
	api.DELETE("/quick-actions/:id", s.removeQuickAction)
	api.POST("/quick-actions/reset", s.resetQuickActions)

	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.Echo.Shutdown(shCtx)
	}()
	err := s.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "db not ok: "+err.Error())
	}
	metrics.ObserveDBPing(time.Since(t0))
	return c.String(http.StatusOK, "ok")
}

func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		t0 := time.Now()
		err := next(c)
		metrics.ObserveRequest(c.Path(), c.Request().Method, time.Since(t0))
		return err
	}
}

func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}
		ident, err := s.verifier.Identify(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		c.Set(identityKey, ident)
		ctx := ctxutil.WithUserID(c.Request().Context(), ident.UserID)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func identity(c echo.Context) models.Identity {
	ident, _ := c.Get(identityKey).(models.Identity)
	return ident
}

// errorHandler maps the domain taxonomy onto HTTP statuses in one place.
func (s *Server) errorHandler(err error, c echo.Context) {
	var (
		code    int
		message any
	)

	var vErr *apperr.ValidationError
	var pErr *apperr.PreconditionError
	var nErr *apperr.NotFoundError
	var aErr *apperr.AccessError
	var bindErrs validator.ValidationErrors
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &vErr):
		code = http.StatusBadRequest
		message = echo.Map{"error": vErr.Error(), "field": vErr.Field}
	case errors.As(err, &pErr):
		code = http.StatusUnprocessableEntity
		message = echo.Map{"error": pErr.Error()}
	case errors.As(err, &nErr):
		code = http.StatusNotFound
		message = echo.Map{"error": nErr.Error()}
	case errors.As(err, &aErr):
		code = http.StatusForbidden
		message = echo.Map{"error": aErr.Error()}
	case errors.As(err, &bindErrs):
		fields := make(map[string]string, len(bindErrs))
		for _, fe := range bindErrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		code = http.StatusBadRequest
		message = echo.Map{"error": "validation failed", "fields": fields}
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = echo.Map{"error": httpErr.Message}
	default:
		code = http.StatusInternalServerError
		message = echo.Map{"error": http.StatusText(code)}
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		uid, _ := ctxutil.UserID(c.Request().Context())
		s.log.Errorw("handler error", "path", c.Path(), "user", uid, "err", err)
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
		} else {
			_ = c.JSON(code, message)
		}
	}
}
