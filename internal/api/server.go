package api

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huyquangvevo/vcs-chamcong-report/attendance"
	"github.com/huyquangvevo/vcs-chamcong-report/internal/report"
)

// Reporter generates reports from stored attendance data.
type Reporter interface {
	Generate(ctx context.Context, req report.Request) (*report.Result, error)
}

type Server struct {
	Reports        Reporter
	Log            *zap.Logger
	RequestTimeout time.Duration
	Workers        int
	MaxRangeDays   int

	validate *validator.Validate
}

func NewServer(reports Reporter, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Reports:        reports,
		Log:            log,
		RequestTimeout: 30 * time.Second,
		Workers:        4,
		MaxRangeDays:   report.DefaultMaxRangeDays,
		validate:       newValidator(),
	}
}

// App builds the fiber application with every route mounted.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(s.requestContext)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1/attendance")
	v1.Get("/report", s.getReport)
	v1.Post("/classify", s.classify)
	return app
}

// requestContext tags the request with an id, bounds it with a timeout and
// logs the outcome.
func (s *Server) requestContext(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("X-Request-ID", id)
	c.Locals("reqid", id)

	ctx, cancel := context.WithTimeout(context.Background(), s.RequestTimeout)
	defer cancel()
	c.SetUserContext(ctx)

	start := time.Now()
	err := c.Next()
	s.Log.Info("request",
		zap.String("id", id),
		zap.String("method", c.Method()),
		zap.String("path", c.OriginalURL()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("dur", time.Since(start)),
	)
	return err
}

func (s *Server) getReport(c *fiber.Ctx) error {
	var q ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query: "+err.Error())
	}
	if err := s.validate.Struct(q); err != nil {
		return validationError(c, err)
	}
	filter, err := q.Filter()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	from, _ := attendance.ParseDate(q.From)
	to, _ := attendance.ParseDate(q.To)
	res, err := s.Reports.Generate(c.UserContext(), report.Request{From: from, To: to, DepartmentID: q.DepartmentID})
	switch {
	case errors.Is(err, report.ErrInvalidRange), errors.Is(err, report.ErrRangeTooLarge):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.Log.Warn("report timed out", zap.Error(err))
		return fail(c, fiber.StatusGatewayTimeout, "report timed out")
	case err != nil:
		s.Log.Error("generate report", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "failed to generate report")
	}

	rows := filter.Apply(res.Rows)
	page, meta := attendance.Paginate(rows, q.Page, q.PerPage)
	return c.JSON(fiber.Map{
		"code":       fiber.StatusOK,
		"status":     "success",
		"message":    "attendance report",
		"data":       page,
		"pagination": meta,
		"summary":    attendance.Summarize(rows),
	})
}

func (s *Server) classify(c *fiber.Ctx) error {
	var req ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body: "+err.Error())
	}
	if err := s.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	in, err := req.Input()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err := report.CheckSpan(in.From, in.To, s.MaxRangeDays); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	rows, err := attendance.BuildParallel(c.UserContext(), in, s.Workers)
	if err != nil {
		return fail(c, fiber.StatusGatewayTimeout, err.Error())
	}
	return success(c, "attendance classified", rows)
}
