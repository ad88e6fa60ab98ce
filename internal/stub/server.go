// Package stub is a stand-in for the CareerForge backend used during local
// development. It answers the three client endpoints with canned fixtures and
// does no analysis of its own.
package stub

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ledongthuc/pdf"
)

type analyzeRequest struct {
	JobDescription string `json:"job_description"`
}

type roadmapRequest struct {
	ProjectIdea   string   `json:"project_idea"`
	TechnicalGaps []string `json:"technical_gaps"`
}

// Server serves canned backend responses.
type Server struct {
	app     *fiber.App
	fixture Fixture
	logger  *slog.Logger
}

// NewServer builds the fiber app and registers the endpoints.
func NewServer(fixture Fixture, logger *slog.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             20 * 1024 * 1024,
		}),
		fixture: fixture,
		logger:  logger,
	}

	s.app.Post("/upload-resume", s.handleUpload)
	s.app.Post("/analyze", s.handleAnalyze)
	s.app.Post("/generate-roadmap", s.handleRoadmap)
	return s
}

// App exposes the fiber app, mostly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("stub backend listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) pause() {
	if s.fixture.Delay > 0 {
		time.Sleep(s.fixture.Delay)
	}
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "field \"file\" is required",
		})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	pages := pageCount(data)
	s.logger.Info("resume received", "filename", fh.Filename, "size", len(data), "pages", pages)
	s.pause()

	return c.JSON(fiber.Map{
		"message":  "Resume ingested",
		"filename": fh.Filename,
		"pages":    pages,
	})
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": err.Error()})
	}
	if req.JobDescription == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "job_description is required",
		})
	}

	s.logger.Info("analyze", "job_description_len", len(req.JobDescription))
	s.pause()
	return c.JSON(s.fixture.Analysis)
}

func (s *Server) handleRoadmap(c *fiber.Ctx) error {
	var req roadmapRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": err.Error()})
	}

	s.logger.Info("generate roadmap", "project_idea", req.ProjectIdea, "gaps", len(req.TechnicalGaps))
	s.pause()
	return c.JSON(fiber.Map{"phases": s.fixture.Phases})
}

// pageCount reports the page count of a PDF, or 0 for anything unreadable.
func pageCount(data []byte) (pages int) {
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return r.NumPage()
}
