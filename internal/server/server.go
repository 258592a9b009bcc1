package server

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

//go:embed static/chat.html
var staticFS embed.FS

// maxMessageLen bounds the form message; longer questions are rejected
// before the pipeline runs.
const maxMessageLen = 1000

// Answerer is the server-facing subset of the RAG service.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Server is the HTTP layer: a chat page and a single form endpoint that
// returns the raw completion text.
type Server struct {
	service Answerer
	logger  *slog.Logger
}

func New(service Answerer) *Server {
	return &Server{service: service, logger: slog.Default()}
}

// Routes registers the handlers on an echo instance.
func (s *Server) Routes(e *echo.Echo) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.GET("/", s.Index)
	e.GET("/health", s.Health)
	// The chat page submits to /get; both methods are accepted.
	e.GET("/get", s.Chat)
	e.POST("/get", s.Chat)
	return e
}

// Index serves the chat page.
func (s *Server) Index(c echo.Context) error {
	page, err := staticFS.ReadFile("static/chat.html")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load chat interface")
	}
	return c.HTMLBlob(http.StatusOK, page)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Chat answers one user question. Validation failures are client errors
// and never reach the pipeline; pipeline failures surface as a generic
// message with the cause logged.
func (s *Server) Chat(c echo.Context) error {
	msg := strings.TrimSpace(c.FormValue("msg"))
	if msg == "" {
		return c.String(http.StatusBadRequest, "Please enter a valid question.")
	}
	if utf8.RuneCountInString(msg) > maxMessageLen {
		return c.String(http.StatusBadRequest, "Please keep your question under 1000 characters.")
	}

	s.logger.Info("processing question", "length", len(msg))
	answer, err := s.service.Answer(c.Request().Context(), msg)
	if err != nil {
		s.logger.Error("request pipeline failed", "error", err)
		return c.String(http.StatusInternalServerError,
			"I'm sorry, I encountered an error processing your request. Please try again.")
	}
	return c.String(http.StatusOK, answer)
}
