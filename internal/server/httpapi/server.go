// Package httpapi provides the HTML boundary of Projboard: routing,
// session resolution, form handling, and error-to-status mapping.
package httpapi

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/projboard/internal/logging"
	"github.com/dmitrijs2005/projboard/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "projboard_session"

// Server serves the web UI and owns the session cookie lifecycle.
type Server struct {
	echo            *echo.Echo
	logger          logging.Logger
	users           *services.UserService
	projects        *services.ProjectService
	attachments     *services.AttachmentService
	address         string
	jwtSecret       []byte
	sessionValidity time.Duration
}

// renderer adapts html/template to echo's Renderer interface.
type renderer struct {
	templates *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func NewServer(address string, l logging.Logger, us *services.UserService, ps *services.ProjectService, as *services.AttachmentService, secretKey string, sessionValidity time.Duration) (*Server, error) {

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			l.Info(c.Request().Context(), "http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return err
		}
	})

	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	e.Renderer = &renderer{templates: tpl}

	s := &Server{
		echo:            e,
		logger:          l.With("module", "httpapi"),
		users:           us,
		projects:        ps,
		attachments:     as,
		address:         address,
		jwtSecret:       []byte(secretKey),
		sessionValidity: sessionValidity,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the route table. Protected routes sit behind the
// session middleware, which redirects anonymous callers to /login before
// any service is reached.
func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleHome)
	s.echo.GET("/login", s.handleLoginPage)
	s.echo.POST("/login", s.handleLogin)
	s.echo.GET("/register", s.handleRegisterPage)
	s.echo.POST("/register", s.handleRegister)

	protected := s.echo.Group("", s.sessionMiddleware)
	protected.GET("/dashboard", s.handleDashboard)
	protected.POST("/dashboard", s.handleCreateProject)
	protected.GET("/edit_project/:id", s.handleEditProjectPage)
	protected.POST("/edit_project/:id", s.handleEditProject)
	protected.POST("/delete_project/:id", s.handleDeleteProject)
	protected.POST("/upload/:id", s.handleUpload)
	protected.GET("/logout", s.handleLogout)
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
