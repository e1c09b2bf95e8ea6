package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/projboard/internal/common"
	"github.com/dmitrijs2005/projboard/internal/server/models"
	"github.com/dmitrijs2005/projboard/internal/server/repositories/projects"
	"github.com/labstack/echo/v4"
)

// loginFailedMessage is shown for every credential failure. It deliberately
// does not say whether the username or the password was wrong.
const loginFailedMessage = "Invalid username or password."

// authPage feeds the login and register templates.
type authPage struct {
	Error string
}

// projectView pairs a project with its attachments for the dashboard.
type projectView struct {
	Project     *models.Project
	Attachments []*models.Attachment
}

type dashboardPage struct {
	Projects []projectView
	Error    string
}

type editProjectPage struct {
	Project *models.Project
}

// httpError maps service errors onto the response contract: 403 for
// ownership violations, 404 for unknown ids, 400 for rejected input,
// 500 otherwise. Service errors never crash the process.
func (s *Server) httpError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorForbidden):
		return c.String(http.StatusForbidden, "Forbidden")
	case errors.Is(err, common.ErrorNotFound):
		return c.String(http.StatusNotFound, "Not Found")
	case errors.Is(err, common.ErrorRejectedFileType):
		return c.String(http.StatusBadRequest, "File type not allowed.")
	case errors.Is(err, common.ErrorEmptyFileName):
		return c.String(http.StatusBadRequest, "Invalid file name.")
	case errors.Is(err, common.ErrorValidation):
		return c.String(http.StatusBadRequest, "Invalid input.")
	default:
		s.logger.Error(c.Request().Context(), "request failed", "error", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}
}

func (s *Server) handleHome(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", nil)
}

func (s *Server) handleLoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", authPage{})
}

func (s *Server) handleLogin(c echo.Context) error {
	userName := c.FormValue("username")
	password := c.FormValue("password")

	token, err := s.users.Login(c.Request().Context(), userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return c.Render(http.StatusUnauthorized, "login.html", authPage{Error: loginFailedMessage})
		}
		return s.httpError(c, err)
	}

	s.setSessionCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) handleRegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", authPage{})
}

// handleRegister creates the account and sends the user to the login page
// without starting a session.
func (s *Server) handleRegister(c echo.Context) error {
	userName := c.FormValue("username")
	password := c.FormValue("password")

	_, err := s.users.Register(c.Request().Context(), userName, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return c.Render(http.StatusConflict, "register.html", authPage{Error: "Username already taken."})
		case errors.Is(err, common.ErrorValidation):
			return c.Render(http.StatusBadRequest, "register.html", authPage{Error: "Username and password are required."})
		}
		return s.httpError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) handleDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	userID := identity(c)

	list, err := s.projects.ListForOwner(ctx, userID)
	if err != nil {
		return s.httpError(c, err)
	}

	page := dashboardPage{}
	for _, p := range list {
		att, err := s.attachments.ListForProject(ctx, p.ID, userID)
		if err != nil {
			return s.httpError(c, err)
		}
		page.Projects = append(page.Projects, projectView{Project: p, Attachments: att})
	}

	return c.Render(http.StatusOK, "dashboard.html", page)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	userID := identity(c)

	_, err := s.projects.Create(c.Request().Context(), userID,
		c.FormValue("title"), c.FormValue("deadline"), c.FormValue("status"), c.FormValue("memo"))
	if err != nil {
		return s.httpError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) handleEditProjectPage(c echo.Context) error {
	project, err := s.projects.Get(c.Request().Context(), c.Param("id"), identity(c))
	if err != nil {
		return s.httpError(c, err)
	}

	return c.Render(http.StatusOK, "edit_project.html", editProjectPage{Project: project})
}

func (s *Server) handleEditProject(c echo.Context) error {
	upd := &projects.ProjectUpdate{
		Title:    c.FormValue("title"),
		Deadline: c.FormValue("deadline"),
		Status:   c.FormValue("status"),
		Memo:     c.FormValue("memo"),
	}

	if _, err := s.projects.Update(c.Request().Context(), c.Param("id"), identity(c), upd); err != nil {
		return s.httpError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	if err := s.projects.Delete(c.Request().Context(), c.Param("id"), identity(c)); err != nil {
		return s.httpError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// handleUpload stores the multipart "file" field on an owned project.
// Rejected extensions come back as an explicit 400, not a silent redirect.
func (s *Server) handleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.String(http.StatusBadRequest, "Missing file.")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return s.httpError(c, err)
	}
	defer src.Close()

	_, err = s.attachments.Upload(c.Request().Context(), c.Param("id"), identity(c), fileHeader.Filename, src)
	if err != nil {
		return s.httpError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) handleLogout(c echo.Context) error {
	s.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
