package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	SessionToken string `json:"session_token"`
}

type createListRequest struct {
	Title string `json:"title"`
}

type updateListRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type createTaskRequest struct {
	ListID      string `json:"ListId"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

type updateTaskRequest struct {
	// Clients send count as either a JSON number or a string.
	Count any `json:"count"`
}

func (s *Server) handleSignup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()

	if _, err := s.users.SignUp(ctx, req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		return s.writeError(c, err)
	}

	// A fresh signup is logged in right away.
	return s.login(c, req.Email, req.Password)
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	return s.login(c, req.Email, req.Password)
}

func (s *Server) login(c echo.Context, email, password string) error {
	user, tokens, err := s.users.Login(c.Request().Context(), email, password)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse{
		ID:           user.ID,
		Email:        user.Email,
		AccessToken:  tokens.AccessToken,
		SessionToken: tokens.SessionToken,
	})
}

func (s *Server) handleLogout(c echo.Context) error {
	token := c.Request().Header.Get(common.SessionTokenHeaderName)
	if err := s.users.Logout(c.Request().Context(), token); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleUserData(c echo.Context) error {
	user, err := s.users.CurrentUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return s.writeError(c, err)
	}
	if user == nil {
		// Anonymous visitors get an empty object, not an error.
		return c.JSON(http.StatusOK, echo.Map{})
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleListAll(c echo.Context) error {
	lists, err := s.lists.ListAll(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, lists)
}

func (s *Server) handleGetList(c echo.Context) error {
	list, err := s.lists.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleCreateList(c echo.Context) error {
	var req createListRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	list, err := s.lists.Create(c.Request().Context(), currentUserID(c), req.Title)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleUpdateList(c echo.Context) error {
	var req updateListRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	list, err := s.lists.Update(c.Request().Context(), req.ID, req.Title)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleDeleteList(c echo.Context) error {
	deleted, err := s.lists.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, deleted)
}

func (s *Server) handleJoinList(c echo.Context) error {
	if err := s.lists.Join(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListMembers(c echo.Context) error {
	ids, err := s.lists.Members(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, ids)
}

func (s *Server) handleListTasks(c echo.Context) error {
	tasks, err := s.tasks.List(c.Request().Context(), c.QueryParam("list_id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	task, err := s.tasks.Create(c.Request().Context(), req.ListID, req.Description, req.Count)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	task, err := s.tasks.UpdateCount(c.Request().Context(), c.Param("id"), rawCount(req.Count))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// rawCount renders the loosely typed count field for the service to parse.
func rawCount(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%v", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	deleted, err := s.tasks.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, deleted)
}

func (s *Server) handleCompleteTask(c echo.Context) error {
	if err := s.tasks.Complete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleTaskCompletions(c echo.Context) error {
	ids, err := s.tasks.Completers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, ids)
}

// writeError maps service errors to HTTP statuses.
func (s *Server) writeError(c echo.Context, err error) error {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error", "field": ve.Field, "reason": ve.Reason})
	case errors.Is(err, common.ErrorNotANumber):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count is not a number"})
	case errors.Is(err, common.ErrorInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, common.ErrorEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	case errors.Is(err, common.ErrorListNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "list not found"})
	case errors.Is(err, common.ErrorTaskNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
	default:
		s.logger.Error(c.Request().Context(), "request failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
