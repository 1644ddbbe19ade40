// Package httpapi is the thin HTTP routing layer over the service façade.
// Handlers bind request parameters, call into the services, and serialize
// the result to JSON; no business logic lives here.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/logging"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

// UserFacade is the slice of UserService the routing layer consumes.
// Authenticate is the sole authority on request identity: it honors an
// access token only while its backing session is stored and unexpired.
type UserFacade interface {
	SignUp(ctx context.Context, firstName, lastName, email, password string) (*models.PublicUser, error)
	Login(ctx context.Context, email, password string) (*models.PublicUser, *services.TokenPair, error)
	Authenticate(ctx context.Context, accessToken string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*models.PublicUser, error)
	Logout(ctx context.Context, sessionToken string) error
}

// ListFacade is the slice of ListService the routing layer consumes.
type ListFacade interface {
	ListAll(ctx context.Context) ([]models.List, error)
	Get(ctx context.Context, id string) (*models.List, error)
	Create(ctx context.Context, ownerID, title string) (*models.List, error)
	Update(ctx context.Context, id, title string) (*models.List, error)
	Delete(ctx context.Context, id string) (int64, error)
	Join(ctx context.Context, userID, listID string) error
	Members(ctx context.Context, listID string) ([]string, error)
}

// TaskFacade is the slice of TaskService the routing layer consumes.
type TaskFacade interface {
	List(ctx context.Context, listID string) ([]models.Task, error)
	Create(ctx context.Context, listID, description string, count int) (*models.Task, error)
	UpdateCount(ctx context.Context, id, raw string) (*models.Task, error)
	Delete(ctx context.Context, id string) (int64, error)
	Complete(ctx context.Context, userID, taskID string) error
	Completers(ctx context.Context, taskID string) ([]string, error)
}

type Server struct {
	address string
	logger  logging.Logger
	users   UserFacade
	lists   ListFacade
	tasks   TaskFacade
	echo    *echo.Echo
}

func NewServer(address string, l logging.Logger, us UserFacade, ls ListFacade, ts TaskFacade) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		lists:   ls,
		tasks:   ts,
	}

	e := echo.New()
	e.HideBanner = true
	s.registerRoutes(e)
	s.echo = e

	return s
}

func (s *Server) registerRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.POST("/signup", s.handleSignup)
	api.POST("/login", s.handleLogin)
	api.POST("/logout", s.handleLogout)
	api.GET("/user_data", s.handleUserData, s.withUser)

	api.GET("/lists", s.handleListAll)
	api.GET("/lists/:id", s.handleGetList)
	api.POST("/lists", s.handleCreateList, s.requireUser)
	api.PUT("/lists", s.handleUpdateList)
	api.DELETE("/lists/:id", s.handleDeleteList)
	api.POST("/lists/:id/join", s.handleJoinList, s.requireUser)
	api.GET("/lists/:id/members", s.handleListMembers)

	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.PUT("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)
	api.POST("/tasks/:id/complete", s.handleCompleteTask, s.requireUser)
	api.GET("/tasks/:id/completions", s.handleTaskCompletions)
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
