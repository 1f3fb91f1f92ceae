// Package rest exposes the HTTP/JSON surface of the service: route wiring,
// request decoding, multipart handling, and error translation. No error
// from the service layer crosses this boundary unhandled.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"daylist/internal/logging"
	"daylist/internal/server/models"
	"daylist/internal/server/services"
	"daylist/internal/server/storage"
)

// TodoService is the orchestrator surface the handlers call.
type TodoService interface {
	Create(ctx context.Context, p services.CreateParams) (*models.Todo, error)
	List(ctx context.Context) ([]*models.Todo, error)
	Update(ctx context.Context, id int64, p services.UpdateParams) error
	AttachFiles(ctx context.Context, todoID int64, files []storage.FilePayload, shortcut string) error
	Delete(ctx context.Context, id int64) error
	DeleteAttachment(ctx context.Context, id int64) error
	DeleteDayGroup(ctx context.Context, dayTitle string) error
}

type Server struct {
	address string
	logger  logging.Logger
	todos   TodoService
}

func NewServer(address string, logger logging.Logger, todos TodoService) *Server {
	return &Server{
		address: address,
		logger:  logger.With("module", "rest_server"),
		todos:   todos,
	}
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
	engine.Use(cors.New(corsConfig))

	engine.GET("/", s.handleHealth)

	api := engine.Group("/api")
	api.POST("/todos", s.handleCreateTodo)
	api.GET("/todos", s.handleListTodos)
	api.PUT("/todos/:id", s.handleUpdateTodo)
	api.DELETE("/todos/:id", s.handleDeleteTodo)
	api.DELETE("/todos/day/:dayTitle", s.handleDeleteDayGroup)
	api.POST("/todos/:id/upload", s.handleUploadAttachments)
	api.DELETE("/attachments/:id", s.handleDeleteAttachment)

	return engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.router()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
