package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"creditscores/internal/api"
	"creditscores/internal/config"
	"creditscores/internal/logging"
)

type apiServer struct {
	bind   string
	logger *slog.Logger
	svc    *api.CreditScoreService
	engine *gin.Engine

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, svc *api.CreditScoreService, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil {
		return nil, errors.New("api server requires config")
	}
	bind := strings.TrimSpace(cfg.Server.Bind)
	if bind == "" {
		return nil, errors.New("api server requires a bind address")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	srv := &apiServer{
		bind:   bind,
		logger: logger,
		svc:    svc,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), accessLog(logger))
	if mw := corsMiddleware(cfg.Server.CORSOrigins); mw != nil {
		engine.Use(mw)
	}

	engine.GET("/healthz", srv.handleHealth)
	scores := engine.Group("/creditscores")
	scores.GET("", srv.handleList)
	scores.POST("", srv.handleCreate)
	scores.GET("/:id", srv.handleGet)
	scores.PUT("/:id", srv.handleUpdate)
	scores.DELETE("/:id", srv.handleDelete)
	srv.engine = engine

	srv.server = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorWithContext(s.logger, "api server error", "api_serve",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that "+s.bind+" is free"),
			)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) address() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) requestLogger(c *gin.Context) *slog.Logger {
	return logging.WithContext(c.Request.Context(), s.logger)
}

func (s *apiServer) handleHealth(c *gin.Context) {
	count, err := s.svc.Count(c.Request.Context())
	if err != nil {
		logging.WarnWithContext(s.requestLogger(c), "health check failed", "health_check", logging.Error(err))
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok", Records: count})
}

func (s *apiServer) handleList(c *gin.Context) {
	records, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.storeFailure(c, "list credit scores failed", "record_list", err)
		return
	}
	c.JSON(http.StatusOK, api.CreditScoreListResponse{CreditScores: records})
}

func (s *apiServer) handleGet(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}
	record, err := s.svc.Get(c.Request.Context(), id)
	if errors.Is(err, api.ErrNotFound) {
		c.JSON(http.StatusNotFound, api.MessageResponse{Message: api.MessageNotFound})
		return
	}
	if err != nil {
		s.storeFailure(c, "get credit score failed", "record_get", err, logging.Int64(logging.FieldRecordID, id))
		return
	}
	c.JSON(http.StatusOK, api.CreditScoreResponse{CreditScore: *record})
}

func (s *apiServer) handleCreate(c *gin.Context) {
	var req api.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	record, err := s.svc.Create(c.Request.Context(), req.Score.Int64(), req.UserID.Int64())
	if err != nil {
		s.storeFailure(c, "create credit score failed", "record_create", err)
		return
	}
	s.requestLogger(c).Info("credit score created",
		logging.Int64(logging.FieldRecordID, record.ID),
		logging.Int64("user_id", record.UserID),
	)
	c.JSON(http.StatusCreated, api.CreateResponse{
		Message:     api.MessageCreated,
		ID:          record.ID,
		CreditScore: *record,
	})
}

func (s *apiServer) handleUpdate(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}
	var req api.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	changes, err := s.svc.UpdateScore(c.Request.Context(), id, req.Score.Int64())
	if err != nil {
		s.storeFailure(c, "update credit score failed", "record_update", err, logging.Int64(logging.FieldRecordID, id))
		return
	}
	c.JSON(http.StatusOK, api.ChangeResponse{Message: api.MessageUpdated, Changes: changes})
}

func (s *apiServer) handleDelete(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}
	changes, err := s.svc.Delete(c.Request.Context(), id)
	if err != nil {
		s.storeFailure(c, "delete credit score failed", "record_delete", err, logging.Int64(logging.FieldRecordID, id))
		return
	}
	c.JSON(http.StatusOK, api.ChangeResponse{Message: api.MessageDeleted, Changes: changes})
}

func (s *apiServer) parseID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.badRequest(c, "invalid credit score id")
		return 0, false
	}
	c.Request = c.Request.WithContext(logging.WithRecordID(c.Request.Context(), id))
	return id, true
}

func (s *apiServer) badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: message})
}

func (s *apiServer) storeFailure(c *gin.Context, msg, eventType string, err error, attrs ...logging.Attr) {
	attrs = append(attrs,
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check the database file and disk space"),
	)
	logging.ErrorWithContext(s.requestLogger(c), msg, eventType, attrs...)
	c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
}
