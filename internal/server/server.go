package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/wordcap/backend/internal/config"
	"github.com/emilythestrangee/wordcap/backend/internal/handlers"
	"github.com/emilythestrangee/wordcap/backend/internal/logging"
	"github.com/emilythestrangee/wordcap/backend/internal/middleware"
)

const sessionName = "wordcap_session"

// HealthChecker reports the state of the database pool.
type HealthChecker interface {
	Health() map[string]string
}

// Pinger is an optional dependency checked by /health, such as the lock
// backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	cfg     config.Config
	db      HealthChecker
	lock    Pinger
	handler *handlers.Handler
	tokens  middleware.TokenParser
	logger  *slog.Logger
}

// New creates a server. lock may be nil.
func New(cfg config.Config, db HealthChecker, lock Pinger, handler *handlers.Handler, tokens middleware.TokenParser, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		db:      db,
		lock:    lock,
		handler: handler,
		tokens:  tokens,
		logger:  logger,
	}
}

// HTTPServer wraps the routes in an http.Server with production timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(s.logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(s.cfg.CORSOrigin, ","),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: s.cfg.CORSOrigin != "*",
		MaxAge:           12 * time.Hour,
	}))

	store := cookie.NewStore([]byte(s.cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/health", s.health)

	h := s.handler
	api := r.Group("/api", middleware.Identity(s.tokens))
	{
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		api.GET("/posts", h.Post.GetPosts)
		api.GET("/posts/:id", h.Post.GetPost)

		// Anonymous visitors get a session id the first time they write.
		api.GET("/posts/:id/threads", middleware.AnonymousSession(false), h.Comment.GetThreads)
		api.POST("/posts/:id/comments", middleware.AnonymousSession(true), h.Comment.CreateComment)
		api.GET("/posts/:id/comments/count", middleware.AnonymousSession(false), h.Comment.GetCommentCount)
		api.GET("/commented", middleware.AnonymousSession(false), h.Comment.GetCommentedPosts)

		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/me", h.Auth.GetMe)

			protected.POST("/posts", h.Post.CreatePost)
			protected.DELETE("/posts/:id", h.Post.DeletePost)
			protected.GET("/my/posts", h.Post.GetMyPosts)

			protected.POST("/posts/:id/threads/:key/replies", h.Comment.CreateReply)

			protected.GET("/notifications", h.Notification.GetNotifications)
			protected.GET("/notifications/unread", h.Notification.GetUnreadCount)
			protected.POST("/notifications/:id/read", h.Notification.MarkRead)
			protected.POST("/notifications/read-all", h.Notification.MarkAllRead)
		}
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	stats := s.db.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}

	if s.lock != nil {
		if err := s.lock.Ping(c.Request.Context()); err != nil {
			stats["lock"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			stats["lock"] = "up"
		}
	}

	c.JSON(status, stats)
}
