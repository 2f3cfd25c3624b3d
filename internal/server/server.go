package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/auth"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/config"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/handler"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/household"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/middleware"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/store"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/tags"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/task"
	ws "github.com/AlyssaMarisDev/ohana-backend-sub001/internal/websocket"
)

type Server struct {
	db          *sql.DB
	uow         *store.UnitOfWork
	hub         *ws.Hub
	tokens      *auth.TokenManager
	authH       *handler.AuthHandler
	memberH     *handler.MemberHandler
	householdH  *handler.HouseholdHandler
	tagH        *handler.TagHandler
	taskH       *handler.TaskHandler
	rateLimiter *middleware.RateLimiter
	rateLimit   int
	logger      *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	uow := store.NewUnitOfWork(db)
	hub := ws.NewHub(logger.With("component", "websocket"))
	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
	})

	memberStore := store.NewMemberStore(db)

	householdSvc := household.NewService(uow, logger.With("component", "household"))
	tagSvc := tags.NewService(uow, logger.With("component", "tags"))
	taskSvc := task.NewService(uow, logger.With("component", "task"))

	return &Server{
		db:          db,
		uow:         uow,
		hub:         hub,
		tokens:      tokens,
		authH:       handler.NewAuthHandler(memberStore, tokens, logger.With("component", "auth")),
		memberH:     handler.NewMemberHandler(memberStore, logger.With("component", "member")),
		householdH:  handler.NewHouseholdHandler(householdSvc, hub, logger.With("component", "household_handler")),
		tagH:        handler.NewTagHandler(tagSvc, hub, logger.With("component", "tag_handler")),
		taskH:       handler.NewTaskHandler(taskSvc, hub, logger.With("component", "task_handler")),
		rateLimiter: middleware.NewRateLimiter(),
		rateLimit:   cfg.AuthRateLimit,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/register", s.rateLimited(s.authH.Register))
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimited(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.tokens)
	outerMux.Handle("/api/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Member profile
	mux.HandleFunc("GET /api/members/me", s.memberH.Me)
	mux.HandleFunc("PUT /api/members/me", s.memberH.UpdateMe)

	// Households
	mux.HandleFunc("POST /api/households", s.householdH.Create)
	mux.HandleFunc("GET /api/households", s.householdH.List)
	mux.HandleFunc("GET /api/households/{id}", s.householdH.Get)
	mux.HandleFunc("GET /api/households/{id}/members", s.householdH.Members)
	mux.HandleFunc("POST /api/households/{id}/invitations", s.householdH.Invite)
	mux.HandleFunc("POST /api/households/{id}/invitations/accept", s.householdH.AcceptInvite)

	// Tags and tag permissions
	mux.HandleFunc("POST /api/households/{id}/tags", s.tagH.Create)
	mux.HandleFunc("GET /api/households/{id}/tags", s.tagH.ListViewable)
	mux.HandleFunc("POST /api/households/{id}/members/{memberID}/tag-permissions", s.tagH.Grant)

	// Tasks
	mux.HandleFunc("POST /api/households/{id}/tasks", s.taskH.Create)
	mux.HandleFunc("GET /api/households/{id}/tasks", s.taskH.List)
	mux.HandleFunc("GET /api/tasks/{id}", s.taskH.Get)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	// Real-time household event stream
	mux.HandleFunc("GET /api/ws", ws.HandleWebSocket(s.hub, s.uow, s.logger.With("component", "websocket")))
}

func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	limited := middleware.RateLimit(s.rateLimiter, middleware.RealIP, s.rateLimit, time.Minute)(next)
	return limited.ServeHTTP
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
