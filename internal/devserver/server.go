package devserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/pulsefit/core/internal/auth"
	"github.com/pulsefit/core/internal/config"
	"github.com/pulsefit/core/internal/instrumentation"
	"github.com/pulsefit/core/internal/middleware"
	"github.com/pulsefit/core/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const authRequestsPerMinute = 60

// Server is the local stand-in for the hosted backend: the auth endpoints
// and the per-table REST interface, enough for the remote repositories to
// run against during development.
type Server struct {
	config      *config.Config
	instr       *instrumentation.Instrumentation
	redisClient *redis.Client
	tokenStore  auth.TokenStore

	authHandler *authHandler
	restHandler *restHandler

	httpServer *http.Server
}

func NewServer(cfg *config.Config) *Server {
	var redisClient *redis.Client
	var tokenStore auth.TokenStore
	if cfg.RedisEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr: net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		})
		tokenStore = auth.NewRedisTokenStore(auth.DefaultTTL, redisClient)
		log.Debugf("devserver: using redis token store at %s:%d", cfg.RedisHost, cfg.RedisPort)
	} else {
		tokenStore = auth.NewMemoryTokenStore(auth.DefaultTTL)
		log.Debug("devserver: using in-memory token store")
	}

	return &Server{
		config:      cfg,
		instr:       instrumentation.NewInstrumentation("pulsefit", "devserver"),
		redisClient: redisClient,
		tokenStore:  tokenStore,
		authHandler: newAuthHandler(tokenStore, auth.DefaultTTL),
		restHandler: newRestHandler(newTableStore()),
	}
}

// NewTestServer wires a server around an in-memory token store with a
// throwaway metrics registry, for use in tests.
func NewTestServer() *Server {
	tokenStore := auth.NewMemoryTokenStore(auth.DefaultTTL)
	return &Server{
		config:      &config.Config{},
		instr:       instrumentation.NewTestInstrumentation(),
		tokenStore:  tokenStore,
		authHandler: newAuthHandler(tokenStore, auth.DefaultTTL),
		restHandler: newRestHandler(newTableStore()),
	}
}

// TokenStore exposes the session store, mainly so tests can revoke
// tokens and drive the refresh path.
func (s *Server) TokenStore() auth.TokenStore {
	return s.tokenStore
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	authRouter := r.PathPrefix("/auth/v1").Subrouter()
	authRouter.HandleFunc("/signup", s.authHandler.handleSignup).Methods(http.MethodPost, http.MethodOptions)
	authRouter.HandleFunc("/token", s.authHandler.handleToken).Methods(http.MethodPost, http.MethodOptions)
	authRouter.HandleFunc("/logout", s.authHandler.handleLogout).Methods(http.MethodPost, http.MethodOptions)

	restRouter := r.PathPrefix("/rest/v1").Subrouter()
	restRouter.HandleFunc("/{table}", s.restHandler.handleSelect).Methods(http.MethodGet)
	restRouter.HandleFunc("/{table}", s.restHandler.handleInsert).Methods(http.MethodPost)
	restRouter.HandleFunc("/{table}", s.restHandler.handleUpdate).Methods(http.MethodPatch)
	restRouter.HandleFunc("/{table}", s.restHandler.handleDelete).Methods(http.MethodDelete)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteResponse(w, pkg.ContentType.Text, "ok", http.StatusOK)
	}).Methods(http.MethodGet)

	if s.redisClient != nil {
		limiter := redis_rate.NewLimiter(s.redisClient)
		authRouter.Use(middleware.RateLimit(limiter, "devserver-auth", authRequestsPerMinute))
	}

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.tokenStore)
	r.Use(
		middleware.PanicRecovery(s.instr),
		middleware.LogRequest(),
		middleware.Cors(),
		middleware.DrainAndCloseRequest(),
		middleware.RequestMetrics(s.instr),
		authMiddleware.AuthCheck(),
	)

	return r
}

func (s *Server) Serve(ctx context.Context) {
	addr := net.JoinHostPort(s.config.DevServerHost, strconv.Itoa(s.config.DevServerPort))
	s.httpServer = &http.Server{
		Handler:      s.Router(),
		Addr:         addr,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	s.instr.GaugeLifeSignal.Set(1)

	go func() {
		log.Infof(" > dev server listening on: [%s]", addr)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("dev server, listen and serve: %s", err)
		}
	}()
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.instr.GaugeLifeSignal.Set(0)

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client: %s", err)
		}
	}

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf("failed to gracefully shut down server: %s", err)
		}
	}

	log.Debug("graceful shutdown complete")
}
