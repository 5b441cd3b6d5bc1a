// Package server assembles the HTTP surface: Connect services, metrics,
// health checks and the static presentation layer.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/service"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

// apiPrefix is the path prefix shared by every Connect procedure.
const apiPrefix = "/fintrack.v1."

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Store      storage.Store
	Poster     *ledger.Poster
	JWT        *auth.JWTManager
	Policy     storage.DeletePolicy
	StaticPath string
	Logger     *slog.Logger
}

// NewHandler returns the root handler. Connect procedures are served under
// /fintrack.v1.<Service>/, everything else falls through to the static files.
func NewHandler(d Deps) (http.Handler, error) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	observed := []connect.Interceptor{middleware.MetricsInterceptor(), middleware.LoggingInterceptor()}
	required := connect.WithInterceptors(append(observed, middleware.RequireAuth(d.JWT))...)
	optional := connect.WithInterceptors(append(observed, middleware.OptionalAuth(d.JWT))...)

	authenticator := auth.NewPasswordAuthenticator(d.Store)
	path, h := apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, d.Store, d.Store, d.JWT, d.Logger), optional)
	mount(r, path, h)
	path, h = apiconnect.NewAccountServiceHandler(service.NewAccountService(d.Store, d.Policy), required)
	mount(r, path, h)
	path, h = apiconnect.NewTransactionServiceHandler(service.NewTransactionService(d.Poster, d.Store), required)
	mount(r, path, h)
	path, h = apiconnect.NewBudgetServiceHandler(service.NewBudgetService(d.Store), required)
	mount(r, path, h)
	path, h = apiconnect.NewGoalServiceHandler(service.NewGoalService(d.Store), required)
	mount(r, path, h)
	path, h = apiconnect.NewCategoryServiceHandler(service.NewCategoryService(d.Store), required)
	mount(r, path, h)
	path, h = apiconnect.NewProfileServiceHandler(service.NewProfileService(d.Store), required)
	mount(r, path, h)
	path, h = apiconnect.NewAdminServiceHandler(service.NewAdminService(d.Poster), required)
	mount(r, path, h)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	static, err := staticHandler(d.StaticPath)
	if err != nil {
		return nil, err
	}
	r.NotFound(static)

	return r, nil
}

func mount(r chi.Router, path string, h http.Handler) {
	r.Handle(path+"*", h)
}

// staticHandler serves the presentation layer. Unknown paths get index.html.
func staticHandler(staticPath string) (http.HandlerFunc, error) {
	staticDir, err := filepath.Abs(staticPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}, nil
}

// Run serves h on addr with HTTP/2 cleartext support until ctx is done, then
// shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(h, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request completed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
