// Package server assembles the HTTP surface: Connect services, exports,
// health and metrics endpoints, and the optional static frontend.
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
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/roomieboard/internal/activity"
	"github.com/mmynk/roomieboard/internal/auth"
	"github.com/mmynk/roomieboard/internal/export"
	"github.com/mmynk/roomieboard/internal/middleware"
	"github.com/mmynk/roomieboard/internal/money"
	"github.com/mmynk/roomieboard/internal/service"
	"github.com/mmynk/roomieboard/internal/storage"
	"github.com/mmynk/roomieboard/pkg/roomiev1/roomiev1connect"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	JWT         *auth.JWTManager
	Money       *money.Formatter
	Recorder    *activity.Recorder
	CORSOrigins []string
	// StaticPath is the directory of the built frontend. Empty disables it.
	StaticPath string
}

// Server routes requests to the services.
type Server struct {
	router  *mux.Router
	handler http.Handler
}

// New wires the services over store.
func New(store storage.Store, opts Options) *Server {
	s := &Server{router: mux.NewRouter()}

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(opts.JWT),
		middleware.LoggingInterceptor(),
	)
	s.mountConnect(roomiev1connect.NewBillServiceHandler(service.NewBillService(store, opts.Recorder, opts.Money), interceptors))
	s.mountConnect(roomiev1connect.NewRosterServiceHandler(service.NewRosterService(store, opts.Recorder), interceptors))
	s.mountConnect(roomiev1connect.NewActivityServiceHandler(service.NewActivityService(store), interceptors))

	s.router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	exports := export.NewHandler(store, opts.Money)
	protected := s.router.PathPrefix("/export").Subrouter()
	protected.Use(middleware.RequireAuthHTTP(opts.JWT))
	protected.HandleFunc("/bills.xlsx", exports.BillsXLSX).Methods(http.MethodGet)
	protected.HandleFunc("/statement.pdf", exports.StatementPDF).Methods(http.MethodGet)

	if opts.StaticPath != "" {
		s.router.PathPrefix("/").Handler(staticHandler(opts.StaticPath)).Methods(http.MethodGet, http.MethodHead)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Authorization",
			"Content-Type",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
		},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms", "Content-Disposition"},
	})

	s.handler = middleware.RequestLogger(corsHandler.Handler(s.router))
	return s
}

func (s *Server) mountConnect(path string, handler http.Handler) {
	s.router.PathPrefix(path).Handler(handler)
}

// Handler returns the root handler, with HTTP/2 cleartext support for Connect clients.
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(s.handler, &http2.Server{})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// staticHandler serves the frontend, falling back to index.html for
// unknown paths so client-side routes load.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean("/"+strings.TrimPrefix(urlPath, "/")))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	})
}
