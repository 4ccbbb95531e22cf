// Package webui
package webui

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/asharan/futbot/internal/config"
	"github.com/asharan/futbot/internal/execution"
	"github.com/asharan/futbot/internal/stream"
	"github.com/asharan/futbot/internal/venue"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options selects the dashboard variant. The basic dashboard only
// places orders; the pro dashboard additionally gets the open-orders
// panel, chart, trade history and live mark price.
type Options struct {
	Pro      bool
	Registry *execution.Registry
	Chart    venue.API // klines access for the chart tab
	Ticker   *stream.Ticker
}

// Server serves one dashboard over HTTP. It owns no venue credentials;
// the execution client is constructed by the caller and passed in.
type Server struct {
	cfg    config.Config
	client *execution.Client
	opts   Options
	router *mux.Router
	tmpl   *template.Template
}

func New(cfg config.Config, client *execution.Client, opts Options) *Server {
	s := &Server{
		cfg:    cfg,
		client: client,
		opts:   opts,
		router: mux.NewRouter(),
		tmpl:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.handleIndex).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/orders", s.handlePlaceOrder).Methods("POST")
	api.HandleFunc("/orders/{id:[0-9]+}", s.handleOrderStatus).Methods("GET")

	if s.opts.Pro {
		api.HandleFunc("/orders/open", s.handleOpenOrders).Methods("GET")
		api.HandleFunc("/orders/{id:[0-9]+}/cancel", s.handleCancelOrder).Methods("POST")
		api.HandleFunc("/trades", s.handleTradeHistory).Methods("GET")
		api.HandleFunc("/klines", s.handleKlines).Methods("GET")
		api.HandleFunc("/ticker", s.handleTicker).Methods("GET")
	}
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }
