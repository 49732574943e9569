package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/catalogpage/internal/config"
	"storefront/catalogpage/internal/domain"
	"storefront/catalogpage/internal/requestctx"
	"storefront/catalogpage/internal/resolver"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// ContentSource finds the content item published at a site path
type ContentSource interface {
	ItemByPath(ctx context.Context, site, path string) (*domain.ContentItem, error)
}

// ResolutionStep resolves the catalog item of the current request
type ResolutionStep interface {
	Process(ctx context.Context, req resolver.Request) (resolver.Outcome, error)
}

// Redirector ends a request by sending the client elsewhere
type Redirector interface {
	RedirectTo(w http.ResponseWriter, r *http.Request, location string)
}

type foundRedirector struct{}

func (foundRedirector) RedirectTo(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusFound)
}

type Server struct {
	cfg        config.ServerConfig
	contents   ContentSource
	step       ResolutionStep
	redirector Redirector
	languages  map[string]struct{}
	httpServer *http.Server
}

func New(cfg config.ServerConfig, contents ContentSource, step ResolutionStep) *Server {
	languages := make(map[string]struct{}, len(cfg.Languages))
	for _, lang := range cfg.Languages {
		languages[strings.ToLower(lang)] = struct{}{}
	}

	s := &Server{
		cfg:        cfg,
		contents:   contents,
		step:       step,
		redirector: foundRedirector{},
		languages:  languages,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Routes builds the router: every page request runs through catalog resolution
// before it is rendered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.resolveCatalogItem)
		r.Get("/*", renderPage)
	})

	return r
}

func (s *Server) ListenAndServe() error {
	log.Infof("🚀 Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// resolveCatalogItem builds the per-request state, loads the content item and
// runs the resolution step before the page is rendered.
func (s *Server) resolveCatalogItem(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang, contentPath := s.splitLanguage(r.URL.Path)

		item, err := s.contents.ItemByPath(r.Context(), s.cfg.Site, contentPath)
		if err != nil {
			log.Errorf("❌ Failed to load content item for %s: %v", r.URL.Path, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := requestctx.FromHTTP(r, lang, item)

		outcome, err := s.step.Process(r.Context(), req)
		if err != nil {
			log.Errorf("❌ Failed to resolve catalog item for %s: %v", r.URL.RequestURI(), err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if outcome.Kind == resolver.OutcomeRedirected {
			s.redirector.RedirectTo(w, r, outcome.Location)
			return
		}

		next.ServeHTTP(w, r.WithContext(requestctx.WithRequest(r.Context(), req)))
	})
}

// splitLanguage returns the language of a path and the path without its
// language segment. Paths without a known language use the default one.
func (s *Server) splitLanguage(path string) (string, string) {
	trimmed := strings.TrimPrefix(path, "/")
	first, rest, _ := strings.Cut(trimmed, "/")

	if _, ok := s.languages[strings.ToLower(first)]; ok && first != "" {
		return strings.ToLower(first), normalizeContentPath("/" + rest)
	}

	return s.cfg.DefaultLanguage, normalizeContentPath(path)
}

func normalizeContentPath(path string) string {
	path = strings.TrimSuffix(path, ".aspx")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}

type pageView struct {
	Language    string              `json:"language"`
	Item        *domain.ContentItem `json:"item"`
	CatalogItem *domain.CatalogItem `json:"catalog_item,omitempty"`
}

func renderPage(w http.ResponseWriter, r *http.Request) {
	req := requestctx.FromContext(r.Context())
	if req == nil || req.CurrentItem() == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(pageView{
		Language:    req.LanguageCode(),
		Item:        req.CurrentItem(),
		CatalogItem: req.CurrentCatalogItem(),
	}); err != nil {
		log.Errorf("❌ Failed to write page %s: %v", r.URL.Path, err)
	}
}
