// Package demo is the documentation app: a small web server that serves
// fixture event data at the same path as the perk grid API and renders a
// demo page for every fixture.
package demo

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"maps"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"perkgrid/internal/config"
	"perkgrid/internal/dom"
	"perkgrid/internal/render"
	"perkgrid/internal/widget"
	"perkgrid/pkg/logging"
)

const (
	subsystem = "Demo"

	// RevisionHeader carries the fixture store revision on API responses.
	RevisionHeader = "X-Fixture-Revision"

	// APIPath is where fixtures are served, matching the real API.
	APIPath = "/api/v1/perk_grids"

	shutdownTimeout = 10 * time.Second
)

// pageAttributes are the data-* attributes a demo page accepts as query
// parameters.
var pageAttributes = []string{
	"grid-title", "placeholder-text", "error-text", "limited-text", "sold-out-text",
	"display", "min-width-perk", "min-width-package", "allow-keyboard-navigation",
}

// Server serves fixtures and demo pages.
type Server struct {
	cfg      config.DemoConfig
	store    *Store
	defaults map[string]string
	registry *widget.Registry
	engine   *gin.Engine
}

// NewServer creates the server. widgetDefaults are dataset values applied
// to every demo page before its query parameters.
func NewServer(cfg config.DemoConfig, widgetDefaults map[string]string, store *Store) *Server {
	s := &Server{
		cfg:      cfg,
		store:    store,
		defaults: maps.Clone(widgetDefaults),
		registry: widget.NewRegistry(),
	}
	if s.defaults == nil {
		s.defaults = map[string]string{}
	}
	s.registry.Define(widget.TagName, s.newHost)
	s.engine = s.setupRouter()
	return s
}

// newHost creates page hosts that read fixtures straight from the store.
func (s *Server) newHost(el *dom.Element) widget.Widget {
	dataset := maps.Clone(s.defaults)
	maps.Copy(dataset, widget.Dataset(el))
	return widget.NewHost(el, widget.ParseDataset(dataset), widget.Config{Fetcher: s.store})
}

func (s *Server) setupRouter() *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(), gin.Recovery(), CORS(s.cfg.AllowedOrigins))
	engine.SetHTMLTemplate(pageTemplate)

	engine.GET("/healthz", s.healthz)
	engine.GET("/perk-grid.css", s.stylesheet)
	engine.GET("/", s.index)
	engine.GET("/grids/:id", s.gridPage)

	api := engine.Group(APIPath)
	{
		api.GET("/:file", s.getPerkGrid)
	}
	return engine
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Run serves until ctx is cancelled, then shuts down gracefully. With a
// fixtures directory configured, fixtures are reloaded as they change.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.store.Dir() != "" {
		go func() {
			if err := s.store.Watch(ctx, nil); err != nil {
				logging.Error(subsystem, err, "fixture watcher stopped")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info(subsystem, "demo server listening on http://%s", s.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("demo server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info(subsystem, "shutting down demo server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("demo server shutdown: %w", err)
	}
	return nil
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"fixtures": len(s.store.IDs()),
		"revision": s.store.Revision(),
	})
}

func (s *Server) stylesheet(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(render.DefaultCSS))
}

// getPerkGrid serves GET /api/v1/perk_grids/<id>.json.
func (s *Server) getPerkGrid(c *gin.Context) {
	file := c.Param("file")
	id, ok := strings.CutSuffix(file, fixtureExt)
	if !ok || id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	data, ok := s.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no perk grid for event %q", id)})
		return
	}
	c.Header(RevisionHeader, s.store.Revision())
	c.JSON(http.StatusOK, data)
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "page", pageData{Title: "Perk grids", IDs: s.store.IDs()})
}

// gridPage renders the demo page of one fixture. The grid is rendered on
// the server by a perk-grid host, exactly as a browser host would render
// it, and serialized into the page.
func (s *Server) gridPage(c *gin.Context) {
	id := c.Param("id")

	doc := dom.NewDocument()
	mount := dom.NewElement(widget.TagName, "", dom.WithAttr("data-event-id", id))
	for _, name := range pageAttributes {
		if v, ok := c.GetQuery(name); ok {
			mount.SetAttr("data-"+name, v)
		}
	}
	doc.Body().Append(mount)

	status := http.StatusOK
	if _, ok := s.store.Get(id); !ok {
		status = http.StatusNotFound
	}

	for _, w := range s.registry.Upgrade(doc.Body()) {
		err := w.OnAttach(c.Request.Context())
		defer w.OnDetach()
		if err != nil {
			logging.Error(subsystem, err, "rendering demo page for %s", id)
			c.String(http.StatusInternalServerError, "rendering perk grid: %v", err)
			return
		}
	}

	title := id
	if data, ok := s.store.Get(id); ok && data.Name != "" {
		title = data.Name
	}
	c.HTML(status, "page", pageData{
		Title:   title,
		Grid:    template.HTML(mount.OuterHTML()),
		EventID: id,
		IDs:     s.store.IDs(),
	})
}
