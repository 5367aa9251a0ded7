package http

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"symptom-checker/internal/core"
	"symptom-checker/internal/metrics"
	"symptom-checker/internal/session"
	"symptom-checker/pkg"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server bundles together the dependencies required by HTTP handlers.  It
// implements http.Handler so it can be passed to http.ListenAndServe.
type Server struct {
	Symptoms  *core.SymptomService
	Store     session.Store
	Cookies   *session.Cookies
	Templates *template.Template
	// Provider names the completion service in user-facing errors.
	Provider string

	logger  *zap.Logger
	metrics http.Handler
}

// NewServer constructs a Server and parses the embedded HTML templates.
func NewServer(symptoms *core.SymptomService, store session.Store, cookies *session.Cookies, provider string, logger *zap.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Symptoms:  symptoms,
		Store:     store,
		Cookies:   cookies,
		Templates: tmpl,
		Provider:  provider,
		logger:    logger,
		metrics:   promhttp.Handler(),
	}, nil
}

// ServeHTTP dispatches incoming requests based on the URL path.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch path {
	case "/":
		metrics.HTTPRequestsTotal.WithLabelValues(path, r.Method).Inc()
		switch r.Method {
		case http.MethodGet:
			s.handleIndex(w, r)
		case http.MethodPost:
			s.handleSubmit(w, r)
		default:
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	case "/home", "/about":
		metrics.HTTPRequestsTotal.WithLabelValues(path, r.Method).Inc()
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		s.render(w, strings.TrimPrefix(path, "/")+".html", nil)
	case "/metrics":
		s.metrics.ServeHTTP(w, r)
	default:
		metrics.HTTPRequestsTotal.WithLabelValues("other", r.Method).Inc()
		http.NotFound(w, r)
	}
}

// indexPage is the data handed to index.html.
type indexPage struct {
	Result *pkg.Analysis
	Error  string
}

// handleIndex renders the form together with whatever outcome the previous
// submission left in the session, then forgets it.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := s.Cookies.Ensure(w, r)
	outcome, _, err := s.Store.TakeAndClear(ctx, sessionID)
	if err != nil {
		// Still render the form; the pending outcome is lost either way.
		s.logger.Warn("failed to take session outcome", zap.String("session_id", sessionID), zap.Error(err))
		metrics.SessionStoreErrors.WithLabelValues("take").Inc()
	}
	s.render(w, "index.html", indexPage{Result: outcome.Result, Error: outcome.Error})
}

// handleSubmit analyses the posted symptoms, stores the outcome in the
// session and redirects back to the form so a refresh does not resubmit.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sessionID := s.Cookies.Ensure(w, r)
	query := pkg.SymptomQuery{
		Symptoms: strings.TrimSpace(r.FormValue("symptoms")),
		Age:      strings.TrimSpace(r.FormValue("age")),
		Gender:   strings.TrimSpace(r.FormValue("gender")),
	}

	var outcome pkg.Outcome
	analysis, err := s.Symptoms.Analyze(ctx, query)
	if err != nil {
		outcome.Error = core.UserMessage(err, s.Provider)
	} else {
		outcome.Result = analysis
	}

	if err := s.Store.Put(ctx, sessionID, outcome); err != nil {
		s.logger.Error("failed to store session outcome", zap.String("session_id", sessionID), zap.Error(err))
		metrics.SessionStoreErrors.WithLabelValues("put").Inc()
		http.Error(w, "could not save your result, please try again", http.StatusInternalServerError)
		return
	}
	s.logger.Debug("stored session outcome", zap.String("session_id", sessionID), zap.Bool("failed", outcome.Failed()))
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
