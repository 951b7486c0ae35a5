// Package router implements the navigation dispatcher of the web
// application: a static path table gated by the session's role, re-invoked
// on every navigation event. Each dispatch fully rebuilds the mounted view;
// there is no partial update.
package router

import (
	"sync"

	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/application/port"
	"github.com/billhub/billhub/internal/domain/entity"
	"github.com/billhub/billhub/internal/view"
)

// Navigable paths.
const (
	PathLogin     = "/"
	PathBills     = "/employee/bills"
	PathNewBill   = "/employee/bill/new"
	PathDashboard = "/admin/dashboard"
)

// Route maps a path to a view. Render produces the page body; a non-nil
// error is mapped to the error view by the dispatcher, never by the route
// itself. An empty Role means the route is public.
type Route struct {
	Title      string
	ActiveIcon string
	Role       string
	Render     func() (string, error)
}

// Router is the single navigation dispatcher of the application. It is
// constructed once and passed by reference to every controller that needs
// to trigger navigation.
type Router struct {
	mu       sync.Mutex
	routes   map[string]Route
	sessions port.SessionStore
	logger   *zap.Logger

	history []string
	pos     int
	current string
}

// New creates a Router over the given session store. Routes are registered
// with Handle before the first navigation.
func New(sessions port.SessionStore, logger *zap.Logger) *Router {
	return &Router{
		routes:   make(map[string]Route),
		sessions: sessions,
		logger:   logger,
		pos:      -1,
	}
}

// Handle registers the view for a path, replacing any previous registration.
func (r *Router) Handle(path string, route Route) {
	r.routes[path] = route
}

// OnNavigate mounts the view registered for the path and returns the
// rendered document. A role mismatch on a gated path redirects to the login
// path instead of mounting. Unmapped paths fall through to the 404 view.
func (r *Router) OnNavigate(path string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	path = r.resolve(path)
	r.push(path)
	return r.mount(path)
}

// Start performs the initial dispatch: the default login path when no prior
// navigation state exists, otherwise the current entry.
func (r *Router) Start() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pos < 0 {
		path := r.resolve(PathLogin)
		r.push(path)
		return r.mount(path)
	}
	return r.mount(r.history[r.pos])
}

// Back re-dispatches the previous history entry, if any.
func (r *Router) Back() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pos > 0 {
		r.pos--
	}
	return r.mount(r.history[r.pos])
}

// Forward re-dispatches the next history entry, if any.
func (r *Router) Forward() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pos < len(r.history)-1 {
		r.pos++
	}
	return r.mount(r.history[r.pos])
}

// CurrentPath returns the path of the current history entry.
func (r *Router) CurrentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pos < 0 {
		return ""
	}
	return r.history[r.pos]
}

// Current returns the last rendered document.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// resolve applies the authorization gate: a gated path with a missing or
// mismatched role resolves to the login path.
func (r *Router) resolve(path string) string {
	route, ok := r.routes[path]
	if !ok || route.Role == "" {
		return path
	}
	session, ok := r.session()
	if !ok || session.Type != route.Role {
		r.logger.Info("navigation denied, redirecting to login",
			zap.String("path", path),
			zap.String("required_role", route.Role))
		return PathLogin
	}
	return path
}

// mount renders the view for a path and records it as the current document.
func (r *Router) mount(path string) string {
	route, ok := r.routes[path]
	if !ok {
		r.logger.Info("no route for path", zap.String("path", path))
		r.current = view.Layout("404", "", view.NotFoundPage())
		return r.current
	}

	body, err := route.Render()
	if err != nil {
		r.logger.Error("view render failed", zap.String("path", path), zap.Error(err))
		body = view.ErrorPage(err.Error())
	}
	r.current = view.Layout(route.Title, route.ActiveIcon, body)
	return r.current
}

// push appends a history entry, discarding any forward entries.
func (r *Router) push(path string) {
	r.history = append(r.history[:r.pos+1], path)
	r.pos = len(r.history) - 1
}

func (r *Router) session() (entity.Session, bool) {
	raw, ok := r.sessions.GetItem(entity.SessionKey)
	if !ok {
		return entity.Session{}, false
	}
	session, err := entity.ParseSession(raw)
	if err != nil {
		r.logger.Warn("corrupt session record", zap.Error(err))
		return entity.Session{}, false
	}
	return session, true
}
