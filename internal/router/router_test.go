package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/domain/entity"
)

type memSessions map[string]string

func (m memSessions) GetItem(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
func (m memSessions) SetItem(key, value string) { m[key] = value }
func (m memSessions) RemoveItem(key string)     { delete(m, key) }

func newTestRouter(sessions memSessions) *Router {
	r := New(sessions, zap.NewNop())
	r.Handle(PathLogin, Route{Title: "Connexion", Render: func() (string, error) {
		return "<p>login</p>", nil
	}})
	r.Handle(PathBills, Route{Title: "Mes notes", ActiveIcon: "window", Role: entity.RoleEmployee, Render: func() (string, error) {
		return "<p>bills</p>", nil
	}})
	r.Handle(PathDashboard, Route{Title: "Dashboard", Role: entity.RoleAdmin, Render: func() (string, error) {
		return "<p>dashboard</p>", nil
	}})
	return r
}

func employeeSessions() memSessions {
	return memSessions{entity.SessionKey: entity.Session{Type: entity.RoleEmployee, Email: "e@e"}.Encode()}
}

func TestRouter_StartRendersDefaultPath(t *testing.T) {
	r := newTestRouter(memSessions{})

	html := r.Start()

	assert.Contains(t, html, "login")
	assert.Equal(t, PathLogin, r.CurrentPath())
}

func TestRouter_MountsViewForRole(t *testing.T) {
	r := newTestRouter(employeeSessions())

	html := r.OnNavigate(PathBills)

	assert.Contains(t, html, "bills")
	assert.Contains(t, html, `data-testid="icon-window" class="active-icon"`)
	assert.Equal(t, PathBills, r.CurrentPath())
}

func TestRouter_RoleMismatchRedirectsToLogin(t *testing.T) {
	r := newTestRouter(employeeSessions())

	html := r.OnNavigate(PathDashboard)

	assert.Contains(t, html, "login")
	assert.NotContains(t, html, "dashboard")
	assert.Equal(t, PathLogin, r.CurrentPath())
}

func TestRouter_MissingSessionRedirectsToLogin(t *testing.T) {
	r := newTestRouter(memSessions{})

	html := r.OnNavigate(PathBills)

	assert.Contains(t, html, "login")
	assert.Equal(t, PathLogin, r.CurrentPath())
}

func TestRouter_CorruptSessionRedirectsToLogin(t *testing.T) {
	r := newTestRouter(memSessions{entity.SessionKey: "{not json"})

	html := r.OnNavigate(PathBills)

	assert.Contains(t, html, "login")
}

func TestRouter_UnmappedPathRendersNotFound(t *testing.T) {
	r := newTestRouter(employeeSessions())

	html := r.OnNavigate("/does/not/exist")

	assert.Contains(t, html, "404")
}

func TestRouter_RenderErrorMapsToErrorView(t *testing.T) {
	r := newTestRouter(employeeSessions())
	r.Handle(PathBills, Route{Title: "Mes notes", Role: entity.RoleEmployee, Render: func() (string, error) {
		return "", errors.New("Erreur 404")
	}})

	html := r.OnNavigate(PathBills)

	assert.Contains(t, html, "Erreur")
	assert.Contains(t, html, "Erreur 404")
}

func TestRouter_BackAndForwardReinvokeDispatch(t *testing.T) {
	renders := 0
	r := newTestRouter(employeeSessions())
	r.Handle(PathNewBill, Route{Title: "Nouvelle note", Role: entity.RoleEmployee, Render: func() (string, error) {
		renders++
		return "<p>new bill</p>", nil
	}})

	r.Start()
	r.OnNavigate(PathBills)
	r.OnNavigate(PathNewBill)
	assert.Equal(t, 1, renders)

	back := r.Back()
	assert.Contains(t, back, "bills")
	assert.Equal(t, PathBills, r.CurrentPath())

	fwd := r.Forward()
	assert.Contains(t, fwd, "new bill")
	assert.Equal(t, 2, renders, "forward rebuilds the view from scratch")
}

func TestRouter_NavigationTruncatesForwardHistory(t *testing.T) {
	r := newTestRouter(employeeSessions())

	r.Start()
	r.OnNavigate(PathBills)
	r.Back()
	r.OnNavigate(PathBills)

	fwd := r.Forward()
	assert.Contains(t, fwd, "bills", "no stale forward entry survives a new navigation")
	assert.Equal(t, PathBills, r.CurrentPath())
}
