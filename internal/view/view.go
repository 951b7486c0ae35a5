// Package view holds the render functions of the application. Each function
// is pure: it consumes a data record and returns markup, with no side
// effects on the record or on any shared state.
package view

import (
	"bytes"
	"html/template"
)

func render(t *template.Template, data interface{}) string {
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.String()
}

var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>Billhub - {{.Title}}</title></head>
<body>
<div id="root">
<nav class="vertical-navbar">
<a href="/employee/bills"><div id="layout-icon1" data-testid="icon-window"{{if eq .ActiveIcon "window"}} class="active-icon"{{end}}></div></a>
<a href="/employee/bill/new"><div id="layout-icon2" data-testid="icon-mail"{{if eq .ActiveIcon "mail"}} class="active-icon"{{end}}></div></a>
</nav>
<main class="content">
{{.Body}}
</main>
</div>
</body>
</html>
`))

type layoutData struct {
	Title      string
	ActiveIcon string
	Body       template.HTML
}

// Layout wraps page content in the vertical-navbar document shell. The
// active icon marks the current section in the side navigation.
func Layout(title, activeIcon, body string) string {
	return render(layoutTmpl, layoutData{Title: title, ActiveIcon: activeIcon, Body: template.HTML(body)})
}

var errorTmpl = template.Must(template.New("error").Parse(`<div class="error-page">
<h1>Erreur</h1>
{{if .}}<p data-testid="error-message">{{.}}</p>{{end}}
</div>
`))

// ErrorPage renders the generic failure view with the underlying message.
func ErrorPage(message string) string {
	return render(errorTmpl, message)
}

var loadingTmpl = template.Must(template.New("loading").Parse(`<div class="loading-page"><p>Loading...</p></div>
`))

// LoadingPage renders the transient loading view.
func LoadingPage() string {
	return render(loadingTmpl, nil)
}

var notFoundTmpl = template.Must(template.New("notfound").Parse(`<div class="not-found"><h1>404</h1><p>Cette page n'existe pas.</p></div>
`))

// NotFoundPage renders the fallback view for unmapped paths.
func NotFoundPage() string {
	return render(notFoundTmpl, nil)
}

var loginTmpl = template.Must(template.New("login").Parse(`<div class="login-page">
<form data-testid="form-login" method="post" action="/login">
<label>Email <input type="email" name="email" data-testid="employee-email-input"></label>
<label>Mot de passe <input type="password" name="password" data-testid="employee-password-input"></label>
<select name="type" data-testid="login-type">
<option value="Employee">Employé</option>
<option value="Admin">Administrateur</option>
</select>
<button type="submit" data-testid="employee-login-button">Se connecter</button>
</form>
</div>
`))

// LoginPage renders the neutral login view.
func LoginPage() string {
	return render(loginTmpl, nil)
}
