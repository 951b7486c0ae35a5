package view

import (
	"html/template"

	"github.com/billhub/billhub/internal/domain/entity"
)

// DashboardData feeds the administrator dashboard page. Card markup per
// status bucket is precomputed by the controller from its fold state; an
// empty string means the bucket is collapsed.
type DashboardData struct {
	PendingCount  int
	AcceptedCount int
	RefusedCount  int

	PendingCards  template.HTML
	AcceptedCards template.HTML
	RefusedCards  template.HTML

	RightPane template.HTML

	Loading bool
	Error   string
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<div class="dashboard-page">
<div class="status-bills-container">
<div class="status-bills">
<h3>En attente ({{.PendingCount}})</h3>
<form method="post" action="/admin/dashboard/toggle/1"><button type="submit" id="arrow-icon1" data-testid="arrow-icon1">&#x25BC;</button></form>
<div id="status-bills-container1">{{.PendingCards}}</div>
</div>
<div class="status-bills">
<h3>Accepté ({{.AcceptedCount}})</h3>
<form method="post" action="/admin/dashboard/toggle/2"><button type="submit" id="arrow-icon2" data-testid="arrow-icon2">&#x25BC;</button></form>
<div id="status-bills-container2">{{.AcceptedCards}}</div>
</div>
<div class="status-bills">
<h3>Refusé ({{.RefusedCount}})</h3>
<form method="post" action="/admin/dashboard/toggle/3"><button type="submit" id="arrow-icon3" data-testid="arrow-icon3">&#x25BC;</button></form>
<div id="status-bills-container3">{{.RefusedCards}}</div>
</div>
<a href="/admin/dashboard/export" data-testid="btn-export-bills">Exporter (xlsx)</a>
</div>
<div class="dashboard-right-container">{{.RightPane}}</div>
</div>
`))

// DashboardUI renders the administrator dashboard.
func DashboardUI(data DashboardData) string {
	if data.Loading {
		return LoadingPage()
	}
	if data.Error != "" {
		return ErrorPage(data.Error)
	}
	if data.RightPane == "" {
		data.RightPane = template.HTML(BigBilledIcon())
	}
	return render(dashboardTmpl, data)
}

var cardsTmpl = template.Must(template.New("cards").Parse(`{{range .}}<div class="bill-card" data-testid="open-bill{{.ID}}" id="open-bill{{.ID}}">
<form method="post" action="/admin/dashboard/bills/{{.ID}}/edit">
<button type="submit" class="bill-card-open">
<span class="bill-card-name">{{.Name}}</span>
<span class="bill-card-owner">{{.Email}}</span>
<span class="bill-card-amount">{{.Amount}} €</span>
<span class="bill-card-date">{{.Date}}</span>
<span class="bill-card-type">{{.Type}}</span>
</button>
</form>
</div>
{{end}}`))

// Cards renders one summary card per bill. An empty sequence produces no
// markup at all, so no per-bill affordance exists on the output.
func Cards(bills []entity.Bill) string {
	if len(bills) == 0 {
		return ""
	}
	return render(cardsTmpl, bills)
}

var bigBilledIconTmpl = template.Must(template.New("bigicon").Parse(`<div id="big-billed-icon" data-testid="big-billed-icon"></div>
`))

// BigBilledIcon renders the neutral right-pane placeholder shown when no
// bill detail form is open.
func BigBilledIcon() string {
	return render(bigBilledIconTmpl, nil)
}
