package view

import (
	"html/template"

	"github.com/billhub/billhub/internal/domain/entity"
)

// BillsData feeds the employee bill list page. Bills must already be
// display-formatted; their order is rendered as-is.
type BillsData struct {
	Bills   []entity.Bill
	Loading bool
	Error   string
}

var billsTmpl = template.Must(template.New("bills").Parse(`<div class="bills-page">
<div class="content-header">
<h1 data-testid="content-title">Mes notes de frais</h1>
<a href="/employee/bill/new"><button type="button" data-testid="btn-new-bill">Nouvelle note de frais</button></a>
</div>
<table id="data-table" data-testid="tbody">
<thead><tr><th>Type</th><th>Nom</th><th>Date</th><th>Montant</th><th>Statut</th><th>Actions</th></tr></thead>
<tbody>
{{range .Bills}}<tr>
<td>{{.Type}}</td>
<td>{{.Name}}</td>
<td>{{.Date}}</td>
<td>{{.Amount}} €</td>
<td>{{.Status}}</td>
<td><div data-testid="icon-eye"{{if .FileURL}} data-bill-url="{{.FileURL}}"{{end}}></div></td>
</tr>
{{end}}</tbody>
</table>
</div>
`))

// BillsUI renders the employee bill list. A loading flag takes precedence
// over an error, which takes precedence over data, matching the mount order
// of the page.
func BillsUI(data BillsData) string {
	if data.Loading {
		return LoadingPage()
	}
	if data.Error != "" {
		return ErrorPage(data.Error)
	}
	return render(billsTmpl, data)
}
