package view

import (
	"html/template"

	"github.com/billhub/billhub/internal/domain/entity"
)

var dashboardFormTmpl = template.Must(template.New("dashboardform").Parse(`<div class="dashboard-form" data-testid="dashboard-form">
<div class="bill-detail">
<dl>
<dt>Type</dt><dd>{{.Type}}</dd>
<dt>Nom</dt><dd>{{.Name}}</dd>
<dt>Demandeur</dt><dd>{{.Email}}</dd>
<dt>Date</dt><dd>{{.Date}}</dd>
<dt>Montant TTC</dt><dd>{{.Amount}} €</dd>
<dt>TVA</dt><dd>{{.VAT}}</dd>
<dt>%</dt><dd>{{.Pct}}</dd>
<dt>Commentaire</dt><dd>{{.Commentary}}</dd>
</dl>
<div data-testid="icon-eye-d"{{if .FileURL}} data-bill-url="{{.FileURL}}"{{end}}></div>
{{if .FileName}}<span class="bill-file-name">{{.FileName}}</span>{{end}}
</div>
<form method="post" action="/admin/dashboard/bills/{{.ID}}/refuse" id="refuse-form">
<textarea name="commentAdmin" data-testid="commentary2">{{.CommentAdmin}}</textarea>
<button type="submit" id="btn-refuse-bill" data-testid="btn-refuse-bill-d">Refuser</button>
</form>
<form method="post" action="/admin/dashboard/bills/{{.ID}}/accept" id="accept-form">
<button type="submit" id="btn-accept-bill" data-testid="btn-accept-bill-d">Accepter</button>
</form>
</div>
`))

// DashboardFormUI renders the detail/edit pane for one bill, with the
// accept and refuse affordances.
func DashboardFormUI(bill entity.Bill) string {
	return render(dashboardFormTmpl, bill)
}

var receiptModalTmpl = template.Must(template.New("receiptmodal").Parse(`<div class="modal" id="modaleFileAdmin" data-testid="modaleFileAdmin">
<div class="modal-body">
{{if .}}<img src="{{.}}" alt="Bill">{{else}}<p>Aucun justificatif</p>{{end}}
</div>
</div>
`))

// ReceiptModal renders the read-only receipt preview modal.
func ReceiptModal(fileURL string) string {
	return render(receiptModalTmpl, fileURL)
}
