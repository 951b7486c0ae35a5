package view

import "html/template"

var newBillTmpl = template.Must(template.New("newbill").Parse(`<div class="new-bill-page">
<div class="content-header">
<h1 data-testid="content-title">Envoyer une note de frais</h1>
</div>
<form data-testid="form-new-bill" method="post" action="/employee/bill/new" enctype="multipart/form-data">
<label>Type de dépense
<select name="type" data-testid="expense-type">
<option>Transports</option>
<option>Restaurants et bars</option>
<option>Hôtel et logement</option>
<option>Services en ligne</option>
<option>IT et électronique</option>
<option>Equipement et matériel</option>
<option>Fournitures de bureau</option>
</select></label>
<label>Nom de la dépense <input type="text" name="name" data-testid="expense-name"></label>
<label>Date <input type="date" name="date" data-testid="datepicker"></label>
<label>Montant TTC <input type="text" name="amount" data-testid="amount"></label>
<label>TVA <input type="text" name="vat" data-testid="vat"></label>
<label>% <input type="text" name="pct" data-testid="pct"></label>
<label>Commentaire <textarea name="commentary" data-testid="commentary"></textarea></label>
<label>Justificatif <input type="file" name="file" data-testid="file"></label>
<button type="submit" id="btn-send-bill" data-testid="btn-send-bill">Envoyer</button>
</form>
</div>
`))

// NewBillUI renders the new bill submission form.
func NewBillUI() string {
	return render(newBillTmpl, nil)
}
