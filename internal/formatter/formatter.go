// Package formatter converts raw bill records into display-ready fields.
// All functions are pure and never mutate their input.
package formatter

import (
	"fmt"
	"time"

	"github.com/billhub/billhub/internal/domain/entity"
	"github.com/billhub/billhub/internal/domain/workflow"
)

// Date layouts accepted from the store, most common first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
}

var frenchMonths = [...]string{
	"Jan.", "Fév.", "Mar.", "Avr.", "Mai", "Juin",
	"Juil.", "Aoû.", "Sep.", "Oct.", "Nov.", "Déc.",
}

var statusLabels = map[string]string{
	workflow.StatePending.String():  "En attente",
	workflow.StateAccepted.String(): "Accepté",
	workflow.StateRefused.String():  "Refusé",
}

// FormatDate renders a raw date string as a short French date ("4 Avr. 04").
// When the input does not parse it is returned unchanged together with the
// parse error, so corrupt records still render.
func FormatDate(raw string) (string, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return raw, err
	}
	return fmt.Sprintf("%d %s %02d", t.Day(), frenchMonths[t.Month()-1], t.Year()%100), nil
}

// ParseDate parses a raw date string using the accepted layouts.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// FormatStatus maps a lifecycle status to its French display label. Unknown
// statuses are a caller error and surface as the raw value.
func FormatStatus(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// FormatBill returns a display copy of the bill with its date and status
// replaced by formatted values. The source record is left untouched.
func FormatBill(b entity.Bill) entity.Bill {
	out := b
	out.Date, _ = FormatDate(b.Date)
	out.Status = FormatStatus(b.Status)
	return out
}
