package entity

import "time"

// Bill represents one expense report (note de frais) with a lifecycle status.
type Bill struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	VAT          string  `json:"vat"`
	Pct          float64 `json:"pct"`
	Commentary   string  `json:"commentary"`
	FileURL      *string `json:"fileUrl"`
	FileName     *string `json:"fileName"`
	Status       string  `json:"status"`
	CommentAdmin string  `json:"commentAdmin,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CreateResult is what the bill store returns after a receipt upload: the
// public URL of the stored file and the key of the bill stub created for it.
type CreateResult struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}
