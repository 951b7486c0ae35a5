package service

import (
	"context"

	"github.com/billhub/billhub/internal/application/port"
	"github.com/billhub/billhub/internal/domain/entity"
)

// Mock bill store
type mockBillStore struct {
	listFunc   func(ctx context.Context, email string) ([]entity.Bill, error)
	createFunc func(ctx context.Context, upload port.ReceiptUpload) (entity.CreateResult, error)
	updateFunc func(ctx context.Context, bill entity.Bill) (entity.Bill, error)
}

func (m *mockBillStore) List(ctx context.Context, email string) ([]entity.Bill, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, email)
	}
	return []entity.Bill{}, nil
}

func (m *mockBillStore) Create(ctx context.Context, upload port.ReceiptUpload) (entity.CreateResult, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, upload)
	}
	return entity.CreateResult{}, nil
}

func (m *mockBillStore) Update(ctx context.Context, bill entity.Bill) (entity.Bill, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, bill)
	}
	return bill, nil
}

// Mock navigator recording the navigated paths
type mockNavigator struct {
	paths []string
	html  string
}

func (m *mockNavigator) OnNavigate(path string) string {
	m.paths = append(m.paths, path)
	return m.html
}

// In-memory session store
type memSessions map[string]string

func (m memSessions) GetItem(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
func (m memSessions) SetItem(key, value string) { m[key] = value }
func (m memSessions) RemoveItem(key string)     { delete(m, key) }

func sessionsFor(role, email string) memSessions {
	return memSessions{entity.SessionKey: entity.Session{Type: role, Email: email}.Encode()}
}

func strptr(s string) *string { return &s }

// fixtureBills mirrors the store content used across the controller tests:
// one pending, one accepted, two refused.
func fixtureBills() []entity.Bill {
	return []entity.Bill{
		{
			ID:         "47qAXb6fIm2zOKkLzMro",
			Email:      "a@a",
			Type:       "Hôtel et logement",
			Name:       "encore",
			Amount:     400,
			Date:       "2004-04-04",
			VAT:        "80",
			Pct:        20,
			Commentary: "séminaire billed",
			FileURL:    strptr("https://test.storage.tld/preview-facture.jpg"),
			FileName:   strptr("preview-facture.jpg"),
			Status:     "pending",
		},
		{
			ID:       "UIUZtnPQvnbFnB0ozvJh",
			Email:    "a@a",
			Type:     "Services en ligne",
			Name:     "test3",
			Amount:   300,
			Date:     "2003-03-03",
			VAT:      "60",
			Pct:      20,
			FileURL:  strptr("https://test.storage.tld/facture-202403.jpg"),
			FileName: strptr("facture-202403.jpg"),
			Status:   "accepted",
		},
		{
			ID:     "BeKy5Mo4jkmdfPGYpTxZ",
			Email:  "a@a",
			Type:   "Restaurants et bars",
			Name:   "test1",
			Amount: 100,
			Date:   "2001-01-01",
			VAT:    "20",
			Pct:    20,
			Status: "refused",
		},
		{
			ID:     "qcCK3SzECmaZAGRrHjaC",
			Email:  "a@a",
			Type:   "Transports",
			Name:   "test2",
			Amount: 200,
			Date:   "2002-02-02",
			VAT:    "40",
			Pct:    20,
			Status: "refused",
		},
	}
}
