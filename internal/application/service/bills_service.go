// Package service holds the application controllers: the employee bill
// list, the administrator dashboard and the new bill submission. Each
// controller exposes plain methods taking typed arguments; event wiring
// lives in the interfaces layer.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/application/port"
	"github.com/billhub/billhub/internal/domain/entity"
	"github.com/billhub/billhub/internal/formatter"
	"github.com/billhub/billhub/internal/view"
)

// BillsService drives the employee bill list view.
type BillsService struct {
	store    port.BillStore
	sessions port.SessionStore
	logger   *zap.Logger
}

// NewBillsService creates the employee bill list controller. A nil store is
// allowed and yields an empty list, which keeps offline rendering working.
func NewBillsService(store port.BillStore, sessions port.SessionStore, logger *zap.Logger) *BillsService {
	return &BillsService{
		store:    store,
		sessions: sessions,
		logger:   logger,
	}
}

// GetBills fetches the current employee's bills and returns display copies
// with formatted date and status. Store order is preserved. A record whose
// date does not parse keeps its raw value; only that record degrades, the
// rest of the list renders normally. A store failure propagates unchanged.
func (s *BillsService) GetBills(ctx context.Context) ([]entity.Bill, error) {
	if s.store == nil {
		return []entity.Bill{}, nil
	}

	email := s.sessionEmail()
	raw, err := s.store.List(ctx, email)
	if err != nil {
		return nil, err
	}

	bills := make([]entity.Bill, 0, len(raw))
	for _, b := range raw {
		if _, ferr := formatter.ParseDate(b.Date); ferr != nil {
			s.logger.Warn("bill has unparseable date, keeping raw value",
				zap.String("bill_id", b.ID),
				zap.String("date", b.Date),
				zap.Error(ferr))
		}
		bills = append(bills, formatter.FormatBill(b))
	}
	return bills, nil
}

// RenderPage builds the bill list page body. Fetch failures propagate to
// the caller, which owns the error-display path.
func (s *BillsService) RenderPage(ctx context.Context) (string, error) {
	bills, err := s.GetBills(ctx)
	if err != nil {
		return "", err
	}
	return view.BillsUI(view.BillsData{Bills: bills}), nil
}

func (s *BillsService) sessionEmail() string {
	raw, ok := s.sessions.GetItem(entity.SessionKey)
	if !ok {
		return ""
	}
	session, err := entity.ParseSession(raw)
	if err != nil {
		s.logger.Warn("corrupt session record", zap.Error(err))
		return ""
	}
	return session.Email
}
