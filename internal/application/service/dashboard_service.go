package service

import (
	"context"
	"html/template"
	"sync"

	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/application/port"
	"github.com/billhub/billhub/internal/domain/entity"
	"github.com/billhub/billhub/internal/domain/workflow"
	"github.com/billhub/billhub/internal/formatter"
	"github.com/billhub/billhub/internal/router"
	"github.com/billhub/billhub/internal/view"
)

// FilteredBills returns the subsequence of bills whose status equals the
// given status exactly, preserving order. Filtering an already filtered
// sequence by the same status is a no-op.
func FilteredBills(bills []entity.Bill, status string) []entity.Bill {
	out := []entity.Bill{}
	for _, b := range bills {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// DashboardService drives the administrator dashboard: fold state over the
// three status buckets, the single open detail form, and the accept/refuse
// transitions. One instance serves every request, so the fold and detail
// state sits behind a mutex.
type DashboardService struct {
	store    port.BillStore
	sessions port.SessionStore
	nav      port.Navigator
	logger   *zap.Logger

	mu         sync.Mutex
	fold       FoldState
	openBillID string
}

// NewDashboardService creates the dashboard controller.
func NewDashboardService(store port.BillStore, sessions port.SessionStore, nav port.Navigator, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:    store,
		sessions: sessions,
		nav:      nav,
		logger:   logger,
	}
}

// GetBillsAllUsers fetches every user's bills for the administrator view.
// A store failure propagates unchanged.
func (s *DashboardService) GetBillsAllUsers(ctx context.Context) ([]entity.Bill, error) {
	if s.store == nil {
		return []entity.Bill{}, nil
	}
	return s.store.List(ctx, "")
}

// RenderPage builds the dashboard page body from fresh store state. A full
// page render resets the fold state and closes any open detail form.
func (s *DashboardService) RenderPage(ctx context.Context) (string, error) {
	bills, err := s.GetBillsAllUsers(ctx)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fold = FoldState{}
	s.openBillID = ""
	return s.renderFromState(bills), nil
}

// ShowTickets toggles the fold state of one status bucket and returns the
// re-rendered dashboard body: on expand the bucket shows one card per
// matching bill, on collapse its cards are cleared. Two consecutive calls
// on the same bucket return to the collapsed state.
func (s *DashboardService) ShowTickets(bills []entity.Bill, statusIndex int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fold = s.fold.Toggle(statusIndex)
	return s.renderFromState(bills)
}

// EditTicket toggles the detail form for a bill. Opening a second time the
// bill that is already open returns to the neutral big-icon pane; opening
// another bill replaces the current form. The toggle is keyed by the open
// bill id, not by a stack.
func (s *DashboardService) EditTicket(bill entity.Bill, bills []entity.Bill) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openBillID == bill.ID {
		s.openBillID = ""
	} else {
		s.openBillID = bill.ID
	}
	return s.renderFromState(bills)
}

// AcceptBill marks a bill accepted, persists it and navigates back to the
// dashboard root so the next render uses fresh store state. The update
// failure, if any, propagates to the caller.
func (s *DashboardService) AcceptBill(ctx context.Context, bill entity.Bill) (string, error) {
	return s.review(ctx, bill, workflow.TriggerAccept, "")
}

// RefuseBill marks a bill refused with the administrator's comment and
// navigates back to the dashboard root.
func (s *DashboardService) RefuseBill(ctx context.Context, bill entity.Bill, commentAdmin string) (string, error) {
	return s.review(ctx, bill, workflow.TriggerRefuse, commentAdmin)
}

func (s *DashboardService) review(ctx context.Context, bill entity.Bill, trigger workflow.Trigger, commentAdmin string) (string, error) {
	next, err := workflow.Apply(workflow.State(bill.Status), trigger)
	if err != nil {
		return "", err
	}

	updated := bill
	updated.Status = next.String()
	if trigger == workflow.TriggerRefuse {
		updated.CommentAdmin = commentAdmin
	}

	if _, err := s.store.Update(ctx, updated); err != nil {
		return "", err
	}

	s.logger.Info("bill reviewed",
		zap.String("bill_id", bill.ID),
		zap.String("status", updated.Status),
		zap.String("reviewer", s.sessionEmail()))

	return s.nav.OnNavigate(router.PathDashboard), nil
}

// ShowReceipt renders the read-only receipt modal for a bill.
func (s *DashboardService) ShowReceipt(bill entity.Bill) string {
	fileURL := ""
	if bill.FileURL != nil {
		fileURL = *bill.FileURL
	}
	return view.ReceiptModal(fileURL)
}

// renderFromState assembles the dashboard body from the given bills and the
// controller's current fold and detail state. Callers hold s.mu.
func (s *DashboardService) renderFromState(bills []entity.Bill) string {
	pending := FilteredBills(bills, StatusForBucket(BucketPending))
	accepted := FilteredBills(bills, StatusForBucket(BucketAccepted))
	refused := FilteredBills(bills, StatusForBucket(BucketRefused))

	data := view.DashboardData{
		PendingCount:  len(pending),
		AcceptedCount: len(accepted),
		RefusedCount:  len(refused),
	}
	if s.fold.PendingOpen {
		data.PendingCards = template.HTML(view.Cards(formatBills(pending)))
	}
	if s.fold.AcceptedOpen {
		data.AcceptedCards = template.HTML(view.Cards(formatBills(accepted)))
	}
	if s.fold.RefusedOpen {
		data.RefusedCards = template.HTML(view.Cards(formatBills(refused)))
	}
	if s.openBillID != "" {
		for _, b := range bills {
			if b.ID == s.openBillID {
				data.RightPane = template.HTML(view.DashboardFormUI(formatter.FormatBill(b)))
				break
			}
		}
	}
	return view.DashboardUI(data)
}

func (s *DashboardService) sessionEmail() string {
	raw, ok := s.sessions.GetItem(entity.SessionKey)
	if !ok {
		return ""
	}
	session, err := entity.ParseSession(raw)
	if err != nil {
		return ""
	}
	return session.Email
}

func formatBills(bills []entity.Bill) []entity.Bill {
	out := make([]entity.Bill, 0, len(bills))
	for _, b := range bills {
		out = append(out, formatter.FormatBill(b))
	}
	return out
}
