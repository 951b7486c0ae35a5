package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/domain/entity"
	"github.com/billhub/billhub/internal/domain/workflow"
	"github.com/billhub/billhub/internal/router"
)

func TestFilteredBills(t *testing.T) {
	bills := fixtureBills()

	tests := []struct {
		status string
		want   int
	}{
		{"pending", 1},
		{"accepted", 1},
		{"refused", 2},
		{"unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := FilteredBills(bills, tt.status)
			assert.Len(t, got, tt.want)
			for _, b := range got {
				assert.Equal(t, tt.status, b.Status)
			}
		})
	}
}

func TestFilteredBills_PreservesOrderAndIsIdempotent(t *testing.T) {
	bills := fixtureBills()

	refused := FilteredBills(bills, "refused")
	require.Len(t, refused, 2)
	assert.Equal(t, "BeKy5Mo4jkmdfPGYpTxZ", refused[0].ID)
	assert.Equal(t, "qcCK3SzECmaZAGRrHjaC", refused[1].ID)

	assert.Equal(t, refused, FilteredBills(refused, "refused"))
}

func TestFilteredBills_EmptyInput(t *testing.T) {
	assert.Empty(t, FilteredBills(nil, "pending"))
	assert.Empty(t, FilteredBills([]entity.Bill{}, "refused"))
}

func newDashboard(store *mockBillStore, nav *mockNavigator) *DashboardService {
	return NewDashboardService(store, sessionsFor(entity.RoleAdmin, "admin@test.tld"), nav, zap.NewNop())
}

func TestDashboardService_ShowTickets_ExpandsBucket(t *testing.T) {
	dashboard := newDashboard(&mockBillStore{}, &mockNavigator{})
	bills := fixtureBills()

	html := dashboard.ShowTickets(bills, BucketPending)
	assert.Contains(t, html, `data-testid="open-bill47qAXb6fIm2zOKkLzMro"`)
	assert.NotContains(t, html, `data-testid="open-billUIUZtnPQvnbFnB0ozvJh"`)

	html = dashboard.ShowTickets(bills, BucketAccepted)
	assert.Contains(t, html, `data-testid="open-billUIUZtnPQvnbFnB0ozvJh"`)

	html = dashboard.ShowTickets(bills, BucketRefused)
	assert.Contains(t, html, `data-testid="open-billBeKy5Mo4jkmdfPGYpTxZ"`)
	assert.Contains(t, html, `data-testid="open-billqcCK3SzECmaZAGRrHjaC"`)
}

func TestDashboardService_ShowTickets_ToggleIsIdempotentOverPairs(t *testing.T) {
	dashboard := newDashboard(&mockBillStore{}, &mockNavigator{})
	bills := fixtureBills()

	collapsed := dashboard.ShowTickets(bills, BucketPending)
	collapsed = dashboard.ShowTickets(bills, BucketPending)
	assert.NotContains(t, collapsed, "open-bill47qAXb6fIm2zOKkLzMro")

	// A second pair of clicks lands in the same collapsed state.
	dashboard.ShowTickets(bills, BucketPending)
	again := dashboard.ShowTickets(bills, BucketPending)
	assert.Equal(t, collapsed, again)
}

func TestDashboardService_ShowTickets_BucketsToggleIndependently(t *testing.T) {
	dashboard := newDashboard(&mockBillStore{}, &mockNavigator{})
	bills := fixtureBills()

	dashboard.ShowTickets(bills, BucketPending)
	html := dashboard.ShowTickets(bills, BucketRefused)

	assert.Contains(t, html, "open-bill47qAXb6fIm2zOKkLzMro")
	assert.Contains(t, html, "open-billBeKy5Mo4jkmdfPGYpTxZ")

	html = dashboard.ShowTickets(bills, BucketPending)
	assert.NotContains(t, html, "open-bill47qAXb6fIm2zOKkLzMro")
	assert.Contains(t, html, "open-billBeKy5Mo4jkmdfPGYpTxZ")
}

func TestDashboardService_ShowTickets_ConcurrentTogglesKeepConsistentState(t *testing.T) {
	dashboard := newDashboard(&mockBillStore{}, &mockNavigator{})
	bills := fixtureBills()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				dashboard.ShowTickets(bills, BucketPending)
				dashboard.EditTicket(bills[0], bills)
			}
		}()
	}
	wg.Wait()

	// An even toggle count per bucket and per bill lands both back in
	// their initial collapsed states.
	html := dashboard.ShowTickets(bills, BucketPending)
	assert.Contains(t, html, "open-bill47qAXb6fIm2zOKkLzMro")
	assert.Contains(t, html, `data-testid="big-billed-icon"`)
}

func TestDashboardService_EditTicket_OpensForm(t *testing.T) {
	dashboard := newDashboard(&mockBillStore{}, &mockNavigator{})
	bills := fixtureBills()

	html := dashboard.EditTicket(bills[0], bills)

	assert.Contains(t, html, `data-testid="dashboard-form"`)
	assert.NotContains(t, html, `data-testid="big-billed-icon"`)
}

func TestDashboardService_EditTicket_SecondClickReturnsToBigIcon(t *testing.T) {
	dashboard := newDashboard(&mockBillStore{}, &mockNavigator{})
	bills := fixtureBills()

	dashboard.EditTicket(bills[0], bills)
	html := dashboard.EditTicket(bills[0], bills)

	assert.NotContains(t, html, `data-testid="dashboard-form"`)
	assert.Contains(t, html, `data-testid="big-billed-icon"`)
}

func TestDashboardService_EditTicket_OtherBillReplacesForm(t *testing.T) {
	dashboard := newDashboard(&mockBillStore{}, &mockNavigator{})
	bills := fixtureBills()

	dashboard.EditTicket(bills[0], bills)
	html := dashboard.EditTicket(bills[1], bills)

	assert.Contains(t, html, `data-testid="dashboard-form"`)
	assert.Contains(t, html, "test3")
}

// reviewFixture wires a dashboard to a real router so that the post-review
// navigation renders the actual dashboard page.
func reviewFixture(store *mockBillStore) (*DashboardService, *router.Router) {
	sessions := sessionsFor(entity.RoleAdmin, "admin@test.tld")
	rt := router.New(sessions, zap.NewNop())
	dashboard := NewDashboardService(store, sessions, rt, zap.NewNop())
	rt.Handle(router.PathDashboard, router.Route{Title: "Dashboard", Role: entity.RoleAdmin, Render: func() (string, error) {
		return dashboard.RenderPage(context.Background())
	}})
	return dashboard, rt
}

func TestDashboardService_AcceptBill(t *testing.T) {
	var updated entity.Bill
	store := &mockBillStore{
		listFunc: func(ctx context.Context, email string) ([]entity.Bill, error) {
			return fixtureBills(), nil
		},
		updateFunc: func(ctx context.Context, bill entity.Bill) (entity.Bill, error) {
			updated = bill
			return bill, nil
		},
	}
	dashboard, _ := reviewFixture(store)
	bills := fixtureBills()
	dashboard.EditTicket(bills[0], bills)

	html, err := dashboard.AcceptBill(context.Background(), bills[0])

	require.NoError(t, err)
	assert.Equal(t, "accepted", updated.Status)
	assert.Equal(t, "47qAXb6fIm2zOKkLzMro", updated.ID)
	assert.Contains(t, html, `data-testid="big-billed-icon"`)
	assert.NotContains(t, html, `data-testid="dashboard-form"`)
}

func TestDashboardService_RefuseBill_SetsCommentAdmin(t *testing.T) {
	var updated entity.Bill
	store := &mockBillStore{
		listFunc: func(ctx context.Context, email string) ([]entity.Bill, error) {
			return fixtureBills(), nil
		},
		updateFunc: func(ctx context.Context, bill entity.Bill) (entity.Bill, error) {
			updated = bill
			return bill, nil
		},
	}
	dashboard, _ := reviewFixture(store)
	bills := fixtureBills()

	html, err := dashboard.RefuseBill(context.Background(), bills[0], "justificatif illisible")

	require.NoError(t, err)
	assert.Equal(t, "refused", updated.Status)
	assert.Equal(t, "justificatif illisible", updated.CommentAdmin)
	assert.Contains(t, html, `data-testid="big-billed-icon"`)
}

func TestDashboardService_Review_TerminalBillIsRejected(t *testing.T) {
	dashboard, _ := reviewFixture(&mockBillStore{})
	bills := fixtureBills()

	_, err := dashboard.AcceptBill(context.Background(), bills[1])
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	_, err = dashboard.RefuseBill(context.Background(), bills[2], "")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestDashboardService_Review_UpdateErrorPropagates(t *testing.T) {
	updateErr := errors.New("Erreur 500")
	store := &mockBillStore{
		updateFunc: func(ctx context.Context, bill entity.Bill) (entity.Bill, error) {
			return entity.Bill{}, updateErr
		},
	}
	dashboard, _ := reviewFixture(store)

	_, err := dashboard.AcceptBill(context.Background(), fixtureBills()[0])

	assert.Same(t, updateErr, err)
}

func TestDashboardService_RenderPage_ResetsFoldState(t *testing.T) {
	store := &mockBillStore{
		listFunc: func(ctx context.Context, email string) ([]entity.Bill, error) {
			return fixtureBills(), nil
		},
	}
	dashboard, _ := reviewFixture(store)
	dashboard.ShowTickets(fixtureBills(), BucketPending)

	html, err := dashboard.RenderPage(context.Background())

	require.NoError(t, err)
	assert.NotContains(t, html, "open-bill47qAXb6fIm2zOKkLzMro")
	assert.Contains(t, html, "En attente (1)")
	assert.Contains(t, html, "Accepté (1)")
	assert.Contains(t, html, "Refusé (2)")
}

func TestDashboardService_ShowReceipt(t *testing.T) {
	dashboard := newDashboard(&mockBillStore{}, &mockNavigator{})

	html := dashboard.ShowReceipt(fixtureBills()[0])

	assert.Contains(t, html, `data-testid="modaleFileAdmin"`)
	assert.Contains(t, html, "preview-facture.jpg")
}

func TestFoldState_Toggle(t *testing.T) {
	var f FoldState

	f = f.Toggle(BucketPending)
	assert.True(t, f.IsOpen(BucketPending))
	assert.False(t, f.IsOpen(BucketAccepted))

	f = f.Toggle(BucketPending)
	assert.Equal(t, FoldState{}, f)

	assert.Equal(t, f, f.Toggle(99), "unknown bucket leaves state unchanged")
}
