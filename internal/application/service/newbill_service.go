package service

import (
	"context"
	"io"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/application/port"
	"github.com/billhub/billhub/internal/domain/entity"
	"github.com/billhub/billhub/internal/domain/workflow"
	"github.com/billhub/billhub/internal/router"
	"github.com/billhub/billhub/internal/view"
)

// BillForm carries the textual field values of the new bill form.
type BillForm struct {
	Type       string
	Name       string
	Amount     string
	Date       string
	VAT        string
	Pct        string
	Commentary string
}

// NewBillService drives the new bill submission view. The receipt upload
// and the final submit are two separate store calls; the upload result is
// held on the controller until submit time and cleared once the bill is
// persisted, so the next submission starts from a clean form.
type NewBillService struct {
	store    port.BillStore
	sessions port.SessionStore
	nav      port.Navigator
	logger   *zap.Logger

	mu       sync.Mutex
	fileURL  *string
	fileName *string
	billID   string
}

// NewNewBillService creates the new bill controller.
func NewNewBillService(store port.BillStore, sessions port.SessionStore, nav port.Navigator, logger *zap.Logger) *NewBillService {
	return &NewBillService{
		store:    store,
		sessions: sessions,
		nav:      nav,
		logger:   logger,
	}
}

// RenderPage builds the new bill form page body. Mounting the form
// discards any upload left over from an abandoned submission.
func (s *NewBillService) RenderPage() string {
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
	return view.NewBillUI()
}

// UploadReceipt sends the selected file to the store as multipart form data
// whose email field equals the session email exactly, and keeps the
// returned file URL and bill key for submit time. No file-type allow-list
// is enforced here.
func (s *NewBillService) UploadReceipt(ctx context.Context, fileName string, content io.Reader) error {
	session := s.session()

	result, err := s.store.Create(ctx, port.ReceiptUpload{
		FileName: fileName,
		Content:  content,
		Email:    session.Email,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.fileURL = &result.FileURL
	s.fileName = &fileName
	s.billID = result.Key
	s.mu.Unlock()

	s.logger.Info("receipt uploaded",
		zap.String("file_name", fileName),
		zap.String("bill_id", s.billID))
	return nil
}

// Submit assembles a pending bill from the form values and the prior upload
// state and persists it, then navigates to the employee bill list. With no
// prior upload the file fields stay null. Amount and pct are parsed from
// their textual form; a malformed number is transmitted as its zero value,
// not rejected.
func (s *NewBillService) Submit(ctx context.Context, form BillForm) (string, error) {
	session := s.session()

	amount, _ := strconv.ParseFloat(form.Amount, 64)
	pct, _ := strconv.ParseFloat(form.Pct, 64)

	s.mu.Lock()
	bill := entity.Bill{
		ID:         s.billID,
		Email:      session.Email,
		Type:       form.Type,
		Name:       form.Name,
		Amount:     amount,
		Date:       form.Date,
		VAT:        form.VAT,
		Pct:        pct,
		Commentary: form.Commentary,
		FileURL:    s.fileURL,
		FileName:   s.fileName,
		Status:     workflow.StatePending.String(),
	}
	s.mu.Unlock()

	if _, err := s.store.Update(ctx, bill); err != nil {
		return "", err
	}

	// The upload state belongs to exactly one bill. Clearing it here keeps
	// a following submission from inheriting this bill's file fields or,
	// through the kept id, overwriting the record just persisted.
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()

	s.logger.Info("bill submitted",
		zap.String("bill_id", bill.ID),
		zap.String("email", bill.Email))

	return s.nav.OnNavigate(router.PathBills), nil
}

// reset clears the per-submission upload state. Callers hold s.mu.
func (s *NewBillService) reset() {
	s.fileURL = nil
	s.fileName = nil
	s.billID = ""
}

func (s *NewBillService) session() entity.Session {
	raw, ok := s.sessions.GetItem(entity.SessionKey)
	if !ok {
		return entity.Session{}
	}
	session, err := entity.ParseSession(raw)
	if err != nil {
		s.logger.Warn("corrupt session record", zap.Error(err))
		return entity.Session{}
	}
	return session
}
