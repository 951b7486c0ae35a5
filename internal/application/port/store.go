// Package port defines the interfaces the application layer consumes.
// Implementations live in infrastructure (remote store client, file-backed
// session store) and in the router.
package port

import (
	"context"
	"io"

	"github.com/billhub/billhub/internal/domain/entity"
)

// ReceiptUpload is the payload for creating a bill from a receipt file.
// Email must equal the session email exactly; the store ties the created
// bill stub to that employee.
type ReceiptUpload struct {
	FileName string
	Content  io.Reader
	Email    string
}

// BillStore is the persistence boundary for bill records and receipt files.
// Calls may fail with transport errors carrying a human-readable message;
// callers surface the message, they do not branch on it.
type BillStore interface {
	// List returns bill records, oldest first. An empty email lists every
	// user's bills (administrator view).
	List(ctx context.Context, email string) ([]entity.Bill, error)

	// Create uploads a receipt and returns the stored file URL plus the key
	// of the bill stub created for it.
	Create(ctx context.Context, upload ReceiptUpload) (entity.CreateResult, error)

	// Update persists the given bill record and returns the stored result.
	Update(ctx context.Context, bill entity.Bill) (entity.Bill, error)
}
