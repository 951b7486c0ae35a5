// Package repository implements sqlite persistence for bill records.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/domain/entity"
)

// ErrNotFound is returned when no bill exists for the given id.
var ErrNotFound = fmt.Errorf("bill not found")

// BillRepository stores bill records in sqlite.
type BillRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBillRepository creates a new bill repository.
func NewBillRepository(db *sql.DB, logger *zap.Logger) *BillRepository {
	return &BillRepository{
		db:     db,
		logger: logger,
	}
}

const billColumns = `id, email, type, name, amount, date, vat, pct, commentary,
	file_url, file_name, status, comment_admin, created_at, updated_at`

// List returns bills ordered from earliest to latest date. A non-empty
// email restricts the result to that employee's bills.
func (r *BillRepository) List(ctx context.Context, email string) ([]entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills ORDER BY date ASC, created_at ASC`
	args := []interface{}{}
	if email != "" {
		query = `SELECT ` + billColumns + ` FROM bills WHERE email = ? ORDER BY date ASC, created_at ASC`
		args = append(args, email)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list bills", zap.Error(err))
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	bills := []entity.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

// GetByID retrieves one bill.
func (r *BillRepository) GetByID(ctx context.Context, id string) (entity.Bill, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE id = ?`, id)
	bill, err := scanBill(row)
	if err == sql.ErrNoRows {
		return entity.Bill{}, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get bill", zap.String("id", id), zap.Error(err))
		return entity.Bill{}, fmt.Errorf("get bill: %w", err)
	}
	return bill, nil
}

// Create inserts a new bill. A missing id is assigned here; timestamps are
// set to now.
func (r *BillRepository) Create(ctx context.Context, bill entity.Bill) (entity.Bill, error) {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bills (`+billColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date,
		bill.VAT, bill.Pct, bill.Commentary,
		nullable(bill.FileURL), nullable(bill.FileName),
		bill.Status, bill.CommentAdmin, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create bill", zap.Error(err))
		return entity.Bill{}, fmt.Errorf("create bill: %w", err)
	}
	return bill, nil
}

// Update overwrites an existing bill's mutable fields.
func (r *BillRepository) Update(ctx context.Context, bill entity.Bill) (entity.Bill, error) {
	bill.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE bills
		SET email = ?, type = ?, name = ?, amount = ?, date = ?, vat = ?,
			pct = ?, commentary = ?, file_url = ?, file_name = ?, status = ?,
			comment_admin = ?, updated_at = ?
		WHERE id = ?`,
		bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date, bill.VAT,
		bill.Pct, bill.Commentary,
		nullable(bill.FileURL), nullable(bill.FileName),
		bill.Status, bill.CommentAdmin, bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		r.logger.Error("failed to update bill", zap.String("id", bill.ID), zap.Error(err))
		return entity.Bill{}, fmt.Errorf("update bill: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return entity.Bill{}, fmt.Errorf("update bill: %w", err)
	}
	if affected == 0 {
		return entity.Bill{}, ErrNotFound
	}
	return bill, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row rowScanner) (entity.Bill, error) {
	var bill entity.Bill
	var fileURL, fileName sql.NullString

	err := row.Scan(
		&bill.ID, &bill.Email, &bill.Type, &bill.Name, &bill.Amount,
		&bill.Date, &bill.VAT, &bill.Pct, &bill.Commentary,
		&fileURL, &fileName, &bill.Status, &bill.CommentAdmin,
		&bill.CreatedAt, &bill.UpdatedAt,
	)
	if err != nil {
		return entity.Bill{}, err
	}
	if fileURL.Valid {
		bill.FileURL = &fileURL.String
	}
	if fileName.Valid {
		bill.FileName = &fileName.String
	}
	return bill, nil
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
