// Package export produces xlsx workbooks of bill records for the admin
// dashboard, one sheet per review status.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/domain/entity"
	"github.com/billhub/billhub/internal/domain/workflow"
	"github.com/billhub/billhub/internal/formatter"
)

var header = []string{"Demandeur", "Type", "Nom", "Date", "Montant TTC", "TVA", "%", "Commentaire", "Justificatif"}

// Writer builds bill workbooks.
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a workbook writer.
func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{logger: logger}
}

// WriteWorkbook writes all bills to w as an xlsx workbook with one sheet
// per status, labeled the way the dashboard labels its buckets.
func (wr *Writer) WriteWorkbook(w io.Writer, bills []entity.Bill) error {
	f := excelize.NewFile()
	defer f.Close()

	states := []workflow.State{workflow.StatePending, workflow.StateAccepted, workflow.StateRefused}
	for i, state := range states {
		sheet := formatter.FormatStatus(state.String())
		if i == 0 {
			// The workbook starts with a default sheet, rename it.
			defaultSheet := f.GetSheetName(0)
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("create sheet: %w", err)
			}
		}
		if err := wr.fillSheet(f, sheet, state, bills); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	wr.logger.Info("Workbook exported", zap.Int("bills", len(bills)))
	return nil
}

func (wr *Writer) fillSheet(f *excelize.File, sheet string, state workflow.State, bills []entity.Bill) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, bill := range bills {
		if bill.Status != state.String() {
			continue
		}

		date, err := formatter.FormatDate(bill.Date)
		if err != nil {
			wr.logger.Warn("unformattable bill date kept raw",
				zap.String("bill_id", bill.ID),
				zap.String("date", bill.Date))
		}
		fileName := ""
		if bill.FileName != nil {
			fileName = *bill.FileName
		}

		values := []interface{}{
			bill.Email,
			bill.Type,
			bill.Name,
			date,
			bill.Amount,
			bill.VAT,
			bill.Pct,
			bill.Commentary,
			fileName,
		}
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		row++
	}
	return nil
}
