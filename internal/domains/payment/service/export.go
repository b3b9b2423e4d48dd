package service

import (
	"context"
	"fmt"

	"stagelink-backend/internal/domains/payment/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportReview renders the filtered review queue as an xlsx workbook
func (s *PaymentService) ExportReview(ctx context.Context, filter model.ReviewFilter) ([]byte, error) {
	payments, err := s.repo.ListForReview(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	f, err := buildPaymentsWorkbook(payments)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func buildPaymentsWorkbook(payments []model.Payment) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Payments"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"ID",
		"Show ID",
		"Payer",
		"Email",
		"Amount (PHP)",
		"Status",
		"Submitted At",
		"Reviewed At",
	}

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "H1", headerStyle)
	}

	for i, p := range payments {
		rowNum := i + 2
		cell := func(col int) string {
			name, _ := excelize.CoordinatesToCellName(col, rowNum)
			return name
		}

		f.SetCellValue(sheetName, cell(1), p.ID.String())
		f.SetCellValue(sheetName, cell(2), p.ShowID.String())

		// Payer column: the account id, or the guest's name
		if p.UserID != nil {
			f.SetCellValue(sheetName, cell(3), p.UserID.String())
		} else if p.GuestName != nil {
			f.SetCellValue(sheetName, cell(3), *p.GuestName)
		}
		if p.GuestEmail != nil {
			f.SetCellValue(sheetName, cell(4), *p.GuestEmail)
		}

		// Centavos back to pesos for the spreadsheet
		amount := decimal.NewFromInt(p.AmountCents).Shift(-2)
		f.SetCellValue(sheetName, cell(5), amount.InexactFloat64())

		f.SetCellValue(sheetName, cell(6), string(p.Status))
		f.SetCellValue(sheetName, cell(7), p.CreatedAt.Format("2006-01-02 15:04:05"))
		if p.ReviewedAt != nil {
			f.SetCellValue(sheetName, cell(8), p.ReviewedAt.Format("2006-01-02 15:04:05"))
		}
	}

	return f, nil
}
