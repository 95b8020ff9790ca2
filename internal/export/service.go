package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"pantrychef/constants"
	"pantrychef/internal/repository"
)

// Service produces XLSX bytes for inventory exports.
type Service struct {
	inventory repository.InventoryRepository
	logger    *slog.Logger
}

func NewService(inventory repository.InventoryRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{inventory: inventory, logger: logger}
}

// ExportInventoryXLSX returns the user's pantry as an XLSX workbook.
func (s *Service) ExportInventoryXLSX(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	start := time.Now()

	items, err := s.inventory.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Inventory"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Item",
		"Quantity",
		"Unit",
		"Price",
		"Category",
		"Added",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, item := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		category := item.Category
		if category == "" {
			category = string(constants.IdentifyCategory(item.Name))
		}
		write(1, item.Name)
		write(2, item.Quantity)
		write(3, item.Unit)
		write(4, item.Price)
		write(5, category)
		if !item.AddedAt.IsZero() {
			write(6, item.AddedAt.Format("2006-01-02"))
		} else {
			write(6, "")
		}

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 28) // item
	_ = f.SetColWidth(sheet, "B", "C", 10) // quantity, unit
	_ = f.SetColWidth(sheet, "D", "D", 10) // price
	_ = f.SetColWidth(sheet, "E", "E", 14) // category
	_ = f.SetColWidth(sheet, "F", "F", 12) // date

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"user_id", userID.String(),
		"rows", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
