package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fleet-insights-go/internal/types"
)

const exportSheet = "Dados"

var exportHeader = []any{
	"Mês", "Veículo", "Marca", "Modelo", "Grupo",
	"KM Rodado", "KM Rodado Carregado", "Média", "Média Carregado",
}

// ExportXLSX writes records to a single-sheet workbook using the
// spreadsheet's original column layout.
func ExportXLSX(w io.Writer, records []types.Record) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			r.Month, r.Vehicle, r.Brand, r.Model, r.Group,
			r.TotalDistance, r.LoadedDistance, r.AverageRaw, r.AverageLoadedRaw,
		}
		if err := f.SetSheetRow(exportSheet, addr, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
