// Package export renders session reports as downloadable spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/Ak3mix/ventas-pro/internal/dto"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSales     = "Ventas"
	sheetMovements = "Movimientos"
)

// SessionReportXLSX writes a two-sheet workbook for one session report:
// a sales sheet with one row per sale item plus a totals block, and a
// movements sheet with the full stock trail.
func SessionReportXLSX(report *dto.SessionReportResponse, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSalesSheet(f, report); err != nil {
		return err
	}
	if err := writeMovementsSheet(f, report); err != nil {
		return err
	}
	// Drop the default sheet created by NewFile.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return f.Write(w)
}

func writeSalesSheet(f *excelize.File, report *dto.SessionReportResponse) error {
	if _, err := f.NewSheet(sheetSales); err != nil {
		return err
	}
	headers := []string{"Venta", "Fecha", "Producto", "Cantidad", "Precio unitario", "Medio de pago"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetSales, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for _, sale := range report.Sales {
		for _, item := range sale.Items {
			values := []interface{}{
				sale.ID,
				sale.CreatedAt,
				item.Product,
				item.Quantity,
				item.PriceAtSale.InexactFloat64(),
				sale.PaymentMethod,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := f.SetCellValue(sheetSales, cell, v); err != nil {
					return err
				}
			}
			row++
		}
	}

	// Totals block, one row per payment method plus the grand total.
	row++
	for method, total := range report.TotalsByMethod {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheetSales, labelCell, fmt.Sprintf("Total %s", method)); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSales, valueCell, total.InexactFloat64()); err != nil {
			return err
		}
		row++
	}
	labelCell, _ := excelize.CoordinatesToCellName(1, row)
	valueCell, _ := excelize.CoordinatesToCellName(2, row)
	if err := f.SetCellValue(sheetSales, labelCell, "Total general"); err != nil {
		return err
	}
	return f.SetCellValue(sheetSales, valueCell, report.Total.InexactFloat64())
}

func writeMovementsSheet(f *excelize.File, report *dto.SessionReportResponse) error {
	if _, err := f.NewSheet(sheetMovements); err != nil {
		return err
	}
	headers := []string{"Fecha", "Producto", "Tipo", "Cantidad", "Stock antes", "Stock después", "Motivo"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetMovements, cell, h); err != nil {
			return err
		}
	}

	for i, mov := range report.Movements {
		values := []interface{}{
			mov.CreatedAt,
			mov.Product,
			mov.Kind,
			mov.Quantity,
			mov.StockBefore,
			mov.StockAfter,
			mov.Reason,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetMovements, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
