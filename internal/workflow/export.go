package workflow

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/onemarketph/backoffice/internal/model"
)

// Columns a table renders that carry no data: the selection checkbox and the
// per-row action menu. Never exported.
var nonDataColumns = map[string]bool{
	"select":  true,
	"actions": true,
}

// ProductExportColumns is the default column order for product exports.
var ProductExportColumns = []string{"id", "name", "vendorId", "categoryId", "status", "priceCents", "createdAt"}

// ExportProductsCSV writes the products as CSV using the requested columns,
// silently dropping non-data columns and rejecting unknown ones.
func ExportProductsCSV(w io.Writer, products []model.Product, columns []string) error {
	if len(columns) == 0 {
		columns = ProductExportColumns
	}

	fields := make([]string, 0, len(columns))
	for _, col := range columns {
		if nonDataColumns[col] {
			continue
		}
		if _, ok := productField(model.Product{}, col); !ok {
			return fmt.Errorf("unknown export column %q", col)
		}
		fields = append(fields, col)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(fields))
	for _, p := range products {
		for i, col := range fields {
			v, _ := productField(p, col)
			row[i] = v
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func productField(p model.Product, column string) (string, bool) {
	switch column {
	case "id":
		return p.ID, true
	case "name":
		return p.Name, true
	case "vendorId":
		return p.VendorID, true
	case "categoryId":
		return p.CategoryID, true
	case "status":
		return string(p.Status), true
	case "priceCents":
		return strconv.FormatInt(p.PriceCents, 10), true
	case "createdAt":
		return p.CreatedAt.Format("2006-01-02 15:04:05"), true
	default:
		return "", false
	}
}
