// Package adapters normalizes external POS exports into the canonical
// SalesRecord shape the engine consumes. This is the only layer allowed to
// report malformed input through an error list.
package adapters

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chrisdamba/menusight/internal/models"
	"github.com/schollz/progressbar/v3"
)

// columnAliases maps the header names common POS exports use (Toast in
// particular) to our canonical field names.
var columnAliases = map[string]string{
	"item name":                 "item_name",
	"itemname":                  "item_name",
	"item_name":                 "item_name",
	"item":                      "item_name",
	"name":                      "item_name",
	"menu item":                 "item_name",
	"quantity":                  "units_sold",
	"units sold":                "units_sold",
	"units_sold":                "units_sold",
	"qty":                       "units_sold",
	"revenue":                   "revenue",
	"sales":                     "revenue",
	"total":                     "revenue",
	"amount":                    "revenue",
	"netitemamount":             "revenue",
	"net item amount":           "revenue",
	"net amount":                "revenue",
	"netamount":                 "revenue",
	"gross amount":              "revenue",
	"gross amount (incl voids)": "revenue",
	"date":                      "timestamp",
	"timestamp":                 "timestamp",
	"businessdate":              "timestamp",
	"business date":             "timestamp",
	"order date":                "timestamp",
	"orderdate":                 "timestamp",
	"sent date":                 "timestamp",
	"opened date":               "timestamp",
	"created at":                "timestamp",
	"net price":                 "net_price",
}

func normalizeHeader(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	key = strings.Join(strings.Fields(key), " ")
	if canonical, ok := columnAliases[key]; ok {
		return canonical
	}
	return strings.ReplaceAll(key, " ", "_")
}

// parseNumber reads a currency-ish cell: "$1,234.50" -> 1234.5. Unparseable
// cells degrade to zero.
func parseNumber(val string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(val))
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseSalesCSV reads a POS CSV export and returns normalized sales records
// plus a list of human-readable problems with the input. The error list is
// non-empty when required columns cannot be identified; rows with an empty
// item name are skipped silently.
func ParseSalesCSV(r io.Reader) ([]models.SalesRecord, []string) {
	var errors []string

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, []string{fmt.Sprintf("could not parse CSV: %v", err)}
	}
	if len(rows) < 2 {
		return nil, []string{"CSV must have a header row and at least one data row."}
	}

	headerRow, dataRows := rows[0], rows[1:]
	// strip a UTF-8 BOM if the export carries one
	headerRow[0] = strings.TrimPrefix(headerRow[0], "\ufeff")

	nameIdx, unitsIdx, revenueIdx, netPriceIdx, timestampIdx := -1, -1, -1, -1, -1
	for i, h := range headerRow {
		switch normalizeHeader(h) {
		case "item_name":
			if nameIdx == -1 {
				nameIdx = i
			}
		case "units_sold":
			if unitsIdx == -1 {
				unitsIdx = i
			}
		case "revenue":
			if revenueIdx == -1 {
				revenueIdx = i
			}
		case "net_price":
			if netPriceIdx == -1 {
				netPriceIdx = i
			}
		case "timestamp":
			if timestampIdx == -1 {
				timestampIdx = i
			}
		}
	}

	if nameIdx == -1 {
		errors = append(errors, `Could not find item name column. Use "Menu Item", "Item Name", or "Item".`)
	}
	if unitsIdx == -1 {
		errors = append(errors, `Could not find quantity column. Use "Qty" or "Quantity".`)
	}
	if revenueIdx == -1 && netPriceIdx == -1 {
		errors = append(errors, `Could not find revenue column. Use "Net Amount", "Revenue", or "Net Price" (with Qty).`)
	}
	if len(errors) > 0 {
		return nil, errors
	}

	cell := func(row []string, idx int) string {
		if idx >= 0 && idx < len(row) {
			return row[idx]
		}
		return ""
	}

	var bar *progressbar.ProgressBar
	if len(dataRows) > 10000 {
		bar = progressbar.Default(int64(len(dataRows)), "parsing sales")
	}

	records := make([]models.SalesRecord, 0, len(dataRows))
	for _, row := range dataRows {
		if bar != nil {
			bar.Add(1)
		}
		itemName := strings.TrimSpace(cell(row, nameIdx))
		if itemName == "" {
			continue
		}
		unitsSold := parseNumber(cell(row, unitsIdx))
		var revenue float64
		if revenueIdx >= 0 {
			revenue = parseNumber(cell(row, revenueIdx))
		} else {
			revenue = unitsSold * parseNumber(cell(row, netPriceIdx))
		}
		record := models.SalesRecord{
			ItemName:  itemName,
			UnitsSold: unitsSold,
			Revenue:   revenue,
		}
		if timestampIdx >= 0 {
			record.Timestamp = strings.TrimSpace(cell(row, timestampIdx))
		}
		records = append(records, record)
	}

	return records, nil
}

// ParseSalesFile opens and parses a POS CSV export from disk.
func ParseSalesFile(filePath string) ([]models.SalesRecord, []string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, parseErrors := ParseSalesCSV(file)
	return records, parseErrors, nil
}
