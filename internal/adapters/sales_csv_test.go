package adapters

import (
	"strings"
	"testing"

	"github.com/chrisdamba/menusight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalesCSVCanonicalHeaders(t *testing.T) {
	csv := "item_name,units_sold,revenue,timestamp\n" +
		"Smash Burger,120,1800.00,2025-06-01\n" +
		"Fish Tacos,45,675.50,2025-06-01\n"

	records, errs := ParseSalesCSV(strings.NewReader(csv))
	require.Empty(t, errs)
	require.Len(t, records, 2)

	assert.Equal(t, models.SalesRecord{
		ItemName:  "Smash Burger",
		UnitsSold: 120,
		Revenue:   1800,
		Timestamp: "2025-06-01",
	}, records[0])
	assert.Equal(t, 675.5, records[1].Revenue)
}

func TestParseSalesCSVToastHeaders(t *testing.T) {
	csv := "Menu Item,Qty,Net Amount,Business Date\n" +
		"Caesar Salad,30,\"$412.50\",2025-06-02\n"

	records, errs := ParseSalesCSV(strings.NewReader(csv))
	require.Empty(t, errs)
	require.Len(t, records, 1)

	assert.Equal(t, "Caesar Salad", records[0].ItemName)
	assert.Equal(t, 30.0, records[0].UnitsSold)
	assert.Equal(t, 412.5, records[0].Revenue)
	assert.Equal(t, "2025-06-02", records[0].Timestamp)
}

func TestParseSalesCSVStripsBOM(t *testing.T) {
	csv := "\ufeffItem Name,Quantity,Revenue\nSoda,10,25.00\n"

	records, errs := ParseSalesCSV(strings.NewReader(csv))
	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.Equal(t, "Soda", records[0].ItemName)
}

func TestParseSalesCSVCurrencyAndThousands(t *testing.T) {
	csv := "item,qty,total\nWagyu Special,3,\"$1,234.50\"\n"

	records, errs := ParseSalesCSV(strings.NewReader(csv))
	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.Equal(t, 1234.5, records[0].Revenue)
}

func TestParseSalesCSVNetPriceFallback(t *testing.T) {
	// no revenue column, but net price times quantity reconstructs it
	csv := "Item Name,Qty,Net Price\nFries,8,3.25\n"

	records, errs := ParseSalesCSV(strings.NewReader(csv))
	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.Equal(t, 26.0, records[0].Revenue)
}

func TestParseSalesCSVMissingColumns(t *testing.T) {
	csv := "foo,bar\n1,2\n"

	records, errs := ParseSalesCSV(strings.NewReader(csv))
	assert.Nil(t, records)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "item name column")
	assert.Contains(t, errs[1], "quantity column")
	assert.Contains(t, errs[2], "revenue column")
}

func TestParseSalesCSVHeaderOnly(t *testing.T) {
	records, errs := ParseSalesCSV(strings.NewReader("item_name,qty,revenue\n"))
	assert.Nil(t, records)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "at least one data row")
}

func TestParseSalesCSVSkipsBlankNames(t *testing.T) {
	csv := "item_name,qty,revenue\n" +
		"Burger,1,10\n" +
		" ,5,50\n" +
		"Tacos,2,20\n"

	records, errs := ParseSalesCSV(strings.NewReader(csv))
	require.Empty(t, errs)
	require.Len(t, records, 2)
	assert.Equal(t, "Burger", records[0].ItemName)
	assert.Equal(t, "Tacos", records[1].ItemName)
}

func TestParseSalesCSVUnparseableNumbersDegradeToZero(t *testing.T) {
	csv := "item_name,qty,revenue\nBurger,n/a,bad\n"

	records, errs := ParseSalesCSV(strings.NewReader(csv))
	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.Equal(t, 0.0, records[0].UnitsSold)
	assert.Equal(t, 0.0, records[0].Revenue)
}

func TestParseSalesCSVShortRows(t *testing.T) {
	// ragged rows: missing trailing cells read as empty, not a crash
	csv := "item_name,qty,revenue\nBurger,3\n"

	records, errs := ParseSalesCSV(strings.NewReader(csv))
	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.Equal(t, 3.0, records[0].UnitsSold)
	assert.Equal(t, 0.0, records[0].Revenue)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "item_name", normalizeHeader("  Menu   Item "))
	assert.Equal(t, "units_sold", normalizeHeader("QTY"))
	assert.Equal(t, "revenue", normalizeHeader("Gross Amount (incl voids)"))
	assert.Equal(t, "timestamp", normalizeHeader("BusinessDate"))
	// unknown headers pass through snake_cased
	assert.Equal(t, "void_reason", normalizeHeader("Void Reason"))
}
