package reports

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/stockledger-backend/internal/customers"
	"github.com/angelmondragon/stockledger-backend/internal/inventory"
	"github.com/angelmondragon/stockledger-backend/internal/sales"
	"github.com/angelmondragon/stockledger-backend/pkg/db/dbtest"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	"github.com/angelmondragon/stockledger-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

type fixture struct {
	svc       Service
	sales     *sales.Repository
	items     *inventory.Repository
	customers *customers.Repository
}

func newFixture(t *testing.T, previewLimit int) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	f := &fixture{
		sales:     sales.NewRepository(conn),
		items:     inventory.NewRepository(conn),
		customers: customers.NewRepository(conn),
	}
	svc, err := NewService(ServiceParams{
		Sales:        f.sales,
		Items:        f.items,
		Customers:    f.customers,
		PreviewLimit: previewLimit,
		Clock:        func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *fixture) addSale(t *testing.T, customer, total string, day int) {
	t.Helper()
	require.NoError(t, f.sales.Create(context.Background(), &models.Sale{
		Date:     time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Item:     "Widget",
		Quantity: 1,
		Customer: customer,
		Total:    decimal.RequireFromString(total),
		UserID:   uuid.New(),
	}))
}

func (f *fixture) addItem(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, f.items.Create(context.Background(), &models.InventoryItem{
		Name:     name,
		Quantity: 4,
		Price:    decimal.RequireFromString("2.50"),
		UserID:   uuid.New(),
	}))
}

func TestCustomerAggregation(t *testing.T) {
	f := newFixture(t, 0)
	f.addSale(t, "Alice", "15", 1)
	f.addSale(t, "Alice", "5", 2)
	f.addSale(t, "Bob", "20", 3)

	preview, err := f.svc.Preview(context.Background(), enums.ReportKindCustomer)
	require.NoError(t, err)
	rows, ok := preview.([]sales.CustomerTotal)
	require.True(t, ok)
	require.Len(t, rows, 2)

	got := map[string]sales.CustomerTotal{}
	for _, r := range rows {
		got[r.Customer] = r
	}
	assert.EqualValues(t, 2, got["Alice"].TotalPurchases)
	assert.True(t, got["Alice"].TotalAmount.Equal(decimal.NewFromInt(20)))
	assert.EqualValues(t, 1, got["Bob"].TotalPurchases)
	assert.True(t, got["Bob"].TotalAmount.Equal(decimal.NewFromInt(20)))
}

func TestPreviewIsCapped(t *testing.T) {
	f := newFixture(t, 3)
	for i := 1; i <= 5; i++ {
		f.addSale(t, fmt.Sprintf("Customer %d", i), "1", i)
		f.addItem(t, fmt.Sprintf("Item %d", i))
	}

	preview, err := f.svc.Preview(context.Background(), enums.ReportKindSales)
	require.NoError(t, err)
	salesRows := preview.([]sales.SaleDTO)
	require.Len(t, salesRows, 3)
	assert.Equal(t, "Customer 5", salesRows[0].Customer, "newest first")

	preview, err = f.svc.Preview(context.Background(), enums.ReportKindItems)
	require.NoError(t, err)
	assert.Len(t, preview.([]inventory.ItemDTO), 3)

	preview, err = f.svc.Preview(context.Background(), enums.ReportKindCustomer)
	require.NoError(t, err)
	assert.Len(t, preview.([]sales.CustomerTotal), 3)
}

func TestPreviewDefaultsToTenRows(t *testing.T) {
	f := newFixture(t, 0)
	for i := 1; i <= 12; i++ {
		f.addItem(t, fmt.Sprintf("Item %02d", i))
	}
	preview, err := f.svc.Preview(context.Background(), enums.ReportKindItems)
	require.NoError(t, err)
	assert.Len(t, preview.([]inventory.ItemDTO), DefaultPreviewLimit)
}

func TestPreviewEmptyCustomerReport(t *testing.T) {
	f := newFixture(t, 0)
	preview, err := f.svc.Preview(context.Background(), enums.ReportKindCustomer)
	require.NoError(t, err)
	assert.NotNil(t, preview)
	assert.Empty(t, preview)
}

func TestInvalidKindAndFormat(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.svc.Preview(context.Background(), enums.ReportKind("orders"))
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = f.svc.Export(context.Background(), enums.ReportKind("orders"), enums.ReportFormatPDF)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = f.svc.Export(context.Background(), enums.ReportKindSales, enums.ReportFormat("csv"))
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestExportIsUnbounded(t *testing.T) {
	f := newFixture(t, 2)
	for i := 1; i <= 4; i++ {
		f.addSale(t, fmt.Sprintf("Customer %d", i), "2.5", i)
	}

	doc, err := f.svc.Export(context.Background(), enums.ReportKindSales, enums.ReportFormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, "sales_report.docx", doc.Filename)

	lines := strings.Split(strings.TrimRight(string(doc.Body), "\n"), "\n")
	require.Len(t, lines, 4+5)
	assert.Equal(t, "SALES REPORT", lines[0])
	assert.Equal(t, "Generated on: 3/9/2024", lines[2])
	assert.Equal(t, "Date\tItem\tQuantity\tCustomer\tTotal", lines[4])
	assert.Equal(t, "3/4/2024\tWidget\t1\tCustomer 4\t$2.50", lines[5])
}

func TestExportEveryKindAndFormat(t *testing.T) {
	f := newFixture(t, 0)
	f.addItem(t, "Widget")
	f.addSale(t, "Alice", "15", 1)

	for _, kind := range enums.ReportKinds() {
		for _, format := range enums.ReportFormats() {
			doc, err := f.svc.Export(context.Background(), kind, format)
			require.NoError(t, err, "%s/%s", kind, format)
			assert.Equal(t, fmt.Sprintf("%s_report.%s", kind, format), doc.Filename)
			assert.NotEmpty(t, doc.ContentType)
			assert.NotEmpty(t, doc.Body)
		}
	}
}

func TestExportCustomerText(t *testing.T) {
	f := newFixture(t, 0)
	f.addSale(t, "Alice", "15", 1)
	f.addSale(t, "Alice", "5", 2)

	doc, err := f.svc.Export(context.Background(), enums.ReportKindCustomer, enums.ReportFormatDOCX)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("CUSTOMER REPORT\n")))
	assert.Contains(t, string(doc.Body), "Customer\tTotal Purchases\tTotal Amount\n")
	assert.Contains(t, string(doc.Body), "Alice\t2\t$20.00\n")
}

func TestSummary(t *testing.T) {
	f := newFixture(t, 0)
	f.addItem(t, "Widget")
	f.addItem(t, "Gadget")
	f.addSale(t, "Alice", "15", 1)
	f.addSale(t, "Bob", "4.25", 2)
	require.NoError(t, f.customers.Create(context.Background(), &models.Customer{Name: "Alice", UserID: uuid.New()}))

	summary, err := f.svc.Summary(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.TotalItems)
	assert.EqualValues(t, 1, summary.TotalCustomers)
	assert.True(t, summary.TotalSales.Equal(decimal.RequireFromString("19.25")), summary.TotalSales.String())
}

func TestSummaryEmpty(t *testing.T) {
	f := newFixture(t, 0)
	summary, err := f.svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.TotalSales.IsZero())
}
