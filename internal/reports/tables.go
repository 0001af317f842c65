package reports

import (
	"github.com/angelmondragon/stockledger-backend/internal/reports/export"
	"github.com/angelmondragon/stockledger-backend/internal/sales"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
)

var salesColumns = []export.Column{
	{Header: "Date", Width: 15},
	{Header: "Item", Width: 20},
	{Header: "Quantity", Width: 10},
	{Header: "Customer", Width: 20},
	{Header: "Total", Width: 15},
}

var itemColumns = []export.Column{
	{Header: "Name", Width: 20},
	{Header: "Description", Width: 30},
	{Header: "Quantity", Width: 10},
	{Header: "Price", Width: 15},
}

var customerColumns = []export.Column{
	{Header: "Customer", Width: 20},
	{Header: "Total Purchases", Width: 15},
	{Header: "Total Amount", Width: 15},
}

func salesRows(rows []models.Sale) [][]export.Value {
	out := make([][]export.Value, 0, len(rows))
	for _, s := range rows {
		out = append(out, []export.Value{
			export.Date(s.Date),
			export.Text(s.Item),
			export.Int(int64(s.Quantity)),
			export.Text(s.Customer),
			export.Money(s.Total),
		})
	}
	return out
}

func itemRows(rows []models.InventoryItem) [][]export.Value {
	out := make([][]export.Value, 0, len(rows))
	for _, it := range rows {
		out = append(out, []export.Value{
			export.Text(it.Name),
			export.Text(it.Description),
			export.Int(int64(it.Quantity)),
			export.Money(it.Price),
		})
	}
	return out
}

func customerRows(rows []sales.CustomerTotal) [][]export.Value {
	out := make([][]export.Value, 0, len(rows))
	for _, c := range rows {
		out = append(out, []export.Value{
			export.Text(c.Customer),
			export.Int(c.TotalPurchases),
			export.Money(c.TotalAmount),
		})
	}
	return out
}
