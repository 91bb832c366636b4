package http

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/domain/table"
)

var moneyPrinter = message.NewPrinter(language.English)

// money formatea importes como "$1,234.50".
func money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return moneyPrinter.Sprintf("$%.2f", f)
}

func day(t time.Time) string { return t.Format("2006-01-02") }

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// TableSettings parámetros comunes de las tablas del portal.
type TableSettings struct {
	Locale            language.Tag
	PerPage           int
	AdvisoryThreshold int
	Observer          table.Observer
}

func newTable[T any](s TableSettings, title string, cols []table.Column[T], key func(T) string) *table.Table[T] {
	t := table.New(title, cols, key)
	t.Options.Locale = s.Locale
	t.Observer = s.Observer
	if s.AdvisoryThreshold > 0 {
		t.AdvisoryThreshold = s.AdvisoryThreshold
	}
	return t
}

func orderTable(s TableSettings, title, linkPrefix string) *table.Table[dto.OrderRow] {
	t := newTable(s, title, []table.Column[dto.OrderRow]{
		{Key: "po_number", Title: "PO Number", Sortable: true},
		{Key: "customer", Title: "Customer", Sortable: true},
		{Key: "date", Title: "Date", Sortable: true, Render: func(o dto.OrderRow) string { return day(o.Date) }},
		{Key: "status", Title: "Status", Sortable: true},
		{Key: "total_pallets", Title: "Pallets", Sortable: true},
		{Key: "total", Title: "Total", Sortable: true, Render: func(o dto.OrderRow) string { return money(o.Total) }},
	}, func(o dto.OrderRow) string { return o.ID })
	if linkPrefix != "" {
		t.Link = func(o dto.OrderRow) string { return linkPrefix + o.ID }
	}
	return t
}

func customerTable(s TableSettings, linkPrefix string) *table.Table[dto.CustomerRow] {
	t := newTable(s, "Customers", []table.Column[dto.CustomerRow]{
		{Key: "company", Title: "Company", Sortable: true},
		{Key: "contact_name", Title: "Contact", Sortable: true},
		{Key: "email", Title: "Email", Sortable: true},
		{Key: "phone", Title: "Phone"},
		{Key: "city", Title: "City", Sortable: true},
		{Key: "salesperson", Title: "Salesperson", Sortable: true},
	}, func(r dto.CustomerRow) string { return r.ID })
	t.Link = func(r dto.CustomerRow) string { return linkPrefix + r.ID }
	return t
}

func userTable(s TableSettings) *table.Table[dto.UserRow] {
	return newTable(s, "Users", []table.Column[dto.UserRow]{
		{Key: "name", Title: "Name", Sortable: true},
		{Key: "email", Title: "Email", Sortable: true},
		{Key: "role", Title: "Role", Sortable: true},
		{Key: "status", Title: "Status", Sortable: true},
		{Key: "created_at", Title: "Joined", Sortable: true, Render: func(u dto.UserRow) string { return day(u.CreatedAt) }},
	}, func(u dto.UserRow) string { return u.ID })
}

func teamTable(s TableSettings) *table.Table[dto.TeamMemberRow] {
	return newTable(s, "Sales Team", []table.Column[dto.TeamMemberRow]{
		{Key: "name", Title: "Name", Sortable: true},
		{Key: "email", Title: "Email", Sortable: true},
		{Key: "customers", Title: "Customers", Sortable: true},
		{Key: "orders", Title: "Orders", Sortable: true},
		{Key: "total_sales", Title: "Total Sales", Sortable: true, Render: func(m dto.TeamMemberRow) string { return money(m.TotalSales) }},
		{Key: "commissions", Title: "Commissions", Sortable: true, Render: func(m dto.TeamMemberRow) string { return money(m.Commissions) }},
	}, func(m dto.TeamMemberRow) string { return m.ID })
}

func invoiceTable(s TableSettings) *table.Table[dto.InvoiceRow] {
	t := newTable(s, "Invoices", []table.Column[dto.InvoiceRow]{
		{Key: "number", Title: "Invoice", Sortable: true},
		{Key: "po_number", Title: "PO Number", Sortable: true},
		{Key: "date", Title: "Date", Sortable: true, Render: func(r dto.InvoiceRow) string { return day(r.Date) }},
		{Key: "status", Title: "Status", Sortable: true},
		{Key: "amount", Title: "Amount", Sortable: true, Render: func(r dto.InvoiceRow) string { return money(r.Amount) }},
	}, func(r dto.InvoiceRow) string { return r.ID })
	t.Link = func(r dto.InvoiceRow) string { return "/api/orders/" + r.ID + "/invoice.pdf" }
	return t
}

func notificationTable(s TableSettings) *table.Table[dto.NotificationRow] {
	return newTable(s, "Notifications", []table.Column[dto.NotificationRow]{
		{Key: "title", Title: "Title", Sortable: true},
		{Key: "description", Title: "Message"},
		{Key: "variant", Title: "Type", Sortable: true},
		{Key: "created_at", Title: "Received", Sortable: true, Render: func(n dto.NotificationRow) string {
			return n.CreatedAt.Format("2006-01-02 15:04")
		}},
	}, func(n dto.NotificationRow) string { return n.ID })
}

func commissionTable(s TableSettings) *table.Table[dto.CommissionRow] {
	return newTable(s, "Commissions", []table.Column[dto.CommissionRow]{
		{Key: "order_id", Title: "Order", Sortable: true},
		{Key: "percentage", Title: "Rate", Sortable: true, Render: func(r dto.CommissionRow) string {
			return r.Percentage.String() + "%"
		}},
		{Key: "amount", Title: "Amount", Sortable: true, Render: func(r dto.CommissionRow) string { return money(r.Amount) }},
		{Key: "paid", Title: "Paid", Sortable: true, Render: func(r dto.CommissionRow) string { return yesNo(r.Paid) }},
	}, func(r dto.CommissionRow) string { return r.ID })
}

func productTable(s TableSettings) *table.Table[dto.ProductRow] {
	return newTable(s, "Products", []table.Column[dto.ProductRow]{
		{Key: "name", Title: "Product", Sortable: true},
		{Key: "category", Title: "Category", Sortable: true},
		{Key: "price_per_pallet", Title: "Price / Pallet", Sortable: true, Render: func(p dto.ProductRow) string { return money(p.PricePerPallet) }},
		{Key: "default_pallet_quantity", Title: "Default Qty", Sortable: true, Render: func(p dto.ProductRow) string {
			return strconv.Itoa(p.DefaultQty)
		}},
		{Key: "in_stock", Title: "In Stock", Sortable: true, Render: func(p dto.ProductRow) string { return yesNo(p.InStock) }},
	}, func(p dto.ProductRow) string { return p.ID })
}
