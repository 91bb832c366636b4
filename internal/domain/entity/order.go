package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de un pedido.
type OrderStatus string

// Estados de pedido.
const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid informa si el estado es conocido.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// orderTransitions transiciones permitidas. delivered y cancelled son terminales.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
}

// CanTransitionTo informa si el pedido puede pasar de s a next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Next estados a los que puede pasar el pedido.
func (s OrderStatus) Next() []OrderStatus {
	return append([]OrderStatus(nil), orderTransitions[s]...)
}

// OrderItem línea de un pedido.
type OrderItem struct {
	ID                     string
	OrderID                string
	ProductID              string
	ProductName            string
	Quantity               int // pallets
	PricePerUnit           decimal.Decimal
	DiscountedPricePerUnit *decimal.Decimal // nil si no aplica descuento
	Subtotal               decimal.Decimal
}

// Order cabecera de un pedido B2B.
type Order struct {
	ID                  string
	CustomerID          string
	CustomerName        string // empresa, desnormalizado para listados
	SalespersonID       string
	Items               []OrderItem
	TotalPallets        int
	Subtotal            decimal.Decimal
	Discount            decimal.Decimal
	Total               decimal.Decimal
	ShippingAddress     Address
	Status              OrderStatus
	PurchaseOrderNumber string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DiscountTier descuento por volumen: a partir de MinimumPallets se aplica Percentage.
type DiscountTier struct {
	MinimumPallets int
	Percentage     decimal.Decimal // 5 = 5%
}

// DefaultDiscountTiers escalas de descuento por volumen del catálogo.
func DefaultDiscountTiers() []DiscountTier {
	return []DiscountTier{
		{MinimumPallets: 10, Percentage: decimal.NewFromInt(5)},
		{MinimumPallets: 25, Percentage: decimal.NewFromFloat(7.5)},
		{MinimumPallets: 50, Percentage: decimal.NewFromInt(10)},
	}
}

// DiscountFor devuelve el mayor porcentaje cuyo mínimo alcanza pallets (cero si ninguno).
func DiscountFor(tiers []DiscountTier, pallets int) decimal.Decimal {
	best := decimal.Zero
	for _, t := range tiers {
		if pallets >= t.MinimumPallets && t.Percentage.GreaterThan(best) {
			best = t.Percentage
		}
	}
	return best
}

// CommissionRate porcentaje de comisión del vendedor sobre el total del pedido.
var CommissionRate = decimal.NewFromInt(5)

// CommissionFor comisión del vendedor sobre un total.
func CommissionFor(total decimal.Decimal) decimal.Decimal {
	return total.Mul(CommissionRate).Div(decimal.NewFromInt(100)).Round(2)
}

// OrderLine producto y cantidad de pallets solicitados.
type OrderLine struct {
	Product  *Product
	Quantity int
}

// Price calcula ítems, pallets, subtotal, descuento por volumen y total.
// El porcentaje se decide por el total de pallets del pedido y se aplica a cada línea.
func (o *Order) Price(lines []OrderLine, tiers []DiscountTier, itemID func(int) string) {
	hundred := decimal.NewFromInt(100)
	o.Items = make([]OrderItem, 0, len(lines))
	o.TotalPallets = 0
	for _, l := range lines {
		o.TotalPallets += l.Quantity
	}
	pct := DiscountFor(tiers, o.TotalPallets)

	o.Subtotal = decimal.Zero
	o.Total = decimal.Zero
	for j, l := range lines {
		qty := decimal.NewFromInt(int64(l.Quantity))
		gross := l.Product.PricePerPallet.Mul(qty)
		item := OrderItem{
			ID:           itemID(j),
			OrderID:      o.ID,
			ProductID:    l.Product.ID,
			ProductName:  l.Product.Name,
			Quantity:     l.Quantity,
			PricePerUnit: l.Product.PricePerPallet,
			Subtotal:     gross,
		}
		if pct.IsPositive() {
			discounted := l.Product.PricePerPallet.Mul(hundred.Sub(pct)).Div(hundred).Round(2)
			item.DiscountedPricePerUnit = &discounted
			item.Subtotal = discounted.Mul(qty)
		}
		o.Items = append(o.Items, item)
		o.Subtotal = o.Subtotal.Add(gross)
		o.Total = o.Total.Add(item.Subtotal)
	}
	o.Discount = o.Subtotal.Sub(o.Total)
}
