package entity

import "time"

// Address dirección postal (facturación).
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// ShippingAddress dirección de despacho; un cliente puede tener varias y una por defecto.
type ShippingAddress struct {
	ID string `json:"id"`
	Address
	IsDefault bool `json:"is_default"`
}

// Customer representa la cuenta B2B de un cliente (empresa compradora).
type Customer struct {
	ID                string
	UserID            string // usuario con rol customer dueño de la cuenta
	Company           string
	ContactName       string
	Email             string
	ContactPhone      string
	BillingAddress    Address
	ShippingAddresses []ShippingAddress
	SalespersonID     string // vendedor asignado; vacío si no tiene
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultShipping devuelve la dirección de despacho por defecto, o la primera si ninguna está marcada.
func (c *Customer) DefaultShipping() (ShippingAddress, bool) {
	for _, a := range c.ShippingAddresses {
		if a.IsDefault {
			return a, true
		}
	}
	if len(c.ShippingAddresses) > 0 {
		return c.ShippingAddresses[0], true
	}
	return ShippingAddress{}, false
}
