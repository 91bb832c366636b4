package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// DemoPassword contraseña de todos los usuarios de demostración.
const DemoPassword = "password"

// Epoch fecha base del dataset; todas las fechas se derivan de ella.
var Epoch = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

// Dataset datos de demostración deterministas.
type Dataset struct {
	Users       []*entity.User
	Customers   []*entity.Customer
	Categories  []*entity.ProductCategory
	Products    []*entity.Product
	Orders      []*entity.Order
	Commissions []*entity.Commission
}

// DeterministicID UUID estable derivado de un nombre (mismo dataset en memoria y en PostgreSQL).
func DeterministicID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("palletpro:"+kind+":"+name)).String()
}

type demoUser struct {
	key, email, name string
	role             entity.Role
}

var demoUsers = []demoUser{
	{"customer", "customer@example.com", "John Customer", entity.RoleCustomer},
	{"sales", "sales@example.com", "Jane Sales", entity.RoleSalesperson},
	{"admin", "admin@example.com", "Admin User", entity.RoleAdmin},
	{"sales-2", "mark.seller@example.com", "Mark Seller", entity.RoleSalesperson},
	{"customer-2", "buyer@globex.example.com", "Hank Scorpio", entity.RoleCustomer},
}

type demoCustomer struct {
	company, contact, email, phone, city, state string
	userKey, salesKey                           string
}

var demoCustomers = []demoCustomer{
	{"Acme Corporation", "John Customer", "customer@example.com", "555-0101", "Springfield", "IL", "customer", "sales"},
	{"Globex Industries", "Hank Scorpio", "buyer@globex.example.com", "555-0102", "Cypress Creek", "OR", "customer-2", "sales"},
	{"Initech", "Bill Lumbergh", "bill@initech.example.com", "555-0103", "Austin", "TX", "", "sales"},
	{"Umbrella Logistics", "Alice Abernathy", "alice@umbrella.example.com", "555-0104", "Raccoon City", "MO", "", "sales-2"},
	{"Stark Supply Co", "Pepper Potts", "pepper@stark.example.com", "555-0105", "Malibu", "CA", "", "sales-2"},
	{"Wayne Distribution", "Lucius Fox", "lucius@wayne.example.com", "555-0106", "Gotham", "NJ", "", "sales-2"},
	{"Wonka Freight", "Charlie Bucket", "charlie@wonka.example.com", "555-0107", "Madison", "WI", "", ""},
	{"Soylent Packaging", "Sol Roth", "sol@soylent.example.com", "555-0108", "Newark", "NJ", "", "sales"},
}

var categoryNames = []string{"Wood Pallets", "Plastic Pallets", "Metal Pallets", "Recycled Pallets", "Export Pallets"}

var orderStatuses = []entity.OrderStatus{
	entity.OrderDelivered, entity.OrderShipped, entity.OrderProcessing, entity.OrderDelivered,
	entity.OrderPending, entity.OrderDelivered, entity.OrderCancelled, entity.OrderDelivered,
}

// NewDataset construye el dataset de demostración. Es determinista salvo por los hashes bcrypt.
func NewDataset() (*Dataset, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	ds := &Dataset{}

	userIDs := make(map[string]string, len(demoUsers))
	for i, du := range demoUsers {
		id := DeterministicID("user", du.key)
		userIDs[du.key] = id
		created := Epoch.AddDate(0, 0, -30+i)
		ds.Users = append(ds.Users, &entity.User{
			ID: id, Email: du.email, PasswordHash: string(hash), Name: du.name, Role: du.role,
			IsActive: true, CreatedAt: created, UpdatedAt: created,
		})
	}

	for i, dc := range demoCustomers {
		id := DeterministicID("customer", dc.company)
		addr := entity.Address{
			Street:  fmt.Sprintf("%d Industrial Way", 100+i*10),
			City:    dc.city,
			State:   dc.state,
			ZipCode: fmt.Sprintf("%05d", 10000+i*1111),
			Country: "USA",
		}
		created := Epoch.AddDate(0, 0, -20+i)
		ds.Customers = append(ds.Customers, &entity.Customer{
			ID: id, UserID: userIDs[dc.userKey], Company: dc.company, ContactName: dc.contact,
			Email: dc.email, ContactPhone: dc.phone, BillingAddress: addr,
			ShippingAddresses: []entity.ShippingAddress{
				{ID: DeterministicID("address", dc.company+":main"), Address: addr, IsDefault: true},
				{ID: DeterministicID("address", dc.company+":dock"), Address: entity.Address{
					Street: fmt.Sprintf("%d Dock Road", 7+i), City: dc.city, State: dc.state,
					ZipCode: addr.ZipCode, Country: "USA",
				}},
			},
			SalespersonID: userIDs[dc.salesKey],
			CreatedAt:     created, UpdatedAt: created,
		})
	}

	for i, name := range categoryNames {
		ds.Categories = append(ds.Categories, &entity.ProductCategory{
			ID:          fmt.Sprintf("category-%d", i+1),
			Name:        name,
			Description: fmt.Sprintf("Products in category %d", i+1),
		})
	}

	for i := 0; i < 50; i++ {
		ds.Products = append(ds.Products, &entity.Product{
			ID:                    fmt.Sprintf("prod-%d", i+1),
			Name:                  fmt.Sprintf("%s %d", categoryNames[i/10], i%10+1),
			Description:           fmt.Sprintf("Description for Product %d", i+1),
			Image:                 fmt.Sprintf("/images/products/product-%d.jpg", i%10+1),
			CategoryID:            fmt.Sprintf("category-%d", i/10+1),
			PricePerPallet:        decimal.NewFromInt(int64(250 + (i*37)%500)),
			DefaultPalletQuantity: 5,
			InStock:               i%5 != 4,
			Cost:                  decimal.NewFromInt(int64(150 + (i*53)%100)),
			CreatedAt:             Epoch.AddDate(0, 0, -60),
			UpdatedAt:             Epoch.AddDate(0, 0, -60),
		})
	}

	tiers := entity.DefaultDiscountTiers()
	for k := 0; k < 48; k++ {
		c := ds.Customers[k%len(ds.Customers)]
		created := Epoch.AddDate(0, k%12, 1+k%27)
		o := &entity.Order{
			ID:                  DeterministicID("order", fmt.Sprint(k)),
			CustomerID:          c.ID,
			CustomerName:        c.Company,
			SalespersonID:       c.SalespersonID,
			ShippingAddress:     c.BillingAddress,
			Status:              orderStatuses[k%len(orderStatuses)],
			PurchaseOrderNumber: fmt.Sprintf("PO-%05d", 1000+k),
			CreatedAt:           created,
			UpdatedAt:           created,
		}
		var lines []entity.OrderLine
		for j := 0; j < 1+k%3; j++ {
			p := ds.Products[(k*7+j*11)%len(ds.Products)]
			lines = append(lines, entity.OrderLine{Product: p, Quantity: 3 + (k*5+j*3)%20})
		}
		o.Price(lines, tiers, func(j int) string {
			return DeterministicID("order-item", fmt.Sprintf("%d:%d", k, j))
		})
		ds.Orders = append(ds.Orders, o)

		if o.SalespersonID != "" && o.Status != entity.OrderCancelled {
			ds.Commissions = append(ds.Commissions, &entity.Commission{
				ID:            DeterministicID("commission", o.ID),
				SalespersonID: o.SalespersonID,
				OrderID:       o.ID,
				Percentage:    entity.CommissionRate,
				Amount:        entity.CommissionFor(o.Total),
				IsPaid:        o.Status == entity.OrderDelivered,
			})
		}
	}
	return ds, nil
}
