// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked product with its acquisition and overhead costs.
// Monetary fields are decimals; derived costing figures live in
// ledger.ItemCosting, never on the record itself.
type InventoryItem struct {
	ID             string          `json:"id" db:"id" bson:"_id"`
	ProductNumber  int64           `json:"product_number" db:"product_number" bson:"product_number"`
	Name           string          `json:"name" db:"name" bson:"name"`
	StockQuantity  int             `json:"stock_quantity" db:"stock_quantity" bson:"stock_quantity"`
	WholesalePrice decimal.Decimal `json:"wholesale_price" db:"wholesale_price" bson:"wholesale_price"`
	BoxPrice       decimal.Decimal `json:"box_price" db:"box_price" bson:"box_price"`
	MarketingCost  decimal.Decimal `json:"marketing_cost" db:"marketing_cost" bson:"marketing_cost"`
	DeliveryCost   decimal.Decimal `json:"delivery_cost" db:"delivery_cost" bson:"delivery_cost"`
	FinalPrice     decimal.Decimal `json:"final_price" db:"final_price" bson:"final_price"`
	DateAdded      time.Time       `json:"date_added" db:"date_added" bson:"date_added"`
	LastUpdated    time.Time       `json:"last_updated" db:"last_updated" bson:"last_updated"`
}

// Purchase is a stock acquisition from a supplier.
type Purchase struct {
	ID          string          `json:"id" db:"id" bson:"_id"`
	ProductName string          `json:"product_name" db:"product_name" bson:"product_name"`
	Supplier    string          `json:"supplier" db:"supplier" bson:"supplier"`
	Quantity    int             `json:"quantity" db:"quantity" bson:"quantity"`
	CostPrice   decimal.Decimal `json:"cost_price" db:"cost_price" bson:"cost_price"`
	BoxPrice    decimal.Decimal `json:"box_price" db:"box_price" bson:"box_price"`
	Date        time.Time       `json:"date" db:"date" bson:"date"`
	Notes       string          `json:"notes" db:"notes" bson:"notes"`
}

// TotalCost is (costPrice + boxPrice) * quantity.
func (p Purchase) TotalCost() decimal.Decimal {
	return p.CostPrice.Add(p.BoxPrice).Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Sale is a completed customer order.
type Sale struct {
	ID              string          `json:"id" db:"id" bson:"_id"`
	OrderNumber     int64           `json:"order_number" db:"order_number" bson:"order_number"`
	ProductName     string          `json:"product_name" db:"product_name" bson:"product_name"`
	CustomerName    string          `json:"customer_name" db:"customer_name" bson:"customer_name"`
	Phone           string          `json:"phone" db:"phone" bson:"phone"`
	Email           string          `json:"email" db:"email" bson:"email"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address" bson:"shipping_address"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method" bson:"payment_method"`
	Quantity        int             `json:"quantity" db:"quantity" bson:"quantity"`
	SellingPrice    decimal.Decimal `json:"selling_price" db:"selling_price" bson:"selling_price"`
	WholesalePrice  decimal.Decimal `json:"wholesale_price" db:"wholesale_price" bson:"wholesale_price"`
	Expenses        decimal.Decimal `json:"expenses" db:"expenses" bson:"expenses"`
	Date            time.Time       `json:"date" db:"date" bson:"date"`
}

// Expense is an operating expense outside of any single sale.
type Expense struct {
	ID          string          `json:"id" db:"id" bson:"_id"`
	Description string          `json:"description" db:"description" bson:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount" bson:"amount"`
	Category    string          `json:"category" db:"category" bson:"category"`
	Date        time.Time       `json:"date" db:"date" bson:"date"`
	Notes       string          `json:"notes" db:"notes" bson:"notes"`
}

// Partner is a profit-sharing business partner. SharePercentage is a
// percentage in [0,100]; the sum across partners should be 100 but is not
// enforced (see ledger.Distribution.ShareDistributionValid).
type Partner struct {
	ID              string          `json:"id" db:"id" bson:"_id"`
	Name            string          `json:"name" db:"name" bson:"name"`
	SharePercentage decimal.Decimal `json:"share_percentage" db:"share_percentage" bson:"share_percentage"`
	Email           string          `json:"email" db:"email" bson:"email"`
	Phone           string          `json:"phone" db:"phone" bson:"phone"`
	Notes           string          `json:"notes" db:"notes" bson:"notes"`
	DateAdded       time.Time       `json:"date_added" db:"date_added" bson:"date_added"`
}

// Settings is the single business-wide configuration record.
type Settings struct {
	ReinvestmentPercentage decimal.Decimal `json:"reinvestment_percentage" db:"reinvestment_percentage" bson:"reinvestment_percentage"`
	CurrencyCode           string          `json:"currency_code" db:"currency_code" bson:"currency_code"`
	BusinessName           string          `json:"business_name" db:"business_name" bson:"business_name"`
	TaxRate                decimal.Decimal `json:"tax_rate" db:"tax_rate" bson:"tax_rate"`
}
