// internal/repository/mongodb/books_repository.go
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/princevibe/books-backend/internal/domain"
	"github.com/princevibe/books-backend/internal/store"
)

const (
	collInventory = "inventory_items"
	collPurchases = "purchases"
	collSales     = "sales"
	collExpenses  = "expenses"
	collPartners  = "partners"
	collSettings  = "settings"

	// settings is a single document with a fixed id
	settingsDocID = "business"
)

// BooksRepository implements the repository.Books interface for MongoDB.
// Monetary values are stored as decimal strings to keep exact precision
// across the wire.
type BooksRepository struct {
	client *mongo.Client
	dbName string
}

// NewBooksRepository connects and verifies the connection with a ping. The
// caller bounds ctx, so an unreachable cluster fails fast instead of
// blocking startup.
func NewBooksRepository(ctx context.Context, uri string, dbName string) (*BooksRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &BooksRepository{client: client, dbName: dbName}, nil
}

func (r *BooksRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Close closes the MongoDB connection.
func (r *BooksRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *BooksRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, nil); err != nil {
		return &domain.TransientIOError{Op: "mongodb ping", Err: err}
	}
	return nil
}

func (r *BooksRepository) Inventory(ctx context.Context) ([]domain.InventoryItem, error) {
	docs, err := loadAll[inventoryDoc](ctx, r.collection(collInventory))
	if err != nil {
		return nil, &domain.TransientIOError{Op: "load inventory", Err: err}
	}
	items := make([]domain.InventoryItem, 0, len(docs))
	for _, d := range docs {
		item, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("inventory item %s: %w", d.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *BooksRepository) Purchases(ctx context.Context) ([]domain.Purchase, error) {
	docs, err := loadAll[purchaseDoc](ctx, r.collection(collPurchases))
	if err != nil {
		return nil, &domain.TransientIOError{Op: "load purchases", Err: err}
	}
	purchases := make([]domain.Purchase, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("purchase %s: %w", d.ID, err)
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

func (r *BooksRepository) Sales(ctx context.Context) ([]domain.Sale, error) {
	docs, err := loadAll[saleDoc](ctx, r.collection(collSales))
	if err != nil {
		return nil, &domain.TransientIOError{Op: "load sales", Err: err}
	}
	sales := make([]domain.Sale, 0, len(docs))
	for _, d := range docs {
		s, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("sale %s: %w", d.ID, err)
		}
		sales = append(sales, s)
	}
	return sales, nil
}

func (r *BooksRepository) Expenses(ctx context.Context) ([]domain.Expense, error) {
	docs, err := loadAll[expenseDoc](ctx, r.collection(collExpenses))
	if err != nil {
		return nil, &domain.TransientIOError{Op: "load expenses", Err: err}
	}
	expenses := make([]domain.Expense, 0, len(docs))
	for _, d := range docs {
		e, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", d.ID, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (r *BooksRepository) Partners(ctx context.Context) ([]domain.Partner, error) {
	docs, err := loadAll[partnerDoc](ctx, r.collection(collPartners))
	if err != nil {
		return nil, &domain.TransientIOError{Op: "load partners", Err: err}
	}
	partners := make([]domain.Partner, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("partner %s: %w", d.ID, err)
		}
		partners = append(partners, p)
	}
	return partners, nil
}

func (r *BooksRepository) Settings(ctx context.Context) (domain.Settings, error) {
	var doc settingsDoc
	err := r.collection(collSettings).FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return store.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, &domain.TransientIOError{Op: "load settings", Err: err}
	}
	return doc.toDomain()
}

// Replace clears each collection and rewrites it from the snapshot. Writes
// upsert on _id so a retried migration cannot duplicate records. There is
// no cross-collection transaction; a failure leaves earlier collections
// written, which the migration flow tolerates.
func (r *BooksRepository) Replace(ctx context.Context, snap *store.Snapshot) error {
	if err := replaceCollection(ctx, r.collection(collInventory), mapDocs(snap.Inventory, newInventoryDoc)); err != nil {
		return &domain.TransientIOError{Op: "replace inventory", Err: err}
	}
	if err := replaceCollection(ctx, r.collection(collPurchases), mapDocs(snap.Purchases, newPurchaseDoc)); err != nil {
		return &domain.TransientIOError{Op: "replace purchases", Err: err}
	}
	if err := replaceCollection(ctx, r.collection(collSales), mapDocs(snap.Sales, newSaleDoc)); err != nil {
		return &domain.TransientIOError{Op: "replace sales", Err: err}
	}
	if err := replaceCollection(ctx, r.collection(collExpenses), mapDocs(snap.Expenses, newExpenseDoc)); err != nil {
		return &domain.TransientIOError{Op: "replace expenses", Err: err}
	}
	if err := replaceCollection(ctx, r.collection(collPartners), mapDocs(snap.Partners, newPartnerDoc)); err != nil {
		return &domain.TransientIOError{Op: "replace partners", Err: err}
	}

	settings := newSettingsDoc(snap.Settings)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection(collSettings).ReplaceOne(ctx, bson.M{"_id": settingsDocID}, settings, opts); err != nil {
		return &domain.TransientIOError{Op: "replace settings", Err: err}
	}
	return nil
}

func (r *BooksRepository) Clear(ctx context.Context) error {
	for _, name := range []string{collInventory, collPurchases, collSales, collExpenses, collPartners, collSettings} {
		if _, err := r.collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return &domain.TransientIOError{Op: "clear " + name, Err: err}
		}
	}
	return nil
}

type identifiable interface {
	docID() string
}

func loadAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func replaceCollection(ctx context.Context, coll *mongo.Collection, docs []identifiable) error {
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.docID()}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	_, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	return err
}

func mapDocs[S any](records []S, convert func(S) identifiable) []identifiable {
	docs := make([]identifiable, 0, len(records))
	for _, rec := range records {
		docs = append(docs, convert(rec))
	}
	return docs
}

// Document types mirror the domain records with decimals as strings.

type inventoryDoc struct {
	ID             string    `bson:"_id"`
	ProductNumber  int64     `bson:"product_number"`
	Name           string    `bson:"name"`
	StockQuantity  int       `bson:"stock_quantity"`
	WholesalePrice string    `bson:"wholesale_price"`
	BoxPrice       string    `bson:"box_price"`
	MarketingCost  string    `bson:"marketing_cost"`
	DeliveryCost   string    `bson:"delivery_cost"`
	FinalPrice     string    `bson:"final_price"`
	DateAdded      time.Time `bson:"date_added"`
	LastUpdated    time.Time `bson:"last_updated"`
}

func (d inventoryDoc) docID() string { return d.ID }

func newInventoryDoc(item domain.InventoryItem) identifiable {
	return inventoryDoc{
		ID:             item.ID,
		ProductNumber:  item.ProductNumber,
		Name:           item.Name,
		StockQuantity:  item.StockQuantity,
		WholesalePrice: item.WholesalePrice.String(),
		BoxPrice:       item.BoxPrice.String(),
		MarketingCost:  item.MarketingCost.String(),
		DeliveryCost:   item.DeliveryCost.String(),
		FinalPrice:     item.FinalPrice.String(),
		DateAdded:      item.DateAdded,
		LastUpdated:    item.LastUpdated,
	}
}

func (d inventoryDoc) toDomain() (domain.InventoryItem, error) {
	amounts, err := parseDecimals(d.WholesalePrice, d.BoxPrice, d.MarketingCost, d.DeliveryCost, d.FinalPrice)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	return domain.InventoryItem{
		ID:             d.ID,
		ProductNumber:  d.ProductNumber,
		Name:           d.Name,
		StockQuantity:  d.StockQuantity,
		WholesalePrice: amounts[0],
		BoxPrice:       amounts[1],
		MarketingCost:  amounts[2],
		DeliveryCost:   amounts[3],
		FinalPrice:     amounts[4],
		DateAdded:      d.DateAdded,
		LastUpdated:    d.LastUpdated,
	}, nil
}

type purchaseDoc struct {
	ID          string    `bson:"_id"`
	ProductName string    `bson:"product_name"`
	Supplier    string    `bson:"supplier"`
	Quantity    int       `bson:"quantity"`
	CostPrice   string    `bson:"cost_price"`
	BoxPrice    string    `bson:"box_price"`
	Date        time.Time `bson:"date"`
	Notes       string    `bson:"notes"`
}

func (d purchaseDoc) docID() string { return d.ID }

func newPurchaseDoc(p domain.Purchase) identifiable {
	return purchaseDoc{
		ID:          p.ID,
		ProductName: p.ProductName,
		Supplier:    p.Supplier,
		Quantity:    p.Quantity,
		CostPrice:   p.CostPrice.String(),
		BoxPrice:    p.BoxPrice.String(),
		Date:        p.Date,
		Notes:       p.Notes,
	}
}

func (d purchaseDoc) toDomain() (domain.Purchase, error) {
	amounts, err := parseDecimals(d.CostPrice, d.BoxPrice)
	if err != nil {
		return domain.Purchase{}, err
	}
	return domain.Purchase{
		ID:          d.ID,
		ProductName: d.ProductName,
		Supplier:    d.Supplier,
		Quantity:    d.Quantity,
		CostPrice:   amounts[0],
		BoxPrice:    amounts[1],
		Date:        d.Date,
		Notes:       d.Notes,
	}, nil
}

type saleDoc struct {
	ID              string    `bson:"_id"`
	OrderNumber     int64     `bson:"order_number"`
	ProductName     string    `bson:"product_name"`
	CustomerName    string    `bson:"customer_name"`
	Phone           string    `bson:"phone"`
	Email           string    `bson:"email"`
	ShippingAddress string    `bson:"shipping_address"`
	PaymentMethod   string    `bson:"payment_method"`
	Quantity        int       `bson:"quantity"`
	SellingPrice    string    `bson:"selling_price"`
	WholesalePrice  string    `bson:"wholesale_price"`
	Expenses        string    `bson:"expenses"`
	Date            time.Time `bson:"date"`
}

func (d saleDoc) docID() string { return d.ID }

func newSaleDoc(s domain.Sale) identifiable {
	return saleDoc{
		ID:              s.ID,
		OrderNumber:     s.OrderNumber,
		ProductName:     s.ProductName,
		CustomerName:    s.CustomerName,
		Phone:           s.Phone,
		Email:           s.Email,
		ShippingAddress: s.ShippingAddress,
		PaymentMethod:   s.PaymentMethod,
		Quantity:        s.Quantity,
		SellingPrice:    s.SellingPrice.String(),
		WholesalePrice:  s.WholesalePrice.String(),
		Expenses:        s.Expenses.String(),
		Date:            s.Date,
	}
}

func (d saleDoc) toDomain() (domain.Sale, error) {
	amounts, err := parseDecimals(d.SellingPrice, d.WholesalePrice, d.Expenses)
	if err != nil {
		return domain.Sale{}, err
	}
	return domain.Sale{
		ID:              d.ID,
		OrderNumber:     d.OrderNumber,
		ProductName:     d.ProductName,
		CustomerName:    d.CustomerName,
		Phone:           d.Phone,
		Email:           d.Email,
		ShippingAddress: d.ShippingAddress,
		PaymentMethod:   d.PaymentMethod,
		Quantity:        d.Quantity,
		SellingPrice:    amounts[0],
		WholesalePrice:  amounts[1],
		Expenses:        amounts[2],
		Date:            d.Date,
	}, nil
}

type expenseDoc struct {
	ID          string    `bson:"_id"`
	Description string    `bson:"description"`
	Amount      string    `bson:"amount"`
	Category    string    `bson:"category"`
	Date        time.Time `bson:"date"`
	Notes       string    `bson:"notes"`
}

func (d expenseDoc) docID() string { return d.ID }

func newExpenseDoc(e domain.Expense) identifiable {
	return expenseDoc{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.String(),
		Category:    e.Category,
		Date:        e.Date,
		Notes:       e.Notes,
	}
}

func (d expenseDoc) toDomain() (domain.Expense, error) {
	amounts, err := parseDecimals(d.Amount)
	if err != nil {
		return domain.Expense{}, err
	}
	return domain.Expense{
		ID:          d.ID,
		Description: d.Description,
		Amount:      amounts[0],
		Category:    d.Category,
		Date:        d.Date,
		Notes:       d.Notes,
	}, nil
}

type partnerDoc struct {
	ID              string    `bson:"_id"`
	Name            string    `bson:"name"`
	SharePercentage string    `bson:"share_percentage"`
	Email           string    `bson:"email"`
	Phone           string    `bson:"phone"`
	Notes           string    `bson:"notes"`
	DateAdded       time.Time `bson:"date_added"`
}

func (d partnerDoc) docID() string { return d.ID }

func newPartnerDoc(p domain.Partner) identifiable {
	return partnerDoc{
		ID:              p.ID,
		Name:            p.Name,
		SharePercentage: p.SharePercentage.String(),
		Email:           p.Email,
		Phone:           p.Phone,
		Notes:           p.Notes,
		DateAdded:       p.DateAdded,
	}
}

func (d partnerDoc) toDomain() (domain.Partner, error) {
	amounts, err := parseDecimals(d.SharePercentage)
	if err != nil {
		return domain.Partner{}, err
	}
	return domain.Partner{
		ID:              d.ID,
		Name:            d.Name,
		SharePercentage: amounts[0],
		Email:           d.Email,
		Phone:           d.Phone,
		Notes:           d.Notes,
		DateAdded:       d.DateAdded,
	}, nil
}

type settingsDoc struct {
	ID                     string `bson:"_id"`
	ReinvestmentPercentage string `bson:"reinvestment_percentage"`
	CurrencyCode           string `bson:"currency_code"`
	BusinessName           string `bson:"business_name"`
	TaxRate                string `bson:"tax_rate"`
}

func newSettingsDoc(s domain.Settings) settingsDoc {
	return settingsDoc{
		ID:                     settingsDocID,
		ReinvestmentPercentage: s.ReinvestmentPercentage.String(),
		CurrencyCode:           s.CurrencyCode,
		BusinessName:           s.BusinessName,
		TaxRate:                s.TaxRate.String(),
	}
}

func (d settingsDoc) toDomain() (domain.Settings, error) {
	amounts, err := parseDecimals(d.ReinvestmentPercentage, d.TaxRate)
	if err != nil {
		return domain.Settings{}, err
	}
	return domain.Settings{
		ReinvestmentPercentage: amounts[0],
		CurrencyCode:           d.CurrencyCode,
		BusinessName:           d.BusinessName,
		TaxRate:                amounts[1],
	}, nil
}

func parseDecimals(values ...string) ([]decimal.Decimal, error) {
	parsed := make([]decimal.Decimal, len(values))
	for i, v := range values {
		if v == "" {
			parsed[i] = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("bad decimal %q: %w", v, err)
		}
		parsed[i] = d
	}
	return parsed, nil
}
