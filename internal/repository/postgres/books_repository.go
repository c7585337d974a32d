// internal/repository/postgres/books_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/princevibe/books-backend/internal/domain"
	"github.com/princevibe/books-backend/internal/store"
)

// ledgerTables lists every table the store owns.
var ledgerTables = []string{
	"inventory_items", "purchases", "sales", "expenses", "partners", "settings",
}

type booksRepository struct {
	db *DB
}

func NewBooksRepository(db *DB) *booksRepository {
	return &booksRepository{db: db}
}

func (r *booksRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return &domain.TransientIOError{Op: "postgres ping", Err: err}
	}
	return nil
}

func (r *booksRepository) Inventory(ctx context.Context) ([]domain.InventoryItem, error) {
	items := []domain.InventoryItem{}
	query := `
		SELECT id, product_number, name, stock_quantity, wholesale_price,
		       box_price, marketing_cost, delivery_cost, final_price,
		       date_added, last_updated
		FROM inventory_items
		ORDER BY product_number, name
	`
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, &domain.TransientIOError{Op: "load inventory", Err: err}
	}
	return items, nil
}

func (r *booksRepository) Purchases(ctx context.Context) ([]domain.Purchase, error) {
	purchases := []domain.Purchase{}
	query := `
		SELECT id, product_name, supplier, quantity, cost_price, box_price,
		       date, notes
		FROM purchases
		ORDER BY date, id
	`
	if err := r.db.SelectContext(ctx, &purchases, query); err != nil {
		return nil, &domain.TransientIOError{Op: "load purchases", Err: err}
	}
	return purchases, nil
}

func (r *booksRepository) Sales(ctx context.Context) ([]domain.Sale, error) {
	sales := []domain.Sale{}
	query := `
		SELECT id, order_number, product_name, customer_name, phone, email,
		       shipping_address, payment_method, quantity, selling_price,
		       wholesale_price, expenses, date
		FROM sales
		ORDER BY date, id
	`
	if err := r.db.SelectContext(ctx, &sales, query); err != nil {
		return nil, &domain.TransientIOError{Op: "load sales", Err: err}
	}
	return sales, nil
}

func (r *booksRepository) Expenses(ctx context.Context) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	query := `
		SELECT id, description, amount, category, date, notes
		FROM expenses
		ORDER BY date, id
	`
	if err := r.db.SelectContext(ctx, &expenses, query); err != nil {
		return nil, &domain.TransientIOError{Op: "load expenses", Err: err}
	}
	return expenses, nil
}

func (r *booksRepository) Partners(ctx context.Context) ([]domain.Partner, error) {
	partners := []domain.Partner{}
	query := `
		SELECT id, name, share_percentage, email, phone, notes, date_added
		FROM partners
		ORDER BY date_added, id
	`
	if err := r.db.SelectContext(ctx, &partners, query); err != nil {
		return nil, &domain.TransientIOError{Op: "load partners", Err: err}
	}
	return partners, nil
}

func (r *booksRepository) Settings(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings
	query := `
		SELECT reinvestment_percentage, currency_code, business_name, tax_rate
		FROM settings
		WHERE id = 1
	`
	err := r.db.GetContext(ctx, &settings, query)
	if errors.Is(err, sql.ErrNoRows) {
		return store.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, &domain.TransientIOError{Op: "load settings", Err: err}
	}
	return settings, nil
}

// Replace swaps the whole dataset inside a single transaction. Inserts
// upsert on the record ID so a retried migration lands on the same rows.
func (r *booksRepository) Replace(ctx context.Context, snap *store.Snapshot) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := clearTables(ctx, tx); err != nil {
			return err
		}
		if err := insertInventory(ctx, tx, snap.Inventory); err != nil {
			return err
		}
		if err := insertPurchases(ctx, tx, snap.Purchases); err != nil {
			return err
		}
		if err := insertSales(ctx, tx, snap.Sales); err != nil {
			return err
		}
		if err := insertExpenses(ctx, tx, snap.Expenses); err != nil {
			return err
		}
		if err := insertPartners(ctx, tx, snap.Partners); err != nil {
			return err
		}
		return upsertSettings(ctx, tx, snap.Settings)
	})
}

func (r *booksRepository) Clear(ctx context.Context) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return clearTables(ctx, tx)
	})
}

func clearTables(ctx context.Context, tx *sql.Tx) error {
	for _, table := range ledgerTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func insertInventory(ctx context.Context, tx *sql.Tx, items []domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			id, product_number, name, stock_quantity, wholesale_price,
			box_price, marketing_cost, delivery_cost, final_price,
			date_added, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			product_number = EXCLUDED.product_number,
			name = EXCLUDED.name,
			stock_quantity = EXCLUDED.stock_quantity,
			wholesale_price = EXCLUDED.wholesale_price,
			box_price = EXCLUDED.box_price,
			marketing_cost = EXCLUDED.marketing_cost,
			delivery_cost = EXCLUDED.delivery_cost,
			final_price = EXCLUDED.final_price,
			date_added = EXCLUDED.date_added,
			last_updated = EXCLUDED.last_updated
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare inventory insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err := stmt.ExecContext(ctx,
			item.ID, item.ProductNumber, item.Name, item.StockQuantity,
			item.WholesalePrice, item.BoxPrice, item.MarketingCost,
			item.DeliveryCost, item.FinalPrice, item.DateAdded, item.LastUpdated,
		)
		if err != nil {
			return fmt.Errorf("failed to insert inventory item %s: %w", item.ID, err)
		}
	}
	return nil
}

func insertPurchases(ctx context.Context, tx *sql.Tx, purchases []domain.Purchase) error {
	query := `
		INSERT INTO purchases (
			id, product_name, supplier, quantity, cost_price, box_price,
			date, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			supplier = EXCLUDED.supplier,
			quantity = EXCLUDED.quantity,
			cost_price = EXCLUDED.cost_price,
			box_price = EXCLUDED.box_price,
			date = EXCLUDED.date,
			notes = EXCLUDED.notes
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare purchase insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range purchases {
		_, err := stmt.ExecContext(ctx,
			p.ID, p.ProductName, p.Supplier, p.Quantity, p.CostPrice,
			p.BoxPrice, p.Date, p.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert purchase %s: %w", p.ID, err)
		}
	}
	return nil
}

func insertSales(ctx context.Context, tx *sql.Tx, sales []domain.Sale) error {
	query := `
		INSERT INTO sales (
			id, order_number, product_name, customer_name, phone, email,
			shipping_address, payment_method, quantity, selling_price,
			wholesale_price, expenses, date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			order_number = EXCLUDED.order_number,
			product_name = EXCLUDED.product_name,
			customer_name = EXCLUDED.customer_name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			shipping_address = EXCLUDED.shipping_address,
			payment_method = EXCLUDED.payment_method,
			quantity = EXCLUDED.quantity,
			selling_price = EXCLUDED.selling_price,
			wholesale_price = EXCLUDED.wholesale_price,
			expenses = EXCLUDED.expenses,
			date = EXCLUDED.date
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare sale insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range sales {
		_, err := stmt.ExecContext(ctx,
			s.ID, s.OrderNumber, s.ProductName, s.CustomerName, s.Phone,
			s.Email, s.ShippingAddress, s.PaymentMethod, s.Quantity,
			s.SellingPrice, s.WholesalePrice, s.Expenses, s.Date,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale %s: %w", s.ID, err)
		}
	}
	return nil
}

func insertExpenses(ctx context.Context, tx *sql.Tx, expenses []domain.Expense) error {
	query := `
		INSERT INTO expenses (id, description, amount, category, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			category = EXCLUDED.category,
			date = EXCLUDED.date,
			notes = EXCLUDED.notes
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare expense insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range expenses {
		_, err := stmt.ExecContext(ctx, e.ID, e.Description, e.Amount, e.Category, e.Date, e.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", e.ID, err)
		}
	}
	return nil
}

func insertPartners(ctx context.Context, tx *sql.Tx, partners []domain.Partner) error {
	query := `
		INSERT INTO partners (id, name, share_percentage, email, phone, notes, date_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			share_percentage = EXCLUDED.share_percentage,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			notes = EXCLUDED.notes,
			date_added = EXCLUDED.date_added
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare partner insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range partners {
		_, err := stmt.ExecContext(ctx, p.ID, p.Name, p.SharePercentage, p.Email, p.Phone, p.Notes, p.DateAdded)
		if err != nil {
			return fmt.Errorf("failed to insert partner %s: %w", p.ID, err)
		}
	}
	return nil
}

func upsertSettings(ctx context.Context, tx *sql.Tx, settings domain.Settings) error {
	query := `
		INSERT INTO settings (id, reinvestment_percentage, currency_code, business_name, tax_rate)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			reinvestment_percentage = EXCLUDED.reinvestment_percentage,
			currency_code = EXCLUDED.currency_code,
			business_name = EXCLUDED.business_name,
			tax_rate = EXCLUDED.tax_rate
	`
	if _, err := tx.ExecContext(ctx, query,
		settings.ReinvestmentPercentage, settings.CurrencyCode,
		settings.BusinessName, settings.TaxRate,
	); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
