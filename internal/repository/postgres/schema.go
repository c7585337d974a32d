package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id TEXT PRIMARY KEY,
		product_number BIGINT NOT NULL DEFAULT 0,
		name TEXT NOT NULL,
		stock_quantity INT NOT NULL DEFAULT 0,
		wholesale_price NUMERIC(14,4) NOT NULL DEFAULT 0,
		box_price NUMERIC(14,4) NOT NULL DEFAULT 0,
		marketing_cost NUMERIC(14,4) NOT NULL DEFAULT 0,
		delivery_cost NUMERIC(14,4) NOT NULL DEFAULT 0,
		final_price NUMERIC(14,4) NOT NULL DEFAULT 0,
		date_added TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS purchases (
		id TEXT PRIMARY KEY,
		product_name TEXT NOT NULL,
		supplier TEXT NOT NULL DEFAULT '',
		quantity INT NOT NULL DEFAULT 0,
		cost_price NUMERIC(14,4) NOT NULL DEFAULT 0,
		box_price NUMERIC(14,4) NOT NULL DEFAULT 0,
		date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id TEXT PRIMARY KEY,
		order_number BIGINT NOT NULL DEFAULT 0,
		product_name TEXT NOT NULL,
		customer_name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		shipping_address TEXT NOT NULL DEFAULT '',
		payment_method TEXT NOT NULL DEFAULT '',
		quantity INT NOT NULL DEFAULT 0,
		selling_price NUMERIC(14,4) NOT NULL DEFAULT 0,
		wholesale_price NUMERIC(14,4) NOT NULL DEFAULT 0,
		expenses NUMERIC(14,4) NOT NULL DEFAULT 0,
		date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		amount NUMERIC(14,4) NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS partners (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		share_percentage NUMERIC(7,4) NOT NULL DEFAULT 0,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		date_added TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id INT PRIMARY KEY,
		reinvestment_percentage NUMERIC(7,4) NOT NULL DEFAULT 70,
		currency_code TEXT NOT NULL DEFAULT 'PKR',
		business_name TEXT NOT NULL DEFAULT '',
		tax_rate NUMERIC(7,4) NOT NULL DEFAULT 0
	)`,
}

// EnsureSchema creates the ledger tables if they do not exist. It takes a
// plain *sql.DB so both the server pool and the pgx-backed CLI can use it.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
