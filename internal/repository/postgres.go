package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"retail-backoffice-api/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore implements Store using PostgreSQL via the pgx stdlib driver.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := createPostgresTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("[PostgresStore] Initialized")
	return &PostgresStore{db: db}, nil
}

func createPostgresTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS items (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		barcode TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS inventory (
		id BIGSERIAL PRIMARY KEY,
		item_id BIGINT NOT NULL REFERENCES items(id),
		quantity INTEGER NOT NULL,
		min_stock_level INTEGER NOT NULL DEFAULT 5,
		location TEXT NOT NULL,
		last_updated TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_inventory_item ON inventory(item_id);
	CREATE TABLE IF NOT EXISTS purchases (
		id BIGSERIAL PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		total_amount DOUBLE PRECISION NOT NULL,
		payment_method TEXT NOT NULL,
		shipping_address TEXT NOT NULL DEFAULT '',
		purchase_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS purchase_lines (
		id BIGSERIAL PRIMARY KEY,
		purchase_id BIGINT NOT NULL REFERENCES purchases(id),
		item_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price DOUBLE PRECISION NOT NULL,
		total DOUBLE PRECISION NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_purchase_lines_purchase ON purchase_lines(purchase_id);
	`
	_, err := db.Exec(query)
	return err
}

// ListItems returns all items.
func (s *PostgresStore) ListItems(ctx context.Context) ([]model.Item, error) {
	query := `SELECT id, name, description, category, price, barcode, created_at, updated_at FROM items ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var i model.Item
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.Category, &i.Price, &i.Barcode, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// GetItem returns a single item or ErrItemNotFound.
func (s *PostgresStore) GetItem(ctx context.Context, id int64) (model.Item, error) {
	query := `SELECT id, name, description, category, price, barcode, created_at, updated_at FROM items WHERE id = $1`
	var i model.Item
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&i.ID, &i.Name, &i.Description, &i.Category, &i.Price, &i.Barcode, &i.CreatedAt, &i.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, ErrItemNotFound
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to get item: %w", err)
	}
	return i, nil
}

// CreateItem persists a new item and returns its assigned id.
func (s *PostgresStore) CreateItem(ctx context.Context, item model.Item) (int64, error) {
	query := `INSERT INTO items (name, description, category, price, barcode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		item.Name, item.Description, item.Category, item.Price, item.Barcode, item.CreatedAt, item.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create item: %w", err)
	}
	return id, nil
}

// UpdateItem full-replaces an existing item's mutable fields.
func (s *PostgresStore) UpdateItem(ctx context.Context, item model.Item) error {
	query := `UPDATE items SET name = $1, description = $2, category = $3, price = $4, barcode = $5, updated_at = $6 WHERE id = $7`
	res, err := s.db.ExecContext(ctx, query,
		item.Name, item.Description, item.Category, item.Price, item.Barcode, item.UpdatedAt, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// DeleteItem removes an item. Deleting an absent id is not an error.
func (s *PostgresStore) DeleteItem(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// ListInventory returns all records with the referenced item name resolved.
func (s *PostgresStore) ListInventory(ctx context.Context) ([]model.InventoryRecord, error) {
	query := `
		SELECT inv.id, inv.item_id, COALESCE(i.name, ''), inv.quantity, inv.min_stock_level, inv.location, inv.last_updated
		FROM inventory inv
		LEFT JOIN items i ON i.id = inv.item_id
		ORDER BY inv.id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var records []model.InventoryRecord
	for rows.Next() {
		var r model.InventoryRecord
		if err := rows.Scan(&r.ID, &r.ItemID, &r.ItemName, &r.Quantity, &r.MinStockLevel, &r.Location, &r.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan inventory record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CreateInventoryRecord persists a new record and returns its assigned id.
func (s *PostgresStore) CreateInventoryRecord(ctx context.Context, rec model.InventoryRecord) (int64, error) {
	query := `INSERT INTO inventory (item_id, quantity, min_stock_level, location, last_updated)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		rec.ItemID, rec.Quantity, rec.MinStockLevel, rec.Location, rec.LastUpdated).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create inventory record: %w", err)
	}
	return id, nil
}

// UpdateInventoryRecord full-replaces an existing record.
func (s *PostgresStore) UpdateInventoryRecord(ctx context.Context, rec model.InventoryRecord) error {
	query := `UPDATE inventory SET quantity = $1, min_stock_level = $2, location = $3, last_updated = $4 WHERE id = $5`
	res, err := s.db.ExecContext(ctx, query,
		rec.Quantity, rec.MinStockLevel, rec.Location, rec.LastUpdated, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update inventory record: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrInventoryRecordNotFound
	}
	return nil
}

// DeleteInventoryRecord removes a record. Deleting an absent id is not an error.
func (s *PostgresStore) DeleteInventoryRecord(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete inventory record: %w", err)
	}
	return nil
}

// ListPurchases returns all purchases with their embedded line items.
func (s *PostgresStore) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	query := `SELECT id, customer_name, customer_email, total_amount, payment_method, shipping_address, purchase_date, status
		FROM purchases ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	index := make(map[int64]int)
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.CustomerName, &p.CustomerEmail, &p.TotalAmount, &p.PaymentMethod, &p.ShippingAddress, &p.PurchaseDate, &p.Status); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		index[p.ID] = len(purchases)
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineQuery := `SELECT purchase_id, item_name, quantity, unit_price, total FROM purchase_lines ORDER BY purchase_id, id`
	lineRows, err := s.db.QueryContext(ctx, lineQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var purchaseID int64
		var line model.PurchaseLine
		if err := lineRows.Scan(&purchaseID, &line.ItemName, &line.Quantity, &line.UnitPrice, &line.Total); err != nil {
			return nil, fmt.Errorf("failed to scan purchase line: %w", err)
		}
		if i, ok := index[purchaseID]; ok {
			purchases[i].Lines = append(purchases[i].Lines, line)
		}
	}
	return purchases, lineRows.Err()
}

// CreatePurchase persists a completed purchase and its lines in one transaction.
func (s *PostgresStore) CreatePurchase(ctx context.Context, p model.Purchase) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO purchases (customer_name, customer_email, total_amount, payment_method, shipping_address, purchase_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, query,
		p.CustomerName, p.CustomerEmail, p.TotalAmount, p.PaymentMethod, p.ShippingAddress, p.PurchaseDate, p.Status).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create purchase: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO purchase_lines (purchase_id, item_name, quantity, unit_price, total) VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, line := range p.Lines {
		if _, err := stmt.ExecContext(ctx, id, line.ItemName, line.Quantity, line.UnitPrice, line.Total); err != nil {
			return 0, fmt.Errorf("failed to create purchase line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// Ping verifies the store is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
