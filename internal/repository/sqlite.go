package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"

	"retail-backoffice-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteStore implements Store using SQLite.
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-backed store.
// dbPath is the path to the SQLite database file (e.g., "./data/backoffice.db")
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Open with WAL mode and other optimizations
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0) // Keep connection alive

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteStore] Initialized with database: %s", dbPath)
	return &SQLiteStore{db: db}, nil
}

func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		price REAL NOT NULL,
		barcode TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS inventory (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id INTEGER NOT NULL REFERENCES items(id),
		quantity INTEGER NOT NULL,
		min_stock_level INTEGER NOT NULL DEFAULT 5,
		location TEXT NOT NULL,
		last_updated DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_inventory_item ON inventory(item_id);
	CREATE TABLE IF NOT EXISTS purchases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		total_amount REAL NOT NULL,
		payment_method TEXT NOT NULL,
		shipping_address TEXT NOT NULL DEFAULT '',
		purchase_date DATETIME NOT NULL,
		status TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS purchase_lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		purchase_id INTEGER NOT NULL REFERENCES purchases(id),
		item_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price REAL NOT NULL,
		total REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_purchase_lines_purchase ON purchase_lines(purchase_id);
	`
	_, err := db.Exec(query)
	return err
}

// ListItems returns all items.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

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
func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, description, category, price, barcode, created_at, updated_at FROM items WHERE id = ?`
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
func (s *SQLiteStore) CreateItem(ctx context.Context, item model.Item) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `INSERT INTO items (name, description, category, price, barcode, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query,
		item.Name, item.Description, item.Category, item.Price, item.Barcode, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create item: %w", err)
	}
	return res.LastInsertId()
}

// UpdateItem full-replaces an existing item's mutable fields.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `UPDATE items SET name = ?, description = ?, category = ?, price = ?, barcode = ?, updated_at = ? WHERE id = ?`
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
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// ListInventory returns all records with the referenced item name resolved.
func (s *SQLiteStore) ListInventory(ctx context.Context) ([]model.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

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
func (s *SQLiteStore) CreateInventoryRecord(ctx context.Context, rec model.InventoryRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `INSERT INTO inventory (item_id, quantity, min_stock_level, location, last_updated)
		VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query,
		rec.ItemID, rec.Quantity, rec.MinStockLevel, rec.Location, rec.LastUpdated)
	if err != nil {
		return 0, fmt.Errorf("failed to create inventory record: %w", err)
	}
	return res.LastInsertId()
}

// UpdateInventoryRecord full-replaces an existing record.
func (s *SQLiteStore) UpdateInventoryRecord(ctx context.Context, rec model.InventoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `UPDATE inventory SET quantity = ?, min_stock_level = ?, location = ?, last_updated = ? WHERE id = ?`
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
func (s *SQLiteStore) DeleteInventoryRecord(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete inventory record: %w", err)
	}
	return nil
}

// ListPurchases returns all purchases with their embedded line items.
func (s *SQLiteStore) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

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
func (s *SQLiteStore) CreatePurchase(ctx context.Context, p model.Purchase) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO purchases (customer_name, customer_email, total_amount, payment_method, shipping_address, purchase_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, query,
		p.CustomerName, p.CustomerEmail, p.TotalAmount, p.PaymentMethod, p.ShippingAddress, p.PurchaseDate, p.Status)
	if err != nil {
		return 0, fmt.Errorf("failed to create purchase: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO purchase_lines (purchase_id, item_name, quantity, unit_price, total) VALUES (?, ?, ?, ?, ?)`)
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
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
