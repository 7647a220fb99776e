package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"retail-backoffice-api/internal/model"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore implements Store using MySQL.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates a new MySQL-backed store.
// dsn must include parseTime=true so DATETIME columns scan into time.Time.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	if err := createMySQLTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("[MySQLStore] Initialized")
	return &MySQLStore{db: db}, nil
}

func createMySQLTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			category VARCHAR(64) NOT NULL,
			price DOUBLE NOT NULL,
			barcode VARCHAR(128) NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			item_id BIGINT NOT NULL,
			quantity INT NOT NULL,
			min_stock_level INT NOT NULL DEFAULT 5,
			location VARCHAR(64) NOT NULL,
			last_updated DATETIME NOT NULL,
			INDEX idx_inventory_item (item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS purchases (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			customer_name VARCHAR(255) NOT NULL,
			customer_email VARCHAR(255) NOT NULL,
			total_amount DOUBLE NOT NULL,
			payment_method VARCHAR(64) NOT NULL,
			shipping_address TEXT,
			purchase_date DATETIME NOT NULL,
			status VARCHAR(32) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS purchase_lines (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			purchase_id BIGINT NOT NULL,
			item_name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			unit_price DOUBLE NOT NULL,
			total DOUBLE NOT NULL,
			INDEX idx_purchase_lines_purchase (purchase_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ListItems returns all items.
func (s *MySQLStore) ListItems(ctx context.Context) ([]model.Item, error) {
	query := `SELECT id, name, COALESCE(description, ''), category, price, barcode, created_at, updated_at FROM items ORDER BY id`
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
func (s *MySQLStore) GetItem(ctx context.Context, id int64) (model.Item, error) {
	query := `SELECT id, name, COALESCE(description, ''), category, price, barcode, created_at, updated_at FROM items WHERE id = ?`
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
func (s *MySQLStore) CreateItem(ctx context.Context, item model.Item) (int64, error) {
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
func (s *MySQLStore) UpdateItem(ctx context.Context, item model.Item) error {
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
func (s *MySQLStore) DeleteItem(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// ListInventory returns all records with the referenced item name resolved.
func (s *MySQLStore) ListInventory(ctx context.Context) ([]model.InventoryRecord, error) {
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
func (s *MySQLStore) CreateInventoryRecord(ctx context.Context, rec model.InventoryRecord) (int64, error) {
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
func (s *MySQLStore) UpdateInventoryRecord(ctx context.Context, rec model.InventoryRecord) error {
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
func (s *MySQLStore) DeleteInventoryRecord(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete inventory record: %w", err)
	}
	return nil
}

// ListPurchases returns all purchases with their embedded line items.
func (s *MySQLStore) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	query := `SELECT id, customer_name, customer_email, total_amount, payment_method, COALESCE(shipping_address, ''), purchase_date, status
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
func (s *MySQLStore) CreatePurchase(ctx context.Context, p model.Purchase) (int64, error) {
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
func (s *MySQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
