package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"po2so/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  path TEXT NOT NULL,
  format TEXT NOT NULL,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'received',
  soNumber TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(path, hash)
);

CREATE TABLE IF NOT EXISTS sales_orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  documentId INTEGER NOT NULL,
  soNumber TEXT NOT NULL UNIQUE,
  soDate TEXT NOT NULL,
  clientName TEXT,
  clientPhone TEXT,
  clientEmail TEXT,
  clientAddress TEXT,
  poNumber TEXT,
  creationDate TEXT,
  dueDate TEXT,
  paymentTerms TEXT,
  subtotal REAL,
  tax REAL,
  shipping REAL,
  totalAmount REAL,
  shipToName TEXT,
  shipToAddress TEXT,
  shipToPhone TEXT,
  comments TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(documentId) REFERENCES documents(id)
);
CREATE INDEX IF NOT EXISTS idx_sales_orders_soNumber ON sales_orders(soNumber);

CREATE TABLE IF NOT EXISTS line_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  orderId INTEGER NOT NULL,
  position INTEGER NOT NULL,
  itemCode TEXT,
  description TEXT,
  quantity REAL,
  unitPrice REAL,
  totalPrice REAL,
  FOREIGN KEY(orderId) REFERENCES sales_orders(id)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  documentId INTEGER,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(documentId) REFERENCES documents(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertDocument(path, format, hash, status string) (internal.DocumentRow, error) {
	_, err := d.conn.Exec(`
INSERT INTO documents (path, format, hash, status)
VALUES (?, ?, ?, ?)
ON CONFLICT(path, hash) DO UPDATE SET
  format=excluded.format,
  updatedAt=CURRENT_TIMESTAMP
`, path, format, hash, status)
	if err != nil {
		return internal.DocumentRow{}, err
	}

	row, err := d.GetDocumentByPathHash(path, hash)
	if err != nil {
		return internal.DocumentRow{}, err
	}
	if row == nil {
		return internal.DocumentRow{}, errors.New("failed to upsert document")
	}
	return *row, nil
}

func (d *DB) GetDocumentByPathHash(path, hash string) (*internal.DocumentRow, error) {
	var row internal.DocumentRow
	err := d.conn.QueryRow(`
SELECT id, path, format, hash, status, soNumber, createdAt, updatedAt
FROM documents WHERE path = ? AND hash = ?
`, path, hash).Scan(
		&row.ID, &row.Path, &row.Format, &row.Hash, &row.Status, &row.SONumber, &row.CreatedAt, &row.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) UpdateDocumentStatus(documentID int, status string, soNumber *string) error {
	_, err := d.conn.Exec(`
UPDATE documents SET status = ?, soNumber = COALESCE(?, soNumber), updatedAt = CURRENT_TIMESTAMP
WHERE id = ?
`, status, soNumber, documentID)
	return err
}

// ClearDocumentOrders removes a document's previous order and line items
// so the document can be reprocessed.
func (d *DB) ClearDocumentOrders(documentID int) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query(`SELECT id FROM sales_orders WHERE documentId = ?`, documentID)
	if err != nil {
		return err
	}
	var orderIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return err
		}
		orderIDs = append(orderIDs, id)
	}
	_ = rows.Close()

	for _, id := range orderIDs {
		if _, err := tx.Exec(`DELETE FROM line_items WHERE orderId = ?`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM sales_orders WHERE id = ?`, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) InsertOrder(documentID int, so internal.SalesOrder) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	rec := so.Record
	result, err := tx.Exec(`
INSERT INTO sales_orders (
  documentId, soNumber, soDate,
  clientName, clientPhone, clientEmail, clientAddress,
  poNumber, creationDate, dueDate, paymentTerms,
  subtotal, tax, shipping, totalAmount,
  shipToName, shipToAddress, shipToPhone, comments
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, documentID, so.SONumber, so.SODate,
		rec.ClientInfo.Name, rec.ClientInfo.Phone, rec.ClientInfo.Email, rec.ClientInfo.Address,
		rec.PODetails.PONumber, rec.PODetails.CreationDate, rec.PODetails.DueDate, rec.PODetails.PaymentTerms,
		rec.PODetails.Subtotal, rec.PODetails.Tax, rec.PODetails.Shipping, rec.PODetails.TotalAmount,
		rec.ShipTo.Name, rec.ShipTo.Address, rec.ShipTo.Phone, rec.PODetails.Comments,
	)
	if err != nil {
		return 0, err
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
INSERT INTO line_items (orderId, position, itemCode, description, quantity, unitPrice, totalPrice)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, item := range rec.LineItems {
		if _, err := stmt.Exec(orderID, i+1, item.ItemCode, item.Description, item.Quantity, item.UnitPrice, item.TotalPrice); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

func (d *DB) GetOrderBySONumber(soNumber string) (*internal.OrderRow, error) {
	var row internal.OrderRow
	rec := &row.Order.Record
	err := d.conn.QueryRow(`
SELECT id, documentId, soNumber, soDate,
       clientName, clientPhone, clientEmail, clientAddress,
       poNumber, creationDate, dueDate, paymentTerms,
       subtotal, tax, shipping, totalAmount,
       shipToName, shipToAddress, shipToPhone, comments
FROM sales_orders WHERE soNumber = ?
`, soNumber).Scan(
		&row.ID, &row.DocumentID, &row.SONumber, &row.SODate,
		&rec.ClientInfo.Name, &rec.ClientInfo.Phone, &rec.ClientInfo.Email, &rec.ClientInfo.Address,
		&rec.PODetails.PONumber, &rec.PODetails.CreationDate, &rec.PODetails.DueDate, &rec.PODetails.PaymentTerms,
		&rec.PODetails.Subtotal, &rec.PODetails.Tax, &rec.PODetails.Shipping, &rec.PODetails.TotalAmount,
		&rec.ShipTo.Name, &rec.ShipTo.Address, &rec.ShipTo.Phone, &rec.PODetails.Comments,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	row.Order.SONumber = row.SONumber
	row.Order.SODate = row.SODate

	items, err := d.listLineItems(row.ID)
	if err != nil {
		return nil, err
	}
	row.Order.Record.LineItems = items
	return &row, nil
}

func (d *DB) listLineItems(orderID int) ([]internal.LineItem, error) {
	rows, err := d.conn.Query(`
SELECT itemCode, description, quantity, unitPrice, totalPrice
FROM line_items WHERE orderId = ? ORDER BY position ASC
`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.LineItem
	for rows.Next() {
		var item internal.LineItem
		if err := rows.Scan(&item.ItemCode, &item.Description, &item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (d *DB) ListOrders(limit int) ([]internal.OrderRow, error) {
	rows, err := d.conn.Query(`
SELECT soNumber FROM sales_orders ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var soNumbers []string
	for rows.Next() {
		var so string
		if err := rows.Scan(&so); err != nil {
			return nil, err
		}
		soNumbers = append(soNumbers, so)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]internal.OrderRow, 0, len(soNumbers))
	for _, so := range soNumbers {
		row, err := d.GetOrderBySONumber(so)
		if err != nil {
			return nil, err
		}
		if row != nil {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (d *DB) InsertRun(traceID string, documentID int, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, documentId, timingsJson, countsJson) VALUES (?, ?, ?, ?)`,
		traceID, documentID, string(timingsJSON), string(countsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (d *DB) MustOrderBySONumber(soNumber string) (internal.OrderRow, error) {
	row, err := d.GetOrderBySONumber(soNumber)
	if err != nil {
		return internal.OrderRow{}, err
	}
	if row == nil {
		return internal.OrderRow{}, fmt.Errorf("sales order not found: %s", soNumber)
	}
	return *row, nil
}
