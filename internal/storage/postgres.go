package storage

import (
	"database/sql"
	"fmt"
	"time"

	"tableside/internal/domain"
)

// PostgresStore is the shared-database backend. Order lines keep the item
// name and price captured at order time; no join back to menu_items.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			availability BOOLEAN NOT NULL DEFAULT TRUE,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			table_number INT NOT NULL,
			customer_name TEXT NOT NULL DEFAULT '',
			total_amount NUMERIC(10,2) NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(id),
			menu_item_id TEXT NOT NULL,
			menu_item_name TEXT NOT NULL,
			quantity INT NOT NULL,
			price NUMERIC(10,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_meta (
			seeded_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return s.seedCatalogOnce()
}

// seedCatalogOnce inserts the default menu on first boot only. The marker
// row keeps an admin's wholesale delete from resurrecting the seed items:
// an empty menu_items table after seeding means the catalog really is empty.
func (s *PostgresStore) seedCatalogOnce() error {
	var count int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM catalog_meta").Scan(&count); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, item := range domain.SeedMenu() {
		if _, err := tx.Exec(`
			INSERT INTO menu_items (id, name, description, price, category, image_url, availability, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.Name, item.Description, item.Price,
			item.Category, item.ImageURL, item.Availability, i); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("INSERT INTO catalog_meta (seeded_at) VALUES ($1)", time.Now()); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PostgresStore) LoadMenu() ([]domain.MenuItem, error) {
	rows, err := s.DB.Query(`
		SELECT id, name, description, price, category, image_url, availability
		FROM menu_items
		ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
			&item.Category, &item.ImageURL, &item.Availability); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// SaveMenu replaces the whole catalog, matching the wholesale write
// contract of the other backends.
func (s *PostgresStore) SaveMenu(items []domain.MenuItem) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM menu_items"); err != nil {
		return err
	}
	for i, item := range items {
		if _, err := tx.Exec(`
			INSERT INTO menu_items (id, name, description, price, category, image_url, availability, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.Name, item.Description, item.Price,
			item.Category, item.ImageURL, item.Availability, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) LoadOrders() ([]domain.Order, error) {
	rows, err := s.DB.Query(`
		SELECT id, table_number, customer_name, total_amount, status, created_at, updated_at
		FROM orders
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.TableNumber, &order.CustomerName,
			&order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			continue
		}
		orders = append(orders, order)
	}

	for i := range orders {
		items, err := s.loadOrderItems(orders[i].ID)
		if err != nil {
			continue
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *PostgresStore) loadOrderItems(orderID string) ([]domain.OrderLine, error) {
	rows, err := s.DB.Query(`
		SELECT id, order_id, menu_item_id, menu_item_name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderLine
	for rows.Next() {
		var item domain.OrderLine
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID,
			&item.MenuItemName, &item.Quantity, &item.Price); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *PostgresStore) GetOrder(id string) (*domain.Order, error) {
	var order domain.Order
	err := s.DB.QueryRow(`
		SELECT id, table_number, customer_name, total_amount, status, created_at, updated_at
		FROM orders WHERE id = $1`, id).
		Scan(&order.ID, &order.TableNumber, &order.CustomerName,
			&order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.loadOrderItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (s *PostgresStore) AppendOrder(order domain.Order) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO orders (id, table_number, customer_name, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.ID, order.TableNumber, order.CustomerName, order.TotalAmount,
		order.Status, order.CreatedAt, order.UpdatedAt); err != nil {
		return err
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (id, order_id, menu_item_id, menu_item_name, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.OrderID, item.MenuItemID, item.MenuItemName,
			item.Quantity, item.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) UpdateOrderStatus(id string, status domain.OrderStatus, updatedAt time.Time) error {
	result, err := s.DB.Exec(
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3",
		status, updatedAt, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
