package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/pizza-order-service/internal/model"
)

// OrderRepo owns the `menuItem`, `dinerOrder` and `orderItem` tables.
// PerPage fixes the order-history page size.
type OrderRepo struct {
	DB      *sql.DB
	PerPage int
}

func NewOrderRepo(db *sql.DB, perPage int) *OrderRepo {
	if perPage < 1 {
		perPage = 10
	}
	return &OrderRepo{DB: db, PerPage: perPage}
}

// Menu returns the full menu listing.
func (r *OrderRepo) Menu(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, description, image, price FROM menuItem ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	menu := []model.MenuItem{}
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Image, &m.Price); err != nil {
			return nil, err
		}
		menu = append(menu, m)
	}
	return menu, rows.Err()
}

// AddMenuItem appends an item to the menu. The menu is append-only;
// every call inserts a new row.
func (r *OrderRepo) AddMenuItem(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO menuItem (title, description, image, price) VALUES (?, ?, ?, ?)`,
		item.Title, item.Description, item.Image, item.Price)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *item
	out.ID = uint64(id)
	return &out, nil
}

// OrdersForUser returns one page of the diner's order history, each
// order populated with its items in insertion order. Pages below 1
// behave as page 1.
func (r *OrderRepo) OrdersForUser(ctx context.Context, userID uint64, page int) (*model.OrderHistory, error) {
	if page < 1 {
		page = 1
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, franchiseId, storeId, date FROM dinerOrder
		 WHERE dinerId=? ORDER BY id LIMIT ?, ?`,
		userID, offset(page, r.PerPage), r.PerPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.FranchiseID, &o.StoreID, &o.Date); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].Items, err = r.itemsFor(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return &model.OrderHistory{DinerID: userID, Orders: orders, Page: page}, nil
}

// Create persists the order row and all of its items in one
// transaction. Item description and price are stored as captured at
// order time; later menu changes never touch them.
func (r *OrderRepo) Create(ctx context.Context, dinerID uint64, o *model.Order) (*model.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	date := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO dinerOrder (dinerId, franchiseId, storeId, date) VALUES (?, ?, ?, ?)`,
		dinerID, o.FranchiseID, o.StoreID, date)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, len(o.Items))
	for i, it := range o.Items {
		ires, err := tx.ExecContext(ctx,
			`INSERT INTO orderItem (orderId, menuId, description, price) VALUES (?, ?, ?, ?)`,
			orderID, it.MenuID, it.Description, it.Price)
		if err != nil {
			return nil, err
		}
		itemID, err := ires.LastInsertId()
		if err != nil {
			return nil, err
		}
		items[i] = model.OrderItem{ID: uint64(itemID), MenuID: it.MenuID, Description: it.Description, Price: it.Price}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Order{
		ID:          uint64(orderID),
		DinerID:     dinerID,
		FranchiseID: o.FranchiseID,
		StoreID:     o.StoreID,
		Date:        date,
		Items:       items,
	}, nil
}

// itemsFor loads an order's items in insertion order.
func (r *OrderRepo) itemsFor(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, menuId, description, price FROM orderItem WHERE orderId=? ORDER BY id`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.MenuID, &it.Description, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
