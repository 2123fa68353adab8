package model

import "time"

// MenuItem mirrors the `menuItem` table. The menu is append-only; there
// is no update or delete operation. Price is stored as DECIMAL so that
// revenue sums are computed with exact decimal semantics in SQL.
//
// Fields:
//  ID          – menuItem.id
//  Title       – menuItem.title
//  Description – menuItem.description
//  Image       – menuItem.image
//  Price       – menuItem.price
type MenuItem struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// Order mirrors the `dinerOrder` table joined with its items. Orders are
// immutable once created; they survive deletion of the store or
// franchise they were placed against.
//
// Fields:
//  ID          – dinerOrder.id
//  DinerID     – dinerOrder.dinerId
//  FranchiseID – dinerOrder.franchiseId
//  StoreID     – dinerOrder.storeId
//  Date        – dinerOrder.date (creation time, UTC)
//  Items       – rows of orderItem for this order, in insertion order
type Order struct {
	ID          uint64      `json:"id"`
	DinerID     uint64      `json:"dinerId,omitempty"`
	FranchiseID uint64      `json:"franchiseId"`
	StoreID     uint64      `json:"storeId"`
	Date        time.Time   `json:"date"`
	Items       []OrderItem `json:"items"`
}

// OrderItem mirrors the `orderItem` table. Description and Price are
// denormalized copies captured at order time; later menu changes do not
// alter historical orders, and MenuID is not required to still exist.
//
// Fields:
//  ID          – orderItem.id
//  MenuID      – orderItem.menuId (reference, not enforced)
//  Description – orderItem.description (copy at order time)
//  Price       – orderItem.price (captured at order time)
type OrderItem struct {
	ID          uint64  `json:"id,omitempty"`
	MenuID      uint64  `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// OrderHistory is one page of a diner's order history.
type OrderHistory struct {
	DinerID uint64  `json:"dinerId"`
	Orders  []Order `json:"orders"`
	Page    int     `json:"page"`
}
