// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderPlacedEvent is published when an order has been persisted. It
// carries enough information for downstream consumers to notify or run
// analytics without querying the primary database. Fulfillment outcome
// is deliberately absent: the order is a historical record whether or
// not the factory succeeded.
type OrderPlacedEvent struct {
	OrderID     uint64  `json:"order_id"`
	DinerID     uint64  `json:"diner_id"`
	FranchiseID uint64  `json:"franchise_id"`
	StoreID     uint64  `json:"store_id"`
	ItemCount   int     `json:"item_count"`
	Total       float64 `json:"total"`
	PlacedAt    string  `json:"placed_at"`
}
