package repository

import (
	"context"
	"time"
)

// Status represents the fulfillment state of an order.
// The only defined transition is pending -> fulfilled.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
)

// LineItem is one product snapshot inside an order. ProductID is a weak
// reference kept for annotation only; it may dangle once the product is
// deleted from the catalog and is never dereferenced for integrity.
type LineItem struct {
	ProductID string
	Name      string
	Price     string
	Quantity  int
}

// Order represents a customer order. Products and TotalCost are denormalized
// snapshots captured at submission time and never re-read from the catalog.
type Order struct {
	ID            string
	Email         string
	CustomerName  string
	Address       string
	PaymentMethod string
	Products      []LineItem
	TotalCost     string
	Status        Status
	Date          time.Time
}

// OrderRepository defines storage access for the orders collection.
// Orders are never deleted.
type OrderRepository interface {
	// Insert persists a new order and returns it with the store-assigned id.
	Insert(ctx context.Context, order Order) (Order, error)

	// ListAll returns every order, unfiltered.
	ListAll(ctx context.Context) ([]Order, error)

	// UpdateStatus sets the status of an order and returns the updated
	// document. Returns ErrNotFound if the id does not exist.
	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
}
