package model

import "time"

// OrderID is a human-readable order reference
type OrderID string

// OrderStatus represents where an order sits in the shop workflow
type OrderStatus string

const (
	OrderStatusReceived       OrderStatus = "received"         // Taken in, not yet on the floor
	OrderStatusProcessing     OrderStatus = "processing"       // Being washed/cleaned
	OrderStatusReady          OrderStatus = "ready"            // Done, awaiting handover
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery" // With a driver
	OrderStatusDelivered      OrderStatus = "delivered"        // Closed
	OrderStatusCancelled      OrderStatus = "cancelled"        // Closed without completion
)

// ServiceType identifies the kind of treatment an order line requests
type ServiceType string

const (
	ServiceWashFold ServiceType = "wash_fold"
	ServiceDryClean ServiceType = "dry_clean"
	ServiceIroning  ServiceType = "ironing"
)

// OrderItem is a single line on an order
type OrderItem struct {
	Service  ServiceType `json:"service"`
	Quantity int         `json:"quantity"`
}

// Order represents a customer order moving through the shop
type Order struct {
	ID            OrderID     `json:"id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email,omitempty"` // normalized when set
	Items         []OrderItem `json:"items"`
	Status        OrderStatus `json:"status"`
	AssignedTo    StaffID     `json:"assigned_to,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// orderTransitions maps each status to the statuses reachable from it
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusReceived:       {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:     {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// CanTransition reports whether the order may move to the given status
func (o *Order) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[o.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatus returns the default forward step in the workflow, or "" if the
// order is closed or waiting on dispatch
func (o *Order) NextStatus() OrderStatus {
	switch o.Status {
	case OrderStatusReceived:
		return OrderStatusProcessing
	case OrderStatusProcessing:
		return OrderStatusReady
	case OrderStatusReady:
		return OrderStatusDelivered
	case OrderStatusOutForDelivery:
		return OrderStatusDelivered
	default:
		return ""
	}
}

// IsClosed reports whether the order has reached a terminal status
func (o *Order) IsClosed() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// TotalPieces returns the summed quantity across all items
func (o *Order) TotalPieces() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
