package model

import "time"

// TaskID uniquely identifies a dispatch task
type TaskID string

// TaskKind distinguishes pickups from deliveries
type TaskKind string

const (
	TaskKindPickup   TaskKind = "pickup"
	TaskKindDelivery TaskKind = "delivery"
)

// TaskStatus represents the state of a dispatch task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"  // Scheduled, no driver en route
	TaskStatusEnRoute   TaskStatus = "en_route" // Driver on the way
	TaskStatusCompleted TaskStatus = "completed"
)

// Task represents a scheduled pickup or delivery for an order
type Task struct {
	ID         TaskID     `json:"id"`
	OrderID    OrderID    `json:"order_id"`
	Kind       TaskKind   `json:"kind"`
	Address    string     `json:"address"`
	Window     time.Time  `json:"window"` // start of the agreed time window
	Status     TaskStatus `json:"status"`
	AssignedTo StaffID    `json:"assigned_to,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsOpen reports whether the task still needs action
func (t *Task) IsOpen() bool {
	return t.Status != TaskStatusCompleted
}
