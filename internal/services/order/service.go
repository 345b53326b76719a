package order

import (
	"context"
	"fmt"
	"sort"

	"github.com/laundrydesk/laundrydesk/internal/dependencies/clock"
	"github.com/laundrydesk/laundrydesk/internal/dependencies/random"
	"github.com/laundrydesk/laundrydesk/internal/model"
	"github.com/laundrydesk/laundrydesk/internal/notify"
	"github.com/laundrydesk/laundrydesk/internal/services/staff"
	"github.com/laundrydesk/laundrydesk/internal/storage"
)

const (
	// ReferenceLength is the length of the random part of order references
	ReferenceLength = 6
	// ReferenceAlphabet is the characters used in references (avoid confusing chars)
	ReferenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// ReferencePrefix makes order references recognizable on tickets
	ReferencePrefix = "ORD-"
)

// Service manages the order workflow from intake to handover
type Service struct {
	storage      storage.Storage
	staffService *staff.Service
	clock        clock.Clock
	random       random.Random
	notifier     notify.Notifier
}

// New creates a new order Service
func New(
	storage storage.Storage,
	staffService *staff.Service,
	clock clock.Clock,
	random random.Random,
	notifier notify.Notifier,
) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		storage:      storage,
		staffService: staffService,
		clock:        clock,
		random:       random,
		notifier:     notifier,
	}
}

// Create takes in a new order in the received status
func (s *Service) Create(ctx context.Context, customerName, customerEmail string, items []model.OrderItem, notes string) (*model.Order, error) {
	now := s.clock.Now()

	// Generate unique order reference
	var id model.OrderID
	for {
		id = model.OrderID(ReferencePrefix + s.random.String(ReferenceLength, ReferenceAlphabet))
		exists, err := s.storage.OrderExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	order := &model.Order{
		ID:            id,
		CustomerName:  customerName,
		CustomerEmail: model.NormalizeEmail(customerEmail),
		Items:         items,
		Status:        model.OrderStatusReceived,
		Notes:         notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.storage.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("Order %s created", order.ID))
	return order, nil
}

// Get retrieves an order by reference
func (s *Service) Get(ctx context.Context, id model.OrderID) (*model.Order, error) {
	return s.storage.GetOrder(ctx, id)
}

// List returns all orders, newest first. A non-empty status filters the result.
func (s *Service) List(ctx context.Context, status model.OrderStatus) ([]*model.Order, error) {
	all, err := s.storage.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	orders := all
	if status != "" {
		orders = nil
		for _, order := range all {
			if order.Status == status {
				orders = append(orders, order)
			}
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// ProcessingQueue returns the orders currently on the floor, oldest first so
// attendants work in intake order
func (s *Service) ProcessingQueue(ctx context.Context) ([]*model.Order, error) {
	queue, err := s.List(ctx, model.OrderStatusProcessing)
	if err != nil {
		return nil, err
	}
	sort.Slice(queue, func(i, j int) bool {
		return queue[i].CreatedAt.Before(queue[j].CreatedAt)
	})
	return queue, nil
}

// Advance moves an order one step forward in the workflow
func (s *Service) Advance(ctx context.Context, id model.OrderID) (*model.Order, error) {
	order, err := s.storage.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.IsClosed() {
		return nil, model.ErrOrderClosed
	}

	next := order.NextStatus()
	return s.transition(ctx, order, next)
}

// MoveTo moves an order to an explicit status, validating the transition
func (s *Service) MoveTo(ctx context.Context, id model.OrderID, to model.OrderStatus) (*model.Order, error) {
	order, err := s.storage.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, to)
}

// Cancel closes an order without completing it. Orders already out with a
// driver or delivered cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, id model.OrderID) (*model.Order, error) {
	order, err := s.storage.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.IsClosed() {
		return nil, model.ErrOrderClosed
	}

	order, err = s.transition(ctx, order, model.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	// Open pickups/deliveries for a cancelled order are moot
	if err := s.storage.DeleteTasksForOrder(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

// Assign puts an active staff member on an order
func (s *Service) Assign(ctx context.Context, id model.OrderID, staffID model.StaffID) (*model.Order, error) {
	order, err := s.storage.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsClosed() {
		return nil, model.ErrOrderClosed
	}

	member, err := s.staffService.Get(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !member.Active {
		return nil, model.ErrStaffInactive
	}

	order.AssignedTo = member.ID
	order.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("Order %s assigned to %s", order.ID, member.Name))
	return order, nil
}

func (s *Service) transition(ctx context.Context, order *model.Order, to model.OrderStatus) (*model.Order, error) {
	if to == "" || !order.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, order.Status, to)
	}

	order.Status = to
	order.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("Order %s is now %s", order.ID, order.Status))
	return order, nil
}
