package dispatch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/laundrydesk/laundrydesk/internal/dependencies/clock"
	"github.com/laundrydesk/laundrydesk/internal/model"
	"github.com/laundrydesk/laundrydesk/internal/notify"
	"github.com/laundrydesk/laundrydesk/internal/services/order"
	"github.com/laundrydesk/laundrydesk/internal/services/staff"
	"github.com/laundrydesk/laundrydesk/internal/storage"
)

// Service schedules pickup and delivery runs and keeps the order workflow in
// step with them: sending a delivery out moves the order out for delivery,
// completing it closes the order as delivered.
type Service struct {
	storage      storage.Storage
	orderService *order.Service
	staffService *staff.Service
	clock        clock.Clock
	notifier     notify.Notifier
}

// New creates a new dispatch Service
func New(
	storage storage.Storage,
	orderService *order.Service,
	staffService *staff.Service,
	clock clock.Clock,
	notifier notify.Notifier,
) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		storage:      storage,
		orderService: orderService,
		staffService: staffService,
		clock:        clock,
		notifier:     notifier,
	}
}

// SchedulePickup books a pickup run for an open order
func (s *Service) SchedulePickup(ctx context.Context, orderID model.OrderID, address string, window time.Time) (*model.Task, error) {
	ord, err := s.orderService.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord.IsClosed() {
		return nil, model.ErrOrderClosed
	}

	return s.createTask(ctx, orderID, model.TaskKindPickup, address, window)
}

// ScheduleDelivery books a delivery run for an order that is ready
func (s *Service) ScheduleDelivery(ctx context.Context, orderID model.OrderID, address string, window time.Time) (*model.Task, error) {
	ord, err := s.orderService.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord.Status != model.OrderStatusReady {
		return nil, model.ErrOrderNotReady
	}

	return s.createTask(ctx, orderID, model.TaskKindDelivery, address, window)
}

// Get retrieves a task by ID
func (s *Service) Get(ctx context.Context, id model.TaskID) (*model.Task, error) {
	return s.storage.GetTask(ctx, id)
}

// List returns tasks sorted by window. A non-empty kind filters the result;
// openOnly drops completed tasks.
func (s *Service) List(ctx context.Context, kind model.TaskKind, openOnly bool) ([]*model.Task, error) {
	all, err := s.storage.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	var tasks []*model.Task
	for _, task := range all {
		if kind != "" && task.Kind != kind {
			continue
		}
		if openOnly && !task.IsOpen() {
			continue
		}
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Window.Before(tasks[j].Window)
	})
	return tasks, nil
}

// ForOrder returns the tasks booked against an order
func (s *Service) ForOrder(ctx context.Context, orderID model.OrderID) ([]*model.Task, error) {
	return s.storage.GetTasksForOrder(ctx, orderID)
}

// Assign puts a driver on a task. Sending a driver out on a delivery moves
// the order out for delivery; reassigning a delivery already en route only
// swaps the driver. Validation happens before anything is persisted, so a
// failed assignment leaves both the task and the order untouched.
func (s *Service) Assign(ctx context.Context, id model.TaskID, staffID model.StaffID) (*model.Task, error) {
	task, err := s.storage.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == model.TaskStatusCompleted {
		return nil, model.ErrTaskCompleted
	}

	driver, err := s.staffService.Driver(ctx, staffID)
	if err != nil {
		return nil, err
	}

	var sendOut bool
	if task.Kind == model.TaskKindDelivery {
		ord, err := s.orderService.Get(ctx, task.OrderID)
		if err != nil {
			return nil, err
		}
		switch ord.Status {
		case model.OrderStatusReady:
			sendOut = true
		case model.OrderStatusOutForDelivery:
			// Already out; this is a driver swap
		default:
			if ord.IsClosed() {
				return nil, model.ErrOrderClosed
			}
			return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, ord.Status, model.OrderStatusOutForDelivery)
		}
	}

	task.AssignedTo = driver.ID
	task.Status = model.TaskStatusEnRoute
	task.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveTask(ctx, task); err != nil {
		return nil, err
	}

	if sendOut {
		if _, err := s.orderService.MoveTo(ctx, task.OrderID, model.OrderStatusOutForDelivery); err != nil {
			return nil, err
		}
	}

	s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("%s for %s assigned to %s", task.Kind, task.OrderID, driver.Name))
	return task, nil
}

// Complete closes out a task. A completed pickup moves the order into
// processing; a completed delivery closes the order as delivered.
func (s *Service) Complete(ctx context.Context, id model.TaskID) (*model.Task, error) {
	task, err := s.storage.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == model.TaskStatusCompleted {
		return nil, model.ErrTaskCompleted
	}

	task.Status = model.TaskStatusCompleted
	task.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveTask(ctx, task); err != nil {
		return nil, err
	}

	switch task.Kind {
	case model.TaskKindPickup:
		// The order may have been moved onto the floor by hand already
		ord, err := s.orderService.Get(ctx, task.OrderID)
		if err != nil {
			return nil, err
		}
		if ord.Status == model.OrderStatusReceived {
			if _, err := s.orderService.MoveTo(ctx, task.OrderID, model.OrderStatusProcessing); err != nil {
				return nil, err
			}
		}
	case model.TaskKindDelivery:
		if _, err := s.orderService.MoveTo(ctx, task.OrderID, model.OrderStatusDelivered); err != nil {
			return nil, err
		}
	}

	s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("%s for %s completed", task.Kind, task.OrderID))
	return task, nil
}

func (s *Service) createTask(ctx context.Context, orderID model.OrderID, kind model.TaskKind, address string, window time.Time) (*model.Task, error) {
	now := s.clock.Now()

	task := &model.Task{
		ID:        model.TaskID(uuid.NewString()),
		OrderID:   orderID,
		Kind:      kind,
		Address:   address,
		Window:    window,
		Status:    model.TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveTask(ctx, task); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("%s scheduled for %s", kind, orderID))
	return task, nil
}
