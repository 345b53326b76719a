package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/laundrydesk/laundrydesk/internal/model"
	"github.com/laundrydesk/laundrydesk/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	credentials model.CredentialMap
	session     *model.Account
	orders      map[model.OrderID]*model.Order
	tasks       map[model.TaskID]*model.Task
	staff       map[model.StaffID]*model.StaffMember
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		credentials: make(model.CredentialMap),
		orders:      make(map[model.OrderID]*model.Order),
		tasks:       make(map[model.TaskID]*model.Task),
		staff:       make(map[model.StaffID]*model.StaffMember),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Credential operations

func (s *Storage) LoadCredentials(ctx context.Context) (model.CredentialMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds := make(model.CredentialMap, len(s.credentials))
	maps.Copy(creds, s.credentials)
	return creds, nil
}

func (s *Storage) SaveCredentials(ctx context.Context, creds model.CredentialMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials = make(model.CredentialMap, len(creds))
	maps.Copy(s.credentials, creds)
	return nil
}

// Session operations

func (s *Storage) LoadSession(ctx context.Context) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, nil
	}
	account := *s.session
	return &account, nil
}

func (s *Storage) SaveSession(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := *account
	s.session = &snapshot
	return nil
}

func (s *Storage) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

// Order operations

func (s *Storage) SaveOrder(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
	return nil
}

func (s *Storage) GetOrder(ctx context.Context, id model.OrderID) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (s *Storage) ListOrders(ctx context.Context) ([]*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]*model.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *Storage) DeleteOrder(ctx context.Context, id model.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
	return nil
}

func (s *Storage) OrderExists(ctx context.Context, id model.OrderID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.orders[id]
	return ok, nil
}

// Dispatch task operations

func (s *Storage) SaveTask(ctx context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
	return nil
}

func (s *Storage) GetTask(ctx context.Context, id model.TaskID) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, model.ErrTaskNotFound
	}
	return task, nil
}

func (s *Storage) ListTasks(ctx context.Context) ([]*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]*model.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *Storage) GetTasksForOrder(ctx context.Context, orderID model.OrderID) ([]*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tasks []*model.Task
	for _, task := range s.tasks {
		if task.OrderID == orderID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *Storage) DeleteTasksForOrder(ctx context.Context, orderID model.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, task := range s.tasks {
		if task.OrderID == orderID {
			delete(s.tasks, id)
		}
	}
	return nil
}

// Staff operations

func (s *Storage) SaveStaff(ctx context.Context, member *model.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[member.ID] = member
	return nil
}

func (s *Storage) GetStaff(ctx context.Context, id model.StaffID) (*model.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.staff[id]
	if !ok {
		return nil, model.ErrStaffNotFound
	}
	return member, nil
}

func (s *Storage) ListStaff(ctx context.Context) ([]*model.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]*model.StaffMember, 0, len(s.staff))
	for _, member := range s.staff {
		members = append(members, member)
	}
	return members, nil
}
