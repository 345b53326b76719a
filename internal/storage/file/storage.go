package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/laundrydesk/laundrydesk/internal/model"
	"github.com/laundrydesk/laundrydesk/internal/storage"
)

// Blob file names within the data directory
const (
	credentialsFile = "credentials.json"
	sessionFile     = "session.json"
	ordersFile      = "orders.json"
	tasksFile       = "tasks.json"
	staffFile       = "staff.json"
)

// Storage persists each record set as a JSON blob in a local directory.
// There is no cross-process locking: two concurrent processes can lose
// updates to the same blob (last write wins).
type Storage struct {
	mu  sync.Mutex
	dir string
}

// New creates a file storage instance rooted at dir, creating it if needed
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// readBlob unmarshals the named blob into out. A missing file or a blob
// that fails to parse both report ok=false without an error; only real I/O
// failures are returned. A failed unmarshal can leave a partial decode in
// out, so callers must discard out when ok is false.
func (s *Storage) readBlob(name string, out any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, nil
	}
	return true, nil
}

// writeBlob marshals v and replaces the named blob via temp file + rename
func (s *Storage) writeBlob(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (s *Storage) removeBlob(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", name, err)
	}
	return nil
}

// Credential operations

func (s *Storage) LoadCredentials(ctx context.Context) (model.CredentialMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds := make(model.CredentialMap)
	ok, err := s.readBlob(credentialsFile, &creds)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Absent or unparseable blob reads as empty; the next save
		// replaces it wholesale
		return make(model.CredentialMap), nil
	}
	return creds, nil
}

func (s *Storage) SaveCredentials(ctx context.Context, creds model.CredentialMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeBlob(credentialsFile, creds)
}

// Session operations

func (s *Storage) LoadSession(ctx context.Context) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var account model.Account
	ok, err := s.readBlob(sessionFile, &account)
	if err != nil {
		return nil, err
	}
	if !ok || account.ID == "" {
		// Absent or unparseable snapshot: clear the stored blob so the next
		// read starts clean, and report no session.
		if err := s.removeBlob(sessionFile); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &account, nil
}

func (s *Storage) SaveSession(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeBlob(sessionFile, account)
}

func (s *Storage) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeBlob(sessionFile)
}

// Order operations

func (s *Storage) loadOrders() (map[model.OrderID]*model.Order, error) {
	orders := make(map[model.OrderID]*model.Order)
	ok, err := s.readBlob(ordersFile, &orders)
	if err != nil {
		return nil, err
	}
	if !ok {
		return make(map[model.OrderID]*model.Order), nil
	}
	return orders, nil
}

func (s *Storage) SaveOrder(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := s.loadOrders()
	if err != nil {
		return err
	}
	orders[order.ID] = order
	return s.writeBlob(ordersFile, orders)
}

func (s *Storage) GetOrder(ctx context.Context, id model.OrderID) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}
	order, ok := orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (s *Storage) ListOrders(ctx context.Context) ([]*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}
	result := make([]*model.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, order)
	}
	return result, nil
}

func (s *Storage) DeleteOrder(ctx context.Context, id model.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := s.loadOrders()
	if err != nil {
		return err
	}
	delete(orders, id)
	return s.writeBlob(ordersFile, orders)
}

func (s *Storage) OrderExists(ctx context.Context, id model.OrderID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := s.loadOrders()
	if err != nil {
		return false, err
	}
	_, ok := orders[id]
	return ok, nil
}

// Dispatch task operations

func (s *Storage) loadTasks() (map[model.TaskID]*model.Task, error) {
	tasks := make(map[model.TaskID]*model.Task)
	ok, err := s.readBlob(tasksFile, &tasks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return make(map[model.TaskID]*model.Task), nil
	}
	return tasks, nil
}

func (s *Storage) SaveTask(ctx context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.loadTasks()
	if err != nil {
		return err
	}
	tasks[task.ID] = task
	return s.writeBlob(tasksFile, tasks)
}

func (s *Storage) GetTask(ctx context.Context, id model.TaskID) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.loadTasks()
	if err != nil {
		return nil, err
	}
	task, ok := tasks[id]
	if !ok {
		return nil, model.ErrTaskNotFound
	}
	return task, nil
}

func (s *Storage) ListTasks(ctx context.Context) ([]*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.loadTasks()
	if err != nil {
		return nil, err
	}
	result := make([]*model.Task, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, task)
	}
	return result, nil
}

func (s *Storage) GetTasksForOrder(ctx context.Context, orderID model.OrderID) ([]*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.loadTasks()
	if err != nil {
		return nil, err
	}
	var result []*model.Task
	for _, task := range tasks {
		if task.OrderID == orderID {
			result = append(result, task)
		}
	}
	return result, nil
}

func (s *Storage) DeleteTasksForOrder(ctx context.Context, orderID model.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.loadTasks()
	if err != nil {
		return err
	}
	for id, task := range tasks {
		if task.OrderID == orderID {
			delete(tasks, id)
		}
	}
	return s.writeBlob(tasksFile, tasks)
}

// Staff operations

func (s *Storage) loadStaff() (map[model.StaffID]*model.StaffMember, error) {
	staff := make(map[model.StaffID]*model.StaffMember)
	ok, err := s.readBlob(staffFile, &staff)
	if err != nil {
		return nil, err
	}
	if !ok {
		return make(map[model.StaffID]*model.StaffMember), nil
	}
	return staff, nil
}

func (s *Storage) SaveStaff(ctx context.Context, member *model.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, err := s.loadStaff()
	if err != nil {
		return err
	}
	staff[member.ID] = member
	return s.writeBlob(staffFile, staff)
}

func (s *Storage) GetStaff(ctx context.Context, id model.StaffID) (*model.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, err := s.loadStaff()
	if err != nil {
		return nil, err
	}
	member, ok := staff[id]
	if !ok {
		return nil, model.ErrStaffNotFound
	}
	return member, nil
}

func (s *Storage) ListStaff(ctx context.Context) ([]*model.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, err := s.loadStaff()
	if err != nil {
		return nil, err
	}
	result := make([]*model.StaffMember, 0, len(staff))
	for _, member := range staff {
		result = append(result, member)
	}
	return result, nil
}
