package storage

import (
	"context"

	"github.com/laundrydesk/laundrydesk/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Credential operations. The credential mapping is a single logical
	// record: callers load the whole mapping, mutate it in memory, and save
	// it back. LoadCredentials returns an empty mapping when the persisted
	// blob is absent or does not parse; shape failures are never surfaced.
	LoadCredentials(ctx context.Context) (model.CredentialMap, error)
	SaveCredentials(ctx context.Context, creds model.CredentialMap) error

	// Session snapshot operations. LoadSession returns (nil, nil) when no
	// snapshot is stored; an unparseable snapshot is cleared in place and
	// likewise reported as absent.
	LoadSession(ctx context.Context) (*model.Account, error)
	SaveSession(ctx context.Context, account *model.Account) error
	ClearSession(ctx context.Context) error

	// Order operations
	SaveOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, id model.OrderID) (*model.Order, error)
	ListOrders(ctx context.Context) ([]*model.Order, error)
	DeleteOrder(ctx context.Context, id model.OrderID) error
	OrderExists(ctx context.Context, id model.OrderID) (bool, error)

	// Dispatch task operations
	SaveTask(ctx context.Context, task *model.Task) error
	GetTask(ctx context.Context, id model.TaskID) (*model.Task, error)
	ListTasks(ctx context.Context) ([]*model.Task, error)
	GetTasksForOrder(ctx context.Context, orderID model.OrderID) ([]*model.Task, error)
	DeleteTasksForOrder(ctx context.Context, orderID model.OrderID) error

	// Staff operations
	SaveStaff(ctx context.Context, member *model.StaffMember) error
	GetStaff(ctx context.Context, id model.StaffID) (*model.StaffMember, error)
	ListStaff(ctx context.Context) ([]*model.StaffMember, error)
}
