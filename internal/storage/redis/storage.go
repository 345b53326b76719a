package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/laundrydesk/laundrydesk/internal/model"
	"github.com/laundrydesk/laundrydesk/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Credential operations

func (s *Storage) LoadCredentials(ctx context.Context) (model.CredentialMap, error) {
	creds := make(model.CredentialMap)

	data, err := s.client.Get(ctx, credentialsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return creds, nil
		}
		return nil, err
	}

	// An unparseable blob reads as empty; the next save replaces it wholesale
	if err := json.Unmarshal(data, &creds); err != nil {
		return make(model.CredentialMap), nil
	}
	return creds, nil
}

func (s *Storage) SaveCredentials(ctx context.Context, creds model.CredentialMap) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, credentialsKey(), data, 0).Err()
}

// Session operations

func (s *Storage) LoadSession(ctx context.Context) (*model.Account, error) {
	data, err := s.client.Get(ctx, sessionKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil || account.ID == "" {
		// Unparseable snapshot: clear it and report no session
		if err := s.client.Del(ctx, sessionKey()).Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &account, nil
}

func (s *Storage) SaveSession(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(), data, 0).Err()
}

func (s *Storage) ClearSession(ctx context.Context) error {
	return s.client.Del(ctx, sessionKey()).Err()
}

// Order operations

func (s *Storage) SaveOrder(ctx context.Context, order *model.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, orderKey(order.ID), data, 0)
	pipe.SAdd(ctx, ordersIndexKey(), string(order.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetOrder(ctx context.Context, id model.OrderID) (*model.Order, error) {
	data, err := s.client.Get(ctx, orderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	var order model.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Storage) ListOrders(ctx context.Context) ([]*model.Order, error) {
	ids, err := s.client.SMembers(ctx, ordersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	orders := make([]*model.Order, 0, len(ids))
	for _, id := range ids {
		order, err := s.GetOrder(ctx, model.OrderID(id))
		if errors.Is(err, model.ErrOrderNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *Storage) DeleteOrder(ctx context.Context, id model.OrderID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, orderKey(id))
	pipe.SRem(ctx, ordersIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) OrderExists(ctx context.Context, id model.OrderID) (bool, error) {
	exists, err := s.client.Exists(ctx, orderKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Dispatch task operations

func (s *Storage) SaveTask(ctx context.Context, task *model.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, taskKey(task.ID), data, 0)
	pipe.SAdd(ctx, tasksIndexKey(), string(task.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTask(ctx context.Context, id model.TaskID) (*model.Task, error) {
	data, err := s.client.Get(ctx, taskKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTaskNotFound
		}
		return nil, err
	}

	var task model.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Storage) ListTasks(ctx context.Context) ([]*model.Task, error) {
	ids, err := s.client.SMembers(ctx, tasksIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	tasks := make([]*model.Task, 0, len(ids))
	for _, id := range ids {
		task, err := s.GetTask(ctx, model.TaskID(id))
		if errors.Is(err, model.ErrTaskNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *Storage) GetTasksForOrder(ctx context.Context, orderID model.OrderID) ([]*model.Task, error) {
	all, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	var tasks []*model.Task
	for _, task := range all {
		if task.OrderID == orderID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *Storage) DeleteTasksForOrder(ctx context.Context, orderID model.OrderID) error {
	tasks, err := s.GetTasksForOrder(ctx, orderID)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, task := range tasks {
		pipe.Del(ctx, taskKey(task.ID))
		pipe.SRem(ctx, tasksIndexKey(), string(task.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Staff operations

func (s *Storage) SaveStaff(ctx context.Context, member *model.StaffMember) error {
	data, err := json.Marshal(member)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, staffKey(member.ID), data, 0)
	pipe.SAdd(ctx, staffIndexKey(), string(member.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStaff(ctx context.Context, id model.StaffID) (*model.StaffMember, error) {
	data, err := s.client.Get(ctx, staffKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStaffNotFound
		}
		return nil, err
	}

	var member model.StaffMember
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Storage) ListStaff(ctx context.Context) ([]*model.StaffMember, error) {
	ids, err := s.client.SMembers(ctx, staffIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	members := make([]*model.StaffMember, 0, len(ids))
	for _, id := range ids {
		member, err := s.GetStaff(ctx, model.StaffID(id))
		if errors.Is(err, model.ErrStaffNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}
