package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/laundrydesk/laundrydesk/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Credential tests

func (s *StorageSuite) TestLoadCredentialsInitiallyEmpty() {
	creds, err := s.storage.LoadCredentials(s.ctx)
	s.Require().NoError(err)
	s.Empty(creds)
}

func (s *StorageSuite) TestSaveAndLoadCredentials() {
	creds := model.CredentialMap{
		"jane@example.com": {
			Password: "pw1",
			Account:  model.Account{ID: "a1", Email: "jane@example.com", Name: "Jane"},
		},
	}

	s.Require().NoError(s.storage.SaveCredentials(s.ctx, creds))

	loaded, err := s.storage.LoadCredentials(s.ctx)
	s.Require().NoError(err)
	s.Equal(creds, loaded)
}

func (s *StorageSuite) TestCorruptCredentialsReadAsEmpty() {
	s.Require().NoError(s.mini.Set(credentialsKey(), "{not json"))

	creds, err := s.storage.LoadCredentials(s.ctx)
	s.Require().NoError(err)
	s.Empty(creds)
}

func (s *StorageSuite) TestMistypedCredentialsReadAsEmpty() {
	blob := `{"a@b.com":{"password":"pw1","user":{"id":"a1","email":"a@b.com","name":"A"}},"b@c.com":{"password":5}}`
	s.Require().NoError(s.mini.Set(credentialsKey(), blob))

	creds, err := s.storage.LoadCredentials(s.ctx)
	s.Require().NoError(err)
	s.Empty(creds)
}

// Session tests

func (s *StorageSuite) TestLoadSessionInitiallyAbsent() {
	account, err := s.storage.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Nil(account)
}

func (s *StorageSuite) TestSaveAndLoadSession() {
	account := &model.Account{ID: "a1", Email: "jane@example.com", Name: "Jane"}

	s.Require().NoError(s.storage.SaveSession(s.ctx, account))

	loaded, err := s.storage.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Equal(account, loaded)
}

func (s *StorageSuite) TestCorruptSessionClearedOnLoad() {
	s.Require().NoError(s.mini.Set(sessionKey(), "{not json"))

	account, err := s.storage.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Nil(account)

	s.False(s.mini.Exists(sessionKey()))
}

func (s *StorageSuite) TestClearSession() {
	_ = s.storage.SaveSession(s.ctx, &model.Account{ID: "a1"})

	s.Require().NoError(s.storage.ClearSession(s.ctx))

	account, err := s.storage.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Nil(account)
}

// Order tests

func (s *StorageSuite) TestSaveAndGetOrder() {
	order := &model.Order{ID: "ORD-AAAAAA", CustomerName: "Jane", Status: model.OrderStatusReceived}

	s.Require().NoError(s.storage.SaveOrder(s.ctx, order))

	retrieved, err := s.storage.GetOrder(s.ctx, "ORD-AAAAAA")
	s.Require().NoError(err)
	s.Equal(order.CustomerName, retrieved.CustomerName)
}

func (s *StorageSuite) TestGetOrderNotFound() {
	_, err := s.storage.GetOrder(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrOrderNotFound)
}

func (s *StorageSuite) TestListOrdersUsesIndex() {
	_ = s.storage.SaveOrder(s.ctx, &model.Order{ID: "ORD-AAAAAA"})
	_ = s.storage.SaveOrder(s.ctx, &model.Order{ID: "ORD-BBBBBB"})

	orders, err := s.storage.ListOrders(s.ctx)
	s.Require().NoError(err)
	s.Len(orders, 2)
}

func (s *StorageSuite) TestDeleteOrderRemovesFromIndex() {
	_ = s.storage.SaveOrder(s.ctx, &model.Order{ID: "ORD-AAAAAA"})

	s.Require().NoError(s.storage.DeleteOrder(s.ctx, "ORD-AAAAAA"))

	orders, err := s.storage.ListOrders(s.ctx)
	s.Require().NoError(err)
	s.Empty(orders)
}

func (s *StorageSuite) TestOrderExists() {
	exists, err := s.storage.OrderExists(s.ctx, "ORD-AAAAAA")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveOrder(s.ctx, &model.Order{ID: "ORD-AAAAAA"})

	exists, err = s.storage.OrderExists(s.ctx, "ORD-AAAAAA")
	s.Require().NoError(err)
	s.True(exists)
}

// Task tests

func (s *StorageSuite) TestSaveAndGetTask() {
	task := &model.Task{ID: "t1", OrderID: "ORD-AAAAAA", Kind: model.TaskKindPickup}

	s.Require().NoError(s.storage.SaveTask(s.ctx, task))

	retrieved, err := s.storage.GetTask(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(task.OrderID, retrieved.OrderID)
}

func (s *StorageSuite) TestGetTasksForOrder() {
	_ = s.storage.SaveTask(s.ctx, &model.Task{ID: "t1", OrderID: "ORD-AAAAAA"})
	_ = s.storage.SaveTask(s.ctx, &model.Task{ID: "t2", OrderID: "ORD-BBBBBB"})

	tasks, err := s.storage.GetTasksForOrder(s.ctx, "ORD-AAAAAA")
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(model.TaskID("t1"), tasks[0].ID)
}

func (s *StorageSuite) TestDeleteTasksForOrder() {
	_ = s.storage.SaveTask(s.ctx, &model.Task{ID: "t1", OrderID: "ORD-AAAAAA"})
	_ = s.storage.SaveTask(s.ctx, &model.Task{ID: "t2", OrderID: "ORD-AAAAAA"})
	_ = s.storage.SaveTask(s.ctx, &model.Task{ID: "t3", OrderID: "ORD-BBBBBB"})

	s.Require().NoError(s.storage.DeleteTasksForOrder(s.ctx, "ORD-AAAAAA"))

	tasks, err := s.storage.ListTasks(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(model.TaskID("t3"), tasks[0].ID)
}

// Staff tests

func (s *StorageSuite) TestSaveAndGetStaff() {
	member := &model.StaffMember{ID: "s1", Name: "Sam", Role: model.RoleDriver, Active: true}

	s.Require().NoError(s.storage.SaveStaff(s.ctx, member))

	retrieved, err := s.storage.GetStaff(s.ctx, "s1")
	s.Require().NoError(err)
	s.Equal(member.Name, retrieved.Name)
}

func (s *StorageSuite) TestGetStaffNotFound() {
	_, err := s.storage.GetStaff(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrStaffNotFound)
}

func (s *StorageSuite) TestListStaff() {
	_ = s.storage.SaveStaff(s.ctx, &model.StaffMember{ID: "s1", Name: "Sam"})
	_ = s.storage.SaveStaff(s.ctx, &model.StaffMember{ID: "s2", Name: "Kim"})

	members, err := s.storage.ListStaff(s.ctx)
	s.Require().NoError(err)
	s.Len(members, 2)
}
