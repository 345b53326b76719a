package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/laundrydesk/laundrydesk/internal/model"
)

type StorageSuite struct {
	suite.Suite
	dir     string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = s.T().TempDir()

	storage, err := New(s.dir)
	s.Require().NoError(err)
	s.storage = storage
	s.ctx = context.Background()
}

// reopen simulates a process restart over the same data directory
func (s *StorageSuite) reopen() *Storage {
	storage, err := New(s.dir)
	s.Require().NoError(err)
	return storage
}

func (s *StorageSuite) corrupt(name string) {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, name), []byte("{not json"), 0o644))
}

// Credential tests

func (s *StorageSuite) TestLoadCredentialsInitiallyEmpty() {
	creds, err := s.storage.LoadCredentials(s.ctx)
	s.Require().NoError(err)
	s.Empty(creds)
}

func (s *StorageSuite) TestCredentialsSurviveReopen() {
	creds := model.CredentialMap{
		"jane@example.com": {
			Password: "pw1",
			Account:  model.Account{ID: "a1", Email: "jane@example.com", Name: "Jane"},
		},
	}
	s.Require().NoError(s.storage.SaveCredentials(s.ctx, creds))

	loaded, err := s.reopen().LoadCredentials(s.ctx)
	s.Require().NoError(err)
	s.Equal(creds, loaded)
}

func (s *StorageSuite) TestCorruptCredentialsReadAsEmpty() {
	s.corrupt("credentials.json")

	creds, err := s.storage.LoadCredentials(s.ctx)
	s.Require().NoError(err)
	s.Empty(creds)
}

func (s *StorageSuite) TestMistypedCredentialsReadAsEmpty() {
	// Valid JSON whose second record has a wrongly typed password. A partial
	// decode here would surface a record with an empty password.
	blob := `{"a@b.com":{"password":"pw1","user":{"id":"a1","email":"a@b.com","name":"A"}},"b@c.com":{"password":5}}`
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "credentials.json"), []byte(blob), 0o644))

	creds, err := s.storage.LoadCredentials(s.ctx)
	s.Require().NoError(err)
	s.Empty(creds)
}

func (s *StorageSuite) TestMistypedOrdersReadAsEmpty() {
	blob := `{"ORD-AAAAAA":{"id":"ORD-AAAAAA","status":7}}`
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "orders.json"), []byte(blob), 0o644))

	orders, err := s.storage.ListOrders(s.ctx)
	s.Require().NoError(err)
	s.Empty(orders)
}

func (s *StorageSuite) TestSaveOverwritesCorruptCredentials() {
	s.corrupt("credentials.json")

	creds := model.CredentialMap{"a@b.com": {Password: "pw"}}
	s.Require().NoError(s.storage.SaveCredentials(s.ctx, creds))

	loaded, err := s.storage.LoadCredentials(s.ctx)
	s.Require().NoError(err)
	s.Len(loaded, 1)
}

// Session tests

func (s *StorageSuite) TestSessionSurvivesReopen() {
	account := &model.Account{ID: "a1", Email: "jane@example.com", Name: "Jane"}
	s.Require().NoError(s.storage.SaveSession(s.ctx, account))

	loaded, err := s.reopen().LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Equal(account, loaded)
}

func (s *StorageSuite) TestCorruptSessionClearedOnLoad() {
	s.corrupt("session.json")

	account, err := s.storage.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Nil(account)

	// The corrupt blob is gone
	_, statErr := os.Stat(filepath.Join(s.dir, "session.json"))
	s.True(os.IsNotExist(statErr))
}

func (s *StorageSuite) TestSessionWithWrongShapeReadsAsAbsent() {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "session.json"), []byte(`{"foo": 1}`), 0o644))

	account, err := s.storage.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Nil(account)
}

func (s *StorageSuite) TestClearSessionIdempotent() {
	s.Require().NoError(s.storage.ClearSession(s.ctx))

	_ = s.storage.SaveSession(s.ctx, &model.Account{ID: "a1"})
	s.Require().NoError(s.storage.ClearSession(s.ctx))

	account, err := s.storage.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Nil(account)
}

// Record tests

func (s *StorageSuite) TestOrdersSurviveReopen() {
	order := &model.Order{ID: "ORD-AAAAAA", CustomerName: "Jane", Status: model.OrderStatusReceived}
	s.Require().NoError(s.storage.SaveOrder(s.ctx, order))

	retrieved, err := s.reopen().GetOrder(s.ctx, "ORD-AAAAAA")
	s.Require().NoError(err)
	s.Equal(order.CustomerName, retrieved.CustomerName)
}

func (s *StorageSuite) TestGetOrderNotFound() {
	_, err := s.storage.GetOrder(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrOrderNotFound)
}

func (s *StorageSuite) TestDeleteTasksForOrder() {
	_ = s.storage.SaveTask(s.ctx, &model.Task{ID: "t1", OrderID: "ORD-AAAAAA"})
	_ = s.storage.SaveTask(s.ctx, &model.Task{ID: "t2", OrderID: "ORD-BBBBBB"})

	s.Require().NoError(s.storage.DeleteTasksForOrder(s.ctx, "ORD-AAAAAA"))

	tasks, err := s.storage.ListTasks(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(model.TaskID("t2"), tasks[0].ID)
}

func (s *StorageSuite) TestStaffSurviveReopen() {
	member := &model.StaffMember{ID: "s1", Name: "Sam", Role: model.RoleDriver, Active: true}
	s.Require().NoError(s.storage.SaveStaff(s.ctx, member))

	retrieved, err := s.reopen().GetStaff(s.ctx, "s1")
	s.Require().NoError(err)
	s.Equal(member.Name, retrieved.Name)
	s.True(retrieved.Active)
}
