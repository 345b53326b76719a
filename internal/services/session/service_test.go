package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/laundrydesk/laundrydesk/internal/model"
	"github.com/laundrydesk/laundrydesk/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, nil, nil)
	s.ctx = context.Background()
}

// Signup tests

func (s *ServiceSuite) TestSignupSucceeds() {
	account, err := s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")
	s.Require().NoError(err)

	s.NotEmpty(account.ID)
	s.Equal("jane@example.com", account.Email)
	s.Equal("Jane", account.Name)
	s.True(s.service.IsAuthenticated())
}

func (s *ServiceSuite) TestSignupNormalizesEmail() {
	account, err := s.service.Signup(s.ctx, "Jane@Example.COM", "pw1", "Jane")
	s.Require().NoError(err)
	s.Equal("jane@example.com", account.Email)
}

func (s *ServiceSuite) TestSignupPersistsCredentialRecord() {
	account, _ := s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")

	creds, err := s.storage.LoadCredentials(s.ctx)
	s.Require().NoError(err)
	record, ok := creds["jane@example.com"]
	s.Require().True(ok)
	s.Equal("pw1", record.Password)
	s.Equal(account.ID, record.Account.ID)
}

func (s *ServiceSuite) TestSignupRejectsDuplicateEmail() {
	_, _ = s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")

	_, err := s.service.Signup(s.ctx, "JANE@example.com", "other", "Jane Two")
	s.ErrorIs(err, model.ErrDuplicateAccount)

	// The original record is untouched
	creds, _ := s.storage.LoadCredentials(s.ctx)
	s.Len(creds, 1)
	s.Equal("pw1", creds["jane@example.com"].Password)
}

func (s *ServiceSuite) TestSignupPersistsSessionSnapshot() {
	account, _ := s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")

	snapshot, err := s.storage.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(snapshot)
	s.Equal(account.ID, snapshot.ID)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, _ = s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")
	s.Require().NoError(s.service.Logout(s.ctx))

	account, err := s.service.Login(s.ctx, "jane@example.com", "pw1")
	s.Require().NoError(err)
	s.Equal("Jane", account.Name)
	s.True(s.service.IsAuthenticated())
}

func (s *ServiceSuite) TestLoginIsCaseInsensitiveOnEmail() {
	_, _ = s.service.Signup(s.ctx, "a@b.com", "pw", "A")
	s.Require().NoError(s.service.Logout(s.ctx))

	_, err := s.service.Login(s.ctx, "A@B.com", "pw")
	s.NoError(err)
}

func (s *ServiceSuite) TestLoginFailsForUnknownEmail() {
	_, err := s.service.Login(s.ctx, "nouser@example.com", "pw1")
	s.ErrorIs(err, model.ErrAccountNotFound)
	s.False(s.service.IsAuthenticated())
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _ = s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")
	s.Require().NoError(s.service.Logout(s.ctx))

	_, err := s.service.Login(s.ctx, "jane@example.com", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)

	// State is unchanged by the failed attempt
	s.False(s.service.IsAuthenticated())
	snapshot, _ := s.storage.LoadSession(s.ctx)
	s.Nil(snapshot)
}

func (s *ServiceSuite) TestFailedLoginLeavesExistingSessionIntact() {
	_, _ = s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")

	_, err := s.service.Login(s.ctx, "jane@example.com", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)
	s.True(s.service.IsAuthenticated())
	s.Equal("jane@example.com", s.service.Current().Email)
}

// Restore tests

func (s *ServiceSuite) TestRestoreRecoversSessionAcrossRestart() {
	account, _ := s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")

	// A fresh service over the same storage simulates a process restart
	restarted := New(s.storage, nil, nil)
	s.Require().NoError(restarted.Restore(s.ctx))

	s.True(restarted.IsAuthenticated())
	s.Equal(account.ID, restarted.Current().ID)
}

func (s *ServiceSuite) TestRestoreWithoutSnapshotIsAnonymous() {
	s.Require().NoError(s.service.Restore(s.ctx))
	s.False(s.service.IsAuthenticated())
	s.Nil(s.service.Current())
}

// Logout tests

func (s *ServiceSuite) TestLogoutClearsSessionAndSnapshot() {
	_, _ = s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")

	s.Require().NoError(s.service.Logout(s.ctx))

	s.False(s.service.IsAuthenticated())
	snapshot, _ := s.storage.LoadSession(s.ctx)
	s.Nil(snapshot)
}

func (s *ServiceSuite) TestLogoutWhenAnonymousIsANoop() {
	s.NoError(s.service.Logout(s.ctx))
	s.False(s.service.IsAuthenticated())
}

// UpdateProfile tests

func (s *ServiceSuite) TestUpdateProfileWhenAnonymousDoesNothing() {
	name := "X"
	account, err := s.service.UpdateProfile(s.ctx, model.ProfileUpdate{Name: &name})
	s.NoError(err)
	s.Nil(account)
	s.False(s.service.IsAuthenticated())
}

func (s *ServiceSuite) TestUpdateProfileMergesAndPersists() {
	_, _ = s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")

	name := "Janet"
	avatar := "https://example.com/janet.png"
	account, err := s.service.UpdateProfile(s.ctx, model.ProfileUpdate{Name: &name, Avatar: &avatar})
	s.Require().NoError(err)
	s.Equal("Janet", account.Name)
	s.Equal(avatar, account.Avatar)
	s.Equal("jane@example.com", account.Email)

	// Live session updated
	s.Equal("Janet", s.service.Current().Name)

	// Stored credential record updated
	creds, _ := s.storage.LoadCredentials(s.ctx)
	s.Equal("Janet", creds["jane@example.com"].Account.Name)

	// Snapshot re-persisted
	snapshot, _ := s.storage.LoadSession(s.ctx)
	s.Equal("Janet", snapshot.Name)
}

func (s *ServiceSuite) TestUpdateProfileVisibleToLaterLogin() {
	_, _ = s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")

	name := "Janet"
	_, _ = s.service.UpdateProfile(s.ctx, model.ProfileUpdate{Name: &name})
	s.Require().NoError(s.service.Logout(s.ctx))

	account, err := s.service.Login(s.ctx, "jane@example.com", "pw1")
	s.Require().NoError(err)
	s.Equal("Janet", account.Name)
}

func (s *ServiceSuite) TestUpdateProfileOnlyTouchesProvidedFields() {
	_, _ = s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")

	avatar := "https://example.com/a.png"
	account, err := s.service.UpdateProfile(s.ctx, model.ProfileUpdate{Avatar: &avatar})
	s.Require().NoError(err)
	s.Equal("Jane", account.Name)
	s.Equal(avatar, account.Avatar)
}

func (s *ServiceSuite) TestUpdateProfileWithoutStoredRecordStillUpdatesSession() {
	_, _ = s.service.Signup(s.ctx, "jane@example.com", "pw1", "Jane")

	// Simulate the stored record disappearing out from under the session
	s.Require().NoError(s.storage.SaveCredentials(s.ctx, model.CredentialMap{}))

	name := "Janet"
	account, err := s.service.UpdateProfile(s.ctx, model.ProfileUpdate{Name: &name})
	s.Require().NoError(err)
	s.Equal("Janet", account.Name)

	creds, _ := s.storage.LoadCredentials(s.ctx)
	s.Empty(creds)
}

// End-to-end flow

func (s *ServiceSuite) TestFullFlow() {
	account, err := s.service.Signup(s.ctx, "j@x.com", "pw1", "Jane")
	s.Require().NoError(err)
	s.Equal("j@x.com", account.Email)
	s.Equal("Jane", account.Name)

	s.Require().NoError(s.service.Logout(s.ctx))
	s.False(s.service.IsAuthenticated())

	again, err := s.service.Login(s.ctx, "J@X.com", "pw1")
	s.Require().NoError(err)
	s.Equal(account.ID, again.ID)

	s.Require().NoError(s.service.Logout(s.ctx))

	_, err = s.service.Login(s.ctx, "j@x.com", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)
	s.False(s.service.IsAuthenticated())

	_, err = s.service.Login(s.ctx, "nouser@x.com", "pw1")
	s.ErrorIs(err, model.ErrAccountNotFound)
}
