package staff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/laundrydesk/laundrydesk/internal/dependencies/mocks"
	"github.com/laundrydesk/laundrydesk/internal/model"
	"github.com/laundrydesk/laundrydesk/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestAddCreatesActiveMember() {
	member, err := s.service.Add(s.ctx, "Sam", model.RoleDriver)
	s.Require().NoError(err)

	s.NotEmpty(member.ID)
	s.Equal("Sam", member.Name)
	s.Equal(model.RoleDriver, member.Role)
	s.True(member.Active)
	s.Equal(s.clock.Now(), member.CreatedAt)
}

func (s *ServiceSuite) TestGetUnknownMemberFails() {
	_, err := s.service.Get(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrStaffNotFound)
}

func (s *ServiceSuite) TestListSortsByName() {
	_, _ = s.service.Add(s.ctx, "Zoe", model.RoleAttendant)
	_, _ = s.service.Add(s.ctx, "Ana", model.RoleManager)

	members, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 2)
	s.Equal("Ana", members[0].Name)
	s.Equal("Zoe", members[1].Name)
}

func (s *ServiceSuite) TestSetActiveTogglesAvailability() {
	member, _ := s.service.Add(s.ctx, "Sam", model.RoleDriver)

	member, err := s.service.SetActive(s.ctx, member.ID, false)
	s.Require().NoError(err)
	s.False(member.Active)

	member, err = s.service.SetActive(s.ctx, member.ID, true)
	s.Require().NoError(err)
	s.True(member.Active)
}

func (s *ServiceSuite) TestDriverAcceptsDriversAndManagers() {
	driver, _ := s.service.Add(s.ctx, "Sam", model.RoleDriver)
	manager, _ := s.service.Add(s.ctx, "Kim", model.RoleManager)

	_, err := s.service.Driver(s.ctx, driver.ID)
	s.NoError(err)
	_, err = s.service.Driver(s.ctx, manager.ID)
	s.NoError(err)
}

func (s *ServiceSuite) TestDriverRejectsAttendants() {
	attendant, _ := s.service.Add(s.ctx, "Lee", model.RoleAttendant)

	_, err := s.service.Driver(s.ctx, attendant.ID)
	s.ErrorIs(err, model.ErrNotADriver)
}

func (s *ServiceSuite) TestDriverRejectsInactiveMembers() {
	driver, _ := s.service.Add(s.ctx, "Sam", model.RoleDriver)
	_, _ = s.service.SetActive(s.ctx, driver.ID, false)

	_, err := s.service.Driver(s.ctx, driver.ID)
	s.ErrorIs(err, model.ErrStaffInactive)
}
