package staff

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/laundrydesk/laundrydesk/internal/dependencies/clock"
	"github.com/laundrydesk/laundrydesk/internal/model"
	"github.com/laundrydesk/laundrydesk/internal/storage"
)

// Service manages the staff roster
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new staff Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// Add puts a new active member on the roster
func (s *Service) Add(ctx context.Context, name string, role model.StaffRole) (*model.StaffMember, error) {
	member := &model.StaffMember{
		ID:        model.StaffID(uuid.NewString()),
		Name:      name,
		Role:      role,
		Active:    true,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveStaff(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Get retrieves a staff member by ID
func (s *Service) Get(ctx context.Context, id model.StaffID) (*model.StaffMember, error) {
	return s.storage.GetStaff(ctx, id)
}

// List returns the roster sorted by name
func (s *Service) List(ctx context.Context) ([]*model.StaffMember, error) {
	members, err := s.storage.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})
	return members, nil
}

// SetActive marks a member as available or unavailable for assignment
func (s *Service) SetActive(ctx context.Context, id model.StaffID, active bool) (*model.StaffMember, error) {
	member, err := s.storage.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	member.Active = active
	if err := s.storage.SaveStaff(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Driver resolves a staff member and checks they can take dispatch tasks
func (s *Service) Driver(ctx context.Context, id model.StaffID) (*model.StaffMember, error) {
	member, err := s.storage.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	if !member.Active {
		return nil, model.ErrStaffInactive
	}
	if !member.CanDrive() {
		return nil, model.ErrNotADriver
	}
	return member, nil
}
