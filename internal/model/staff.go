package model

import "time"

// StaffID uniquely identifies a staff member
type StaffID string

// StaffRole identifies what work a staff member can be assigned
type StaffRole string

const (
	RoleAttendant StaffRole = "attendant"
	RoleDriver    StaffRole = "driver"
	RoleManager   StaffRole = "manager"
)

// StaffMember represents an employee on the roster
type StaffMember struct {
	ID        StaffID   `json:"id"`
	Name      string    `json:"name"`
	Role      StaffRole `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CanDrive reports whether the member may take dispatch tasks
func (m *StaffMember) CanDrive() bool {
	return m.Role == RoleDriver || m.Role == RoleManager
}
