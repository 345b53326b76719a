package model

import "strings"

// AccountID uniquely identifies an account across the system
type AccountID string

// Account represents a registered back-office user
type Account struct {
	ID     AccountID `json:"id"`
	Email  string    `json:"email"` // normalized to lowercase, immutable after signup
	Name   string    `json:"name"`
	Avatar string    `json:"avatar,omitempty"`
}

// CredentialRecord pairs an account with its password.
// Passwords are stored and compared as plain strings. This mirrors the
// local-only simulation this system replaces and is NOT suitable for real
// authentication; any deployment beyond a trusted local workstation must
// replace it with proper hashing.
type CredentialRecord struct {
	Password string  `json:"password"`
	Account  Account `json:"user"`
}

// CredentialMap is the full persisted mapping from normalized email to credentials
type CredentialMap map[string]CredentialRecord

// NormalizeEmail lowercases an email for use as a lookup key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileUpdate carries the mutable account fields for a partial update.
// Nil fields are left unchanged. ID and email are not updatable.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
}

// Apply merges the update into an account, overwriting only provided fields
func (u ProfileUpdate) Apply(account Account) Account {
	if u.Name != nil {
		account.Name = *u.Name
	}
	if u.Avatar != nil {
		account.Avatar = *u.Avatar
	}
	return account
}
