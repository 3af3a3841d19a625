package device

import "time"

// Device is one registered IoT device. OwnerSubjectID is set exactly once at
// registration from the authenticated principal and is the sole authorization
// predicate for every later operation on the record.
type Device struct {
	ID             int64
	OwnerSubjectID string
	Network        string
	Address        string
	CreatedAt      time.Time
}

// Patch is the explicit allow-list of mutable fields. Ownership and identity
// columns are deliberately absent so no caller-supplied payload can reach
// them. Nil fields are left unchanged.
type Patch struct {
	Network *string
	Address *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Network == nil && p.Address == nil
}
