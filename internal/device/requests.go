package device

import (
	"strings"

	"vcgate/pkg/validation"
)

// RegisterDeviceRequest is the payload for registering a device. The owner is
// never part of the payload; it is always taken from the authenticated
// principal.
type RegisterDeviceRequest struct {
	Network string `json:"network" validate:"required,notblank,max=64"`
	IP      string `json:"ip" validate:"required,ip"`
}

func (r *RegisterDeviceRequest) Normalize() {
	r.Network = strings.TrimSpace(r.Network)
	r.IP = strings.TrimSpace(r.IP)
}

func (r *RegisterDeviceRequest) Validate() error {
	return validation.Validate(r)
}

// UpdateDeviceRequest carries the mutable fields only. Fields absent from the
// JSON body stay nil and are left untouched.
type UpdateDeviceRequest struct {
	Network *string `json:"network" validate:"omitempty,notblank,max=64"`
	IP      *string `json:"ip" validate:"omitempty,ip"`
}

func (r *UpdateDeviceRequest) Normalize() {
	if r.Network != nil {
		trimmed := strings.TrimSpace(*r.Network)
		r.Network = &trimmed
	}
	if r.IP != nil {
		trimmed := strings.TrimSpace(*r.IP)
		r.IP = &trimmed
	}
}

func (r *UpdateDeviceRequest) Validate() error {
	return validation.Validate(r)
}

// Patch maps the request onto the store-level allow-list.
func (r *UpdateDeviceRequest) Patch() Patch {
	return Patch{Network: r.Network, Address: r.IP}
}
