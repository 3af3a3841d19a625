package blocklist

import (
	"strings"
	"time"

	"vcgate/pkg/validation"
)

// Entry is one blocked IP address. Entries carry no owner: the blocklist is a
// single shared table. Duplicate addresses are allowed and are removed
// independently by id.
type Entry struct {
	ID        int64     `json:"id"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}

type BlockRequest struct {
	IP string `json:"ip" validate:"required,ip"`
}

func (r *BlockRequest) Normalize() {
	r.IP = strings.TrimSpace(r.IP)
}

func (r *BlockRequest) Validate() error {
	return validation.Validate(r)
}

// UnblockRequest identifies the entry to remove by its id, matching the wire
// field name of the original surface.
type UnblockRequest struct {
	IPID int64 `json:"ipid" validate:"required,min=1"`
}

func (r *UnblockRequest) Validate() error {
	return validation.Validate(r)
}

type MessageResponse struct {
	Message string `json:"message"`
}
