package device

import "time"

type DeviceResponse struct {
	ID           int64     `json:"id"`
	Network      string    `json:"network"`
	IP           string    `json:"ip"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// DeviceListResponse mirrors the list endpoint contract: the rows plus an
// explicit count of the caller's devices.
type DeviceListResponse struct {
	Data      []DeviceResponse `json:"data"`
	ListCount int              `json:"listCount"`
}

type CameraAddressResponse struct {
	Address string `json:"address"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toResponse(d Device) DeviceResponse {
	return DeviceResponse{
		ID:           d.ID,
		Network:      d.Network,
		IP:           d.Address,
		RegisteredAt: d.CreatedAt,
	}
}

func toListResponse(devices []Device) DeviceListResponse {
	out := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, toResponse(d))
	}
	return DeviceListResponse{Data: out, ListCount: len(out)}
}
