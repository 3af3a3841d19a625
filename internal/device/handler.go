package device

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vcgate/internal/audit"
	"vcgate/internal/platform/middleware"
	dErrors "vcgate/pkg/domain-errors"
	"vcgate/pkg/httputil"
)

// cameraCookieName identifies the last camera the client resolved so a
// follow-up stream request can find it without re-sending the id.
const cameraCookieName = "camera_id"

type Handler struct {
	service *Service
	auditor audit.Publisher
	logger  *slog.Logger
}

func NewHandler(service *Service, auditor audit.Publisher, logger *slog.Logger) *Handler {
	return &Handler{service: service, auditor: auditor, logger: logger}
}

func (h *Handler) publishAudit(ctx context.Context, action audit.Action, subjectID, detail string) {
	if h.auditor == nil {
		return
	}
	h.auditor.Publish(ctx, audit.FromRequestContext(ctx, audit.Event{
		Action:    action,
		SubjectID: subjectID,
		Outcome:   audit.OutcomeSuccess,
		Detail:    detail,
	}))
}

// Register mounts the device routes. The caller wraps the group in the
// credential middleware; every handler here assumes a bound principal.
func (h *Handler) Register(r chi.Router) {
	r.Post("/iotregister", h.registerDevice)
	r.Post("/updateiot/{id}", h.updateDevice)
	r.Get("/iotlist", h.listDevices)
	r.Get("/camera/{id}", h.cameraAddress)
}

func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "principal not bound"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[RegisterDeviceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.Register(ctx, p, req.Network, req.IP)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to register device",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.publishAudit(ctx, audit.ActionDeviceRegistered, p.SubjectID, strconv.FormatInt(rec.ID, 10))
	httputil.WriteJSON(w, http.StatusCreated, MessageResponse{Message: "device registered"})
}

func (h *Handler) updateDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "principal not bound"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid device id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateDeviceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.Update(ctx, p, id, req.Patch()); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to update device",
				"error", err,
				"device_id", id,
				"request_id", requestID,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.publishAudit(ctx, audit.ActionDeviceUpdated, p.SubjectID, strconv.FormatInt(id, 10))
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: "device updated"})
}

func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "principal not bound"))
		return
	}

	devices, err := h.service.List(ctx, p)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list devices",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toListResponse(devices))
}

func (h *Handler) cameraAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "principal not bound"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid device id"))
		return
	}

	rec, err := h.service.Resolve(ctx, p, id)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to resolve camera address",
				"error", err,
				"device_id", id,
				"request_id", requestID,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cameraCookieName,
		Value:    strconv.FormatInt(rec.ID, 10),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, CameraAddressResponse{
		Address: fmt.Sprintf("http://%s", rec.Address),
	})
}
