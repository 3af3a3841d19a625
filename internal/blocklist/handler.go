package blocklist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vcgate/internal/audit"
	"vcgate/internal/platform/middleware"
	dErrors "vcgate/pkg/domain-errors"
	"vcgate/pkg/httputil"
)

type Handler struct {
	service *Service
	auditor audit.Publisher
	logger  *slog.Logger
}

func NewHandler(service *Service, auditor audit.Publisher, logger *slog.Logger) *Handler {
	return &Handler{service: service, auditor: auditor, logger: logger}
}

// publishAudit records a blocklist mutation. The surface is unauthenticated,
// so events carry no subject; the client metadata still identifies the caller.
func (h *Handler) publishAudit(ctx context.Context, action audit.Action, detail string) {
	if h.auditor == nil {
		return
	}
	h.auditor.Publish(ctx, audit.FromRequestContext(ctx, audit.Event{
		Action:  action,
		Outcome: audit.OutcomeSuccess,
		Detail:  detail,
	}))
}

// Register mounts the blocklist routes. These are intentionally left outside
// the credential middleware to match the current design; see the router for
// the open question on admin-surface auth.
func (h *Handler) Register(r chi.Router) {
	r.Post("/block", h.block)
	r.Get("/block", h.list)
	r.Delete("/block", h.unblock)
}

func (h *Handler) block(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BlockRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.Block(ctx, req.IP)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to block ip",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.publishAudit(ctx, audit.ActionIPBlocked, rec.IP)
	httputil.WriteJSON(w, http.StatusCreated, MessageResponse{Message: "ip blocked"})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list blocklist",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) unblock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UnblockRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.Unblock(ctx, req.IPID); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to unblock ip",
				"error", err,
				"entry_id", req.IPID,
				"request_id", requestID,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.publishAudit(ctx, audit.ActionIPUnblocked, strconv.FormatInt(req.IPID, 10))
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: "ip unblocked"})
}
