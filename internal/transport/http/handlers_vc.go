package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vcgate/internal/audit"
	"vcgate/internal/idp"
	"vcgate/internal/platform/metrics"
	"vcgate/internal/platform/middleware"
	"vcgate/internal/user"
	"vcgate/internal/vc"
	dErrors "vcgate/pkg/domain-errors"
	"vcgate/pkg/httputil"
)

// CredentialHandler serves the issuance and verification endpoints. These are
// the unauthenticated edge of the system: issuance trusts the external
// identity provider's token exchange, verification trusts only the issuer
// signature.
type CredentialHandler struct {
	idp      idp.Client
	users    user.Store
	issuer   *vc.Issuer
	verifier *vc.Verifier
	auditor  audit.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewCredentialHandler(
	idpClient idp.Client,
	users user.Store,
	issuer *vc.Issuer,
	verifier *vc.Verifier,
	auditor audit.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		idp:      idpClient,
		users:    users,
		issuer:   issuer,
		verifier: verifier,
		auditor:  auditor,
		metrics:  m,
		logger:   logger,
	}
}

func (h *CredentialHandler) Register(r chi.Router) {
	r.Post("/issue-vc", h.issueCredential)
	r.Post("/verify-vc", h.verifyCredential)
	r.Post("/issue-vp", h.issuePresentation)
	r.Post("/verify-vp", h.verifyPresentation)
}

func (h *CredentialHandler) issueCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[IssueCredentialRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	identity, err := h.idp.ExchangeToken(ctx, req.UserToken)
	if err != nil {
		h.metrics.IdentityExchangeError.Inc()
		h.logger.ErrorContext(ctx, "identity provider exchange failed",
			"error", err,
			"request_id", requestID,
		)
		h.publishAudit(ctx, audit.ActionCredentialIssued, "", audit.OutcomeFailure, "identity exchange failed")
		httputil.WriteError(w, err)
		return
	}

	// First credential for a subject registers the user; later issuances
	// reuse the stored record so the first-seen display name sticks.
	stored, err := h.users.FindOrCreateBySubjectID(ctx, &user.User{
		ID:          uuid.New(),
		SubjectID:   identity.SubjectID,
		DisplayName: identity.DisplayName,
		Phone:       identity.Phone,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to persist user",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	token, err := h.issuer.Issue(ctx, vc.Identity{
		SubjectID:   stored.SubjectID,
		DisplayName: stored.DisplayName,
		Phone:       stored.Phone,
	}, req.UserDID)
	if err != nil {
		h.logger.ErrorContext(ctx, "credential issuance failed",
			"error", err,
			"request_id", requestID,
		)
		h.publishAudit(ctx, audit.ActionCredentialIssued, stored.SubjectID, audit.OutcomeFailure, "")
		httputil.WriteError(w, err)
		return
	}

	h.metrics.CredentialsIssued.Inc()
	h.publishAudit(ctx, audit.ActionCredentialIssued, stored.SubjectID, audit.OutcomeSuccess, "")
	httputil.WriteJSON(w, http.StatusOK, IssueCredentialResponse{VcJwt: token})
}

func (h *CredentialHandler) verifyCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyCredentialRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	claims, err := h.verifier.Verify(ctx, req.VcJwt)
	if err != nil {
		h.metrics.Verifications.WithLabelValues(string(vc.KindOf(err))).Inc()
		h.logger.WarnContext(ctx, "credential verification failed",
			"error", err,
			"kind", string(vc.KindOf(err)),
			"request_id", requestID,
		)
		h.publishAudit(ctx, audit.ActionCredentialVerified, "", audit.OutcomeFailure, string(vc.KindOf(err)))
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeVerification, "credential verification failed"))
		return
	}

	h.metrics.Verifications.WithLabelValues("ok").Inc()
	h.publishAudit(ctx, audit.ActionCredentialVerified, claims.SubjectID, audit.OutcomeSuccess, "")
	httputil.WriteJSON(w, http.StatusOK, VerifyCredentialResponse{Username: claims.DisplayName})
}

func (h *CredentialHandler) issuePresentation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[IssuePresentationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	token, err := h.issuer.IssuePresentation(ctx, req.Credentials())
	if err != nil {
		h.logger.ErrorContext(ctx, "presentation issuance failed",
			"error", err,
			"request_id", requestID,
		)
		h.publishAudit(ctx, audit.ActionPresentationIssued, "", audit.OutcomeFailure, "")
		httputil.WriteError(w, err)
		return
	}

	h.metrics.PresentationsIssued.Inc()
	h.publishAudit(ctx, audit.ActionPresentationIssued, "", audit.OutcomeSuccess, "")
	httputil.WriteJSON(w, http.StatusOK, IssuePresentationResponse{VpJwt: token})
}

func (h *CredentialHandler) verifyPresentation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyPresentationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	claims, err := h.verifier.VerifyPresentation(ctx, req.VpJwt)
	if err != nil {
		h.metrics.Verifications.WithLabelValues(string(vc.KindOf(err))).Inc()
		h.logger.WarnContext(ctx, "presentation verification failed",
			"error", err,
			"kind", string(vc.KindOf(err)),
			"request_id", requestID,
		)
		h.publishAudit(ctx, audit.ActionPresentationVerified, "", audit.OutcomeFailure, string(vc.KindOf(err)))
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeVerification, "presentation verification failed"))
		return
	}

	h.metrics.Verifications.WithLabelValues("ok").Inc()
	h.publishAudit(ctx, audit.ActionPresentationVerified, claims.SubjectID, audit.OutcomeSuccess, "")
	httputil.WriteJSON(w, http.StatusOK, VerifyCredentialResponse{Username: claims.DisplayName})
}

func (h *CredentialHandler) publishAudit(ctx context.Context, action audit.Action, subjectID, outcome, detail string) {
	if h.auditor == nil {
		return
	}
	h.auditor.Publish(ctx, audit.FromRequestContext(ctx, audit.Event{
		Action:    action,
		SubjectID: subjectID,
		Outcome:   outcome,
		Detail:    detail,
	}))
}
