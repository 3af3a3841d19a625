package http

import (
	"strings"

	"vcgate/pkg/did"
	dErrors "vcgate/pkg/domain-errors"
	"vcgate/pkg/validation"
)

type IssueCredentialRequest struct {
	UserDID   string `json:"userDid" validate:"required,notblank"`
	UserToken string `json:"userToken" validate:"required,notblank"`
}

func (r *IssueCredentialRequest) Normalize() {
	r.UserDID = strings.TrimSpace(r.UserDID)
	r.UserToken = strings.TrimSpace(r.UserToken)
}

func (r *IssueCredentialRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if err := did.Validate(r.UserDID); err != nil {
		return dErrors.New(dErrors.CodeValidation, "userDid is not a valid DID")
	}
	return nil
}

type IssueCredentialResponse struct {
	VcJwt string `json:"vcJwt"`
}

type VerifyCredentialRequest struct {
	VcJwt string `json:"vcJwt" validate:"required,notblank"`
}

func (r *VerifyCredentialRequest) Normalize() {
	r.VcJwt = strings.TrimSpace(r.VcJwt)
}

func (r *VerifyCredentialRequest) Validate() error {
	return validation.Validate(r)
}

// VerifyCredentialResponse carries the display name recovered from the
// credential, keeping the original wire field name.
type VerifyCredentialResponse struct {
	Username string `json:"username"`
}

// IssuePresentationRequest wraps credentials into a presentation. The single
// vcJwt field is the primary contract; vcJwts bundles several credentials into
// one presentation.
type IssuePresentationRequest struct {
	VcJwt  string   `json:"vcJwt" validate:"omitempty,notblank"`
	VcJwts []string `json:"vcJwts" validate:"omitempty,min=1,dive,required"`
}

func (r *IssuePresentationRequest) Normalize() {
	r.VcJwt = strings.TrimSpace(r.VcJwt)
	for i := range r.VcJwts {
		r.VcJwts[i] = strings.TrimSpace(r.VcJwts[i])
	}
}

func (r *IssuePresentationRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.VcJwt == "" && len(r.VcJwts) == 0 {
		return dErrors.New(dErrors.CodeValidation, "vc_jwt is required")
	}
	return nil
}

// Credentials returns the credentials to wrap, single field first.
func (r *IssuePresentationRequest) Credentials() []string {
	if r.VcJwt != "" {
		return append([]string{r.VcJwt}, r.VcJwts...)
	}
	return r.VcJwts
}

type IssuePresentationResponse struct {
	VpJwt string `json:"vpJwt"`
}

type VerifyPresentationRequest struct {
	VpJwt string `json:"vpJwt" validate:"required,notblank"`
}

func (r *VerifyPresentationRequest) Normalize() {
	r.VpJwt = strings.TrimSpace(r.VpJwt)
}

func (r *VerifyPresentationRequest) Validate() error {
	return validation.Validate(r)
}
