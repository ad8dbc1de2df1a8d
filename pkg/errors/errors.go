package errors

import (
	"encoding/json"
	"fmt"

	"github.com/jafarshop/variantapi/internal/domain"
)

// ErrValidation is returned when caller input fails validation, before any
// remote call is made
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrConfiguration is returned when a required configuration value is missing
type ErrConfiguration struct {
	Missing string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("%s is required", e.Missing)
}

// ErrRemoteLookup is returned when the target product cannot be read from
// Shopify. Debug carries the raw remote payload for caller-side diagnosis.
type ErrRemoteLookup struct {
	ProductGID string
	Debug      json.RawMessage
}

func (e *ErrRemoteLookup) Error() string {
	return fmt.Sprintf("product could not be read: %s", e.ProductGID)
}

// ErrRemoteValidation is returned when a Shopify mutation reports field-level
// userErrors. The list is propagated verbatim, together with the option set
// that was attempted.
type ErrRemoteValidation struct {
	Mutation        string
	UserErrors      []domain.UserError
	SelectedOptions []domain.SelectedOption
}

func (e *ErrRemoteValidation) Error() string {
	return fmt.Sprintf("%s userErrors", e.Mutation)
}

// ErrRemoteContract is returned when a success-shaped response is missing an
// expected identifier. Treated as a server-side integration fault, never a
// silent success.
type ErrRemoteContract struct {
	Message         string
	Debug           json.RawMessage
	SelectedOptions []domain.SelectedOption
}

func (e *ErrRemoteContract) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "remote response missing expected identifier"
}

// ErrRemoteTransport is returned on a network/HTTP-layer failure talking to
// the Shopify Admin API
type ErrRemoteTransport struct {
	Err error
}

func (e *ErrRemoteTransport) Error() string {
	return fmt.Sprintf("shopify request failed: %v", e.Err)
}

func (e *ErrRemoteTransport) Unwrap() error {
	return e.Err
}

// ErrAuxiliary wraps a post-create reconciliation failure. The variant
// already exists, so this must never fail the overall request.
type ErrAuxiliary struct {
	Op  string
	Err error
}

func (e *ErrAuxiliary) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ErrAuxiliary) Unwrap() error {
	return e.Err
}
