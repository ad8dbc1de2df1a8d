package service

import "github.com/jafarshop/variantapi/internal/domain"

// CreateVariantInput is the raw POST /create-custom-variant payload.
// ProductID and Price stay untyped because callers send them as either JSON
// numbers or strings; the validator coerces them. A nil Price distinguishes
// absent/null from an explicit 0, which is accepted.
type CreateVariantInput struct {
	ProductID interface{} `json:"productId"`
	Price     interface{} `json:"price"`
	Title     string      `json:"title"`
}

// ProvisionOutcome is the result of a successful provisioning run.
// IsDeletable is nil when the reconciliation stage is disabled, false when
// the best-effort metafield flag could not be set; the variant itself is
// confirmed created either way.
type ProvisionOutcome struct {
	Variant         domain.VariantDescriptor
	SelectedOptions []domain.SelectedOption
	IsDeletable     *bool
}
