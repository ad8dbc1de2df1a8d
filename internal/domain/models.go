package domain

import (
	"github.com/shopspring/decimal"
)

// ProvisionRequest is a validated, normalized request to create one custom
// variant. OptionValue and SKU are derived once at validation time so they
// stay stable for the whole provisioning attempt.
type ProvisionRequest struct {
	ProductGID  string
	Price       decimal.Decimal
	Title       string
	OptionValue string
	SKU         string
}

// ProductOption is one customizable dimension of a product (e.g. Color),
// with its declared values in product order.
type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// SelectedOption names one option value a variant takes. The variant-create
// mutation requires exactly one entry per product option, in product order,
// with names matching the product's option names exactly.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantDescriptor describes a variant confirmed created on Shopify.
// Shopify is the system of record; this is immutable once returned.
type VariantDescriptor struct {
	VariantID   string
	SKU         string
	OptionValue string
}

// UserError is Shopify's convention for field-level business-rule failures
// returned alongside a structurally valid mutation response.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}
