package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/variantapi/internal/config"
	"github.com/jafarshop/variantapi/internal/domain"
	"github.com/jafarshop/variantapi/internal/shopify"
	apperrors "github.com/jafarshop/variantapi/pkg/errors"
	"github.com/jafarshop/variantapi/pkg/metrics"
)

const (
	defaultTitle            = "Custom Size"
	defaultOptionValue      = "Default Title"
	legacyOptionName        = "Title"
	inventoryPolicyContinue = "CONTINUE"
	deletableNamespace      = "custom"
	deletableKey            = "is_deletable"
)

// Executor issues one GraphQL document against the Shopify Admin API.
// *shopify.Client satisfies it; tests inject counting stubs.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
}

// VariantService orchestrates custom-variant provisioning: validate the
// caller input, resolve the product's option schema, create the variant,
// then best-effort flag it as deletable. Stages run strictly in order; each
// remote call is made exactly once.
type VariantService struct {
	exec    Executor
	cfg     config.ProvisionConfig
	metrics *metrics.ProvisionMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewVariantService creates a new variant provisioning service
func NewVariantService(exec Executor, cfg config.ProvisionConfig, m *metrics.ProvisionMetrics, logger *zap.Logger) *VariantService {
	return &VariantService{
		exec:    exec,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Provision runs the whole flow for one request. The returned error is one
// of the pkg/errors types; the handler maps them to HTTP responses.
func (s *VariantService) Provision(ctx context.Context, in CreateVariantInput) (*ProvisionOutcome, error) {
	start := s.now()
	req, err := s.validate(in)
	s.observe("validate", start, err)
	if err != nil {
		return nil, err
	}

	start = s.now()
	selected, err := s.resolveOptions(ctx, req)
	s.observe("resolve_options", start, err)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("option schema resolved",
		zap.String("product_gid", req.ProductGID),
		zap.String("mode", string(s.cfg.Mode)),
		zap.Int("option_count", len(selected)),
	)

	start = s.now()
	variant, err := s.createVariant(ctx, req, selected)
	s.observe("create_variant", start, err)
	if err != nil {
		return nil, err
	}
	s.logger.Info("variant created",
		zap.String("variant_id", variant.VariantID),
		zap.String("sku", variant.SKU),
	)

	outcome := &ProvisionOutcome{
		Variant:         *variant,
		SelectedOptions: selected,
	}

	if s.cfg.SetDeletableMetafield {
		start = s.now()
		err := s.flagDeletable(ctx, variant.VariantID)
		s.observe("reconcile", start, err)
		deletable := err == nil
		outcome.IsDeletable = &deletable
		if err != nil {
			// The variant exists; the missing annotation must not fail the
			// request. Record the detail and degrade the result field only.
			s.logger.Warn("deletable metafield not set",
				zap.String("variant_id", variant.VariantID),
				zap.Error(err),
			)
		}
	}

	return outcome, nil
}

// IntrospectMutationSchema forwards the Admin API's mutation-schema
// introspection verbatim. Diagnostic only.
func (s *VariantService) IntrospectMutationSchema(ctx context.Context) (json.RawMessage, error) {
	resp, err := s.exec.Execute(ctx, shopify.MutationSchemaIntrospectionQuery, nil)
	if err != nil {
		return nil, &apperrors.ErrRemoteTransport{Err: err}
	}
	return resp.Raw, nil
}

// validate checks the raw input and normalizes it into a ProvisionRequest.
// OptionValue and SKU are derived here, once, so they stay stable across the
// rest of the attempt.
func (s *VariantService) validate(in CreateVariantInput) (*domain.ProvisionRequest, error) {
	productID, ok := coerceID(in.ProductID)
	if !ok {
		return nil, &apperrors.ErrValidation{Message: "productId and price are required"}
	}
	// Only absent/null price is rejected: an explicit 0 is a valid (free)
	// price. See DESIGN.md for the open product question around this.
	if in.Price == nil {
		return nil, &apperrors.ErrValidation{Message: "productId and price are required"}
	}
	price, err := coercePrice(in.Price)
	if err != nil {
		return nil, &apperrors.ErrValidation{Message: "price must be a decimal number"}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = defaultTitle
	}

	millis := strconv.FormatInt(s.now().UnixMilli(), 10)
	return &domain.ProvisionRequest{
		ProductGID:  normalizeProductGID(productID),
		Price:       price,
		Title:       title,
		OptionValue: fmt.Sprintf("%s - %s", title, millis[len(millis)-4:]),
		// custom-<millis> can collide when two requests land in the same
		// millisecond; known weakness of the generator, accepted for now.
		SKU: "custom-" + millis,
	}, nil
}

func (s *VariantService) resolveOptions(ctx context.Context, req *domain.ProvisionRequest) ([]domain.SelectedOption, error) {
	switch s.cfg.Mode {
	case domain.ResolutionModeAddOption:
		return s.addCustomOption(ctx, req)
	default:
		return s.augmentExistingOptions(ctx, req)
	}
}

// augmentExistingOptions reads the product's option schema and builds one
// selected option per declared option: the first gets the custom value,
// later ones keep their first declared value so multi-option products
// (e.g. Color/Size) stay valid.
func (s *VariantService) augmentExistingOptions(ctx context.Context, req *domain.ProvisionRequest) ([]domain.SelectedOption, error) {
	resp, err := s.exec.Execute(ctx, shopify.ProductOptionsQuery, map[string]interface{}{
		"id": req.ProductGID,
	})
	if err != nil {
		return nil, &apperrors.ErrRemoteTransport{Err: err}
	}

	var result struct {
		Product *struct {
			ID      string                 `json:"id"`
			Options []domain.ProductOption `json:"options"`
		} `json:"product"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, &apperrors.ErrRemoteTransport{Err: fmt.Errorf("parse product options response: %w", err)}
	}
	if result.Product == nil {
		return nil, &apperrors.ErrRemoteLookup{ProductGID: req.ProductGID, Debug: resp.Raw}
	}

	options := result.Product.Options
	if len(options) == 0 {
		// Legacy single-option product
		return []domain.SelectedOption{{Name: legacyOptionName, Value: req.OptionValue}}, nil
	}

	selected := make([]domain.SelectedOption, 0, len(options))
	for i, opt := range options {
		name := opt.Name
		if name == "" {
			name = legacyOptionName
		}
		value := req.OptionValue
		if i > 0 {
			value = defaultOptionValue
			if len(opt.Values) > 0 && opt.Values[0] != "" {
				value = opt.Values[0]
			}
		}
		selected = append(selected, domain.SelectedOption{Name: name, Value: value})
	}
	return selected, nil
}

// addCustomOption registers a brand-new option on the product and selects
// only that option. Changes the product schema, so it is opt-in via config.
func (s *VariantService) addCustomOption(ctx context.Context, req *domain.ProvisionRequest) ([]domain.SelectedOption, error) {
	attempted := []domain.SelectedOption{{Name: s.cfg.CustomOptionName, Value: req.OptionValue}}

	resp, err := s.exec.Execute(ctx, shopify.ProductOptionsCreateMutation, map[string]interface{}{
		"productId": req.ProductGID,
		"options": []shopify.OptionCreateInput{{
			Name:   s.cfg.CustomOptionName,
			Values: []shopify.OptionValueInput{{Name: req.OptionValue}},
		}},
	})
	if err != nil {
		return nil, &apperrors.ErrRemoteTransport{Err: err}
	}

	var result struct {
		ProductOptionsCreate struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"productOptionsCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, &apperrors.ErrRemoteTransport{Err: fmt.Errorf("parse productOptionsCreate response: %w", err)}
	}
	if len(result.ProductOptionsCreate.UserErrors) > 0 {
		return nil, &apperrors.ErrRemoteValidation{
			Mutation:        "productOptionsCreate",
			UserErrors:      result.ProductOptionsCreate.UserErrors,
			SelectedOptions: attempted,
		}
	}
	if result.ProductOptionsCreate.Product == nil {
		return nil, &apperrors.ErrRemoteLookup{ProductGID: req.ProductGID, Debug: resp.Raw}
	}
	return attempted, nil
}

func (s *VariantService) createVariant(ctx context.Context, req *domain.ProvisionRequest, selected []domain.SelectedOption) (*domain.VariantDescriptor, error) {
	resp, err := s.exec.Execute(ctx, shopify.ProductVariantCreateMutation, map[string]interface{}{
		"input": shopify.ProductVariantInput{
			ProductID:       req.ProductGID,
			Price:           req.Price.String(),
			SKU:             req.SKU,
			SelectedOptions: selected,
			InventoryPolicy: inventoryPolicyContinue,
		},
	})
	if err != nil {
		return nil, &apperrors.ErrRemoteTransport{Err: err}
	}

	var result struct {
		ProductVariantCreate struct {
			Variant *struct {
				ID  string `json:"id"`
				SKU string `json:"sku"`
			} `json:"variant"`
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"productVariantCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, &apperrors.ErrRemoteTransport{Err: fmt.Errorf("parse productVariantCreate response: %w", err)}
	}

	if len(result.ProductVariantCreate.UserErrors) > 0 {
		return nil, &apperrors.ErrRemoteValidation{
			Mutation:        "productVariantCreate",
			UserErrors:      result.ProductVariantCreate.UserErrors,
			SelectedOptions: selected,
		}
	}
	// A missing variant ID without userErrors is as fatal as an explicit
	// validation error; never report success without one.
	if result.ProductVariantCreate.Variant == nil || result.ProductVariantCreate.Variant.ID == "" {
		return nil, &apperrors.ErrRemoteContract{
			Message:         "Variant ID could not be retrieved.",
			Debug:           resp.Raw,
			SelectedOptions: selected,
		}
	}

	return &domain.VariantDescriptor{
		VariantID:   result.ProductVariantCreate.Variant.ID,
		SKU:         req.SKU,
		OptionValue: req.OptionValue,
	}, nil
}

// flagDeletable sets custom.is_deletable = true on the new variant
func (s *VariantService) flagDeletable(ctx context.Context, variantID string) error {
	resp, err := s.exec.Execute(ctx, shopify.MetafieldsSetMutation, map[string]interface{}{
		"metafields": []shopify.MetafieldsSetInput{{
			OwnerID:   variantID,
			Namespace: deletableNamespace,
			Key:       deletableKey,
			Type:      "boolean",
			Value:     "true",
		}},
	})
	if err != nil {
		return &apperrors.ErrAuxiliary{Op: "metafieldsSet", Err: err}
	}

	var result struct {
		MetafieldsSet struct {
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return &apperrors.ErrAuxiliary{Op: "metafieldsSet", Err: fmt.Errorf("parse response: %w", err)}
	}
	if len(result.MetafieldsSet.UserErrors) > 0 {
		return &apperrors.ErrAuxiliary{Op: "metafieldsSet", Err: fmt.Errorf("userErrors: %v", result.MetafieldsSet.UserErrors)}
	}
	return nil
}

func (s *VariantService) observe(stage string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.ObserveStage(stage, outcome, s.now().Sub(start))
}

func coerceID(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

func coercePrice(v interface{}) (decimal.Decimal, error) {
	switch t := v.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(t))
	case json.Number:
		return decimal.NewFromString(t.String())
	case float64:
		return decimal.NewFromFloat(t), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported price type %T", v)
	}
}

func normalizeProductGID(id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return "gid://shopify/Product/" + id
}
