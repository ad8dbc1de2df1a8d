package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/variantapi/internal/service"
	apperrors "github.com/jafarshop/variantapi/pkg/errors"
)

// HandleCreateCustomVariant handles POST /create-custom-variant
func HandleCreateCustomVariant(svc *service.VariantService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateVariantInput
		dec := json.NewDecoder(c.Request.Body)
		// UseNumber keeps price exact instead of forcing it through float64
		dec.UseNumber()
		if err := dec.Decode(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}

		outcome, err := svc.Provision(c.Request.Context(), in)
		if err != nil {
			writeProvisionError(c, err, logger)
			return
		}

		resp := gin.H{
			"message":         "Custom variant created successfully.",
			"variantId":       outcome.Variant.VariantID,
			"sku":             outcome.Variant.SKU,
			"option":          outcome.Variant.OptionValue,
			"selectedOptions": outcome.SelectedOptions,
		}
		if outcome.IsDeletable != nil {
			resp["isDeletable"] = *outcome.IsDeletable
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HandleIntrospectionTest handles GET /introspection-test: forwards the
// Admin API mutation-schema introspection verbatim. Diagnostic only.
func HandleIntrospectionTest(svc *service.VariantService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := svc.IntrospectMutationSchema(c.Request.Context())
		if err != nil {
			logger.Error("introspection failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json", raw)
	}
}

// writeProvisionError maps the provisioning error taxonomy to HTTP bodies.
// Every failure body carries an "error" field; remote failures also carry
// enough diagnostic payload (raw response, attempted options) for the
// caller to debug without server-side log access.
func writeProvisionError(c *gin.Context, err error, logger *zap.Logger) {
	var (
		validationErr *apperrors.ErrValidation
		lookupErr     *apperrors.ErrRemoteLookup
		remoteErr     *apperrors.ErrRemoteValidation
		contractErr   *apperrors.ErrRemoteContract
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &lookupErr):
		logger.Error("product lookup failed", zap.String("product_gid", lookupErr.ProductGID))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Product could not be read.",
			"debug": lookupErr.Debug,
		})
	case errors.As(err, &remoteErr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":           remoteErr.Error(),
			"userErrors":      remoteErr.UserErrors,
			"selectedOptions": remoteErr.SelectedOptions,
		})
	case errors.As(err, &contractErr):
		logger.Error("variant create returned no ID", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":           contractErr.Error(),
			"debug":           contractErr.Debug,
			"selectedOptions": contractErr.SelectedOptions,
		})
	default:
		logger.Error("provisioning failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
