package shopify

import "github.com/jafarshop/variantapi/internal/domain"

// ProductVariantCreateMutation creates a single variant and returns its ID.
// The singular form is used instead of productVariantsBulkCreate because the
// bulk form does not return per-variant IDs, and our contract promises one.
const ProductVariantCreateMutation = `
mutation CreateVariant($input: ProductVariantInput!) {
  productVariantCreate(input: $input) {
    product {
      id
    }
    variant {
      id
      sku
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductOptionsCreateMutation registers a new option on a product. Used by
// add-option mode before the variant is created.
const ProductOptionsCreateMutation = `
mutation CreateProductOption($productId: ID!, $options: [OptionCreateInput!]!) {
  productOptionsCreate(productId: $productId, options: $options) {
    product {
      id
      options {
        name
        values
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// MetafieldsSetMutation sets metafields on a resource. Used to flag the new
// variant as deletable (custom.is_deletable) after creation.
const MetafieldsSetMutation = `
mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      key
      namespace
      value
    }
    userErrors {
      field
      message
      code
    }
  }
}
`

// ProductVariantInput is the input for productVariantCreate. Price is a
// string-encoded decimal; InventoryPolicy CONTINUE allows overselling since
// synthetic variants track no stock.
type ProductVariantInput struct {
	ProductID       string                  `json:"productId"`
	Price           string                  `json:"price"`
	SKU             string                  `json:"sku"`
	SelectedOptions []domain.SelectedOption `json:"selectedOptions"`
	InventoryPolicy string                  `json:"inventoryPolicy"`
}

// OptionCreateInput is one option for productOptionsCreate
type OptionCreateInput struct {
	Name   string             `json:"name"`
	Values []OptionValueInput `json:"values"`
}

type OptionValueInput struct {
	Name string `json:"name"`
}

// MetafieldsSetInput is used with metafieldsSet (e.g. to flag a variant).
type MetafieldsSetInput struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}
