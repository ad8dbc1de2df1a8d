package shopify

// ProductOptionsQuery fetches a product's option names and values in
// product order. An empty list means a legacy single-option product.
const ProductOptionsQuery = `
query ProductOptions($id: ID!) {
  product(id: $id) {
    id
    options {
      name
      values
    }
  }
}
`

// MutationSchemaIntrospectionQuery lists the Admin API's mutation fields.
// Used by the diagnostic passthrough endpoint only.
const MutationSchemaIntrospectionQuery = `
query MutationSchemaIntrospection {
  __schema {
    mutationType {
      name
      fields {
        name
        args {
          name
          type {
            name
            kind
            ofType {
              name
              kind
            }
          }
        }
      }
    }
  }
}
`
