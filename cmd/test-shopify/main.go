package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jafarshop/variantapi/internal/config"
	"github.com/jafarshop/variantapi/internal/shopify"
)

// Simple test query
const TestQuery = `
query {
  shop {
    name
    myshopifyDomain
  }
}
`

// Connectivity check for the configured shop. With a product ID argument it
// also reads that product's option schema, which is what the provisioning
// flow depends on.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Testing Shopify connection...\n\n")
	fmt.Printf("Shop Domain: %s\n", cfg.Shopify.ShopDomain)
	fmt.Printf("API Version: %s\n\n", cfg.Shopify.APIVersion)

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Create Shopify client
	client := shopify.NewClient(cfg.Shopify, logger)
	ctx := context.Background()

	// Test query
	resp, err := client.Execute(ctx, TestQuery, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection failed: %v\n\n", err)
		fmt.Println("Please check:")
		fmt.Println("  1. SHOPIFY_SHOP_DOMAIN format: should be 'store-name.myshopify.com' (no https://)")
		fmt.Println("  2. SHOPIFY_ACCESS_TOKEN: should start with 'shpat_' and be the full token")
		fmt.Println("  3. Token permissions: needs 'read_products' and 'write_products' scopes")
		os.Exit(1)
	}

	fmt.Println("Connection successful!")
	fmt.Printf("Response: %s\n", string(resp.Data))

	if len(os.Args) > 1 {
		gid := fmt.Sprintf("gid://shopify/Product/%s", os.Args[1])
		fmt.Printf("\nReading option schema for %s...\n", gid)
		resp, err := client.Execute(ctx, shopify.ProductOptionsQuery, map[string]interface{}{"id": gid})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Product read failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Response: %s\n", string(resp.Data))
	}
}
