package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/catalog"
)

// maxSearchResults bounds how many products one search may surface.
const maxSearchResults = 5

// ProductSearchTool searches the shop catalog for matching products.
type ProductSearchTool struct {
	Catalog catalog.Store
}

func (t *ProductSearchTool) Name() string { return "search_products" }

func (t *ProductSearchTool) Description() string {
	return "Search and recommend products by name or style. Returns a ranked list with a photo for each match."
}

func (t *ProductSearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "What the customer is looking for",
			},
		},
		"required": []string{"query"},
	}
}

// Execute returns up to 5 matches with one display line per product.
// An empty result set yields a "no match" Result rather than an empty list.
func (t *ProductSearchTool) Execute(ctx context.Context, args map[string]any) (Result, error) {
	query := stringArg(args, "query")
	if query == "" {
		return Result{Text: "Tell me what you're looking for and I'll search the catalog."}, nil
	}

	products, err := t.Catalog.SearchProducts(ctx, query, maxSearchResults)
	if err != nil {
		return Result{Text: "The catalog search is unavailable right now, please try again later."}, nil
	}
	if len(products) == 0 {
		return Result{Text: fmt.Sprintf("Sorry, no products matched %q.", query)}, nil
	}

	var b strings.Builder
	b.WriteString("Here's what I'd recommend:\n")
	result := Result{}
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s - %s\n   %s\n", i+1, p.Name, p.Price, p.Specs)
		if p.ImageURL != "" {
			result.Images = append(result.Images, p.ImageURL)
		}
		if result.ActionURL == "" && p.StoreURL != "" {
			result.ActionURL = p.StoreURL
		}
	}
	result.Text = b.String()
	return result, nil
}
