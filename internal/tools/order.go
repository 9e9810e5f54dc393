package tools

import (
	"context"
	"fmt"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/catalog"
)

// OrderStatusTool looks up one order in the shop catalog.
type OrderStatusTool struct {
	Catalog catalog.Store
}

func (t *OrderStatusTool) Name() string { return "get_order_status" }

func (t *OrderStatusTool) Description() string {
	return "Look up an order's status by order number. Returns the status text plus the product photo."
}

func (t *OrderStatusTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"order_number": map[string]any{
				"type":        "string",
				"description": "The customer's order number",
			},
		},
		"required": []string{"order_number"},
	}
}

// Execute fetches the order projection. A missing order is a normal outcome,
// not an error; store failures become a human-readable failure Result.
func (t *OrderStatusTool) Execute(ctx context.Context, args map[string]any) (Result, error) {
	orderNumber := stringArg(args, "order_number")
	if orderNumber == "" {
		return Result{Text: "I need an order number to check on an order."}, nil
	}

	order, err := t.Catalog.Order(ctx, orderNumber)
	if err != nil {
		return Result{Text: "I couldn't reach the order system just now, please try again in a moment."}, nil
	}
	if order == nil {
		return Result{Text: fmt.Sprintf("No order found with number %s.", orderNumber)}, nil
	}

	text := fmt.Sprintf("Order %s: %s. Items: %s. Tracking: %s.",
		order.ID, order.Status, order.Items, order.Tracking)
	result := Result{Text: text}
	if order.ImageURL != "" {
		result.Images = []string{order.ImageURL}
	}
	return result, nil
}
