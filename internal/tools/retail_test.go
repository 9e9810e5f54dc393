package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/catalog"
)

// fakeCatalog lets tests inject results and failures.
type fakeCatalog struct {
	order    *catalog.Order
	products []catalog.Product
	err      error
}

func (f *fakeCatalog) Order(context.Context, string) (*catalog.Order, error) {
	return f.order, f.err
}

func (f *fakeCatalog) SearchProducts(context.Context, string, int) ([]catalog.Product, error) {
	return f.products, f.err
}

func TestOrderStatusTool_Found(t *testing.T) {
	tool := &OrderStatusTool{Catalog: &fakeCatalog{order: &catalog.Order{
		ID:       "14514",
		Status:   "shipped",
		Items:    "Redmi Note 12",
		Tracking: "J&T Express: JT123456",
		ImageURL: "https://example.com/p.jpg",
	}}}

	result, err := tool.Execute(context.Background(), map[string]any{"order_number": "14514"})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "14514")
	assert.Contains(t, result.Text, "shipped")
	assert.Contains(t, result.Text, "JT123456")
	assert.Equal(t, []string{"https://example.com/p.jpg"}, result.Images)
}

func TestOrderStatusTool_NotFound(t *testing.T) {
	tool := &OrderStatusTool{Catalog: &fakeCatalog{}}

	result, err := tool.Execute(context.Background(), map[string]any{"order_number": "00000"})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "No order found")
	assert.Contains(t, result.Text, "00000")
	assert.Empty(t, result.Images)
}

func TestOrderStatusTool_StoreFailure(t *testing.T) {
	tool := &OrderStatusTool{Catalog: &fakeCatalog{err: errors.New("connection reset")}}

	result, err := tool.Execute(context.Background(), map[string]any{"order_number": "14514"})
	require.NoError(t, err, "backend failures never escape the handler")
	assert.Contains(t, result.Text, "try again")
	assert.NotContains(t, result.Text, "connection reset")
}

func TestOrderStatusTool_MissingArgument(t *testing.T) {
	tool := &OrderStatusTool{Catalog: &fakeCatalog{}}

	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "order number")
}

func TestProductSearchTool_Matches(t *testing.T) {
	tool := &ProductSearchTool{Catalog: &fakeCatalog{products: []catalog.Product{
		{Name: "Redmi Note 12", Price: "SGD 299", Specs: "120Hz display", ImageURL: "img1", StoreURL: "link1"},
		{Name: "Realme C55", Price: "SGD 189", Specs: "Big battery", ImageURL: "img2", StoreURL: "link2"},
	}}}

	result, err := tool.Execute(context.Background(), map[string]any{"query": "phone"})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "1. Redmi Note 12 - SGD 299")
	assert.Contains(t, result.Text, "2. Realme C55 - SGD 189")
	assert.Equal(t, []string{"img1", "img2"}, result.Images)
	assert.Equal(t, "link1", result.ActionURL, "action link comes from the first match")
}

func TestProductSearchTool_NoMatch(t *testing.T) {
	tool := &ProductSearchTool{Catalog: &fakeCatalog{}}

	result, err := tool.Execute(context.Background(), map[string]any{"query": "spaceship"})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "no products matched")
	assert.Empty(t, result.Images)
}

func TestProductSearchTool_StoreFailure(t *testing.T) {
	tool := &ProductSearchTool{Catalog: &fakeCatalog{err: errors.New("db down")}}

	result, err := tool.Execute(context.Background(), map[string]any{"query": "phone"})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "unavailable")
}

type fakeImageGen struct {
	url string
	err error
}

func (f *fakeImageGen) GenerateImage(context.Context, string) (string, error) {
	return f.url, f.err
}

func TestSceneImageTool_Success(t *testing.T) {
	tool := &SceneImageTool{Images: &fakeImageGen{url: "https://img.example.com/scene.png"}}

	result, err := tool.Execute(context.Background(), map[string]any{"prompt": "shoes on a beach"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/scene.png"}, result.Images)
	assert.NotEmpty(t, result.Text)
}

func TestSceneImageTool_Failure(t *testing.T) {
	tool := &SceneImageTool{Images: &fakeImageGen{err: errors.New("quota exceeded")}}

	result, err := tool.Execute(context.Background(), map[string]any{"prompt": "shoes"})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "failed")
	assert.Empty(t, result.Images)
}
