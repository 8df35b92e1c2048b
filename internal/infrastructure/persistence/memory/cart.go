package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/reglet-dev/stitch/internal/application/dto"
	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
	"github.com/reglet-dev/stitch/internal/application/ports"
)

// Ensure interface compliance
var _ ports.CartService = (*Cart)(nil)

// Cart is an in-memory cart service used for dry runs and tests.
// Prices are not tracked; TotalPrice is always zero.
type Cart struct {
	lines    []dto.CartLine
	token    string
	nextLine int
	mu       sync.Mutex
}

// NewCart creates an empty cart.
func NewCart(token string) *Cart {
	return &Cart{token: token}
}

// Seed inserts a line directly, as if it had been added earlier.
func (c *Cart) Seed(line dto.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

// Add appends items. Every item gets a new line key.
func (c *Cart) Add(_ context.Context, req dto.AddRequest) (*dto.CartSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(req.Items) == 0 {
		return nil, apperrors.NewCartSubmissionError("add", 422, "no items to add", nil)
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.NewCartSubmissionError("add", 422, fmt.Sprintf("invalid quantity %d for %s", item.Quantity, item.VariantID), nil)
		}
		if item.ParentLineKey != "" && c.find(item.ParentLineKey) < 0 {
			return nil, apperrors.NewCartSubmissionError("add", 422, "parent line not found: "+item.ParentLineKey, nil)
		}
	}

	for _, item := range req.Items {
		c.nextLine++
		props := make(map[string]string, len(item.Properties))
		for k, v := range item.Properties {
			props[k] = v
		}
		c.lines = append(c.lines, dto.CartLine{
			Key:        item.VariantID + ":" + strconv.Itoa(c.nextLine),
			VariantID:  item.VariantID,
			Quantity:   item.Quantity,
			Properties: props,
		})
	}
	return c.snapshot(), nil
}

// Change replaces the properties of an existing line.
func (c *Cart) Change(_ context.Context, req dto.ChangeRequest) (*dto.CartSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(req.Line)
	if i < 0 {
		return nil, apperrors.NewCartSubmissionError("change", 400, "line not found: "+req.Line, nil)
	}
	props := make(map[string]string, len(req.Properties))
	for k, v := range req.Properties {
		props[k] = v
	}
	c.lines[i].Properties = props
	return c.snapshot(), nil
}

// Snapshot returns the current cart.
func (c *Cart) Snapshot() *dto.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Quantity returns the quantity of a line, or 0 when absent.
func (c *Cart) Quantity(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.find(key); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

func (c *Cart) find(key string) int {
	for i, l := range c.lines {
		if l.Key == key {
			return i
		}
	}
	return -1
}

func (c *Cart) snapshot() *dto.CartSnapshot {
	lines := make([]dto.CartLine, len(c.lines))
	count := 0
	for i, l := range c.lines {
		lines[i] = l
		count += l.Quantity
	}
	return &dto.CartSnapshot{Token: c.token, Items: lines, ItemCount: count}
}
