// Package cart holds the per-visitor shopping cart. A cart maps food ids to
// lines carrying a name and unit price snapshot taken at add time; it lives
// only for the duration of a visitor session.
package cart

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/remiedy/catering/internal/domain"
	"github.com/remiedy/catering/pkg/money"
)

// Line is one distinct item entry with quantity and price snapshot.
type Line struct {
	FoodID   int64           `json:"food_id,string"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price multiplied by quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return money.LineSubtotal(l.Price, l.Quantity)
}

type Cart struct {
	lines      map[int64]*Line
	LastActive time.Time
}

func New() *Cart {
	return &Cart{
		lines:      make(map[int64]*Line),
		LastActive: time.Now(),
	}
}

// AddItem adds one unit of food to the cart. A nil food (unknown id at the
// catalog lookup) is a no-op. An already present item increments its
// quantity instead of creating a second line.
func (c *Cart) AddItem(food *domain.FoodItem) {
	if food == nil {
		return
	}
	if line, ok := c.lines[food.ID]; ok {
		line.Quantity++
		return
	}
	c.lines[food.ID] = &Line{
		FoodID:   food.ID,
		Name:     food.Name,
		Price:    food.Price,
		Quantity: 1,
	}
}

// RemoveItem drops the line for foodID; unknown ids are a no-op.
func (c *Cart) RemoveItem(foodID int64) {
	delete(c.lines, foodID)
}

// Clear empties the cart. Called once after a successful order submission.
func (c *Cart) Clear() {
	c.lines = make(map[int64]*Line)
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Subtotal sums price times quantity across all lines, zero when empty.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c.lines {
		sum = sum.Add(line.Subtotal())
	}
	return sum
}

// LineCount returns the total quantity across all lines, for the header badge.
func (c *Cart) LineCount() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Lines returns the cart content ordered by food id for stable rendering.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FoodID < out[j].FoodID })
	return out
}

// Touch marks the cart as recently used for expiry tracking.
func (c *Cart) Touch() {
	c.LastActive = time.Now()
}
