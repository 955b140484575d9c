package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remiedy/catering/internal/domain"
)

func food(id int64, name, price string) *domain.FoodItem {
	return &domain.FoodItem{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	c := New()
	lechon := food(1, "Lechon Belly", "100.00")

	c.AddItem(lechon)
	c.AddItem(lechon)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Lechon Belly", lines[0].Name)
}

func TestAddItemNilIsNoop(t *testing.T) {
	c := New()
	c.AddItem(nil)
	assert.True(t, c.Empty())
	assert.True(t, c.Subtotal().IsZero())
}

func TestSubtotalTracksMutations(t *testing.T) {
	c := New()
	assert.True(t, c.Subtotal().IsZero(), "empty cart subtotal must be zero")

	c.AddItem(food(1, "Pancit", "100.00"))
	c.AddItem(food(1, "Pancit", "100.00"))
	c.AddItem(food(2, "Halo-Halo", "50.00"))
	assert.True(t, c.Subtotal().Equal(decimal.RequireFromString("250.00")), "subtotal = %s", c.Subtotal())
	assert.Equal(t, 3, c.LineCount())

	c.RemoveItem(1)
	assert.True(t, c.Subtotal().Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, 1, c.LineCount())

	// subtotal always equals the sum over the remaining lines
	sum := decimal.Zero
	for _, line := range c.Lines() {
		sum = sum.Add(line.Subtotal())
	}
	assert.True(t, c.Subtotal().Equal(sum))
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	c := New()
	c.AddItem(food(1, "Pancit", "100.00"))
	c.RemoveItem(99)
	assert.Equal(t, 1, c.LineCount())
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(food(1, "Pancit", "100.00"))
	c.Clear()
	assert.True(t, c.Empty())
	assert.True(t, c.Subtotal().IsZero())
}

func TestPriceSnapshotIsKeptAfterCatalogChange(t *testing.T) {
	c := New()
	item := food(7, "Kare-Kare", "120.00")
	c.AddItem(item)

	// catalog price changes after the item was added
	item.Price = decimal.RequireFromString("999.00")
	item.Name = "renamed"

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Price.Equal(decimal.RequireFromString("120.00")))
	assert.Equal(t, "Kare-Kare", lines[0].Name)
}

func TestStoreGetCreatesAndSweepExpires(t *testing.T) {
	s := NewStore()

	a := s.Get("sess-a")
	a.AddItem(food(1, "Pancit", "100.00"))
	assert.Same(t, a, s.Get("sess-a"), "same session returns the same cart")
	assert.Equal(t, 1, s.Len())

	b := s.Get("sess-b")
	b.LastActive = time.Now().Add(-3 * time.Hour)
	a.LastActive = time.Now()

	removed := s.Sweep(2 * time.Hour)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.Get("sess-a").LineCount(), "fresh cart survives the sweep")
}
