package draft

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventures/internal/catalog"
)

func item(id, price string) CatalogItem {
	return CatalogItem{ID: id, Name: "item " + id, Price: Price(price), Category: "General"}
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestAddToCart_MergesLinesByID(t *testing.T) {
	d := New()
	d.AddToCart(item("l1", "10"), 2)
	d.AddToCart(item("l1", "10"), 1)

	require.Len(t, d.CartItems, 1)
	assert.Equal(t, 3, d.CartItems[0].Quantity)
	assert.True(t, d.GrandTotal().Equal(decimal.NewFromInt(30)))
}

func TestAddToCart_DefaultsQuantityToOne(t *testing.T) {
	for _, q := range []int{0, -4} {
		d := New()
		d.AddToCart(item("x", "5"), q)
		require.Len(t, d.CartItems, 1)
		assert.Equal(t, 1, d.CartItems[0].Quantity)
	}
}

func TestAddToCart_KeepsInsertionOrder(t *testing.T) {
	d := New()
	d.AddToCart(item("b", "1"), 1)
	d.AddToCart(item("a", "1"), 1)
	d.AddToCart(item("b", "1"), 1)

	require.Len(t, d.CartItems, 2)
	assert.Equal(t, "b", d.CartItems[0].ID)
	assert.Equal(t, "a", d.CartItems[1].ID)
}

func TestGrandTotal_IgnoresUnparseablePrices(t *testing.T) {
	d := New()
	d.AddToCart(item("a", "N/A"), 3)
	d.AddToCart(item("b", "2.50"), 2)
	d.AddToCart(item("c", ""), 1)

	assert.Equal(t, "5.00", d.GrandTotal().StringFixed(2))
}

func TestGrandTotal_NoFloatDrift(t *testing.T) {
	d := New()
	d.AddToCart(item("a", "0.1"), 1)
	d.AddToCart(item("b", "0.2"), 1)

	assert.Equal(t, "0.3", d.GrandTotal().String())
}

func TestRemoveFromCart(t *testing.T) {
	d := New()
	d.AddToCart(item("a", "1"), 1)
	d.AddToCart(item("b", "2.50"), 3)
	d.AddToCart(item("c", "N/A"), 2)

	a, _ := d.Line("a")
	c, _ := d.Line("c")

	d.RemoveFromCart("b")
	assert.Equal(t, []CartLine{a, c}, d.CartItems)

	d.RemoveFromCart("b")
	assert.Equal(t, []CartLine{a, c}, d.CartItems, "second removal is a no-op")

	d.RemoveFromCart("missing")
	assert.Equal(t, []CartLine{a, c}, d.CartItems)
}

func TestUpdateCartQuantity(t *testing.T) {
	d := New()
	d.AddToCart(item("a", "4"), 1)
	d.AddToCart(item("b", "1"), 1)

	d.UpdateCartQuantity("a", 5)
	line, ok := d.Line("a")
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)

	d.UpdateCartQuantity("missing", 9)
	assert.Len(t, d.CartItems, 2)

	d.UpdateCartQuantity("a", 0)
	_, ok = d.Line("a")
	assert.False(t, ok, "a quantity of zero removes the line")

	d.UpdateCartQuantity("b", -1)
	assert.Empty(t, d.CartItems)
}

func TestVisitedFlagsAreSticky(t *testing.T) {
	d := New()
	d.Update(Patch{VisitedDecoration: boolPtr(true)})
	d.MarkVisited(catalog.KindUtensil)
	assert.False(t, d.AllCategoriesVisited())

	d.Update(Patch{VisitedDecoration: boolPtr(false), VisitedFurniture: boolPtr(true)})

	assert.True(t, d.VisitedDecoration)
	assert.True(t, d.AllCategoriesVisited())
}

func TestCanProceed(t *testing.T) {
	d := New()
	d.MarkVisited(catalog.KindDecoration)
	d.MarkVisited(catalog.KindUtensil)
	d.MarkVisited(catalog.KindFurniture)
	assert.False(t, d.CanProceed(), "empty cart")

	d.AddToCart(item("a", "1"), 1)
	assert.True(t, d.CanProceed())

	d.RemoveFromCart("a")
	assert.False(t, d.CanProceed())
}

func TestIsBookingComplete_Legacy(t *testing.T) {
	d := New()
	d.Update(Patch{
		Furniture: strPtr("chairs"),
		Utensils:  strPtr("plates"),
	})
	assert.False(t, d.IsBookingComplete())

	d.Update(Patch{Decoration: strPtr("flowers")})
	assert.True(t, d.IsBookingComplete(), "only the three markers are required")
	assert.False(t, d.HasEventInfo())
	assert.False(t, d.CanProceed(), "the legacy markers do not gate checkout")
}

func TestClaimAndRelease(t *testing.T) {
	d := New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first, second := uuid.New(), uuid.New()

	require.True(t, d.Claim(first, now, time.Minute))
	assert.Equal(t, first, *d.BookingID)
	assert.Equal(t, now, *d.CheckoutStartedAt)

	assert.False(t, d.Claim(second, now.Add(30*time.Second), time.Minute))
	assert.Equal(t, first, *d.BookingID, "losing claim leaves the holder in place")

	d.Release(second)
	assert.NotNil(t, d.BookingID, "only the holder can release")

	d.Release(first)
	assert.Nil(t, d.BookingID)
	assert.Nil(t, d.CheckoutStartedAt)

	require.True(t, d.Claim(second, now, time.Minute))
	assert.True(t, d.Claim(first, now.Add(time.Minute), time.Minute), "stale claim is taken over")
	assert.Equal(t, first, *d.BookingID)
}

func TestUpdate_DoesNotAliasPatch(t *testing.T) {
	d := New()
	guests := 10
	id := uuid.New()
	d.Update(Patch{GuestCount: &guests, EventTypeID: &id})

	guests = 99
	id = uuid.Nil

	assert.Equal(t, 10, *d.GuestCount)
	assert.NotEqual(t, uuid.Nil, *d.EventTypeID)
}

func TestReset_RestoresDefaults(t *testing.T) {
	d := New()
	customer := uuid.New()
	guests := 12
	d.Update(Patch{EventType: strPtr("Birthday"), GuestCount: &guests, CustomerID: &customer})
	d.MarkVisited(catalog.KindFurniture)
	d.AddToCart(item("a", "3"), 2)

	d.Reset()

	assert.Equal(t, New(), d)
}

func TestEndToEnd(t *testing.T) {
	d := New()
	d.AddToCart(CatalogItem{ID: "l1", Name: "Lamp", Price: "10"}, 2)
	d.AddToCart(CatalogItem{ID: "l1", Name: "Lamp", Price: "10"}, 1)

	require.Len(t, d.CartItems, 1)
	assert.Equal(t, 3, d.CartItems[0].Quantity)
	assert.Equal(t, "30", d.GrandTotal().String())

	d.Update(Patch{
		VisitedDecoration: boolPtr(true),
		VisitedUtensils:   boolPtr(true),
		VisitedFurniture:  boolPtr(true),
	})
	assert.True(t, d.AllCategoriesVisited())

	d.Reset()
	assert.Empty(t, d.CartItems)
	assert.False(t, d.VisitedDecoration)
	assert.False(t, d.VisitedUtensils)
	assert.False(t, d.VisitedFurniture)
}

func TestClone_IsDeep(t *testing.T) {
	d := New()
	guests := 5
	d.Update(Patch{GuestCount: &guests})
	d.AddToCart(item("a", "1"), 1)

	c := d.Clone()
	*c.GuestCount = 50
	c.CartItems[0].Quantity = 7

	assert.Equal(t, 5, *d.GuestCount)
	assert.Equal(t, 1, d.CartItems[0].Quantity)
}

func TestDraftJSON_RoundTrip(t *testing.T) {
	d := New()
	loc := GeoPointLocation(6.9271, 79.8612)
	d.Update(Patch{EventType: strPtr("Gala"), EventLocation: &loc})
	d.AddToCart(item("a", "12.30"), 2)
	d.MarkVisited(catalog.KindDecoration)

	data, err := json.Marshal(d)
	require.NoError(t, err)

	decoded := New()
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, d, decoded)
}

func TestCartLine_PriceAcceptsNumberOrString(t *testing.T) {
	var lines []CartLine
	err := json.Unmarshal([]byte(`[{"id":"a","price":12.5,"quantity":1},{"id":"b","price":"7.25","quantity":2},{"id":"c","price":null,"quantity":1}]`), &lines)
	require.NoError(t, err)

	assert.Equal(t, Price("12.5"), lines[0].Price)
	assert.Equal(t, Price("7.25"), lines[1].Price)
	assert.Equal(t, Price(""), lines[2].Price)

	d := &Draft{CartItems: lines}
	assert.Equal(t, "27.00", d.GrandTotal().StringFixed(2))

	err = json.Unmarshal([]byte(`[{"id":"x","price":{"amount":1}}]`), &lines)
	assert.Error(t, err)
}
