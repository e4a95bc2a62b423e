package cart_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/foodcart/internal/cart"
	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/nikolayk812/foodcart/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTotalPrice(t *testing.T) {
	c := cart.New()
	assert.Equal(t, "0.00", c.TotalPrice().StringFixed(2))

	c.Add(domain.LineItem{ID: 1, TotalPrice: decimal.RequireFromString("12.99")})
	assert.Equal(t, "12.99", c.TotalPrice().StringFixed(2))

	total := c.Total()
	assert.Equal(t, currency.USD, total.Currency)
	assert.Equal(t, "USD 12.99", total.String())
}

func TestTotalPrice_SumOfLines(t *testing.T) {
	for n := range 20 {
		c := cart.New()
		want := decimal.Zero

		for range n {
			item := randomLineItem()
			want = want.Add(item.TotalPrice)
			c.Add(item)
		}

		assert.True(t, want.Equal(c.TotalPrice()), "n=%d want %s got %s", n, want, c.TotalPrice())
		assert.Len(t, c.Items(), n)
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		policy  cart.AddPolicy
		adds    []domain.LineItem
		wantIDs []int
		wantTot string
	}{
		{
			name:   "append keeps duplicates: ok",
			policy: cart.AddAppend,
			adds: []domain.LineItem{
				lineItem(1, "5.00"),
				lineItem(2, "3.00"),
				lineItem(1, "6.00"),
			},
			wantIDs: []int{1, 2, 1},
			wantTot: "14.00",
		},
		{
			name:   "replace swaps same id in place: ok",
			policy: cart.AddReplace,
			adds: []domain.LineItem{
				lineItem(1, "5.00"),
				lineItem(2, "3.00"),
				lineItem(1, "6.00"),
			},
			wantIDs: []int{1, 2},
			wantTot: "9.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New(cart.WithAddPolicy(tt.policy))
			for _, item := range tt.adds {
				c.Add(item)
			}

			assert.Equal(t, tt.wantIDs, ids(c.Items()))
			assert.Equal(t, tt.wantTot, c.TotalPrice().StringFixed(2))
		})
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name      string
		id        int
		with      domain.LineItem
		wantIDs   []int
		wantTot   string
		wantError error
	}{
		{
			name:    "replace middle line: ok",
			id:      2,
			with:    lineItem(2, "10.00"),
			wantIDs: []int{1, 2, 3},
			wantTot: "13.00",
		},
		{
			name:      "replace absent line: not found",
			id:        9,
			with:      lineItem(9, "10.00"),
			wantIDs:   []int{1, 2, 3},
			wantTot:   "4.50",
			wantError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New()
			c.Add(lineItem(1, "1.00"))
			c.Add(lineItem(2, "1.50"))
			c.Add(lineItem(3, "2.00"))
			before := c.Items()

			err := c.Replace(tt.id, tt.with)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
			}

			after := c.Items()
			assert.Equal(t, tt.wantIDs, ids(after))
			assert.Equal(t, tt.wantTot, c.TotalPrice().StringFixed(2))

			// untouched lines stay identical
			for i := range after {
				if after[i].ID == tt.id && tt.wantError == nil {
					continue
				}
				assert.Empty(t, cmp.Diff(before[i], after[i], decimalComparer))
			}
		})
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name    string
		id      int
		wantIDs []int
	}{
		{
			name:    "remove all lines with id: ok",
			id:      1,
			wantIDs: []int{2},
		},
		{
			name:    "remove absent id: unchanged",
			id:      42,
			wantIDs: []int{1, 2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New()
			c.Add(lineItem(1, "1.00"))
			c.Add(lineItem(2, "1.00"))
			c.Add(lineItem(1, "1.00"))

			c.Remove(tt.id)

			assert.Equal(t, tt.wantIDs, ids(c.Items()))
		})
	}
}

func TestSubscribe(t *testing.T) {
	c := cart.New()

	var got []cart.Snapshot
	unsubscribe := c.Subscribe(func(s cart.Snapshot) {
		got = append(got, s)
	})

	c.Add(lineItem(1, "2.00"))
	c.Add(lineItem(2, "3.00"))
	require.ErrorIs(t, c.Replace(7, lineItem(7, "1.00")), domain.ErrNotFound)
	c.Remove(1)

	require.Len(t, got, 3, "rejected mutations are not published")
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{got[0].Version, got[1].Version, got[2].Version})
	assert.Equal(t, []int{1}, ids(got[0].Items))
	assert.Equal(t, []int{1, 2}, ids(got[1].Items))
	assert.Equal(t, []int{2}, ids(got[2].Items))

	unsubscribe()
	c.Add(lineItem(3, "1.00"))
	assert.Len(t, got, 3)
}

func TestSnapshotIsolation(t *testing.T) {
	c := cart.New()
	c.Add(domain.LineItem{ID: 1, TotalPrice: decimal.NewFromInt(1), Toppings: map[string]int{"cheese": 1}})

	items := c.Items()
	items[0].Toppings["cheese"] = 99
	items[0].Name = "mutated"

	again, ok := c.Find(1)
	require.True(t, ok)
	assert.Equal(t, 1, again.Toppings["cheese"])
	assert.Empty(t, again.Name)
}

func TestRestoreAndClear(t *testing.T) {
	c := cart.New()
	c.Restore([]domain.LineItem{lineItem(4, "4.00"), lineItem(5, "5.00")})
	assert.Equal(t, []int{4, 5}, ids(c.Items()))
	assert.Equal(t, uint64(1), c.Snapshot().Version)

	c.Clear()
	assert.Empty(t, c.Items())
	assert.Equal(t, "0.00", c.TotalPrice().StringFixed(2))
}

func TestClose(t *testing.T) {
	c := cart.New()

	calls := 0
	c.Subscribe(func(cart.Snapshot) { calls++ })
	c.Close()

	c.Add(lineItem(1, "1.00"))
	c.Subscribe(func(cart.Snapshot) { calls++ })
	c.Add(lineItem(2, "1.00"))

	assert.Zero(t, calls)
	assert.Len(t, c.Items(), 2)
}

func TestMetrics(t *testing.T) {
	m := metrics.Nop()
	c := cart.New(cart.WithMetrics(m))

	c.Add(lineItem(1, "2.50"))
	c.Add(lineItem(2, "2.50"))
	c.Remove(2)

	assert.InDelta(t, 2, testutil.ToFloat64(m.CartMutations.WithLabelValues("add")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CartMutations.WithLabelValues("remove")), 0)
	assert.InDelta(t, 2.5, testutil.ToFloat64(m.CartTotal), 0.0001)
}

func TestParseAddPolicy(t *testing.T) {
	p, err := cart.ParseAddPolicy("replace")
	require.NoError(t, err)
	assert.Equal(t, cart.AddReplace, p)

	_, err = cart.ParseAddPolicy("merge")
	require.EqualError(t, err, "add policy[merge] is not valid")
}

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})

func lineItem(id int, total string) domain.LineItem {
	price := decimal.RequireFromString(total)
	return domain.LineItem{
		ID:         id,
		Name:       gofakeit.Dessert(),
		BasePrice:  price,
		TotalPrice: price,
	}
}

func randomLineItem() domain.LineItem {
	price := decimal.NewFromFloat(gofakeit.Price(1, 50)).Round(2)
	return domain.LineItem{
		ID:          gofakeit.IntRange(1, 100),
		Name:        gofakeit.Dessert(),
		Description: gofakeit.Phrase(),
		BasePrice:   price,
		TotalPrice:  price,
	}
}

func ids(items []domain.LineItem) []int {
	out := make([]int, 0, len(items))
	for _, l := range items {
		out = append(out, l.ID)
	}
	return out
}
