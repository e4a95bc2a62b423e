package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI against a throwaway home and working directory so
// that no local config leaks in.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfgPath := filepath.Join(t.TempDir(), "foodcart.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0o600))

	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--owner", "test-owner"}, args...))

	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCatalogCommand(t *testing.T) {
	out, _, err := execute(t, "catalog", "--category", "Salads")
	require.NoError(t, err)

	assert.Contains(t, out, "Caesar Salad")
	assert.NotContains(t, out, "Margherita")
}

func TestCatalogCommand_BadCategory(t *testing.T) {
	_, _, err := execute(t, "catalog", "--category", "Soups")
	require.ErrorContains(t, err, "category[Soups] is not valid")
}

func TestCatalogSeed_RequiresPostgres(t *testing.T) {
	_, _, err := execute(t, "catalog", "seed")
	require.ErrorContains(t, err, "catalog seed needs catalog.source=postgres")
}

func TestCartAddCommand(t *testing.T) {
	out, _, err := execute(t, "cart", "add", "1", "--topping", "Extra Cheese=2", "-t", "Olives=1")
	require.NoError(t, err)

	assert.Contains(t, out, "added Margherita: Classic pizza with tomatoes and mozzarella with 2x Extra Cheese, 1x Olives (12.99)")
	assert.Contains(t, out, "USD 12.99")
}

func TestCartAddCommand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantError string
	}{
		{
			name:      "bad food id: error",
			args:      []string{"cart", "add", "pizza"},
			wantError: "food id[pizza] is not valid",
		},
		{
			name:      "unknown food: error",
			args:      []string{"cart", "add", "99"},
			wantError: "food[99]",
		},
		{
			name:      "unknown topping: error",
			args:      []string{"cart", "add", "1", "-t", "Anchovies=1"},
			wantError: domain.ErrInvalidSelection.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.ErrorContains(t, err, tt.wantError)
		})
	}
}

func TestCartEditCommand_NotInCart(t *testing.T) {
	_, _, err := execute(t, "cart", "edit", "1", "--inc", "Olives")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckoutCommand_EmptyCart(t *testing.T) {
	_, _, err := execute(t, "checkout", "--dine-in", "12")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckoutCommand_ExclusiveFlags(t *testing.T) {
	_, _, err := execute(t, "checkout", "--dine-in", "12", "--delivery")
	require.Error(t, err)
}

func TestReviewSubmitCommand(t *testing.T) {
	out, _, err := execute(t, "review", "submit", "2", "--rating", "4", "--text", "spicy", "--image", "file:///tmp/p.jpg")
	require.NoError(t, err)

	assert.Contains(t, out, "-> Home refresh=true")
	assert.Contains(t, out, "Review submitted")
}

func TestReviewSubmitCommand_BadRating(t *testing.T) {
	_, _, err := execute(t, "review", "submit", "2", "--rating", "6")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestReviewListCommand_Empty(t *testing.T) {
	out, _, err := execute(t, "review", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No reviews yet")
}

func TestRatingsCommand(t *testing.T) {
	out, _, err := execute(t, "ratings")
	require.NoError(t, err)

	assert.Contains(t, out, "Margherita")
	assert.Contains(t, out, "0.00")
}

func TestMetricsFlag(t *testing.T) {
	_, stderr, err := execute(t, "--metrics", "cart", "add", "1")
	require.NoError(t, err)

	assert.Contains(t, stderr, `foodcart_cart_mutations_total{op="add"} 1`)
	assert.Contains(t, stderr, "foodcart_cart_total_price 8.99")
}

func TestParseToppings(t *testing.T) {
	tests := []struct {
		name      string
		values    []string
		want      []domain.ToppingSelection
		wantError string
	}{
		{
			name:   "names with spaces: ok",
			values: []string{"Extra Cheese=2", " Olives = 1"},
			want: []domain.ToppingSelection{
				{Name: "Extra Cheese", Quantity: 2},
				{Name: "Olives", Quantity: 1},
			},
		},
		{
			name:   "empty: ok",
			values: nil,
			want:   []domain.ToppingSelection{},
		},
		{
			name:      "missing quantity: error",
			values:    []string{"Olives"},
			wantError: "topping[Olives] must be name=quantity",
		},
		{
			name:      "missing name: error",
			values:    []string{"=2"},
			wantError: "topping[=2] must be name=quantity",
		},
		{
			name:      "bad quantity: error",
			values:    []string{"Olives=lots"},
			wantError: "topping[Olives=lots] quantity is not a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseToppings(tt.values)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefMedia(t *testing.T) {
	ctx := context.Background()

	ref, err := (&refMedia{ref: "img://1"}).CaptureFromCamera(ctx)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "img://1", *ref)

	ref, err = (&refMedia{}).PickFromLibrary(ctx)
	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestReviewSubmitCommand_CameraWithoutImage(t *testing.T) {
	out, _, err := execute(t, "review", "submit", "3", "--rating", "5", "--camera")
	require.NoError(t, err)
	assert.Contains(t, out, "Review submitted")
}

func TestLogNavigator(t *testing.T) {
	var out bytes.Buffer
	n := &logNavigator{logger: slog.Default(), out: &out}

	require.NoError(t, n.NavigateTo(context.Background(), "Home", map[string]any{"refresh": true, "a": 1}))
	assert.Equal(t, "-> Home a=1 refresh=true\n", out.String())
}

func TestOwnerID_Stable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.Equal(t, "given", ownerID("given"))
	assert.Equal(t, ownerID(""), ownerID(""))
}
