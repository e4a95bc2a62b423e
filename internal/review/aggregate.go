package review

import (
	"slices"

	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/shopspring/decimal"
)

// Entry is one review ready for display next to the food it belongs to.
type Entry struct {
	FoodID   int
	FoodName string
	Review   domain.Review
}

// Flatten lists reviews by ascending food id, then submission order. A
// positive foodID keeps only that food's reviews. Reviews of foods missing
// from the catalog get an empty name.
func Flatten(catalog []domain.CatalogItem, reviews domain.ReviewMap, foodID int) []Entry {
	names := make(map[int]string, len(catalog))
	for _, item := range catalog {
		names[item.ID] = item.Name
	}

	ids := make([]int, 0, len(reviews))
	for id := range reviews {
		if foodID > 0 && id != foodID {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var entries []Entry
	for _, id := range ids {
		for _, r := range reviews[id] {
			r.FoodID = id
			entries = append(entries, Entry{FoodID: id, FoodName: names[id], Review: r})
		}
	}
	return entries
}

type RatedItem struct {
	Item          domain.CatalogItem
	Count         int
	AverageRating decimal.Decimal
}

// Ratings merges review averages into the catalog, keeping catalog order.
// Items without reviews have a zero average.
func Ratings(catalog []domain.CatalogItem, reviews domain.ReviewMap) []RatedItem {
	out := make([]RatedItem, 0, len(catalog))

	for _, item := range catalog {
		list := reviews[item.ID]

		avg := decimal.Zero
		if len(list) > 0 {
			sum := 0
			for _, r := range list {
				sum += r.Rating
			}
			avg = domain.RoundPrice(decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(list)))))
		}

		out = append(out, RatedItem{Item: item, Count: len(list), AverageRating: avg})
	}

	return out
}
