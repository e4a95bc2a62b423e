package domain

// Review is immutable once submitted. FoodID is the key of the persisted map,
// so it is not part of the encoded review.
type Review struct {
	FoodID int     `json:"-"`
	Text   string  `json:"text"`
	Image  *string `json:"image"`
	Rating int     `json:"rating"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// ReviewMap is keyed by food id and encodes as {"<foodId>": [review, ...]}.
type ReviewMap map[int][]Review

// Append adds r under r.FoodID without touching the existing slice backing array.
func (m ReviewMap) Append(r Review) {
	existing := m[r.FoodID]
	next := make([]Review, 0, len(existing)+1)
	next = append(next, existing...)
	m[r.FoodID] = append(next, r)
}
