package scoring

import "github.com/osse101/CineLoot_Go/internal/domain"

// Scored pairs a content item with its freshly computed quality score
type Scored struct {
	Item  domain.ContentItem
	Score int
}

// Rejected is an item excluded because its signals could not be scored
type Rejected struct {
	Item domain.ContentItem
	Err  error
}

// ScoreAll scores items in input order. Items with invalid data are returned
// separately instead of failing the whole batch.
func ScoreAll(items []domain.ContentItem) ([]Scored, []Rejected) {
	scored := make([]Scored, 0, len(items))
	var rejected []Rejected
	for _, item := range items {
		score, err := ComputeQualityScore(item)
		if err != nil {
			rejected = append(rejected, Rejected{Item: item, Err: err})
			continue
		}
		scored = append(scored, Scored{Item: item, Score: score})
	}
	return scored, rejected
}
