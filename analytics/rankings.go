package analytics

import (
	"sort"

	"commerce-dashboard/models"
)

// distinctRank groups rows by key and counts distinct entity ids per
// group, descending by count. Groups keep their first-seen order among
// equal counts (stable sort).
type distinctRank struct {
	order  []string
	groups map[string]map[string]struct{}
}

func newDistinctRank() *distinctRank {
	return &distinctRank{groups: map[string]map[string]struct{}{}}
}

func (r *distinctRank) add(key, id string) {
	g, ok := r.groups[key]
	if !ok {
		g = map[string]struct{}{}
		r.groups[key] = g
		r.order = append(r.order, key)
	}
	g[id] = struct{}{}
}

func (r *distinctRank) ranked() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return len(r.groups[keys[i]]) > len(r.groups[keys[j]])
	})
	return keys
}

// SumProducts ranks product categories by the number of distinct
// products sold, descending. Records without a category form their own
// group under the empty name rather than being dropped.
func SumProducts(orders []models.OrderRecord) []models.CategorySummary {
	rank := newDistinctRank()
	for _, r := range orders {
		category := ""
		if r.ProductCategoryName != nil {
			category = *r.ProductCategoryName
		}
		rank.add(category, r.ProductID)
	}

	summaries := make([]models.CategorySummary, 0, len(rank.order))
	for _, key := range rank.ranked() {
		summaries = append(summaries, models.CategorySummary{
			ProductCategoryName: key,
			Quantity:            len(rank.groups[key]),
		})
	}
	return summaries
}

var reviewScores = []int{1, 2, 3, 4, 5}

// SumReviews ranks review scores by the number of distinct orders that
// received them, descending. Unreviewed line items are excluded. When
// zeroFill is set, scores 1-5 absent from the data are appended with a
// zero quantity so the caller gets a fixed display domain; real counts
// keep their rank either way.
func SumReviews(orders []models.OrderRecord, zeroFill bool) []models.ReviewSummary {
	byScore := map[int]map[string]struct{}{}
	var seen []int
	for _, r := range orders {
		if r.ReviewScore == nil {
			continue
		}
		score := *r.ReviewScore
		g, ok := byScore[score]
		if !ok {
			g = map[string]struct{}{}
			byScore[score] = g
			seen = append(seen, score)
		}
		g[r.OrderID] = struct{}{}
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return len(byScore[seen[i]]) > len(byScore[seen[j]])
	})

	summaries := make([]models.ReviewSummary, 0, len(seen))
	for _, score := range seen {
		summaries = append(summaries, models.ReviewSummary{
			ReviewScore: score,
			Quantity:    len(byScore[score]),
		})
	}
	if zeroFill {
		for _, score := range reviewScores {
			if _, ok := byScore[score]; !ok {
				summaries = append(summaries, models.ReviewSummary{ReviewScore: score})
			}
		}
	}
	return summaries
}

// CityRankingKey selects which side of the transaction CityRanking
// groups on.
type CityRankingKey int

const (
	RankCustomerCities CityRankingKey = iota
	RankSellerCities
)

// CityRanking ranks cities by distinct customers (or sellers),
// descending. The second result lists every city attaining the maximum
// quantity, in rank order, for downstream highlighting; ties are all
// included.
func CityRanking(orders []models.OrderRecord, by CityRankingKey) ([]models.CitySummary, []string) {
	rank := newDistinctRank()
	for _, r := range orders {
		if by == RankSellerCities {
			rank.add(r.SellerCity, r.SellerID)
		} else {
			rank.add(r.CustomerCity, r.CustomerID)
		}
	}

	keys := rank.ranked()
	summaries := make([]models.CitySummary, 0, len(keys))
	var top []string
	for _, key := range keys {
		qty := len(rank.groups[key])
		summaries = append(summaries, models.CitySummary{City: key, Quantity: qty})
		if qty == len(rank.groups[keys[0]]) {
			top = append(top, key)
		}
	}
	return summaries, top
}
