package settlement

import (
	"fmt"
	"sort"
)

const (
	// scoreUnit is the granularity raw scores are rounded to before ranking
	scoreUnit = 10

	// pointUnit converts adjusted scores into settlement points
	pointUnit = 1000
)

// Settle computes the settlement points of one round.
// The result is zero-sum before the final division by 1000; the per-seat rounding
// that follows can leave it a point or two off, and that is not corrected.
func Settle(scores []int, rules *RuleSet) (RoundResult, error) {
	adjustment, err := Adjust(scores, rules)
	if err != nil {
		return RoundResult{}, err
	}

	return adjustment.Result(), nil
}

// Result divides each seat's adjusted points by 1000, rounding half away from zero
func (a *Adjustment) Result() RoundResult {
	var result RoundResult
	for seat, points := range a.Points {
		result[seat] = roundDiv(points, pointUnit)
	}
	return result
}

// Adjust applies rounding, rank adjustments and the return point to a round's raw scores
func Adjust(scores []int, rules *RuleSet) (*Adjustment, error) {
	if len(scores) != Players {
		return nil, fmt.Errorf("%w: expected %d scores, got %d", ErrInvalidInput, Players, len(scores))
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}

	adjustment := &Adjustment{
		Ranking: rank(scores),
	}

	for seat, raw := range scores {
		rounded := roundDiv(raw, scoreUnit) * scoreUnit
		if !rules.BoxRule && rounded < 0 {
			rounded = 0
		}
		adjustment.Rounded[seat] = rounded
		adjustment.Points[seat] = rounded
	}

	first, second, third := adjustment.First(), adjustment.Second(), adjustment.Third()
	points := &adjustment.Points

	points[second] += rules.Uma2
	if points[second] < rules.ReturnPoint {
		points[second] += rules.Uma2Low
	}
	points[third] += rules.Uma3

	points[second] -= rules.ReturnPoint
	points[third] -= rules.ReturnPoint

	// First place takes whatever the others lost, which keeps the round zero-sum.
	points[first] = -(points[second] + points[third])

	return adjustment, nil
}

// rank orders seats by raw score, highest first. Equal scores keep seat order.
func rank(scores []int) [Players]int {
	seats := []int{0, 1, 2}
	sort.SliceStable(seats, func(i, j int) bool {
		return scores[seats[i]] > scores[seats[j]]
	})

	var ranking [Players]int
	copy(ranking[:], seats)
	return ranking
}

// roundDiv divides n by d and rounds half away from zero. d must be positive.
func roundDiv(n, d int) int {
	q, r := n/d, n%d
	if r < 0 {
		r = -r
	}
	if 2*r >= d {
		if n < 0 {
			q--
		} else {
			q++
		}
	}
	return q
}

// ChipGainsFor converts each seat's chip count into money
func ChipGainsFor(counts []int, rules *RuleSet) (ChipGains, error) {
	if len(counts) != Players {
		return ChipGains{}, fmt.Errorf("%w: expected %d chip counts, got %d", ErrInvalidInput, Players, len(counts))
	}

	if rules == nil {
		return ChipGains{}, fmt.Errorf("%w: rule set cannot be nil", ErrConfiguration)
	}

	var gains ChipGains
	for seat, count := range counts {
		gains[seat] = count * rules.Chip
	}
	return gains, nil
}
