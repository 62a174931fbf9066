package settlement

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxScore bounds the magnitude of a single raw score
const MaxScore = math.MaxInt32

// CompleteScores fills a single unset score so the round adds up to origin.
// Unset scores are nil. A vector with no unset score is returned as is; a vector
// with two or more is returned unchanged together with ErrInvalidInput.
func CompleteScores(scores []*int, origin int) ([]*int, error) {
	if len(scores) != Players {
		return scores, fmt.Errorf("%w: expected %d scores, got %d", ErrInvalidInput, Players, len(scores))
	}

	missing := -1
	unset := 0
	sum := 0
	for seat, score := range scores {
		if score == nil {
			missing = seat
			unset++
			continue
		}
		if err := checkScore(seat, *score); err != nil {
			return scores, err
		}
		sum += *score
	}

	switch unset {
	case 0:
		return scores, nil
	case 1:
		completed := make([]*int, Players)
		copy(completed, scores)
		value := origin - sum
		completed[missing] = &value
		return completed, nil
	default:
		return scores, fmt.Errorf("%w: %d scores are missing, only one can be completed", ErrInvalidInput, unset)
	}
}

// RequireComplete returns the scores as plain values, failing if any is still unset
func RequireComplete(scores []*int) ([]int, error) {
	if len(scores) != Players {
		return nil, fmt.Errorf("%w: expected %d scores, got %d", ErrInvalidInput, Players, len(scores))
	}

	values := make([]int, Players)
	for seat, score := range scores {
		if score == nil {
			return nil, fmt.Errorf("%w: score for seat %d is missing", ErrInvalidInput, seat+1)
		}
		if err := checkScore(seat, *score); err != nil {
			return nil, err
		}
		values[seat] = *score
	}
	return values, nil
}

// ParseScores reads scores typed by players. Blank entries are left unset.
func ParseScores(raw []string) ([]*int, error) {
	scores := make([]*int, len(raw))
	for i, text := range raw {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		value, err := parseScore(text)
		if err != nil {
			return nil, fmt.Errorf("%w: seat %d: %v", ErrInvalidInput, i+1, err)
		}
		scores[i] = &value
	}
	return scores, nil
}

func parseScore(text string) (int, error) {
	text = strings.ReplaceAll(text, ",", "")

	if value, err := strconv.Atoi(text); err == nil {
		if value > MaxScore || value < -MaxScore {
			return 0, fmt.Errorf("%q is out of range", text)
		}
		return value, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not finite", text)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole score", text)
	}
	if math.Abs(f) > MaxScore {
		return 0, fmt.Errorf("%q is out of range", text)
	}
	return int(f), nil
}

func checkScore(seat, score int) error {
	if score > MaxScore || score < -MaxScore {
		return fmt.Errorf("%w: score for seat %d is out of range", ErrInvalidInput, seat+1)
	}
	return nil
}
