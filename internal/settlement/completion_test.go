package settlement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestCompleteScores(t *testing.T) {
	tests := []struct {
		name    string
		scores  []*int
		want    []*int
		wantErr error
	}{
		{
			name:   "fills first seat",
			scores: []*int{nil, intPtr(18000), intPtr(15000)},
			want:   []*int{intPtr(42000), intPtr(18000), intPtr(15000)},
		},
		{
			name:   "fills last seat",
			scores: []*int{intPtr(42000), intPtr(18000), nil},
			want:   []*int{intPtr(42000), intPtr(18000), intPtr(15000)},
		},
		{
			name:   "fills a negative score",
			scores: []*int{intPtr(70000), nil, intPtr(10000)},
			want:   []*int{intPtr(70000), intPtr(-5000), intPtr(10000)},
		},
		{
			name:   "passes complete scores through unchecked",
			scores: []*int{intPtr(1), intPtr(2), intPtr(3)},
			want:   []*int{intPtr(1), intPtr(2), intPtr(3)},
		},
		{
			name:    "leaves two missing scores unset",
			scores:  []*int{intPtr(42000), nil, nil},
			want:    []*int{intPtr(42000), nil, nil},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "rejects wrong length",
			scores:  []*int{intPtr(42000), nil},
			want:    []*int{intPtr(42000), nil},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompleteScores(tt.scores, 75000)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompleteScores_DoesNotModifyInput(t *testing.T) {
	scores := []*int{intPtr(42000), nil, intPtr(15000)}

	completed, err := CompleteScores(scores, 75000)
	require.NoError(t, err)
	assert.Nil(t, scores[1])
	assert.Equal(t, 18000, *completed[1])
}

func TestCompleteScores_SumsToOrigin(t *testing.T) {
	for missing := 0; missing < Players; missing++ {
		for a := -30000; a <= 90000; a += 7000 {
			for b := -30000; b <= 90000; b += 11000 {
				scores := []*int{intPtr(a), intPtr(b), intPtr(a + b)}
				scores[missing] = nil

				completed, err := CompleteScores(scores, 105000)
				require.NoError(t, err)

				values, err := RequireComplete(completed)
				require.NoError(t, err)
				require.Equal(t, 105000, values[0]+values[1]+values[2])
			}
		}
	}
}

func TestRequireComplete(t *testing.T) {
	values, err := RequireComplete([]*int{intPtr(1), intPtr(2), intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)

	_, err = RequireComplete([]*int{intPtr(1), nil, intPtr(3)})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = RequireComplete([]*int{intPtr(1), intPtr(2)})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseScores(t *testing.T) {
	scores, err := ParseScores([]string{"42000", " 18,000 ", ""})
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 42000, *scores[0])
	assert.Equal(t, 18000, *scores[1])
	assert.Nil(t, scores[2])

	scores, err = ParseScores([]string{"-5000", "4.2e4", "38000.0"})
	require.NoError(t, err)
	assert.Equal(t, -5000, *scores[0])
	assert.Equal(t, 42000, *scores[1])
	assert.Equal(t, 38000, *scores[2])

	for _, bad := range []string{"abc", "NaN", "Inf", "-Inf", "1.5", "1e20", "9223372036854775807", "-2147483648", "2147483648"} {
		_, err := ParseScores([]string{"1000", bad, ""})
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestCompleteScores_RejectsOutOfRangeScores(t *testing.T) {
	huge := math.MaxInt64

	completed, err := CompleteScores([]*int{intPtr(huge), intPtr(1), nil}, 75000)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, completed[2], "nothing is completed from an out-of-range score")

	_, err = RequireComplete([]*int{intPtr(huge), intPtr(1), intPtr(-huge)})
	require.ErrorIs(t, err, ErrInvalidInput)

	scores, err := ParseScores([]string{"2147483647", "-2147483647", ""})
	require.NoError(t, err)
	completed, err = CompleteScores(scores, 75000)
	require.NoError(t, err)
	assert.Equal(t, 75000, *completed[2])
}
