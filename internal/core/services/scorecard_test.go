package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanTeeName(t *testing.T) {
	assert.Equal(t, "Blue", cleanTeeName("Blue:"))
	assert.Equal(t, "Blue", cleanTeeName(" Blue (2023) "))
	assert.Equal(t, "White", cleanTeeName("White"))
	assert.Equal(t, "Championship", cleanTeeName("Championship (Men):"))
}

func TestGuessTeeColor(t *testing.T) {
	cases := []struct {
		name  string
		color string
	}{
		{"Blue", "blue"},
		{"BLACK", "black"},
		{"Yellow", "gold"},
		{"Championship", "black"},
		{"Tips", "black"},
		{"Back", "blue"},
		{"Middle", "white"},
		{"Senior", "red"},
		{"Ladies Forward", "red"},
		{"Copper", "gold"},
		{"Combo", "gray"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.color, guessTeeColor(tc.name))
		})
	}
}

func TestParseScorecard_LabeledRows(t *testing.T) {
	rows := []any{
		map[string]any{"Hole:": "Par:", "1": "4", "2": "5", "3": "3", "Out": "12"},
		map[string]any{"Hole:": "Handicap:", "1": "7", "2": "1", "3": "15"},
		map[string]any{"Hole:": "Blue:", "1": "410", "2": "520", "3": "175", "Out": "1105"},
		map[string]any{"Hole:": "White:", "1": "390", "2": "500", "3": "160"},
	}

	sc := parseScorecard(rows)
	require.NotNil(t, sc)

	assert.Equal(t, 3, sc.NumHoles)
	assert.Equal(t, []int{4, 5, 3}, sc.Par.Holes)
	require.NotNil(t, sc.Par.Total)
	assert.Equal(t, 12, *sc.Par.Total)

	require.Len(t, sc.Handicap, 3)
	assert.Equal(t, 7, *sc.Handicap[0])
	assert.Equal(t, 1, *sc.Handicap[1])

	blue, ok := sc.TeeYardages["Blue"]
	require.True(t, ok)
	assert.Equal(t, []int{410, 520, 175}, blue.HoleYardages)
	assert.Equal(t, 1105, blue.TotalYardage)

	white, ok := sc.TeeYardages["White"]
	require.True(t, ok)
	assert.Equal(t, 1050, white.TotalYardage)
}

func TestParseScorecard_PerHoleRows(t *testing.T) {
	rows := []any{
		map[string]any{
			"Hole": float64(1), "Par": float64(4), "Handicap": float64(9),
			"tees": map[string]any{
				"teeBox1": map[string]any{"color": "Blue", "yards": float64(401)},
				"teeBox2": map[string]any{"color": "White", "yards": float64(380)},
			},
		},
		map[string]any{
			"Hole": float64(2), "Par": float64(3), "Handicap": float64(17),
			"tees": map[string]any{
				"teeBox1": map[string]any{"color": "Blue", "yards": float64(190)},
				"teeBox2": map[string]any{"color": "White", "yards": float64(165)},
			},
		},
	}

	sc := parseScorecard(rows)
	require.NotNil(t, sc)

	assert.Equal(t, 2, sc.NumHoles)
	assert.Equal(t, []int{4, 3}, sc.Par.Holes)
	require.NotNil(t, sc.Par.Total)
	assert.Equal(t, 7, *sc.Par.Total)

	blue, ok := sc.TeeYardages["Blue"]
	require.True(t, ok)
	assert.Equal(t, []int{401, 190}, blue.HoleYardages)
	assert.Equal(t, 591, blue.TotalYardage)
}

func TestParseScorecard_JSONString(t *testing.T) {
	raw := `[{"Hole:": "Par:", "1": "4", "2": "4"}, {"Hole:": "Red:", "1": "300", "2": "310"}]`

	sc := parseScorecard(raw)
	require.NotNil(t, sc)

	assert.Equal(t, []int{4, 4}, sc.Par.Holes)
	red, ok := sc.TeeYardages["Red"]
	require.True(t, ok)
	assert.Equal(t, 610, red.TotalYardage)
}

func TestParseScorecard_Unusable(t *testing.T) {
	assert.Nil(t, parseScorecard(nil))
	assert.Nil(t, parseScorecard("not json"))
	assert.Nil(t, parseScorecard([]any{}))
	assert.Nil(t, parseScorecard(42))
	assert.Nil(t, parseScorecard([]any{map[string]any{"foo": "bar"}}))
}

func TestParseScorecard_FrontBackSplit(t *testing.T) {
	rows := make([]any, 0, 19)
	parRow := map[string]any{"Hole:": "Par:"}
	teeRow := map[string]any{"Hole:": "Gold:"}
	for h := 1; h <= 18; h++ {
		key := strconv.Itoa(h)
		parRow[key] = "4"
		teeRow[key] = "350"
	}
	rows = append(rows, parRow, teeRow)

	sc := parseScorecard(rows)
	require.NotNil(t, sc)

	assert.Equal(t, 18, sc.NumHoles)
	require.NotNil(t, sc.Par.Front)
	assert.Equal(t, 36, *sc.Par.Front)
	require.NotNil(t, sc.Par.Back)
	assert.Equal(t, 36, *sc.Par.Back)

	gold := sc.TeeYardages["Gold"]
	assert.Equal(t, 3150, gold.FrontYardage)
	assert.Equal(t, 3150, gold.BackYardage)
	assert.Equal(t, 6300, gold.TotalYardage)
}
