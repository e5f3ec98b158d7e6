package ranking

import "math"

// Rank grades how many turns a level took per pair on the board
type Rank struct {
	Title    string
	MaxRatio float64
}

// Available ranks from best to worst
var Ranks = []Rank{
	{Title: "Perfect memory", MaxRatio: 1.0},
	{Title: "Gold", MaxRatio: 1.5},
	{Title: "Silver", MaxRatio: 2.0},
	{Title: "Bronze", MaxRatio: 3.0},
	{Title: "Keep practicing", MaxRatio: math.Inf(1)},
}

// Ratio returns turns per pair. Fewer turns than pairs cannot happen and is
// treated as a perfect clear.
func Ratio(turns, pairs int) float64 {
	if pairs <= 0 {
		return 0
	}
	if turns < pairs {
		turns = pairs
	}
	return float64(turns) / float64(pairs)
}

// GetRank returns the rank for clearing a level of pairs in turns
func GetRank(turns, pairs int) Rank {
	ratio := Ratio(turns, pairs)
	for _, rank := range Ranks {
		if ratio <= rank.MaxRatio {
			return rank
		}
	}
	return Ranks[len(Ranks)-1]
}

// Efficiency scores a clear from 0 to 100, 100 being one turn per pair
func Efficiency(turns, pairs int) int {
	ratio := Ratio(turns, pairs)
	if ratio == 0 {
		return 0
	}
	return int(math.Round(100 / ratio))
}
