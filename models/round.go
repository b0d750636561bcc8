package models

// KnockoutRound is a named stage of a single-elimination bracket.
type KnockoutRound string

const (
	RoundOf32     KnockoutRound = "ROUND_OF_32"
	RoundOf16     KnockoutRound = "ROUND_OF_16"
	QuarterFinals KnockoutRound = "QUARTER_FINALS"
	SemiFinals    KnockoutRound = "SEMI_FINALS"
	Finals        KnockoutRound = "FINALS"
)

// roundRanks orders the bracket: a higher rank plays earlier. The rank
// doubles as the knockout matchday, so sorting matches by matchday
// descending lists the opening round first and the final last.
var roundRanks = map[KnockoutRound]int{
	RoundOf32:     32,
	RoundOf16:     16,
	QuarterFinals: 8,
	SemiFinals:    4,
	Finals:        2,
}

// Rank reports the round's ordering rank. ok is false for a round name
// missing from the table.
func (r KnockoutRound) Rank() (int, bool) {
	rank, ok := roundRanks[r]
	return rank, ok
}
