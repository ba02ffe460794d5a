package game

import "github.com/bluetrivia/bluetrivia/internal/models"

// Rank returns only the correct responses, in arrival order. Input is
// assumed position-ordered, which ResponsesByRound and the scoring
// pass both guarantee; position is a strict total order so ties cannot
// occur.
func Rank(responses []models.Response) []models.Response {
	ranked := make([]models.Response, 0, len(responses))
	for _, resp := range responses {
		if resp.IsCorrect {
			ranked = append(ranked, resp)
		}
	}
	return ranked
}

// TournamentDelta maps handles to placement bonus points. The bonus
// table indexes by position among correct responses only, so a correct
// answer at raw arrival position 7 still earns first-place points when
// every earlier reply was wrong. A handle correct more than once
// accumulates the bonus of each placement it holds; the delta is the
// handle's total for the round.
func TournamentDelta(rankedCorrect []models.Response, bonusTable []int) map[string]int {
	deltas := make(map[string]int, len(rankedCorrect))
	for i, resp := range rankedCorrect {
		bonus := 0
		if i < len(bonusTable) {
			bonus = bonusTable[i]
		}
		deltas[resp.Handle] += bonus
	}
	return deltas
}

// successPercent computes round(correct/total*100), rounding half up.
// Callers must not pass total zero; a round with no replies is skipped
// before percentages are computed.
func successPercent(correct, total int) int {
	return (200*correct + total) / (2 * total)
}
