package ranking

import (
	"sort"

	"github.com/jonathan/resume-matcher/internal/types"
)

// RankCandidates orders batch entries by final score (descending) and assigns
// 1-based ranks. Failed entries sort last and carry no rank. Equal scores keep
// input order.
func RankCandidates(entries []types.RankedCandidate) []types.RankedCandidate {
	ranked := make([]types.RankedCandidate, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Analysis, ranked[j].Analysis
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.FinalScore > b.FinalScore
		}
	})

	for i := range ranked {
		if ranked[i].Analysis != nil {
			ranked[i].Rank = i + 1
		} else {
			ranked[i].Rank = 0
		}
	}
	return ranked
}
