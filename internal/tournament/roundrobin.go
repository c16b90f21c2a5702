package tournament

import (
	"fmt"
	"sort"
)

// DefaultBestOf is the series length used when none is configured.
const DefaultBestOf = 3

// Options tunes schedule generation. A nil *Options uses the defaults.
type Options struct {
	BestOf int
}

func (o *Options) bestOf() int {
	if o == nil || o.BestOf <= 0 {
		return DefaultBestOf
	}
	return o.BestOf
}

// CreateMatchID returns an identifier for the pair that does not depend on
// argument order, e.g. "p1_vs_p2". Ids are not escaped, so ids that
// contain "_vs_" can produce the same identifier for different pairs.
func CreateMatchID(a, b Player) string {
	lo, hi := a.ID, b.ID
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("%s_vs_%s", lo, hi)
}

// GenerateRoundRobin pairs every player with every other player exactly once.
// Stronger players come first: the strongest player's matches lead the
// schedule, then the next strongest against everyone below them, and so on.
// The players slice is not modified.
func GenerateRoundRobin(players []Player, opts *Options) []Match {
	if len(players) < 2 {
		return nil
	}

	sorted := make([]Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Skill > sorted[j].Skill
	})

	bestOf := opts.bestOf()
	matches := make([]Match, 0, len(sorted)*(len(sorted)-1)/2)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			matches = append(matches, Match{
				ID:      CreateMatchID(sorted[i], sorted[j]),
				PlayerA: sorted[i],
				PlayerB: sorted[j],
				BestOf:  bestOf,
			})
		}
	}
	return matches
}
