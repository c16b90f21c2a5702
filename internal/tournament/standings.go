package tournament

import "sort"

// CalculateStandings tallies wins and losses from decided matches.
// Undecided matches are skipped. Both players of a decided match get a
// standing even if they have no win. Standings are returned in order of
// first appearance.
func CalculateStandings(matches []Match) ([]Standing, error) {
	index := make(map[string]int)
	var standings []Standing

	ensure := func(id string) {
		if _, ok := index[id]; ok {
			return
		}
		index[id] = len(standings)
		standings = append(standings, Standing{PlayerID: id})
	}

	for _, m := range matches {
		if !m.Decided() {
			continue
		}
		if err := m.validateResult(); err != nil {
			return nil, err
		}

		ensure(m.PlayerA.ID)
		ensure(m.PlayerB.ID)

		winner, _ := m.Winner()
		loser, _ := m.Loser()
		standings[index[winner]].Wins++
		standings[index[loser]].Losses++
	}

	return standings, nil
}

// CalculateStandingsWithTiebreaker returns standings ranked by wins
// (descending), then losses (ascending), then head-to-head result.
//
// Within a group of identical records, a player always ranks above every
// player they beat head-to-head. Among players whose place is not fixed by
// a direct result, earlier first appearance ranks higher. Head-to-head
// cycles fall back to first appearance for whoever is left in the cycle.
func CalculateStandingsWithTiebreaker(matches []Match) ([]Standing, error) {
	standings, err := CalculateStandings(matches)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Losses < b.Losses
	})

	h2h := newHeadToHead(matches)
	for start := 0; start < len(standings); {
		end := start + 1
		for end < len(standings) &&
			standings[end].Wins == standings[start].Wins &&
			standings[end].Losses == standings[start].Losses {
			end++
		}
		h2h.order(standings[start:end])
		start = end
	}
	return standings, nil
}

// headToHead counts direct wins per unordered pair.
type headToHead map[string]map[string]int

func newHeadToHead(matches []Match) headToHead {
	h := make(headToHead)
	for _, m := range matches {
		winner, ok := m.Winner()
		if !ok {
			continue
		}
		key := CreateMatchID(m.PlayerA, m.PlayerB)
		if h[key] == nil {
			h[key] = make(map[string]int)
		}
		h[key][winner]++
	}
	return h
}

// beat reports whether a has more direct wins over b than b has over a.
func (h headToHead) beat(a, b string) bool {
	wins := h[CreateMatchID(Player{ID: a}, Player{ID: b})]
	return wins[a] > wins[b]
}

// order reorders a group of tied standings in place. It repeatedly takes
// the earliest player that nobody left in the group has beaten.
func (h headToHead) order(group []Standing) {
	if len(group) < 2 {
		return
	}

	remaining := make([]Standing, len(group))
	copy(remaining, group)
	for i := range group {
		pick := 0
		for k, cand := range remaining {
			if !h.beatenByAny(cand.PlayerID, remaining) {
				pick = k
				break
			}
		}
		group[i] = remaining[pick]
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
}

func (h headToHead) beatenByAny(id string, others []Standing) bool {
	for _, o := range others {
		if o.PlayerID != id && h.beat(o.PlayerID, id) {
			return true
		}
	}
	return false
}
