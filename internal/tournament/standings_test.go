package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// played builds a decided match between a and b won by winner.
func played(a, b Player, winner string) Match {
	return Match{
		ID:      CreateMatchID(a, b),
		PlayerA: a,
		PlayerB: b,
		BestOf:  3,
	}.WithWinner(winner)
}

func rankedIDs(standings []Standing) []string {
	ids := make([]string, len(standings))
	for i, s := range standings {
		ids[i] = s.PlayerID
	}
	return ids
}

func TestCalculateStandings(t *testing.T) {
	p := testPlayers()
	p1, p2, p3 := p[0], p[1], p[2]

	matches := []Match{
		played(p1, p2, "p1"),
		played(p3, p2, "p3"),
		played(p1, p3, "p1"),
	}

	standings, err := CalculateStandings(matches)
	require.NoError(t, err)
	require.Len(t, standings, 3)

	byID := StandingsByPlayer(standings)

	tests := []struct {
		id     string
		wins   int
		losses int
	}{
		{"p1", 2, 0},
		{"p2", 0, 2},
		{"p3", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, ok := byID[tt.id]
			require.True(t, ok, "no standing for %s", tt.id)
			assert.Equal(t, tt.wins, s.Wins)
			assert.Equal(t, tt.losses, s.Losses)
		})
	}
}

func TestCalculateStandingsSkipsUndecided(t *testing.T) {
	p := testPlayers()

	t.Run("single undecided match", func(t *testing.T) {
		matches := []Match{{ID: "m1", PlayerA: p[0], PlayerB: p[1], BestOf: 3}}
		standings, err := CalculateStandings(matches)
		require.NoError(t, err)
		assert.Empty(t, standings)
	})

	t.Run("player only in undecided matches has no standing", func(t *testing.T) {
		matches := []Match{
			played(p[0], p[1], "p2"),
			{ID: "m2", PlayerA: p[2], PlayerB: p[3], BestOf: 3},
		}
		standings, err := CalculateStandings(matches)
		require.NoError(t, err)
		byID := StandingsByPlayer(standings)
		assert.Len(t, byID, 2)
		assert.NotContains(t, byID, "p3")
		assert.NotContains(t, byID, "p4")
	})

	t.Run("no matches", func(t *testing.T) {
		standings, err := CalculateStandings(nil)
		require.NoError(t, err)
		assert.Empty(t, standings)
	})
}

func TestCalculateStandingsInvalidWinner(t *testing.T) {
	p := testPlayers()
	matches := []Match{
		played(p[0], p[1], "p1"),
		Match{ID: "p3_vs_p4", PlayerA: p[2], PlayerB: p[3], BestOf: 3}.WithWinner("p1"),
	}

	standings, err := CalculateStandings(matches)
	assert.ErrorIs(t, err, ErrInvalidWinner)
	assert.Contains(t, err.Error(), "p3_vs_p4")
	assert.Nil(t, standings)

	_, err = CalculateStandingsWithTiebreaker(matches)
	assert.ErrorIs(t, err, ErrInvalidWinner)
}

func TestCalculateStandingsSelfMatch(t *testing.T) {
	p := testPlayers()
	matches := []Match{
		played(p[0], p[1], "p1"),
		Match{ID: "p3_vs_p3", PlayerA: p[2], PlayerB: p[2], BestOf: 3}.WithWinner("p3"),
	}

	standings, err := CalculateStandings(matches)
	assert.ErrorIs(t, err, ErrSelfMatch)
	assert.Contains(t, err.Error(), "p3_vs_p3")
	assert.Nil(t, standings)

	_, err = CalculateStandingsWithTiebreaker(matches)
	assert.ErrorIs(t, err, ErrSelfMatch)

	undecided := []Match{{ID: "p3_vs_p3", PlayerA: p[2], PlayerB: p[2], BestOf: 3}}
	standings, err = CalculateStandings(undecided)
	require.NoError(t, err, "undecided matches are skipped before any checks")
	assert.Empty(t, standings)
}

func TestCalculateStandingsAcrossFullSchedule(t *testing.T) {
	matches := GenerateRoundRobin(numberedPlayers(7), nil)
	for i := range matches {
		matches[i] = matches[i].WithWinner(matches[i].PlayerA.ID)
	}

	standings, err := CalculateStandings(matches)
	require.NoError(t, err)
	require.Len(t, standings, 7)

	totalWins, totalLosses := 0, 0
	for _, s := range standings {
		assert.Equal(t, 6, s.Played(), "player %s", s.PlayerID)
		totalWins += s.Wins
		totalLosses += s.Losses
	}
	assert.Equal(t, len(matches), totalWins)
	assert.Equal(t, len(matches), totalLosses)
}

func TestCalculateStandingsWithTiebreaker(t *testing.T) {
	p := testPlayers()
	p1, p2, p3, p4 := p[0], p[1], p[2], p[3]

	t.Run("head to head decides identical records", func(t *testing.T) {
		// p2 appears first, so without head-to-head it would stay above p1.
		matches := []Match{
			played(p2, p3, "p2"),
			played(p2, p4, "p2"),
			played(p1, p2, "p1"),
			played(p1, p3, "p3"),
			played(p1, p4, "p1"),
			played(p3, p4, "p4"),
		}
		standings, err := CalculateStandingsWithTiebreaker(matches)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2", "p4", "p3"}, rankedIDs(standings))

		byID := StandingsByPlayer(standings)
		assert.Equal(t, Standing{PlayerID: "p1", Wins: 2, Losses: 1}, byID["p1"])
		assert.Equal(t, Standing{PlayerID: "p2", Wins: 2, Losses: 1}, byID["p2"])
	})

	t.Run("wins then losses", func(t *testing.T) {
		matches := []Match{
			played(p3, p4, "p4"),
			played(p1, p2, "p1"),
			played(p1, p3, "p1"),
			played(p2, p4, "p2"),
		}
		standings, err := CalculateStandingsWithTiebreaker(matches)
		require.NoError(t, err)
		// p1 2-0, p2 1-1, p4 1-1 (p2 beat p4), p3 0-2
		assert.Equal(t, []string{"p1", "p2", "p4", "p3"}, rankedIDs(standings))
	})

	t.Run("fewer losses ranks higher on equal wins", func(t *testing.T) {
		matches := []Match{
			played(p2, p3, "p3"),
			played(p2, p4, "p2"),
			played(p1, p4, "p1"),
		}
		standings, err := CalculateStandingsWithTiebreaker(matches)
		require.NoError(t, err)
		// p3 1-0, p1 1-0, p2 1-1, p4 0-2
		assert.Equal(t, []string{"p3", "p1", "p2", "p4"}, rankedIDs(standings))
	})

	t.Run("undecided rematch gives no head to head", func(t *testing.T) {
		matches := []Match{
			played(p1, p2, "p1"),
			played(p3, p4, "p3"),
			played(p1, p3, "p1"),
			{ID: "p2_vs_p4", PlayerA: p2, PlayerB: p4, BestOf: 3},
		}
		standings, err := CalculateStandingsWithTiebreaker(matches)
		require.NoError(t, err)
		// p1 2-0, p3 1-1, p2 0-1, p4 0-1
		assert.Equal(t, []string{"p1", "p3", "p2", "p4"}, rankedIDs(standings))
	})

	t.Run("tied players who never met keep input order", func(t *testing.T) {
		matches := []Match{
			played(p1, p3, "p1"),
			played(p2, p4, "p2"),
		}
		standings, err := CalculateStandingsWithTiebreaker(matches)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, rankedIDs(standings))

		reversed := []Match{matches[1], matches[0]}
		standings, err = CalculateStandingsWithTiebreaker(reversed)
		require.NoError(t, err)
		assert.Equal(t, []string{"p2", "p1", "p4", "p3"}, rankedIDs(standings))
	})

	t.Run("direct winner ranks above loser across an unrelated tied player", func(t *testing.T) {
		x, y, z := Player{ID: "x"}, Player{ID: "y"}, Player{ID: "z"}
		q, r := Player{ID: "q"}, Player{ID: "r"}
		s, u := Player{ID: "s"}, Player{ID: "u"}
		matches := []Match{
			played(x, q, "x"),
			played(y, r, "y"),
			played(z, x, "z"),
			played(s, y, "s"),
			played(u, z, "u"),
		}
		standings, err := CalculateStandingsWithTiebreaker(matches)
		require.NoError(t, err)
		// x, y and z are all 1-1; z beat x, y met neither of them.
		ranked := rankedIDs(standings)
		assert.Equal(t, []string{"s", "u", "y", "z", "x", "q", "r"}, ranked)

		pos := make(map[string]int)
		for i, id := range ranked {
			pos[id] = i
		}
		assert.Less(t, pos["z"], pos["x"], "z beat x and must rank above them")
	})

	t.Run("head to head cycle keeps first appearance", func(t *testing.T) {
		matches := []Match{
			played(p1, p2, "p1"),
			played(p2, p3, "p2"),
			played(p3, p1, "p3"),
		}
		standings, err := CalculateStandingsWithTiebreaker(matches)
		require.NoError(t, err)
		// p1 beats p2 beats p3 beats p1, all 1-1
		assert.Equal(t, []string{"p1", "p2", "p3"}, rankedIDs(standings))
	})

	t.Run("split rematches count as no result", func(t *testing.T) {
		matches := []Match{
			played(p2, p1, "p2"),
			played(p1, p2, "p1"),
		}
		standings, err := CalculateStandingsWithTiebreaker(matches)
		require.NoError(t, err)
		assert.Equal(t, []string{"p2", "p1"}, rankedIDs(standings))
	})
}

func TestMatchAccessors(t *testing.T) {
	p := testPlayers()
	m := Match{ID: CreateMatchID(p[0], p[1]), PlayerA: p[0], PlayerB: p[1], BestOf: 3}

	_, ok := m.Winner()
	assert.False(t, ok)
	_, ok = m.Loser()
	assert.False(t, ok)

	decided := m.WithWinner("p2")
	assert.False(t, m.Decided(), "WithWinner must not modify the receiver")
	loser, ok := decided.Loser()
	assert.True(t, ok)
	assert.Equal(t, "p1", loser)

	_, ok = Match{ID: "p3_vs_p4", PlayerA: p[2], PlayerB: p[3]}.WithWinner("p1").Loser()
	assert.False(t, ok, "winner outside the pair has no loser")
}

func TestStandingWinRate(t *testing.T) {
	assert.Equal(t, 0.0, Standing{}.WinRate())
	assert.InDelta(t, 0.75, Standing{Wins: 3, Losses: 1}.WinRate(), 1e-9)
	assert.Equal(t, 4, Standing{Wins: 3, Losses: 1}.Played())
}
