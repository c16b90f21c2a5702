package tournament

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWinner is returned when a match's winner is neither of its players.
	ErrInvalidWinner = errors.New("winner is not a player in the match")
	// ErrSelfMatch is returned for a decided match whose two players are the same.
	ErrSelfMatch = errors.New("player cannot play themselves")
)

// Player is a ranked participant. Higher Skill means stronger.
type Player struct {
	ID    string
	Name  string
	Skill float64
}

// Match is a single pairing. WinnerID is nil until the match is played.
type Match struct {
	ID       string
	PlayerA  Player
	PlayerB  Player
	BestOf   int
	WinnerID *string
}

// Decided reports whether a winner has been recorded.
func (m Match) Decided() bool {
	return m.WinnerID != nil
}

// Winner returns the winning player id, if any.
func (m Match) Winner() (string, bool) {
	if m.WinnerID == nil {
		return "", false
	}
	return *m.WinnerID, true
}

// Loser returns the id of whichever player is not the winner.
// It returns false for undecided matches and for winners outside the pair.
func (m Match) Loser() (string, bool) {
	winner, ok := m.Winner()
	if !ok {
		return "", false
	}
	switch winner {
	case m.PlayerA.ID:
		return m.PlayerB.ID, true
	case m.PlayerB.ID:
		return m.PlayerA.ID, true
	}
	return "", false
}

// Involves reports whether the player takes part in the match.
func (m Match) Involves(id string) bool {
	return m.PlayerA.ID == id || m.PlayerB.ID == id
}

// WithWinner returns a copy of the match with the given winner recorded.
func (m Match) WithWinner(id string) Match {
	m.WinnerID = &id
	return m
}

func (m Match) validateResult() error {
	winner, ok := m.Winner()
	if !ok {
		return nil
	}
	if m.PlayerA.ID == m.PlayerB.ID {
		return fmt.Errorf("match %s: %w", m.ID, ErrSelfMatch)
	}
	if !m.Involves(winner) {
		return fmt.Errorf("match %s: winner %q: %w", m.ID, winner, ErrInvalidWinner)
	}
	return nil
}

// Standing is a player's win/loss record across a set of matches.
type Standing struct {
	PlayerID string
	Wins     int
	Losses   int
}

// Played returns the number of decided matches behind the record.
func (s Standing) Played() int {
	return s.Wins + s.Losses
}

// WinRate returns wins as a fraction of decided matches, or 0 with none.
func (s Standing) WinRate() float64 {
	if s.Played() == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Played())
}

// StandingsByPlayer indexes standings by player id.
func StandingsByPlayer(standings []Standing) map[string]Standing {
	m := make(map[string]Standing, len(standings))
	for _, s := range standings {
		m[s.PlayerID] = s
	}
	return m
}
