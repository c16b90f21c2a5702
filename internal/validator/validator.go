package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/excel"
	"github.com/derekprior/roundrobin/internal/tournament"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/xuri/excelize/v2"
)

// Violation represents a problem found in an entered schedule.
type Violation struct {
	Row        int
	Type       string // "error" or "warning"
	Message    string
	Suggestion string // closest player for a mistyped winner, if any
}

// Validate reads a schedule workbook and checks the entered results against
// the config. It returns the matches that could be read cleanly, with
// winners resolved to player ids.
func Validate(cfg *config.Config, path string) ([]Violation, []tournament.Match, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	rows, err := excel.ReadResults(f)
	if err != nil {
		return nil, nil, fmt.Errorf("reading results: %w", err)
	}

	violations, matches := ValidateResults(cfg, rows)
	return violations, matches, nil
}

// ValidateResults checks rows already read from a workbook. A match whose
// winner cannot be resolved is kept as undecided alongside its error.
func ValidateResults(cfg *config.Config, rows []excel.ResultRow) ([]Violation, []tournament.Match) {
	players := make(map[string]tournament.Player)
	for _, p := range cfg.Players() {
		players[p.ID] = p
	}

	var violations []Violation
	var matches []tournament.Match
	seen := make(map[string]int) // match id -> first row

	for _, r := range rows {
		rowViolations, match, ok := checkRow(cfg, players, r)
		violations = append(violations, rowViolations...)
		if !ok {
			continue
		}
		if first, dup := seen[match.ID]; dup {
			violations = append(violations, Violation{
				Row:     r.Row,
				Type:    "error",
				Message: fmt.Sprintf("row %d: %s already scheduled on row %d", r.Row, match.ID, first),
			})
			continue
		}
		seen[match.ID] = r.Row
		matches = append(matches, match)
	}

	violations = append(violations, checkCompleteness(cfg, seen)...)
	violations = append(violations, checkUndecided(matches)...)

	return violations, matches
}

func checkRow(cfg *config.Config, players map[string]tournament.Player, r excel.ResultRow) ([]Violation, tournament.Match, bool) {
	var violations []Violation
	fail := func(format string, args ...any) {
		violations = append(violations, Violation{
			Row:     r.Row,
			Type:    "error",
			Message: fmt.Sprintf("row %d: ", r.Row) + fmt.Sprintf(format, args...),
		})
	}

	a, okA := players[r.PlayerA]
	if !okA {
		fail("unknown player %q", r.PlayerA)
	}
	b, okB := players[r.PlayerB]
	if !okB {
		fail("unknown player %q", r.PlayerB)
	}
	if !okA || !okB {
		return violations, tournament.Match{}, false
	}

	if a.ID == b.ID {
		fail("%s is scheduled against themselves", a.ID)
		return violations, tournament.Match{}, false
	}

	if want := tournament.CreateMatchID(a, b); r.MatchID != want {
		fail("match id %q does not match players, want %q", r.MatchID, want)
		return violations, tournament.Match{}, false
	}

	if r.BestOf <= 0 {
		fail("invalid best-of for %s", r.MatchID)
		return violations, tournament.Match{}, false
	}

	match := tournament.Match{ID: r.MatchID, PlayerA: a, PlayerB: b, BestOf: r.BestOf}
	if r.Winner == "" {
		return violations, match, true
	}

	winner, ambiguous := resolveWinner(r.Winner, a, b)
	if winner != nil {
		return violations, match.WithWinner(winner.ID), true
	}
	if ambiguous {
		fail("winner %q matches both players in %s; enter the player id", r.Winner, match.ID)
		return violations, match, true
	}

	v := Violation{
		Row:     r.Row,
		Type:    "error",
		Message: fmt.Sprintf("row %d: winner %q is not a player in %s", r.Row, r.Winner, match.ID),
	}
	if other, ok := rosterPlayer(cfg, r.Winner); ok {
		v.Message += fmt.Sprintf(" (%s plays in other matches)", other.ID)
	} else if s, ok := suggest(r.Winner, a, b); ok {
		v.Suggestion = s.ID
		v.Message += fmt.Sprintf(" (did you mean %s, %s?)", s.ID, s.Name)
	}
	violations = append(violations, v)
	return violations, match, true
}

// resolveWinner maps typed winner text to one of the match's players by
// exact id, then case-insensitive id, then case-insensitive name. It
// reports ambiguity when both players share the typed name.
func resolveWinner(text string, a, b tournament.Player) (*tournament.Player, bool) {
	for _, p := range []tournament.Player{a, b} {
		if p.ID == text {
			return &p, false
		}
	}
	for _, p := range []tournament.Player{a, b} {
		if strings.EqualFold(p.ID, text) {
			return &p, false
		}
	}
	nameA := strings.EqualFold(a.Name, text)
	nameB := strings.EqualFold(b.Name, text)
	switch {
	case nameA && nameB:
		return nil, true
	case nameA:
		return &a, false
	case nameB:
		return &b, false
	}
	return nil, false
}

// rosterPlayer finds a configured player whose id or name is text, for
// explaining a winner who is not in the match.
func rosterPlayer(cfg *config.Config, text string) (tournament.Player, bool) {
	for _, p := range cfg.Players() {
		if strings.EqualFold(p.ID, text) || strings.EqualFold(p.Name, text) {
			return p, true
		}
	}
	return tournament.Player{}, false
}

// suggest returns the match player whose id or name fuzzily matches text.
func suggest(text string, a, b tournament.Player) (tournament.Player, bool) {
	candidates := []tournament.Player{a, a, b, b}
	targets := []string{a.ID, a.Name, b.ID, b.Name}

	ranks := fuzzy.RankFindFold(text, targets)
	if len(ranks) == 0 {
		return tournament.Player{}, false
	}
	sort.Sort(ranks)

	best := candidates[ranks[0].OriginalIndex]
	for _, r := range ranks[1:] {
		if r.Distance == ranks[0].Distance && candidates[r.OriginalIndex].ID != best.ID {
			return tournament.Player{}, false // ambiguous
		}
	}
	return best, true
}

func checkCompleteness(cfg *config.Config, seen map[string]int) []Violation {
	var violations []Violation
	for _, m := range tournament.GenerateRoundRobin(cfg.Players(), cfg.Options()) {
		if _, ok := seen[m.ID]; !ok {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s vs %s is missing from the schedule", m.PlayerA.ID, m.PlayerB.ID),
			})
		}
	}
	return violations
}

func checkUndecided(matches []tournament.Match) []Violation {
	pending := 0
	for _, m := range matches {
		if !m.Decided() {
			pending++
		}
	}
	if pending == 0 {
		return nil
	}
	return []Violation{{
		Type:    "warning",
		Message: fmt.Sprintf("%d of %d matches have no winner yet", pending, len(matches)),
	}}
}
