package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-andiamo/splitter"
	"gopkg.in/yaml.v3"

	"github.com/derekprior/roundrobin/internal/tournament"
)

// Player is a roster entry as written in the config file.
type Player struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	Skill float64 `yaml:"skill"`
}

// RosterLine is a compact one-line player definition: <id> <name> <skill>.
// Names containing spaces must be double-quoted, e.g. p5 "Erin O'Hara" 1350.
type RosterLine struct {
	Player Player
}

// matchIDSeparator joins the two player ids in a match id.
const matchIDSeparator = "_vs_"

var rosterSplitter, _ = splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)

// UnmarshalYAML parses a roster line, honoring double-quoted names.
func (r *RosterLine) UnmarshalYAML(value *yaml.Node) error {
	fields, err := rosterSplitter.Split(value.Value)
	if err != nil {
		return fmt.Errorf("roster line %q: %w", value.Value, err)
	}
	var parts []string
	for _, f := range fields {
		f = strings.Trim(strings.TrimSpace(f), `"“”`)
		if f != "" {
			parts = append(parts, f)
		}
	}
	if len(parts) != 3 {
		return fmt.Errorf("roster line %q: want <id> <name> <skill>, got %d fields", value.Value, len(parts))
	}
	skill, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return fmt.Errorf("roster line %q: invalid skill %q", value.Value, parts[2])
	}
	r.Player = Player{ID: parts[0], Name: parts[1], Skill: skill}
	return nil
}

// Config describes one tournament: its players and match length.
type Config struct {
	Name       string       `yaml:"name"`
	BestOf     int          `yaml:"best_of"`
	PlayerList []Player     `yaml:"players"`
	Roster     []RosterLine `yaml:"roster"`
}

// Players returns every configured player, long-form entries first.
func (c *Config) Players() []tournament.Player {
	var players []tournament.Player
	for _, p := range c.PlayerList {
		players = append(players, tournament.Player{ID: p.ID, Name: p.Name, Skill: p.Skill})
	}
	for _, r := range c.Roster {
		p := r.Player
		players = append(players, tournament.Player{ID: p.ID, Name: p.Name, Skill: p.Skill})
	}
	return players
}

// PlayersBySkill returns the players strongest first.
func (c *Config) PlayersBySkill() []tournament.Player {
	players := c.Players()
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Skill > players[j].Skill
	})
	return players
}

// PlayerByID looks up a configured player.
func (c *Config) PlayerByID(id string) (tournament.Player, bool) {
	for _, p := range c.Players() {
		if p.ID == id {
			return p, true
		}
	}
	return tournament.Player{}, false
}

// Options returns the schedule options implied by the config.
func (c *Config) Options() *tournament.Options {
	return &tournament.Options{BestOf: c.BestOf}
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if c.BestOf < 0 {
		return fmt.Errorf("best_of must be positive, got %d", c.BestOf)
	}

	// Check for missing and duplicate player ids
	seen := make(map[string]bool)
	for i, p := range c.Players() {
		if p.ID == "" {
			return fmt.Errorf("player %d has no id", i+1)
		}
		if strings.Contains(p.ID, matchIDSeparator) {
			return fmt.Errorf("player id %q must not contain %q", p.ID, matchIDSeparator)
		}
		if seen[p.ID] {
			return fmt.Errorf("player id %q appears more than once", p.ID)
		}
		seen[p.ID] = true
	}

	return nil
}
