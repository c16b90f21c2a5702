package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/excel"
	"github.com/derekprior/roundrobin/internal/tournament"
	"github.com/derekprior/roundrobin/internal/validator"
)

const (
	defaultConfigFile = "config.yaml"
	configEnvVar      = "ROUNDROBIN_CONFIG"
)

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if path := os.Getenv(configEnvVar); path != "" {
		return path, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory, set %s, or pass --config", defaultConfigFile, configEnvVar)
}

func main() {
	// A .env file is optional; it only supplies ROUNDROBIN_CONFIG.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "roundrobin",
		Short: "Round-robin tournament scheduler and standings",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	var configFile string

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate schedules",
	}
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: $ROUNDROBIN_CONFIG or config.yaml in current directory)")

	var outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a round-robin schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")

	standingsCmd := &cobra.Command{
		Use:          "standings <schedule.xlsx>",
		Short:        "Validate entered results and write ranked standings",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runStandings(configPath, args[0])
		},
	}
	standingsCmd.Flags().StringVar(&configFile, "config", "", "Path to config file (default: $ROUNDROBIN_CONFIG or config.yaml in current directory)")

	scheduleCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd, standingsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Round-Robin Tournament Configuration
# ====================================
# Every player meets every other player exactly once. The strongest
# players' matches are listed first.

name: "Club Championship"

# Games per match. Omit (or use 0) for the default of 3.
best_of: 3

# Players, one entry each. Ids must be unique; higher skill is stronger.
players:
  - id: p1
    name: Alice
    skill: 1200
  - id: p2
    name: Bob
    skill: 1500
  - id: p3
    name: Charlie
    skill: 900
  - id: p4
    name: Dana
    skill: 1800

# Compact alternative: one player per line as <id> <name> <skill>.
# Quote names that contain spaces.
# roster:
#   - p5 "Erin O'Hara" 1350
`

func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func runGenerate(configPath, outputPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	players := cfg.Players()
	matches := tournament.GenerateRoundRobin(players, cfg.Options())
	if len(matches) == 0 {
		fmt.Fprintf(os.Stderr, "⚠ %d player(s) configured; at least 2 are needed for any matches\n", len(players))
	} else {
		fmt.Printf("✓ Scheduled %d matches for %d players (best of %d)\n", len(matches), len(players), matches[0].BestOf)
	}

	counts := make(map[string]int)
	for _, m := range matches {
		counts[m.PlayerA.ID]++
		counts[m.PlayerB.ID]++
	}
	fmt.Println("\nPer Player Matches:")
	fmt.Printf("  %-10s %-20s %8s %7s\n", "Player", "Name", "Skill", "Matches")
	for _, p := range cfg.PlayersBySkill() {
		fmt.Printf("  %-10s %-20s %8.0f %7d\n", p.ID, p.Name, p.Skill, counts[p.ID])
	}

	f, err := excel.Generate(cfg, matches)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)
	return nil
}

func runStandings(configPath, schedulePath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	violations, matches, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ %s\n", v.Message)
		case "warning":
			fmt.Printf("⚠ %s\n", v.Message)
		}
	}
	if errors > 0 {
		return fmt.Errorf("%d result errors found; fix them in %s and re-run", errors, schedulePath)
	}

	standings, err := tournament.CalculateStandingsWithTiebreaker(matches)
	if err != nil {
		return fmt.Errorf("calculating standings: %w", err)
	}

	fmt.Println("\nStandings:")
	fmt.Printf("  %4s %-10s %-20s %3s %3s %6s\n", "Rank", "Player", "Name", "W", "L", "Win %")
	for i, s := range standings {
		name := s.PlayerID
		if p, ok := cfg.PlayerByID(s.PlayerID); ok {
			name = p.Name
		}
		fmt.Printf("  %4d %-10s %-20s %3d %3d %5.1f%%\n", i+1, s.PlayerID, name, s.Wins, s.Losses, s.WinRate()*100)
	}

	if err := excel.UpdateStandings(schedulePath, cfg, standings); err != nil {
		return fmt.Errorf("updating standings sheet: %w", err)
	}
	fmt.Printf("\n✓ Standings sheet updated in %s\n", schedulePath)
	return nil
}
