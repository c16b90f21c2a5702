package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/tournament"
	"github.com/xuri/excelize/v2"
)

const (
	ScheduleSheet  = "Schedule"
	PlayersSheet   = "Players"
	StandingsSheet = "Standings"
)

var scheduleHeaders = []string{"#", "Match ID", "Player A", "Player B", "Best Of", "Winner"}

// winnerCol is the 1-based column organizers type results into.
const winnerCol = 6

// ResultRow is one match row read back from the Schedule sheet.
type ResultRow struct {
	Row     int
	MatchID string
	PlayerA string
	PlayerB string
	BestOf  int
	Winner  string // as typed; empty when the match is unplayed
}

// Generate creates a workbook with the schedule and the player list.
func Generate(cfg *config.Config, matches []tournament.Match) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeScheduleSheet(f, matches); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}

	if err := writePlayersSheet(f, cfg); err != nil {
		return nil, fmt.Errorf("writing players sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cellRef(i+1, 1), h); err != nil {
			return err
		}
	}
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
}

func writeScheduleSheet(f *excelize.File, matches []tournament.Match) error {
	sheet := ScheduleSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeHeaders(f, sheet, scheduleHeaders); err != nil {
		return err
	}

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	centerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, m := range matches {
		row := i + 2
		winner := ""
		if id, ok := m.Winner(); ok {
			winner = id
		}
		values := []any{i + 1, m.ID, m.PlayerA.ID, m.PlayerB.ID, m.BestOf, winner}
		for col, v := range values {
			if err := f.SetCellValue(sheet, cellRef(col+1, row), v); err != nil {
				return err
			}
		}
		if cellStyle != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(4, row), cellStyle)
			f.SetCellStyle(sheet, cellRef(5, row), cellRef(winnerCol, row), centerStyle)
		}
	}

	// Set column widths (sized for Arial 16)
	widths := map[string]float64{"A": 8, "B": 24, "C": 16, "D": 16, "E": 12, "F": 16}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	if len(matches) == 0 {
		return nil
	}

	// Conditional formatting: unplayed matches get a light yellow winner cell
	lastRow := len(matches) + 1
	col := colLetter(winnerCol)
	pending, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFEB9C"}},
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	return f.SetConditionalFormat(sheet, fmt.Sprintf("%s2:%s%d", col, col, lastRow), []excelize.ConditionalFormatOptions{
		{
			Type:     "formula",
			Criteria: fmt.Sprintf(`LEN(TRIM(%s2))=0`, col),
			Format:   &pending,
		},
	})
}

func writePlayersSheet(f *excelize.File, cfg *config.Config) error {
	sheet := PlayersSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeHeaders(f, sheet, []string{"ID", "Name", "Skill"}); err != nil {
		return err
	}

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})

	players := cfg.PlayersBySkill()
	for i, p := range players {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), p.ID)
		f.SetCellValue(sheet, cellRef(2, row), p.Name)
		f.SetCellValue(sheet, cellRef(3, row), p.Skill)
		if cellStyle != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(3, row), cellStyle)
		}
	}

	widths := map[string]float64{"A": 12, "B": 28, "C": 12}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

// ReadResults reads every match row from the Schedule sheet.
// Rows without a match id are skipped.
func ReadResults(f *excelize.File) ([]ResultRow, error) {
	rows, err := f.GetRows(ScheduleSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ScheduleSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", ScheduleSheet)
	}

	var results []ResultRow
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cell := func(col int) string {
			if col-1 < len(row) {
				return strings.TrimSpace(row[col-1])
			}
			return ""
		}
		if cell(2) == "" {
			continue
		}

		bestOf, err := strconv.Atoi(cell(5))
		if err != nil {
			bestOf = 0
		}
		results = append(results, ResultRow{
			Row:     i + 1,
			MatchID: cell(2),
			PlayerA: cell(3),
			PlayerB: cell(4),
			BestOf:  bestOf,
			Winner:  cell(winnerCol),
		})
	}
	return results, nil
}

// UpdateStandings replaces the Standings sheet in the workbook at path with
// the given ranked standings.
func UpdateStandings(path string, cfg *config.Config, standings []tournament.Standing) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	if err := WriteStandings(f, cfg, standings); err != nil {
		return err
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	return nil
}

// WriteStandings writes ranked standings to a fresh Standings sheet.
func WriteStandings(f *excelize.File, cfg *config.Config, standings []tournament.Standing) error {
	sheet := StandingsSheet
	if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
		if err := f.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("removing old standings: %w", err)
		}
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeHeaders(f, sheet, []string{"Rank", "Player", "Name", "W", "L", "Played", "Win %"}); err != nil {
		return err
	}

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	pctFmt := "0.0%"
	pctStyle, _ := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 16, Family: "Arial"},
		CustomNumFmt: &pctFmt,
	})

	for i, s := range standings {
		row := i + 2
		name := s.PlayerID
		if p, ok := cfg.PlayerByID(s.PlayerID); ok {
			name = p.Name
		}
		f.SetCellValue(sheet, cellRef(1, row), i+1)
		f.SetCellValue(sheet, cellRef(2, row), s.PlayerID)
		f.SetCellValue(sheet, cellRef(3, row), name)
		f.SetCellValue(sheet, cellRef(4, row), s.Wins)
		f.SetCellValue(sheet, cellRef(5, row), s.Losses)
		f.SetCellValue(sheet, cellRef(6, row), s.Played())
		f.SetCellValue(sheet, cellRef(7, row), s.WinRate())
		if cellStyle != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(6, row), cellStyle)
		}
		if pctStyle != 0 {
			f.SetCellStyle(sheet, cellRef(7, row), cellRef(7, row), pctStyle)
		}
	}

	widths := map[string]float64{"A": 8, "B": 12, "C": 28, "D": 8, "E": 8, "F": 10, "G": 10}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
