/* export.go
 * Contains the leaderboard spreadsheet export and the per round score chart
 * Authors: Zachary Bower
 */

package api

import (
	"bytes"
	"fmt"
	"io"

	"madness-pool/api/logic"
	"madness-pool/api/shared"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"
)

const leaderboardSheet = "Leaderboard"

// ExportLeaderboard writes the stored leaderboard to w as an xlsx workbook with one row per bracket
// Preconditions: Receives the writer, the leaderboard must have been generated
// Postconditions: Writes the workbook, or returns an error if the leaderboard cannot be read or written
func (a *API) ExportLeaderboard(w io.Writer) error {
	leaderboard, err := a.GetLeaderboardData()
	if err != nil {
		return err
	}
	t, err := a.getTournament()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", leaderboardSheet); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}

	header := []interface{}{"Rank", "User", "Bracket", "Points", "Correct", "Picks", "Max Possible"}
	for round := 1; round <= shared.NumRounds; round++ {
		header = append(header, t.RoundName(round))
	}
	if err := f.SetSheetRow(leaderboardSheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for i, e := range leaderboard.Entries {
		row := []interface{}{e.Rank, e.Username, e.BracketName, e.Points, e.CorrectPicks, e.TotalPicks, e.MaxPossible}
		for _, score := range e.RoundScores {
			row = append(row, score)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(leaderboardSheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// RoundScoreChart renders the user's points per round as a PNG bar chart, scored against the current results
func (a *API) RoundScoreChart(user shared.User) ([]byte, error) {
	t, err := a.getTournament()
	if err != nil {
		return nil, err
	}
	b, err := a.getBracket(user.UserID)
	if err != nil {
		return nil, err
	}
	report := logic.Score(b, logic.ProcessActualResults(t))

	bars := make([]chart.Value, 0, shared.NumRounds)
	for round := 1; round <= shared.NumRounds; round++ {
		bars = append(bars, chart.Value{
			Label: t.RoundName(round),
			Value: float64(report.RoundScores[round-1]),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("1f4e8c"),
				StrokeColor: drawing.ColorFromHex("1f4e8c"),
			},
		})
	}

	// Each round is worth 32 points in total
	graph := chart.BarChart{
		Title:    fmt.Sprintf("%s: %d points", b.Name, report.Points),
		Width:    900,
		Height:   400,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(logic.PointsPerRound[shared.NumRounds-1])},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}
	return buffer.Bytes(), nil
}
