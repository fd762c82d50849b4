package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-shot-metrics/internal/model"
)

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	fmt.Fprintf(w, "\nSeason: %s  |  Tournament: %s  |  Draw: %s  |  Rows: %d  |  Hash: %s\n\n",
		s.Season, s.TournamentID, s.DrawCode, s.RowCount, shortHash(s.ArchiveHash))
}

// PrintHitterTable prints per-hitter shot counts: total shots, shots
// with a resolved bounce, distinct strokes, and the most used stroke.
func PrintHitterTable(w io.Writer, rows []model.Row) {
	type acc struct {
		shots   int
		bounces int
		strokes map[string]int
	}
	byHitter := make(map[string]*acc)
	var order []string
	for _, r := range rows {
		a, ok := byHitter[r.HitterExternalID]
		if !ok {
			a = &acc{strokes: make(map[string]int)}
			byHitter[r.HitterExternalID] = a
			order = append(order, r.HitterExternalID)
		}
		a.shots++
		if r.BallBounceX != "" {
			a.bounces++
		}
		a.strokes[r.Stroke]++
	}
	sort.Strings(order)

	table := newTable(w)
	table.Header("HITTER", "SHOTS", "BOUNCED", "STROKES", "TOP_STROKE")
	for _, id := range order {
		a := byHitter[id]
		table.Append(
			id,
			strconv.Itoa(a.shots),
			strconv.Itoa(a.bounces),
			strconv.Itoa(len(a.strokes)),
			topStroke(a.strokes),
		)
	}
	table.Render()
}

// PrintStrokeTable prints the stroke distribution across all rows.
func PrintStrokeTable(w io.Writer, rows []model.Row) {
	counts := make(map[string]int)
	var order []string
	for _, r := range rows {
		if _, ok := counts[r.Stroke]; !ok {
			order = append(order, r.Stroke)
		}
		counts[r.Stroke]++
	}
	sort.Slice(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return order[i] < order[j]
	})

	table := newTable(w)
	table.Header("STROKE", "COUNT", "SHARE")
	for _, stroke := range order {
		n := counts[stroke]
		table.Append(
			stroke,
			strconv.Itoa(n),
			fmt.Sprintf("%.0f%%", float64(n)/float64(len(rows))*100),
		)
	}
	table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func topStroke(strokes map[string]int) string {
	best, bestN := "—", -1
	for s, n := range strokes {
		if n > bestN || (n == bestN && s < best) {
			best, bestN = s, n
		}
	}
	return best
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
