package motifset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

func formatBits(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsInf(v, 1):
		return "inf"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// allowedSymbols lists the basic symbols a motif position accepts
func (c Compiled) allowedSymbols(position int) string {
	m := c.Motif.Motif()
	a := m.Alphabet()
	var sb strings.Builder
	for code := 0; code < a.BasicSize(); code++ {
		if m.Allows(byte(code), position) {
			sb.WriteByte(a.CodeToSymbol(byte(code)))
		}
	}
	return sb.String()
}

// ScoreTable renders the per-position bit-scores of a compiled motif
func ScoreTable(c Compiled) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(fmt.Sprintf("%s (%s, %s)", c.Name, c.Motif, c.Mode))

	tbl.AppendHeader(table.Row{"position", "allowed", "exact", "match", "mismatch", "cost"})
	for j := 0; j < c.Motif.Size(); j++ {
		exact := ""
		if c.Motif.IsExact(j) {
			exact = "yes"
		}
		tbl.AppendRow(table.Row{
			j + 1,
			c.allowedSymbols(j),
			exact,
			formatBits(c.Motif.DefaultMatchBitScore(j)),
			formatBits(c.Motif.MismatchBitScore(j)),
			formatBits(c.Motif.MismatchBitScoreCost(j)),
		})
	}

	tbl.AppendFooter(table.Row{
		"max", "", "",
		formatBits(c.Motif.Motif().MatchBitScore()),
		"average penalty",
		formatBits(c.Motif.AverageMismatchPenalty()),
	})

	return tbl.Render()
}
