package motifset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreTable(t *testing.T) {
	compiled, err := Single("aTRn").Compile(Defaults{Mode: ModeSubstitution, MaxErrors: 1})
	require.NoError(t, err)

	out := ScoreTable(compiled[0])
	lines := strings.Split(out, "\n")
	assert.Contains(t, out, "aTRn (aTRn, substitution)")

	var rows []string
	for _, line := range lines {
		if strings.Contains(line, "│") && !strings.Contains(strings.ToLower(line), "position") && !strings.Contains(line, "(aTRn") {
			rows = append(rows, line)
		}
	}
	// four positions and the footer
	require.Len(t, rows, 5)
	assert.Contains(t, rows[0], "-0.693")
	assert.Contains(t, rows[1], "yes")
	assert.Contains(t, rows[1], "-inf")
	assert.Contains(t, rows[2], "AG")
	assert.Contains(t, rows[3], "AGCT")
	assert.Contains(t, rows[3], "-2.693")
	assert.Contains(t, rows[4], "5.000")
}
