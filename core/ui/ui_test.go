package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aws-cost-calc/core/input"
	"aws-cost-calc/core/projection"
)

func TestTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	table := w.NewTable("Name", "Cost")
	table.SetAlign(1, AlignRight)
	table.SetAlign(7, AlignRight) // out of range, ignored
	table.AddRow("a", "1.5")
	table.AddRow("long", "10.25", "dropped")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name"+" │ "+" Cost", lines[0])
	assert.Equal(t, "a   "+" │ "+"  1.5", lines[2])
	assert.Equal(t, "long"+" │ "+"10.25", lines[3])
}

func TestCostSummary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	s := w.NewCostSummary()
	s.Total = "$12.34"
	s.Add("Periods", "12")
	s.Render()

	out := buf.String()
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "$12.34")
	assert.Contains(t, out, "Periods")
	assert.NotContains(t, out, "\033[")
}

func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Debug("hidden")
	assert.Empty(t, buf.String())

	w.SetVerbosity(0)
	w.Info("hidden")
	assert.Empty(t, buf.String())

	w.SetVerbosity(2)
	w.Debug("shown %d", 1)
	assert.Contains(t, buf.String(), "shown 1")
}

func TestProjectionRunner(t *testing.T) {
	p := input.DefaultArchive()
	p.Periods = 3
	p.PeriodGrowth = decimal.NewFromInt(10)

	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.SetVerbosity(2)

	run, err := NewProjectionRunner(w, true).Run(context.Background(), p)
	require.NoError(t, err)

	want := projection.Project(p)
	require.Len(t, run.Records, len(want))
	for i := range want {
		assert.True(t, want[i].TotalCost.Equal(run.Records[i].TotalCost), "period %d", i+1)
	}
	assert.True(t, projection.Summarize(want).TotalCost.Equal(run.Summary.TotalCost))

	out := buf.String()
	assert.Contains(t, out, "(3/3)")
	assert.Contains(t, out, "period 1: storage 1 GB")
	assert.Contains(t, out, "period 3: storage 21 GB")
}

func TestProjectionRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := input.DefaultArchive()
	p.Periods = 10

	run, err := NewProjectionRunner(NewWriter(&bytes.Buffer{}, true), false).Run(ctx, p)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, run)
}
