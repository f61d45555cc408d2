package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"polybounce/sim"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
)

// renderReport formats the end-of-run summary with charts of side count
// and speed over time
func renderReport(seed int64, final sim.Snapshot, stats *sim.Stats, chartWidth int) string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("POLYBOUNCE RUN") + "\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Seed", fmt.Sprintf("%d", seed))
	row("Frames", fmt.Sprintf("%d", stats.Frames))
	row("Bounces", fmt.Sprintf("%d", stats.Bounces))
	row("Final sides", fmt.Sprintf("%d", final.Sides))
	row("Max sides", fmt.Sprintf("%d", stats.MaxSides))
	row("Final speed", fmt.Sprintf("%.2f", final.Speed()))
	row("Max speed", fmt.Sprintf("%.2f", stats.MaxSpeed))
	row("Final position", fmt.Sprintf("(%.1f, %.1f)", final.Position.X, final.Position.Y))
	if stats.Frames > 0 {
		row("Sub-steps/frame", fmt.Sprintf("%.2f", float64(stats.Iterations)/float64(stats.Frames)))
	}

	if stats.Resets > 0 {
		s.WriteString(warnStyle.Render(fmt.Sprintf("Failsafe resets: %d", stats.Resets)) + "\n")
	}
	if stats.CappedFrames > 0 {
		s.WriteString(warnStyle.Render(fmt.Sprintf("Frames at sub-step cap: %d", stats.CappedFrames)) + "\n")
	}

	if len(stats.SidesHistory) > 1 {
		chart := asciigraph.Plot(
			sim.Downsample(stats.SidesHistory, chartWidth),
			asciigraph.Height(6),
			asciigraph.Caption("Sides"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(stats.SpeedHistory) > 1 {
		chart := asciigraph.Plot(
			sim.Downsample(stats.SpeedHistory, chartWidth),
			asciigraph.Height(6),
			asciigraph.Caption("Speed"),
		)
		s.WriteString(graphStyle.Render(chart))
	}

	return panelStyle.Render(s.String())
}
