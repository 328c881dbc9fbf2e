package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joeycumines/hudcheck/internal/shellsim"
	"github.com/joeycumines/hudcheck/internal/touch"
)

// cell kinds, drawn back to front
const (
	cellEmpty      = ' '
	cellApp        = '.'
	cellBottomEdge = '_'
	cellShowButton = '^'
	cellTopBar     = '='
	cellClose      = 'x'
	cellLauncher   = '|'
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	cellStyles = map[byte]lipgloss.Style{
		cellApp:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		cellBottomEdge: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		cellShowButton: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		cellTopBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		cellClose:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		cellLauncher:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
	iconStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// classify returns what the screen shows at p.
func classify(l shellsim.Layout, st shellsim.State, p touch.Point) byte {
	if st.Launcher != "hidden" && l.LauncherPanel.Contains(p) {
		return cellLauncher
	}
	if st.HUD != "hidden" {
		if l.CloseButton.Contains(p) {
			return cellClose
		}
		if l.TopBar.Contains(p) {
			return cellTopBar
		}
	}
	if st.ButtonOpacity > 0 && l.ShowButton.Contains(p) {
		return cellShowButton
	}
	if st.Foreground == "" {
		if icon, ok := l.IconAt(p); ok {
			return icon.Name[0]
		}
	}
	if l.BottomEdge.Contains(p) {
		return cellBottomEdge
	}
	if st.Foreground != "" {
		return cellApp
	}
	return cellEmpty
}

// picture samples the screen onto a cols by rows grid of terminal cells.
func picture(st shellsim.State, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	l := st.Layout()
	out := make([]string, rows)
	for y := range rows {
		var line strings.Builder
		for x := range cols {
			line.WriteByte(classify(l, st, touch.Point{
				X: x * st.Width / cols,
				Y: y * st.Height / rows,
			}))
		}
		out[y] = line.String()
	}
	return out
}

// styleRow colours runs of equal cells.
func styleRow(row string) string {
	var out strings.Builder
	for i := 0; i < len(row); {
		j := i + 1
		for j < len(row) && row[j] == row[i] {
			j++
		}
		run := row[i:j]
		if style, ok := cellStyles[row[i]]; ok {
			out.WriteString(style.Render(run))
		} else if row[i] != cellEmpty {
			out.WriteString(iconStyle.Render(run))
		} else {
			out.WriteString(run)
		}
		i = j
	}
	return out.String()
}
