package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/orixdb/orixdb"
)

var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6C7A89")
)

var styles = struct {
	Title   lipgloss.Style
	Key     lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Key:     lipgloss.NewStyle().Width(20).Foreground(colorMuted),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Success: lipgloss.NewStyle().Foreground(colorSuccess),
	Warning: lipgloss.NewStyle().Foreground(colorWarning),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(colorError),
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styles.Title.Render(title))
}

func printField(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s%v\n", styles.Key.Render(key), value)
}

// versionField marks a store version that differs from the engine's minor.
func versionField(v orixdb.Version, skew orixdb.Decision) string {
	switch skew {
	case orixdb.DecisionWarn:
		return fmt.Sprintf("%s %s", v, styles.Warning.Render("(older than engine "+orixdb.EngineVersion.String()+")"))
	case orixdb.DecisionConfirm:
		return fmt.Sprintf("%s %s", v, styles.Warning.Render("(newer than engine "+orixdb.EngineVersion.String()+")"))
	default:
		return v.String()
	}
}
