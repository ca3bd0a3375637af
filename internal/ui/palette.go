package ui

import (
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mattn/go-isatty"
)

// Palette styles operator-facing text. A disabled palette returns text unchanged.
type Palette struct {
	enabled bool
	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
}

// NewPalette constructs a palette; enabled selects styled rendering.
func NewPalette(enabled bool) Palette {
	return Palette{
		enabled: enabled,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	}
}

// NewPaletteForWriter enables styling only when writer is a terminal.
func NewPaletteForWriter(writer io.Writer) Palette {
	return NewPalette(IsTerminalWriter(writer))
}

// IsTerminalWriter reports whether writer is a file attached to a terminal.
func IsTerminalWriter(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// Enabled reports whether the palette emits styling.
func (palette Palette) Enabled() bool {
	return palette.enabled
}

// Title renders headings.
func (palette Palette) Title(text string) string {
	return palette.render(palette.title, text)
}

// Success renders positive outcomes.
func (palette Palette) Success(text string) string {
	return palette.render(palette.success, text)
}

// Failure renders errors and destructive warnings.
func (palette Palette) Failure(text string) string {
	return palette.render(palette.failure, text)
}

// Muted renders secondary details.
func (palette Palette) Muted(text string) string {
	return palette.render(palette.muted, text)
}

// Accent renders identifiers such as repository names.
func (palette Palette) Accent(text string) string {
	return palette.render(palette.accent, text)
}

// KeyValueTable renders aligned, borderless rows of label and value columns.
func (palette Palette) KeyValueTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	renderedTable := table.New().
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, column int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingLeft(2).PaddingRight(2)
			if palette.enabled && column == 0 {
				style = style.Bold(true)
			}
			return style
		})
	return renderedTable.String() + "\n"
}

func (palette Palette) render(style lipgloss.Style, text string) string {
	if !palette.enabled {
		return text
	}
	return style.Render(text)
}
