package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
)

// NewStyledWriter wraps writer so ANSI styling is downsampled to what the
// terminal and environment (NO_COLOR, TERM) support.
func NewStyledWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return io.Discard
	}
	return colorprofile.NewWriter(writer, os.Environ())
}
