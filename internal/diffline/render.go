package diffline

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgCyan)
	removeColor = color.New(color.FgRed)
	addColor    = color.New(color.FgGreen)
)

// Render writes the hunks in unified-diff style. When colorize is false the
// output is plain text suitable for logs and non-terminal streams.
func Render(hunks []Hunk, colorize bool) string {
	var b strings.Builder
	for i, h := range hunks {
		if i > 0 {
			b.WriteByte('\n')
		}
		header := fmt.Sprintf("@@ -%d +%d @@", h.OldStart, h.NewStart)
		if colorize {
			header = headerColor.Sprint(header)
		}
		b.WriteString(header)
		b.WriteByte('\n')
		for j, line := range h.Lines {
			text := line.Op.String() + line.Text
			if colorize {
				switch line.Op {
				case OpRemove:
					text = removeColor.Sprint(text)
				case OpAdd:
					text = addColor.Sprint(text)
				}
			}
			b.WriteString(text)
			if j < len(h.Lines)-1 {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// Stats counts removed and added lines across hunks.
func Stats(hunks []Hunk) (removed, added int) {
	for _, h := range hunks {
		for _, line := range h.Lines {
			switch line.Op {
			case OpRemove:
				removed++
			case OpAdd:
				added++
			}
		}
	}
	return removed, added
}
