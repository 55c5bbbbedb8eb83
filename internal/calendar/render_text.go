package calendar

import (
	"fmt"
	"strings"
)

var fillMarks = map[Fill]string{
	FillNone:  " ",
	FillUpper: "^",
	FillLower: "v",
	FillFull:  "#",
}

// RenderText draws the month as a fixed-width table for terminals.
//
// Each cell is the day number followed by its fill mark (^ first half,
// v second half, # full day). A selected day is wrapped in brackets and an
// auspicious day carries a trailing '*'.
func RenderText(view MonthView) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(strings.TrimRight(s, " "))
		b.WriteString("\n")
	}

	line(centre(view.Title, daysPerWeek*cellWidth))

	var row strings.Builder
	for _, h := range view.Headers {
		fmt.Fprintf(&row, "%-*s", cellWidth, " "+h)
	}
	line(row.String())

	for _, week := range view.Weeks {
		row.Reset()
		for _, c := range week {
			row.WriteString(textCell(c))
		}
		line(row.String())
	}

	return b.String()
}

const cellWidth = 7

func textCell(c *DateCell) string {
	if c == nil {
		return strings.Repeat(" ", cellWidth)
	}

	star := " "
	if c.Auspicious {
		star = "*"
	}
	body := fmt.Sprintf("%2d%s%s", c.Day, fillMarks[c.Fill], star)
	if c.Selected {
		body = "[" + body + "]"
	} else {
		body = " " + body + " "
	}
	return fmt.Sprintf("%-*s", cellWidth, body)
}

func centre(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
