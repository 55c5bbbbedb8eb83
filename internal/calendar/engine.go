package calendar

import (
	"fmt"
	"time"

	"github.com/nekogravitycat/banquet-calendar/internal/booking"
)

// Options are the behavioural switches that used to differ between the
// calendar page variants.
type Options struct {
	FirstDay       time.Weekday
	ShowAuspicious bool
	// BadgeCap caps the count badge ("9+"). Zero means no cap.
	BadgeCap int
}

// DateCell is the render-ready state of one day.
type DateCell struct {
	Date         string `json:"date"`
	Day          int    `json:"day"`
	BookingCount int    `json:"booking_count"`
	Badge        string `json:"badge,omitempty"`
	Fill         Fill   `json:"fill"`
	Selected     bool   `json:"selected"`
	Auspicious   bool   `json:"auspicious"`
	Tier         Tier   `json:"tier,omitempty"`
	Tooltip      string `json:"tooltip,omitempty"`
}

// WeekCells is one rendered row; nil entries are empty cells.
type WeekCells [daysPerWeek]*DateCell

// MonthView is a fully decorated month ready for rendering.
type MonthView struct {
	Month    MonthRef    `json:"month"`
	Title    string      `json:"title"`
	Headers  []string    `json:"headers"`
	Weeks    []WeekCells `json:"weeks"`
	Selected string      `json:"selected,omitempty"`
}

// Cells returns the non-empty cells in date order.
func (v MonthView) Cells() []*DateCell {
	var cells []*DateCell
	for _, w := range v.Weeks {
		for _, c := range w {
			if c != nil {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// Engine turns grouped bookings into month views. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Options returns the engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Month builds the view for year/month. selected may be empty.
func (e *Engine) Month(year int, month time.Month, byDate booking.ByDate, selected string) MonthView {
	return e.MonthWith(BuildGrid(year, month, e.opts.FirstDay), Auspicious(year), byDate, selected)
}

// MonthWith decorates a prebuilt grid with an already computed auspicious set.
func (e *Engine) MonthWith(grid Grid, auspicious AuspiciousSet, byDate booking.ByDate, selected string) MonthView {
	ref := MonthRef{Year: grid.Year, Month: grid.Month}
	if auspicious.Year != grid.Year {
		auspicious = Auspicious(grid.Year)
	}

	view := MonthView{
		Month:    ref,
		Title:    ref.Title(),
		Headers:  grid.WeekdayHeaders(),
		Weeks:    make([]WeekCells, 0, len(grid.Weeks)),
		Selected: selected,
	}

	for _, week := range grid.Weeks {
		var row WeekCells
		for i, day := range week {
			if day == 0 {
				continue
			}
			row[i] = e.cell(grid.Key(day), day, auspicious, byDate[grid.Key(day)], selected)
		}
		view.Weeks = append(view.Weeks, row)
	}

	return view
}

func (e *Engine) cell(key string, day int, auspicious AuspiciousSet, bookings []booking.Booking, selected string) *DateCell {
	c := &DateCell{
		Date:         key,
		Day:          day,
		BookingCount: len(bookings),
		Badge:        Badge(len(bookings), e.opts.BadgeCap),
		Fill:         Classify(bookings),
		Selected:     selected != "" && key == selected,
	}

	if e.opts.ShowAuspicious {
		c.Auspicious = auspicious.Has(key)
		c.Tier = auspicious.Tier(key)
	}

	c.Tooltip = cellTooltip(c)
	return c
}

// Badge formats the booking count indicator. It is empty for zero bookings.
func Badge(count, limit int) string {
	if count <= 0 {
		return ""
	}
	if limit > 0 && count > limit {
		return fmt.Sprintf("%d+", limit)
	}
	return fmt.Sprintf("%d", count)
}

func cellTooltip(c *DateCell) string {
	var text string
	if c.BookingCount > 0 {
		plural := ""
		if c.BookingCount > 1 {
			plural = "s"
		}
		text = fmt.Sprintf("%d booking%s - %s", c.BookingCount, plural, c.Fill.Label())
	}
	if tip := c.Tier.Tooltip(); tip != "" {
		if text != "" {
			return text + "; " + tip
		}
		return tip
	}
	return text
}
