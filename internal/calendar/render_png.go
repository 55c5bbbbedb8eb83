package calendar

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	colorGold       = color.NRGBA{R: 0xc3, G: 0xad, B: 0x6b, A: 0xff}
	colorPaper      = color.NRGBA{R: 0xff, G: 0xfa, B: 0xeb, A: 0xff}
	colorCell       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorBorder     = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	colorInk        = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	colorBadge      = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	colorAuspicious = color.NRGBA{R: 0x99, G: 0x33, B: 0x00, A: 0xff}
)

const (
	fillOpacity = 0.7
	headerSize  = 24
	gutter      = 4
)

// cellSize mirrors the 48px / 64px tiles of the dashboard.
func cellSize(vp ViewportInfo) int {
	if vp.Mobile() {
		return 48
	}
	return 64
}

// RenderPNG draws the month view and writes it as PNG.
func RenderPNG(w io.Writer, view MonthView, vp ViewportInfo) error {
	size := cellSize(vp)
	pitch := size + gutter
	width := daysPerWeek*pitch + gutter
	height := headerSize*2 + len(view.Weeks)*pitch + gutter

	canvas := imaging.New(width, height, colorPaper)
	drawText(canvas, view.Title, width/2, headerSize-8, colorInk, true)

	for i, h := range view.Headers {
		x := gutter + i*pitch + size/2
		drawText(canvas, h, x, headerSize*2-8, colorGold, true)
	}

	for row, week := range view.Weeks {
		for col, c := range week {
			if c == nil {
				continue
			}
			origin := image.Pt(gutter+col*pitch, headerSize*2+row*pitch)
			canvas = drawCell(canvas, c, origin, size)
		}
	}

	if err := imaging.Encode(w, canvas, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode calendar image: %w", err)
	}
	return nil
}

func drawCell(canvas *image.NRGBA, c *DateCell, origin image.Point, size int) *image.NRGBA {
	if c.Selected {
		canvas = imaging.Paste(canvas, imaging.New(size, size, colorGold), origin)
	} else {
		canvas = imaging.Paste(canvas, imaging.New(size, size, colorBorder), origin)
		canvas = imaging.Paste(canvas, imaging.New(size-2, size-2, colorCell), origin.Add(image.Pt(1, 1)))

		half := size / 2
		switch c.Fill {
		case FillUpper:
			canvas = imaging.Overlay(canvas, imaging.New(size, half, colorGold), origin, fillOpacity)
		case FillLower:
			canvas = imaging.Overlay(canvas, imaging.New(size, size-half, colorGold), origin.Add(image.Pt(0, half)), fillOpacity)
		case FillFull:
			canvas = imaging.Overlay(canvas, imaging.New(size, size, colorGold), origin, fillOpacity)
		}
	}

	if c.Auspicious {
		canvas = imaging.Paste(canvas, imaging.New(6, 6, colorAuspicious), origin.Add(image.Pt(3, size-9)))
	}

	ink := colorInk
	if c.Selected {
		ink = colorCell
	}
	drawText(canvas, fmt.Sprintf("%d", c.Day), origin.X+size/2, origin.Y+size/2+4, ink, true)

	if c.Badge != "" {
		bw := 8*len(c.Badge) + 4
		at := origin.Add(image.Pt(size-bw, 0))
		canvas = imaging.Paste(canvas, imaging.New(bw, 14, colorBadge), at)
		drawText(canvas, c.Badge, at.X+bw/2, at.Y+11, colorCell, true)
	}

	return canvas
}

// drawText writes s with its baseline at y. When centred, x is the midpoint.
func drawText(dst *image.NRGBA, s string, x, y int, c color.Color, centred bool) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	if centred {
		x -= d.MeasureString(s).Round() / 2
	}
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}
