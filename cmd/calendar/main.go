package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/banquet-calendar/internal/board"
	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
	"github.com/nekogravitycat/banquet-calendar/internal/config"
	"github.com/nekogravitycat/banquet-calendar/internal/export"
	"github.com/nekogravitycat/banquet-calendar/internal/logger"
)

const help = `commands:
  n                      next month
  p                      previous month
  g YYYY-MM              go to month
  s YYYY-MM-DD           select a day and list its bookings
  c                      clear the selection
  f TEXT                 search by name or phone (empty clears)
  status STATUS          filter by status (All clears)
  a YYYY-MM-DD name=N    add a booking (also phone= time= status= notes=)
  e ID field=value       edit a booking (name phone date time status notes)
  d ID                   delete a booking
  x [WIDTH]              export the month as PNG
  x info [YYYY-MM]       show a stored snapshot
  x rm [YYYY-MM]         delete a stored snapshot
  r                      reload
  q                      quit`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	start := flag.String("month", time.Now().Format("2006-01"), "month to open, YYYY-MM")
	flag.Parse()

	zl, err := logger.New(cfg.IsProduction)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	ref, err := parseMonth(*start)
	if err != nil {
		zl.Fatal("invalid -month", zap.Error(err))
	}

	repo := booking.NewHTTPRepository(booking.ClientConfig{
		BaseURL:  cfg.BookingAPIURL,
		ListPath: cfg.BookingListPath,
		Timeout:  cfg.BookingAPITimeout,
		RPS:      cfg.BookingAPIRPS,
		Burst:    cfg.BookingAPIBurst,
	}, zl)
	engine := calendar.NewEngine(calendar.Options{
		FirstDay:       cfg.FirstDayOfWeek,
		ShowAuspicious: cfg.ShowAuspicious,
		BadgeCap:       cfg.BadgeCap,
	})
	b := board.New(booking.NewService(repo), engine, ref, zl)

	store, err := export.NewStore(cfg.ExportDir)
	if err != nil {
		zl.Fatal("failed to open export directory", zap.Error(err))
	}

	fmt.Println(help)
	go reload(ctx, b, zl, b.Refresh)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "n":
			go reload(ctx, b, zl, b.Next)
		case "p":
			go reload(ctx, b, zl, b.Prev)
		case "g":
			m, err := parseMonth(arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			go reload(ctx, b, zl, func(ctx context.Context) error { return b.Goto(ctx, m) })
		case "s":
			key, ok := booking.ParseDateKey(arg)
			if !ok {
				fmt.Println("date must be YYYY-MM-DD")
				continue
			}
			b.Select(key)
			printView(b)
			printSelected(b)
		case "f":
			f := b.Filter()
			f.Search = arg
			go reload(ctx, b, zl, func(ctx context.Context) error { return b.SetFilter(ctx, f) })
		case "status":
			f := b.Filter()
			f.Status = arg
			if err := f.Validate(); err != nil {
				fmt.Println(err)
				continue
			}
			go reload(ctx, b, zl, func(ctx context.Context) error { return b.SetFilter(ctx, f) })
		case "c":
			b.ClearSelection()
			printView(b)
		case "a":
			req, err := parseCreate(arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			created, err := b.CreateBooking(ctx, req)
			if err != nil {
				zl.Error("failed to create booking", zap.Error(err))
				continue
			}
			fmt.Println("created", created.ID)
			printView(b)
		case "e":
			id, req, err := parseEdit(arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			_, err = b.UpdateBooking(ctx, id, req)
			if booking.IsNetworkError(err) && ask(scanner, "booking service unavailable, apply locally? [y/N] ") {
				if !b.PatchLocal(id, req) {
					fmt.Println("no loaded booking with id", id)
					continue
				}
				err = nil
			}
			if err != nil {
				zl.Error("failed to update booking", zap.String("booking_id", id), zap.Error(err))
				continue
			}
			printView(b)
		case "d":
			if arg == "" {
				fmt.Println("usage: d ID")
				continue
			}
			err := b.DeleteBooking(ctx, arg)
			if booking.IsNetworkError(err) && ask(scanner, "booking service unavailable, remove locally? [y/N] ") {
				if !b.RemoveLocal(arg) {
					fmt.Println("no loaded booking with id", arg)
					continue
				}
				err = nil
			}
			if err != nil {
				zl.Error("failed to delete booking", zap.String("booking_id", arg), zap.Error(err))
				continue
			}
			printView(b)
		case "x":
			snapshot(ctx, store, b, arg, cfg.MobileBreakpoint, zl)
		case "r":
			go reload(ctx, b, zl, b.Refresh)
		case "q":
			return
		case "":
		default:
			fmt.Println(help)
		}
	}
}

// ask prints prompt and reads one answer line from scanner.
func ask(scanner *bufio.Scanner, prompt string) bool {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return false
	}
	return confirmed(scanner.Text())
}

func snapshot(ctx context.Context, store *export.Store, b *board.Board, arg string, breakpoint int, zl *zap.Logger) {
	sub, rest, _ := strings.Cut(arg, " ")
	switch sub {
	case "info":
		m, err := parseMonthOr(strings.TrimSpace(rest), b.Month())
		if err != nil {
			fmt.Println(err)
			return
		}
		rc, err := store.Open(m)
		if errors.Is(err, export.ErrNotExported) {
			fmt.Println("no snapshot for", m.Title())
			return
		}
		if err != nil {
			zl.Error("failed to open snapshot", zap.Error(err))
			return
		}
		defer rc.Close()
		img, err := png.DecodeConfig(rc)
		if err != nil {
			zl.Error("failed to read snapshot", zap.Error(err))
			return
		}
		fmt.Printf("%s  %dx%d\n", store.Path(m), img.Width, img.Height)
	case "rm":
		m, err := parseMonthOr(strings.TrimSpace(rest), b.Month())
		if err != nil {
			fmt.Println(err)
			return
		}
		if err := store.Remove(m); err != nil {
			zl.Error("failed to delete snapshot", zap.Error(err))
			return
		}
		fmt.Println("removed", store.Path(m))
	default:
		vp := calendar.ViewportInfo{Breakpoint: breakpoint}
		if arg != "" {
			width, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("width must be a number")
				return
			}
			vp.Width = width
		}
		path, err := store.SaveMonth(ctx, b.View(), vp)
		if err != nil {
			zl.Error("failed to export month", zap.Error(err))
			return
		}
		fmt.Println("saved", path)
	}
}

// reload runs a board operation and prints the result. Superseded loads are
// silently dropped since a newer one will print.
func reload(ctx context.Context, b *board.Board, zl *zap.Logger, op func(context.Context) error) {
	err := op(ctx)
	switch {
	case errors.Is(err, board.ErrStale):
		return
	case booking.IsNetworkError(err):
		zl.Warn("booking service unavailable, showing last loaded data", zap.Error(err))
	case err != nil:
		zl.Error("failed to load bookings", zap.Error(err))
		return
	}
	printView(b)
}

func printView(b *board.Board) {
	fmt.Println()
	fmt.Print(calendar.RenderText(b.View()))
	fmt.Println()
}

func printSelected(b *board.Board) {
	key, _ := b.Selected()
	list := b.SelectedBookings()
	fmt.Printf("Bookings for %s\n", key)
	if len(list) == 0 {
		fmt.Println("  No bookings for this date")
		return
	}
	for _, bk := range list {
		line := fmt.Sprintf("  %s  %s  %s", bk.Name, bk.ContactNumber(), bk.Status)
		if t := bk.TimeOfDay(); t != "" {
			line += "  " + booking.FormatTime12(t)
		}
		if bk.Notes != "" {
			line += "  (" + bk.Notes + ")"
		}
		fmt.Println(line)
	}
}
