package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
)

var editFields = []string{"name", "phone", "date", "time", "status", "notes"}

// parseFields reads "key=value" tokens. A token without "=" continues the
// previous value, so "name=Asha Rao" sets name to "Asha Rao".
func parseFields(tokens []string) (map[string]string, error) {
	fields := map[string]string{}
	last := ""
	for _, tok := range tokens {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			if last == "" {
				return nil, fmt.Errorf("expected field=value, got %q", tok)
			}
			fields[last] += " " + tok
			continue
		}

		key = strings.ToLower(key)
		known := false
		for _, f := range editFields {
			if key == f {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown field %q (want one of %s)", key, strings.Join(editFields, ", "))
		}
		fields[key] = val
		last = key
	}
	return fields, nil
}

// parseEdit parses "ID field=value ..." into an update.
func parseEdit(arg string) (string, booking.UpdateRequest, error) {
	tokens := strings.Fields(arg)
	if len(tokens) < 2 {
		return "", booking.UpdateRequest{}, errors.New("usage: e ID field=value ...")
	}

	fields, err := parseFields(tokens[1:])
	if err != nil {
		return "", booking.UpdateRequest{}, err
	}

	var req booking.UpdateRequest
	for k, v := range fields {
		switch k {
		case "name":
			req.Name = &v
		case "phone":
			req.Phone = &v
		case "date":
			req.EventDate = &v
		case "time":
			req.EventTime = &v
		case "status":
			st := booking.Status(v)
			req.Status = &st
		case "notes":
			req.Notes = &v
		}
	}
	return tokens[0], req, nil
}

// parseCreate parses "YYYY-MM-DD name=... [field=value ...]" into a new
// booking.
func parseCreate(arg string) (booking.CreateRequest, error) {
	tokens := strings.Fields(arg)
	if len(tokens) < 2 {
		return booking.CreateRequest{}, errors.New("usage: a YYYY-MM-DD name=NAME [field=value ...]")
	}

	fields, err := parseFields(tokens[1:])
	if err != nil {
		return booking.CreateRequest{}, err
	}
	if fields["name"] == "" {
		return booking.CreateRequest{}, errors.New("name is required")
	}

	req := booking.CreateRequest{
		Name:      fields["name"],
		Phone:     fields["phone"],
		EventDate: tokens[0],
		EventTime: fields["time"],
		Status:    booking.Status(fields["status"]),
		Notes:     fields["notes"],
	}
	if d, ok := fields["date"]; ok {
		req.EventDate = d
	}
	return req, nil
}

// parseMonthOr parses s as a month, or returns fallback when s is empty.
func parseMonthOr(s string, fallback calendar.MonthRef) (calendar.MonthRef, error) {
	if s == "" {
		return fallback, nil
	}
	return parseMonth(s)
}

func parseMonth(s string) (calendar.MonthRef, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return calendar.MonthRef{}, fmt.Errorf("month must be YYYY-MM: %w", err)
	}
	return calendar.MonthOf(t), nil
}

// confirmed reports whether answer is a yes.
func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
