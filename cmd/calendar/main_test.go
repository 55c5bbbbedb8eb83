package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
)

func TestParseEdit(t *testing.T) {
	id, req, err := parseEdit("65f0c1 name=Asha Rao status=confirmed notes=veg only")
	require.NoError(t, err)
	assert.Equal(t, "65f0c1", id)
	require.NotNil(t, req.Name)
	assert.Equal(t, "Asha Rao", *req.Name)
	require.NotNil(t, req.Status)
	assert.Equal(t, booking.Status("confirmed"), *req.Status)
	require.NotNil(t, req.Notes)
	assert.Equal(t, "veg only", *req.Notes)
	assert.Nil(t, req.Phone)
	assert.Nil(t, req.EventDate)

	_, req, err = parseEdit("a DATE=2025-03-20 time=18:30")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-20", *req.EventDate)
	assert.Equal(t, "18:30", *req.EventTime)

	_, req, err = parseEdit("a notes=")
	require.NoError(t, err)
	require.NotNil(t, req.Notes)
	assert.Empty(t, *req.Notes)
}

func TestParseEdit_Errors(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"no fields", "a"},
		{"empty", ""},
		{"value before field", "a Asha name=x"},
		{"unknown field", "a hall=Main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseEdit(tt.arg)
			assert.Error(t, err)
		})
	}
}

func TestParseCreate(t *testing.T) {
	req, err := parseCreate("2025-03-14 name=Asha Rao phone=98765 time=18:30")
	require.NoError(t, err)
	assert.Equal(t, booking.CreateRequest{
		Name:      "Asha Rao",
		Phone:     "98765",
		EventDate: "2025-03-14",
		EventTime: "18:30",
	}, req)

	_, err = parseCreate("2025-03-14 phone=98765")
	assert.ErrorContains(t, err, "name")

	_, err = parseCreate("2025-03-14")
	assert.Error(t, err)
}

func TestParseMonthOr(t *testing.T) {
	fallback := calendar.MonthRef{Year: 2025, Month: time.March}

	m, err := parseMonthOr("", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, m)

	m, err = parseMonthOr("2026-01", fallback)
	require.NoError(t, err)
	assert.Equal(t, calendar.MonthRef{Year: 2026, Month: time.January}, m)

	_, err = parseMonthOr("March", fallback)
	assert.Error(t, err)
}

func TestConfirmed(t *testing.T) {
	assert.True(t, confirmed("y"))
	assert.True(t, confirmed(" YES\n"))
	assert.False(t, confirmed(""))
	assert.False(t, confirmed("n"))
	assert.False(t, confirmed("maybe"))
}
