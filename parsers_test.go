package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"29", 29, false},
		{"I am 45 years old", 45, false},
		{"1", 1, false},
		{"120", 120, false},
		{"0", 0, true},
		{"121", 0, true},
		{"200", 0, true},
		{"twenty", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAge(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAge)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGender(t *testing.T) {
	assert.Equal(t, GenderFemale, ParseGender("female"))
	assert.Equal(t, GenderFemale, ParseGender("I am Female"))
	assert.Equal(t, GenderMale, ParseGender("Male"))
	assert.Equal(t, GenderOther, ParseGender("prefer not to say"))
	assert.Equal(t, GenderOther, ParseGender(""))
}

func TestParseDate(t *testing.T) {
	now := time.Date(2025, time.March, 10, 18, 45, 0, 0, time.UTC)

	t.Run("relative", func(t *testing.T) {
		got, err := ParseDate("tomorrow please", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC), got)

		got, err = ParseDate("Today", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("month and day", func(t *testing.T) {
		got, err := ParseDate("March 30", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC), got)

		got, err = ParseDate("on the 5 of december", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("impossible day", func(t *testing.T) {
		_, err := ParseDate("February 30", now)
		assert.ErrorIs(t, err, ErrInvalidDate)

		_, err = ParseDate("April 0", now)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unparseable", func(t *testing.T) {
		for _, in := range []string{"next week", "March", "30", ""} {
			_, err := ParseDate(in, now)
			assert.ErrorIs(t, err, ErrUnparseableDate, in)
		}
	})
}

func TestExtractTicketID(t *testing.T) {
	id, ok := ExtractTicketID("download ticket ab12cd34")
	require.True(t, ok)
	assert.Equal(t, "AB12CD34", id)

	id, ok = ExtractTicketID("9F3A0B1C and 11111111")
	require.True(t, ok)
	assert.Equal(t, "9F3A0B1C", id)

	for _, in := range []string{"download", "tomorrow", "AB12CD3", "AB12CD345", ""} {
		_, ok := ExtractTicketID(in)
		assert.False(t, ok, in)
	}
}
