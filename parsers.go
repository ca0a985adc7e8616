package main

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidAge      = errors.New("invalid age")
	ErrInvalidDate     = errors.New("invalid date")
	ErrUnparseableDate = errors.New("unparseable date")
)

const (
	minAge = 1
	maxAge = 120
)

var (
	digitsRe   = regexp.MustCompile(`\d+`)
	dayRe      = regexp.MustCompile(`\b(\d{1,2})\b`)
	ticketIDRe = regexp.MustCompile(`\b[A-Z0-9]{8}\b`)
)

var months = []struct {
	name  string
	month time.Month
}{
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"may", time.May}, {"june", time.June},
	{"july", time.July}, {"august", time.August}, {"september", time.September},
	{"october", time.October}, {"november", time.November}, {"december", time.December},
}

// ParseAge takes the first number in the utterance.
func ParseAge(utterance string) (int, error) {
	m := digitsRe.FindString(utterance)
	if m == "" {
		return 0, ErrInvalidAge
	}
	age, err := strconv.Atoi(m)
	if err != nil || age < minAge || age > maxAge {
		return 0, ErrInvalidAge
	}
	return age, nil
}

// ParseGender never fails: anything that is not male or female is Other.
func ParseGender(utterance string) Gender {
	s := strings.ToLower(utterance)
	switch {
	case strings.Contains(s, "female"):
		return GenderFemale
	case strings.Contains(s, "male"):
		return GenderMale
	default:
		return GenderOther
	}
}

// ParseDate understands "today", "tomorrow" and "<month> <day>" in the
// current year. The result has no time component.
func ParseDate(utterance string, now time.Time) (time.Time, error) {
	s := strings.ToLower(utterance)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case strings.Contains(s, "tomorrow"):
		return today.AddDate(0, 0, 1), nil
	case strings.Contains(s, "today"):
		return today, nil
	}

	var month time.Month
	for _, m := range months {
		if strings.Contains(s, m.name) {
			month = m.month
			break
		}
	}
	dm := dayRe.FindStringSubmatch(s)
	if month == 0 || dm == nil {
		return time.Time{}, ErrUnparseableDate
	}
	day, _ := strconv.Atoi(dm[1])

	d := time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes Feb 30 into March; reject instead.
	if day < 1 || d.Month() != month || d.Day() != day {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// ExtractTicketID returns the first 8-character alphanumeric token of the
// uppercased utterance. Tokens without a digit are ordinary words
// ("DOWNLOAD", "TOMORROW") and are skipped; generated ids always carry one.
func ExtractTicketID(utterance string) (string, bool) {
	for _, tok := range ticketIDRe.FindAllString(strings.ToUpper(utterance), -1) {
		if strings.ContainsAny(tok, "0123456789") {
			return tok, true
		}
	}
	return "", false
}
