package main

import (
	"fmt"
	"strings"
	"time"
)

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func genderPtr(g Gender) *Gender { return &g }

// containsAny reports whether s contains any of the keywords.
func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// normalize lowercases and trims an utterance for keyword matching.
func normalize(utterance string) string {
	return strings.ToLower(strings.TrimSpace(utterance))
}

// isEscape reports whether the whole utterance asks to leave the current
// operation. Only exact phrases count so names like "Max Exit" still work.
func isEscape(text string) bool {
	switch strings.Trim(text, " .!?") {
	case "main menu", "go to main menu", "return to main menu", "abort", "exit":
		return true
	}
	return false
}

func remove[T comparable](l []T, item T) []T {
	out := make([]T, 0)
	for _, element := range l {
		if element != item {
			out = append(out, element)
		}
	}
	return out
}

const bookingTimeLayout = "2006-01-02 15:04:05"

// longDate formats a travel date the way it is read back to the user.
func longDate(d time.Time) string {
	return d.Format("January 02, 2006")
}

// describeTicket is the spoken one-line summary of a ticket.
func describeTicket(t Ticket) string {
	travel := ""
	if t.TravelDate != nil {
		travel = ", traveling on " + longDate(*t.TravelDate)
	}
	return fmt.Sprintf("ID %s, %s, age %d, gender %s, from %s to %s%s, booked on %s",
		t.ID, t.Name, t.Age, t.Gender, t.Source, t.Destination, travel, t.BookingTime.Format(bookingTimeLayout))
}

// listTickets numbers tickets for reading out.
func listTickets(tickets []Ticket) []string {
	lines := make([]string, 0, len(tickets))
	for i, t := range tickets {
		lines = append(lines, fmt.Sprintf("Ticket %d, %s", i+1, describeTicket(t)))
	}
	return lines
}

// listCandidates reads out tickets for picking one by id.
func listCandidates(tickets []Ticket) []string {
	lines := make([]string, 0, len(tickets))
	for _, t := range tickets {
		lines = append(lines, fmt.Sprintf("Ticket ID %s, %s, from %s to %s", t.ID, t.Name, t.Source, t.Destination))
	}
	return lines
}
