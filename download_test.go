package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestRenderTicketDocument(t *testing.T) {
	date := time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)
	ticket := Ticket{
		ID:           "AB12CD34",
		TicketFields: TicketFields{Name: "Jane <Doe>", Age: 29, Gender: GenderFemale, Source: "Central", Destination: "North", TravelDate: &date},
		BookingTime:  testBookingTime,
	}

	data, err := RenderTicketDocument(ticket)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
	assert.Contains(t, string(data), "Jane &lt;Doe&gt;")

	doc, err := html.Parse(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"ticket_id":      "AB12CD34",
		"passenger_name": "Jane <Doe>",
		"age":            "29",
		"gender":         "Female",
		"from":           "Central",
		"to":             "North",
		"travel_date":    "March 30, 2025",
		"booking_time":   "2025-03-10 09:30:15",
	}, ticketFields(doc))
}

func TestRenderTicketDocumentWithoutDate(t *testing.T) {
	ticket := Ticket{ID: "AB12CD34", TicketFields: janeDoe(), BookingTime: testBookingTime}

	data, err := RenderTicketDocument(ticket)
	require.NoError(t, err)
	doc, err := html.Parse(bytes.NewReader(data))
	require.NoError(t, err)

	fields := ticketFields(doc)
	assert.NotContains(t, fields, "travel_date")
	assert.Equal(t, "Jane Doe", fields["passenger_name"])
}

func TestTicketFieldsIgnoresOtherDocuments(t *testing.T) {
	doc, err := html.Parse(bytes.NewReader([]byte(`<html><body><table><tr><th>x</th><td>y</td></tr></table></body></html>`)))
	require.NoError(t, err)
	assert.Empty(t, ticketFields(doc))
}
