package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBookingTime = time.Date(2025, time.March, 10, 9, 30, 15, 0, time.UTC)

func newTestStore(t *testing.T, shared bool) *Store {
	t.Helper()
	store, err := OpenStore(shared, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func janeDoe() TicketFields {
	return TicketFields{Name: "Jane Doe", Age: 29, Gender: GenderFemale, Source: "Central", Destination: "North"}
}

// seedTicket stores a ticket under a fixed id.
func seedTicket(t *testing.T, book *TicketBook, id string, fields TicketFields) Ticket {
	t.Helper()
	seq, err := book.store.seq.Next()
	require.NoError(t, err)
	ticket := Ticket{ID: id, Seq: seq, TicketFields: fields, BookingTime: testBookingTime}
	require.NoError(t, book.store.db.Update(func(txn *badger.Txn) error {
		return book.put(txn, ticket)
	}))
	return ticket
}

func TestSessions(t *testing.T) {
	store := newTestStore(t, false)

	ok, err := store.hasSession(7)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.getSession(7)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	want := Session{Operation: OpBook, Step: StepAge, Fields: TicketFields{Name: "Jane Doe"}, Greeted: true}
	require.NoError(t, store.saveSession(7, want))

	got, err := store.getSession(7)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.deleteSession(7))
	ok, err = store.hasSession(7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTicketCreate(t *testing.T) {
	book := newTestStore(t, false).Tickets(1)

	date := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)
	fields := janeDoe()
	fields.TravelDate = &date

	ticket, err := book.Create(fields, testBookingTime.Add(300*time.Millisecond))
	require.NoError(t, err)
	assert.Len(t, ticket.ID, 8)
	assert.Regexp(t, `^[A-Z0-9]*[0-9][A-Z0-9]*$`, ticket.ID)
	assert.True(t, testBookingTime.Equal(ticket.BookingTime))

	got, found, err := book.FindByID(ticket.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, ticket.TicketFields.Name, got.Name)
	require.NotNil(t, got.TravelDate)
	assert.True(t, date.Equal(*got.TravelDate))

	// ids are matched case-insensitively
	_, found, err = book.FindByID(strings.ToLower(ticket.ID))
	require.NoError(t, err)
	assert.True(t, found)
}

func TestTicketCreateRejectsInvalid(t *testing.T) {
	book := newTestStore(t, false).Tickets(1)

	fields := janeDoe()
	fields.Destination = fields.Source
	_, err := book.Create(fields, testBookingTime)
	assert.Error(t, err)

	fields = janeDoe()
	fields.Age = 0
	_, err = book.Create(fields, testBookingTime)
	assert.Error(t, err)

	all, err := book.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTicketIDsAreUnique(t *testing.T) {
	book := newTestStore(t, false).Tickets(1)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		ticket, err := book.Create(janeDoe(), testBookingTime)
		require.NoError(t, err)
		require.False(t, seen[ticket.ID], "duplicate id %s", ticket.ID)
		seen[ticket.ID] = true
	}
}

func TestTicketOrderAndSearch(t *testing.T) {
	book := newTestStore(t, false).Tickets(1)

	names := []string{"John Smith", "Jane Doe", "Johnny Smithers"}
	for _, n := range names {
		f := janeDoe()
		f.Name = n
		_, err := book.Create(f, testBookingTime)
		require.NoError(t, err)
	}

	all, err := book.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, n := range names {
		assert.Equal(t, n, all[i].Name)
	}

	matches, err := book.FindByName("  SMITH ")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "John Smith", matches[0].Name)
	assert.Equal(t, "Johnny Smithers", matches[1].Name)

	matches, err = book.FindByName("nobody")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestTicketUpdate(t *testing.T) {
	book := newTestStore(t, false).Tickets(1)
	seeded := seedTicket(t, book, "AB12CD34", janeDoe())

	updated, found, err := book.Update("AB12CD34", TicketUpdate{Age: intPtr(31), Destination: strPtr("Eastside")})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, "Eastside", updated.Destination)
	assert.Equal(t, seeded.Name, updated.Name)
	assert.True(t, seeded.BookingTime.Equal(updated.BookingTime))

	got, _, err := book.FindByID("AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, _, err = book.Update("AB12CD34", TicketUpdate{Age: intPtr(200)})
	assert.Error(t, err)

	_, found, err = book.Update("ZZ99ZZ99", TicketUpdate{Age: intPtr(30)})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTicketDelete(t *testing.T) {
	book := newTestStore(t, false).Tickets(1)
	seedTicket(t, book, "AB12CD34", janeDoe())

	deleted, err := book.Delete("AB12CD34")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, found, err := book.FindByID("AB12CD34")
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err = book.Delete("AB12CD34")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTicketIsolation(t *testing.T) {
	t.Run("per chat", func(t *testing.T) {
		store := newTestStore(t, false)
		seedTicket(t, store.Tickets(1), "AB12CD34", janeDoe())

		other := store.Tickets(2)
		_, found, err := other.FindByID("AB12CD34")
		require.NoError(t, err)
		assert.False(t, found)

		deleted, err := other.Delete("AB12CD34")
		require.NoError(t, err)
		assert.False(t, deleted)

		all, err := other.All()
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("shared", func(t *testing.T) {
		store := newTestStore(t, true)
		seedTicket(t, store.Tickets(1), "AB12CD34", janeDoe())

		_, found, err := store.Tickets(2).FindByID("AB12CD34")
		require.NoError(t, err)
		assert.True(t, found)
	})
}
