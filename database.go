package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	sessionPrefix  = "session/"
	ticketPrefix   = "ticket/"   // ticket/<owner>/<seq> -> Ticket json
	ticketIDPrefix = "ticketid/" // ticketid/<id> -> ticket key
	sharedOwner    = "shared"
)

var ticketValidate = validator.New()

// Store keeps sessions and tickets in an in-memory badger database.
// key: session/<chatID>, value: Session in json.
type Store struct {
	db     *badger.DB
	seq    *badger.Sequence
	mu     sync.Mutex // serializes ticket mutations
	shared bool
	logger *slog.Logger
}

// badgerLogger adapts slog.Logger to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// OpenStore opens an in-memory store. Tickets never outlive the process.
// With shared set, every session sees the same tickets; otherwise each chat
// gets its own.
func OpenStore(shared bool, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{logger: logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	seq, err := db.GetSequence([]byte("seq/ticket"), 64)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ticket sequence: %w", err)
	}
	return &Store{db: db, seq: seq, shared: shared, logger: logger}, nil
}

func (s *Store) Close() error {
	if err := s.seq.Release(); err != nil {
		s.logger.Error("Error: releasing ticket sequence", "err", err)
	}
	return s.db.Close()
}

func getDBKey(chatID int64) []byte {
	return []byte(fmt.Sprintf("%s%d", sessionPrefix, chatID))
}

// ---- sessions ----

func (s *Store) hasSession(chatID int64) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(getDBKey(chatID))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) getSession(chatID int64) (Session, error) {
	var session Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(getDBKey(chatID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session %d: %w", chatID, err)
	}
	return session, nil
}

func (s *Store) saveSession(chatID int64, session Session) error {
	jsn, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %d: %w", chatID, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(getDBKey(chatID), jsn)
	})
	if err != nil {
		return fmt.Errorf("store session %d: %w", chatID, err)
	}
	return nil
}

func (s *Store) deleteSession(chatID int64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(getDBKey(chatID))
	})
}

// ---- tickets ----

// Tickets returns the ticket book visible to a chat.
func (s *Store) Tickets(chatID int64) *TicketBook {
	owner := sharedOwner
	if !s.shared {
		owner = fmt.Sprintf("%d", chatID)
	}
	return &TicketBook{store: s, owner: owner}
}

// TicketBook is an ordered collection of tickets owned by one session (or by
// everyone when the store is shared).
type TicketBook struct {
	store *Store
	owner string
}

func (b *TicketBook) prefix() []byte {
	return []byte(ticketPrefix + b.owner + "/")
}

func (b *TicketBook) ticketKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d", ticketPrefix, b.owner, seq))
}

func ticketIDKey(id string) []byte {
	return []byte(ticketIDPrefix + id)
}

// newTicketID returns 8 uppercase hex characters with at least one digit.
func newTicketID() string {
	for {
		id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
		if strings.ContainsAny(id, "0123456789") {
			return id
		}
	}
}

// Create stores a new ticket with a fresh id and booking time.
func (b *TicketBook) Create(fields TicketFields, now time.Time) (Ticket, error) {
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, err := s.seq.Next()
	if err != nil {
		return Ticket{}, fmt.Errorf("next ticket sequence: %w", err)
	}
	ticket := Ticket{Seq: seq, TicketFields: fields, BookingTime: now.Truncate(time.Second)}

	err = s.db.Update(func(txn *badger.Txn) error {
		for {
			ticket.ID = newTicketID()
			_, err := txn.Get(ticketIDKey(ticket.ID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				break
			}
			if err != nil {
				return err
			}
		}
		if err := ticketValidate.Struct(ticket); err != nil {
			return fmt.Errorf("invalid ticket: %w", err)
		}
		return b.put(txn, ticket)
	})
	if err != nil {
		return Ticket{}, err
	}
	ticketCommits.WithLabelValues("created").Inc()
	return ticket, nil
}

func (b *TicketBook) put(txn *badger.Txn, ticket Ticket) error {
	jsn, err := json.Marshal(ticket)
	if err != nil {
		return err
	}
	key := b.ticketKey(ticket.Seq)
	if err := txn.Set(key, jsn); err != nil {
		return err
	}
	return txn.Set(ticketIDKey(ticket.ID), key)
}

// get looks a ticket up by id inside this book.
func (b *TicketBook) get(txn *badger.Txn, id string) (Ticket, bool, error) {
	item, err := txn.Get(ticketIDKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Ticket{}, false, nil
	}
	if err != nil {
		return Ticket{}, false, err
	}
	key, err := item.ValueCopy(nil)
	if err != nil {
		return Ticket{}, false, err
	}
	if !strings.HasPrefix(string(key), string(b.prefix())) {
		// another session's ticket
		return Ticket{}, false, nil
	}
	item, err = txn.Get(key)
	if err != nil {
		return Ticket{}, false, err
	}
	var ticket Ticket
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &ticket)
	})
	return ticket, err == nil, err
}

func (b *TicketBook) FindByID(id string) (Ticket, bool, error) {
	var (
		ticket Ticket
		found  bool
	)
	err := b.store.db.View(func(txn *badger.Txn) error {
		var err error
		ticket, found, err = b.get(txn, strings.ToUpper(id))
		return err
	})
	if err != nil {
		return Ticket{}, false, fmt.Errorf("find ticket %s: %w", id, err)
	}
	return ticket, found, nil
}

// Update applies the non-nil fields. found is false when the id is gone.
func (b *TicketBook) Update(id string, update TicketUpdate) (Ticket, bool, error) {
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		ticket Ticket
		found  bool
	)
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		ticket, found, err = b.get(txn, id)
		if err != nil || !found {
			return err
		}

		if update.Name != nil {
			ticket.Name = *update.Name
		}
		if update.Age != nil {
			ticket.Age = *update.Age
		}
		if update.Gender != nil {
			ticket.Gender = *update.Gender
		}
		if update.Source != nil {
			ticket.Source = *update.Source
		}
		if update.Destination != nil {
			ticket.Destination = *update.Destination
		}
		if update.TravelDate != nil {
			ticket.TravelDate = update.TravelDate
		}

		if err := ticketValidate.Struct(ticket); err != nil {
			return fmt.Errorf("invalid ticket: %w", err)
		}
		return b.put(txn, ticket)
	})
	if err != nil {
		return Ticket{}, false, fmt.Errorf("update ticket %s: %w", id, err)
	}
	if found {
		ticketCommits.WithLabelValues("updated").Inc()
	}
	return ticket, found, nil
}

func (b *TicketBook) Delete(id string) (bool, error) {
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	err := s.db.Update(func(txn *badger.Txn) error {
		ticket, ok, err := b.get(txn, id)
		if err != nil || !ok {
			return err
		}
		found = true
		if err := txn.Delete(b.ticketKey(ticket.Seq)); err != nil {
			return err
		}
		return txn.Delete(ticketIDKey(ticket.ID))
	})
	if err != nil {
		return false, fmt.Errorf("delete ticket %s: %w", id, err)
	}
	if found {
		ticketCommits.WithLabelValues("deleted").Inc()
	}
	return found, nil
}

// All returns the tickets in booking order.
func (b *TicketBook) All() ([]Ticket, error) {
	return b.scan(func(Ticket) bool { return true })
}

// FindByName matches a case-insensitive substring of the passenger name.
func (b *TicketBook) FindByName(name string) ([]Ticket, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	return b.scan(func(t Ticket) bool {
		return strings.Contains(strings.ToLower(t.Name), needle)
	})
}

func (b *TicketBook) scan(match func(Ticket) bool) ([]Ticket, error) {
	var tickets []Ticket
	prefix := b.prefix()
	err := b.store.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var t Ticket
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &t)
			})
			if err != nil {
				return err
			}
			if match(t) {
				tickets = append(tickets, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan tickets: %w", err)
	}
	return tickets, nil
}
