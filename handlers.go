package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Dialog runs the voice conversation. One call to HandleTurn consumes one
// utterance, updates the session and emits exactly one reply.
type Dialog struct {
	store    *Store
	catalog  []string
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	locks [chatLockStripes]sync.Mutex // a chat always maps to the same stripe
}

const chatLockStripes = 64

func NewDialog(store *Store, catalog []string, notifier Notifier, logger *slog.Logger) *Dialog {
	return &Dialog{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// turn is the working state of a single HandleTurn call.
type turn struct {
	chatID  int64
	raw     string // as heard
	text    string // normalized
	session *Session
	tickets *TicketBook
	lines   []string
	doc     *Document
}

func (t *turn) say(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// add appends lines that are already formatted.
func (t *turn) add(lines ...string) {
	t.lines = append(t.lines, lines...)
}

func (t *turn) moveTo(op Operation, step Step) {
	t.session.Operation = op
	t.session.Step = step
}

// reset ends the current operation and drops everything it buffered.
func (t *turn) reset() {
	t.session.Operation = OpNone
	t.session.Step = StepNone
	t.session.Fields = TicketFields{}
	t.session.SelectedTicketID = ""
}

// lock returns the mutex serializing turns of a chat. Chats sharing a stripe
// also wait on each other.
func (d *Dialog) lock(chatID int64) *sync.Mutex {
	return &d.locks[uint64(chatID)%chatLockStripes]
}

func (d *Dialog) loadSession(chatID int64) (Session, error) {
	hasSession, err := d.store.hasSession(chatID)
	if err != nil {
		return Session{}, err
	}
	if !hasSession {
		return Session{}, nil
	}
	return d.store.getSession(chatID)
}

// ResetSession forgets the dialog state of a chat. Tickets stay.
func (d *Dialog) ResetSession(chatID int64) error {
	mu := d.lock(chatID)
	mu.Lock()
	defer mu.Unlock()
	return d.store.deleteSession(chatID)
}

// HandleTurn processes one utterance. An empty utterance means nothing was
// heard: the current prompt is repeated and the state is left alone.
func (d *Dialog) HandleTurn(ctx context.Context, chatID int64, utterance string) Reply {
	mu := d.lock(chatID)
	mu.Lock()
	defer mu.Unlock()

	reply := d.process(chatID, utterance)
	if err := d.notifier.Notify(ctx, chatID, reply); err != nil {
		notifyErrors.Inc()
		d.logger.Warn("Error: could not deliver reply", "chat", chatID, "err", err)
	}
	return reply
}

func (d *Dialog) process(chatID int64, utterance string) Reply {
	session, err := d.loadSession(chatID)
	if err != nil {
		d.logger.Error("Error: could not get session", "chat", chatID, "err", err)
		return Reply{Text: msgStoreTrouble}
	}

	t := &turn{
		chatID:  chatID,
		raw:     strings.TrimSpace(utterance),
		text:    normalize(utterance),
		session: &session,
		tickets: d.store.Tickets(chatID),
	}

	if !session.Greeted {
		t.say(msgWelcome)
		session.Greeted = true
	}
	if session.PendingNotice != "" {
		t.add(session.PendingNotice)
		session.PendingNotice = ""
	}

	op, step := session.Operation, session.Step
	outcome := outcomeAdvanced

	switch {
	case t.text == "":
		outcome = outcomeNoInput
		d.reprompt(t)
	case session.Operation != OpNone && isEscape(t.text):
		t.reset()
		t.say(msgEscape)
	default:
		d.dispatch(t)
	}

	if !stepBelongsTo(session.Operation, session.Step) {
		d.logger.Error("Error: step does not belong to operation, resetting",
			"chat", chatID, "operation", session.Operation, "step", session.Step)
		t.reset()
		t.say(msgBackToMenu)
	}
	if outcome != outcomeNoInput && op == session.Operation && step == session.Step {
		outcome = outcomeHeld
	}
	turnsTotal.WithLabelValues(operationLabel(op), outcome).Inc()

	if err := d.store.saveSession(chatID, session); err != nil {
		d.logger.Error("Error: could not save session", "chat", chatID, "err", err)
	}

	return Reply{Text: strings.Join(t.lines, "\n"), Document: t.doc}
}

func (d *Dialog) dispatch(t *turn) {
	switch t.session.Operation {
	case OpNone:
		d.handleMenu(t)
	case OpBook:
		d.handleBook(t)
	case OpModify:
		d.handleModify(t)
	case OpCancel:
		d.handleCancel(t)
	case OpView:
		d.handleView(t)
	default:
		d.logger.Error("Error: unknown operation state", "operation", t.session.Operation)
		t.reset()
		t.say(msgBackToMenu)
	}
}

// storeFailure reports a store I/O error and returns to the main menu.
func (d *Dialog) storeFailure(t *turn, err error) {
	d.logger.Error("Error: ticket store", "chat", t.chatID, "operation", t.session.Operation, "step", t.session.Step, "err", err)
	t.reset()
	t.say(msgStoreTrouble)
}

// ---- main menu ----

type menuRule struct {
	name  string
	match func(text string) bool
	apply func(d *Dialog, t *turn)
}

// menuRules are tried top to bottom; the first match wins.
var menuRules = []menuRule{
	{
		name:  "book",
		match: func(s string) bool { return containsAny(s, "book", "new", "ticket") },
		apply: func(d *Dialog, t *turn) {
			t.moveTo(OpBook, StepName)
			t.say(msgBookStart)
		},
	},
	{
		name:  "modify",
		match: func(s string) bool { return containsAny(s, "modify", "edit", "change") },
		apply: func(d *Dialog, t *turn) {
			d.startSelection(t, OpModify, msgModifyStart, msgNoTicketsToModify)
		},
	},
	{
		name:  "cancel",
		match: func(s string) bool { return containsAny(s, "cancel", "delete", "remove") },
		apply: func(d *Dialog, t *turn) {
			d.startSelection(t, OpCancel, msgCancelStart, msgNoTicketsToCancel)
		},
	},
	{
		name:  "view",
		match: func(s string) bool { return containsAny(s, "view", "show", "list", "all") },
		apply: func(d *Dialog, t *turn) {
			t.moveTo(OpView, StepDisplayOptions)
			t.say(msgViewStart)
		},
	},
	{
		name:  "view by name",
		match: func(s string) bool { return containsAny(s, "find", "search", "my tickets", "my name") },
		apply: func(d *Dialog, t *turn) {
			t.moveTo(OpView, StepAskName)
			t.say(msgAskName)
		},
	},
	{
		name:  "view by id",
		match: func(s string) bool { return containsAny(s, "ticket id", "find id", "search id", "lookup id", "ticket number") },
		apply: func(d *Dialog, t *turn) {
			t.moveTo(OpView, StepAskID)
			t.say(msgAskID)
		},
	},
	{
		name:  "help",
		match: func(s string) bool { return strings.Contains(s, "help") },
		apply: func(d *Dialog, t *turn) { t.say(msgHelp) },
	},
}

func (d *Dialog) handleMenu(t *turn) {
	for _, rule := range menuRules {
		if rule.match(t.text) {
			d.logger.Debug("menu command", "chat", t.chatID, "rule", rule.name)
			rule.apply(d, t)
			return
		}
	}
	t.say(msgNotUnderstood)
}

// startSelection enters Modify or Cancel by reading out the tickets, or stays
// in the main menu when there is nothing to act on.
func (d *Dialog) startSelection(t *turn, op Operation, intro, empty string) {
	tickets, err := t.tickets.All()
	if err != nil {
		d.storeFailure(t, err)
		return
	}
	if len(tickets) == 0 {
		t.add(empty)
		return
	}
	t.moveTo(op, StepSelectTicket)
	t.add(intro)
	for i, ticket := range tickets {
		t.say("Ticket %d, ID %s, %s, from %s to %s", i+1, ticket.ID, ticket.Name, ticket.Source, ticket.Destination)
	}
}

// ---- repeat prompts ----

func (d *Dialog) reprompt(t *turn) {
	s := t.session
	switch s.Step {
	case StepNone:
		t.say(msgListening)
	case StepName:
		t.say(msgNoName)
	case StepAge:
		t.say(msgNoAge)
	case StepGender:
		t.say(msgNoGender)
	case StepSource:
		t.say(msgNoSource)
	case StepDestination:
		t.say(msgNoDestination)
	case StepTravelDate:
		t.say(msgNoDate)
	case StepConfirm:
		if s.Operation == OpCancel {
			t.say(msgNoCancelConfirm)
		} else {
			t.say(msgNoBookConfirm)
		}
	case StepSelectTicket:
		if s.Operation == OpCancel {
			t.say(msgNoCancelSelection)
		} else {
			t.say(msgNoModifySelection)
		}
	case StepSelectField:
		t.say(msgNoField)
	case StepUpdateName:
		t.say(msgNoFieldValue, "name")
	case StepUpdateAge:
		t.say(msgNoFieldValue, "age")
	case StepUpdateGender:
		t.say(msgNoFieldValue, "gender")
	case StepUpdateSource:
		t.say(msgNoFieldValue, "source station")
	case StepUpdateDestination:
		t.say(msgNoFieldValue, "destination station")
	case StepDisplayOptions:
		t.say(msgNoViewOption)
	case StepAskName:
		t.say(msgNoAskName)
	case StepAskID:
		t.say(msgNoAskID)
	case StepViewOptions, StepDownloadTicket:
		t.say(msgNoViewNext)
	}
}

// ---- booking ----

func (d *Dialog) handleBook(t *turn) {
	f := &t.session.Fields
	switch t.session.Step {
	case StepName:
		f.Name = t.raw
		t.say("Name recorded as %s. Now, please say your age.", f.Name)
		t.session.Step = StepAge

	case StepAge:
		age, err := ParseAge(t.text)
		if err != nil {
			t.say(msgInvalidAge)
			return
		}
		f.Age = age
		t.say("Age recorded as %d. Now, please say your gender: Male, Female, or Other.", age)
		t.session.Step = StepGender

	case StepGender:
		f.Gender = ParseGender(t.text)
		t.say("Gender recorded as %s. Now, please say your source station. Available stations include: %s.",
			f.Gender, stationExamples(d.catalog, 10, ""))
		t.session.Step = StepSource

	case StepSource:
		station, ok := d.takeStation(t, "")
		if !ok {
			return
		}
		f.Source = station
		t.say("Source station recorded as %s. Now, please say your destination station.", station)
		t.session.Step = StepDestination

	case StepDestination:
		station, ok := d.takeStation(t, f.Source)
		if !ok {
			return
		}
		f.Destination = station
		t.say("Destination recorded as %s. %s", station, msgAskDate)
		t.session.Step = StepTravelDate

	case StepTravelDate:
		if strings.Contains(t.text, "skip") {
			f.TravelDate = nil
			t.say("No travel date recorded.")
		} else {
			date, err := ParseDate(t.text, d.now())
			switch {
			case errors.Is(err, ErrInvalidDate):
				t.say(msgInvalidDate)
				return
			case err != nil:
				t.say(msgUnparsedDate)
				return
			}
			f.TravelDate = &date
			t.say("Travel date recorded as %s.", longDate(date))
		}
		t.say("Please confirm: You want to book a ticket for %s, age %d, gender %s, from %s to %s%s. Say 'Confirm' to book this ticket or 'Cancel' to abort.",
			f.Name, f.Age, f.Gender, f.Source, f.Destination, travelPhrase(f.TravelDate))
		t.session.Step = StepConfirm

	case StepConfirm:
		switch {
		case containsAny(t.text, "confirm", "yes"):
			d.commitBooking(t)
		case containsAny(t.text, "cancel", "no"):
			t.reset()
			t.say(msgBookAborted)
		default:
			t.say(msgBookConfirmAsk)
		}
	}
}

func (d *Dialog) commitBooking(t *turn) {
	ticket, err := t.tickets.Create(t.session.Fields, d.now())
	if err != nil {
		d.storeFailure(t, err)
		return
	}
	d.logger.Info("ticket booked", "chat", t.chatID, "id", ticket.ID)

	t.reset()
	t.session.LastViewedID = ticket.ID
	t.session.PendingNotice = fmt.Sprintf("Last update: ticket %s booked.", ticket.ID)
	t.say("Ticket booked successfully! Your ticket ID is %s. A copy of your ticket is attached for download. Returning to main menu.", ticket.ID)
	d.attachDocument(t, ticket)
}

func travelPhrase(date *time.Time) string {
	if date == nil {
		return ""
	}
	return ", on " + longDate(*date)
}

// takeStation resolves the utterance to a catalog station different from
// other. On failure it says why and reports false.
func (d *Dialog) takeStation(t *turn, other string) (string, bool) {
	station, ok := ResolveStation(t.raw, d.catalog)
	if !ok {
		t.add(msgStationRetry(stationExamples(d.catalog, 5, other)))
		return "", false
	}
	if other != "" && station == other {
		t.say(msgSameStations)
		return "", false
	}
	return station, true
}
