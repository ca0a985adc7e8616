package main

import "fmt"

// selectTicket resolves an utterance to exactly one ticket. An id token
// anywhere in the utterance wins over a name search; an ambiguous name
// search lists the candidates and asks for an id. ok is false when the step
// has to be repeated.
func (d *Dialog) selectTicket(t *turn) (ticket Ticket, ok bool, err error) {
	if id, found := ExtractTicketID(t.raw); found {
		ticket, ok, err = t.tickets.FindByID(id)
		if err != nil {
			return Ticket{}, false, err
		}
		if !ok {
			t.say(msgTicketIDNotFound, id)
		}
		return ticket, ok, nil
	}

	matches, err := t.tickets.FindByName(t.raw)
	if err != nil {
		return Ticket{}, false, err
	}
	switch len(matches) {
	case 0:
		t.say(msgNoMatchNameOrID)
		return Ticket{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		t.say(msgChooseByID, len(matches), t.raw)
		t.add(listCandidates(matches)...)
		return Ticket{}, false, nil
	}
}

// ---- modify ----

func (d *Dialog) handleModify(t *turn) {
	s := t.session
	f := &s.Fields

	switch s.Step {
	case StepSelectTicket:
		ticket, ok, err := d.selectTicket(t)
		if err != nil {
			d.storeFailure(t, err)
			return
		}
		if !ok {
			return
		}
		s.SelectedTicketID = ticket.ID
		s.Fields = ticket.TicketFields
		t.say(msgSelectedForModify, ticket.Name, ticket.Source, ticket.Destination)
		s.Step = StepSelectField

	case StepSelectField:
		d.chooseField(t)

	case StepUpdateName:
		f.Name = t.raw
		t.say("Name updated to %s. %s", f.Name, msgMoreChanges)
		s.Step = StepSelectField

	case StepUpdateAge:
		age, err := ParseAge(t.text)
		if err != nil {
			t.say(msgInvalidAge)
			return
		}
		f.Age = age
		t.say("Age updated to %d. %s", age, msgMoreChanges)
		s.Step = StepSelectField

	case StepUpdateGender:
		f.Gender = ParseGender(t.text)
		t.say("Gender updated to %s. %s", f.Gender, msgMoreChanges)
		s.Step = StepSelectField

	case StepUpdateSource:
		station, ok := d.takeStation(t, f.Destination)
		if !ok {
			return
		}
		f.Source = station
		t.say("Source station updated to %s. %s", station, msgMoreChanges)
		s.Step = StepSelectField

	case StepUpdateDestination:
		station, ok := d.takeStation(t, f.Source)
		if !ok {
			return
		}
		f.Destination = station
		t.say("Destination station updated to %s. %s", station, msgMoreChanges)
		s.Step = StepSelectField
	}
}

func (d *Dialog) chooseField(t *turn) {
	s := t.session
	f := s.Fields

	switch {
	case containsAny(t.text, "name"):
		t.say("Current name is %s. Please say the new name.", f.Name)
		s.Step = StepUpdateName
	case containsAny(t.text, "age"):
		t.say("Current age is %d. Please say the new age.", f.Age)
		s.Step = StepUpdateAge
	case containsAny(t.text, "gender"):
		t.say("Current gender is %s. Please say the new gender.", f.Gender)
		s.Step = StepUpdateGender
	case containsAny(t.text, "source"):
		t.say("Current source station is %s. Please say the new source station.", f.Source)
		s.Step = StepUpdateSource
	case containsAny(t.text, "destination"):
		t.say("Current destination station is %s. Please say the new destination station.", f.Destination)
		s.Step = StepUpdateDestination
	case containsAny(t.text, "confirm", "update", "save"):
		d.commitModify(t)
	case containsAny(t.text, "cancel", "abort"):
		t.reset()
		t.say(msgModifyAborted)
	default:
		t.say(msgFieldRetry)
	}
}

func (d *Dialog) commitModify(t *turn) {
	s := t.session
	f := s.Fields
	update := TicketUpdate{
		Name:        strPtr(f.Name),
		Age:         intPtr(f.Age),
		Gender:      genderPtr(f.Gender),
		Source:      strPtr(f.Source),
		Destination: strPtr(f.Destination),
	}

	id := s.SelectedTicketID
	_, found, err := t.tickets.Update(id, update)
	if err != nil {
		d.storeFailure(t, err)
		return
	}
	t.reset()
	if !found {
		d.logger.Warn("ticket vanished before update", "chat", t.chatID, "id", id)
		t.say(msgModifyFailed)
		return
	}
	d.logger.Info("ticket updated", "chat", t.chatID, "id", id)
	s.PendingNotice = fmt.Sprintf("Last update: ticket %s updated.", id)
	t.say(msgModified)
}

// ---- cancel ----

func (d *Dialog) handleCancel(t *turn) {
	s := t.session

	switch s.Step {
	case StepSelectTicket:
		ticket, ok, err := d.selectTicket(t)
		if err != nil {
			d.storeFailure(t, err)
			return
		}
		if !ok {
			return
		}
		s.SelectedTicketID = ticket.ID
		t.say(msgSelectedForCancel, ticket.Name, ticket.Source, ticket.Destination)
		s.Step = StepConfirm

	case StepConfirm:
		switch {
		case containsAny(t.text, "don't", "dont", "keep"):
			t.reset()
			t.say(msgCancelAborted)
		case containsAny(t.text, "confirm", "yes", "delete"):
			d.commitCancel(t)
		case containsAny(t.text, "no"):
			t.reset()
			t.say(msgCancelAborted)
		default:
			t.say(msgCancelConfirmAsk)
		}
	}
}

func (d *Dialog) commitCancel(t *turn) {
	s := t.session
	id := s.SelectedTicketID
	deleted, err := t.tickets.Delete(id)
	if err != nil {
		d.storeFailure(t, err)
		return
	}
	t.reset()
	if !deleted {
		d.logger.Warn("ticket vanished before cancel", "chat", t.chatID, "id", id)
		t.say(msgCancelFailed)
		return
	}
	if s.LastViewedID == id {
		s.LastViewedID = ""
	}
	d.logger.Info("ticket cancelled", "chat", t.chatID, "id", id)
	s.PendingNotice = fmt.Sprintf("Last update: ticket %s cancelled.", id)
	t.say(msgCancelled)
}
