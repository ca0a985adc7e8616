package main

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Operation is the top-level dialog mode.
type Operation string

const (
	OpNone   Operation = ""
	OpBook   Operation = "book"
	OpModify Operation = "modify"
	OpCancel Operation = "cancel"
	OpView   Operation = "view"
)

// Step is the sub-state inside an operation.
type Step string

const (
	StepNone Step = ""

	// book
	StepName        Step = "name"
	StepAge         Step = "age"
	StepGender      Step = "gender"
	StepSource      Step = "source"
	StepDestination Step = "destination"
	StepTravelDate  Step = "travel_date"
	StepConfirm     Step = "confirm" // shared with cancel

	// modify, cancel
	StepSelectTicket      Step = "select_ticket"
	StepSelectField       Step = "select_field"
	StepUpdateName        Step = "update_name"
	StepUpdateAge         Step = "update_age"
	StepUpdateGender      Step = "update_gender"
	StepUpdateSource      Step = "update_source"
	StepUpdateDestination Step = "update_destination"

	// view
	StepDisplayOptions Step = "display_options"
	StepAskName        Step = "ask_name"
	StepAskID          Step = "ask_id"
	StepDownloadTicket Step = "download_ticket"
	StepViewOptions    Step = "view_options"
)

// operationSteps lists the steps each operation may be in.
var operationSteps = map[Operation][]Step{
	OpBook:   {StepName, StepAge, StepGender, StepSource, StepDestination, StepTravelDate, StepConfirm},
	OpModify: {StepSelectTicket, StepSelectField, StepUpdateName, StepUpdateAge, StepUpdateGender, StepUpdateSource, StepUpdateDestination},
	OpCancel: {StepSelectTicket, StepConfirm},
	OpView:   {StepDisplayOptions, StepAskName, StepAskID, StepDownloadTicket, StepViewOptions},
}

func stepBelongsTo(op Operation, step Step) bool {
	if op == OpNone {
		return step == StepNone
	}
	for _, s := range operationSteps[op] {
		if s == step {
			return true
		}
	}
	return false
}

// TicketFields holds the user-supplied part of a ticket. It doubles as the
// field buffer of an operation in progress.
type TicketFields struct {
	Name        string     `json:"name" validate:"required"`
	Age         int        `json:"age" validate:"min=1,max=120"`
	Gender      Gender     `json:"gender" validate:"oneof=Male Female Other"`
	Source      string     `json:"source" validate:"required"`
	Destination string     `json:"destination" validate:"required,nefield=Source"`
	TravelDate  *time.Time `json:"travel_date,omitempty"`
}

type Ticket struct {
	ID  string `json:"id" validate:"len=8,alphanum"`
	Seq uint64 `json:"seq"` // store order

	TicketFields

	BookingTime time.Time `json:"booking_time"`
}

// TicketUpdate carries the fields to change; nil means "leave as is".
type TicketUpdate struct {
	Name        *string
	Age         *int
	Gender      *Gender
	Source      *string
	Destination *string
	TravelDate  *time.Time
}

// Session is the dialog state of one chat. invariant: Operation == OpNone
// iff Step == StepNone, otherwise Step belongs to Operation.
type Session struct {
	Operation        Operation    `json:"operation"`
	Step             Step         `json:"step"`
	Fields           TicketFields `json:"fields"`
	SelectedTicketID string       `json:"selected_ticket_id,omitempty"`
	LastViewedID     string       `json:"last_viewed_id,omitempty"`
	PendingNotice    string       `json:"pending_notice,omitempty"`
	Greeted          bool         `json:"greeted"`
}

// Document is a downloadable ticket artifact.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Reply is everything emitted to the user for one turn.
type Reply struct {
	Text     string
	Document *Document
}
