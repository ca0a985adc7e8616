package main

import "fmt"

const (
	msgWelcome = "Welcome to the Railway Ticket Reservation System. This system is fully controlled by your voice. " +
		"Say 'Book a ticket', 'Modify', 'Cancel', or 'Show all'."
	msgListening = "Listening for your command. Say 'Book a ticket', 'Modify' or 'Cancel' and then a name or ID, " +
		"'Show all', 'Lookup id', or 'Search' to find tickets by passenger name. " +
		"You can also say 'Help' for a list of all commands."
	msgHelp = "Here are the available commands: Say 'Book a ticket' to create a new booking. " +
		"Say 'Modify' and then a name or ID to change an existing ticket. " +
		"Say 'Cancel' and then a name or ID to remove a booking. " +
		"Say 'Show all' to see all your bookings. " +
		"Say 'Lookup id' and then your ticket number to look up a specific ticket. " +
		"Say 'Search' and then a name to find tickets by passenger name. " +
		"Say 'Main menu' during any step to stop what you are doing."
	msgNotUnderstood = "Sorry, I didn't understand that command. Please try again."
	msgEscape        = "Stopped. Nothing was changed. Returning to main menu. Say a new command."
	msgStoreTrouble  = "Sorry, something went wrong while reaching your tickets. Returning to main menu. Please try again."

	// book
	msgBookStart      = "Starting new ticket booking process. Please tell me your name."
	msgNoName         = "I couldn't hear your name. Please say your full name."
	msgInvalidAge     = "I couldn't understand your age. Please say a number between 1 and 120 clearly."
	msgNoAge          = "I couldn't hear your age. Please say your age as a number."
	msgNoGender       = "I couldn't hear your gender. Please say Male, Female, or Other."
	msgNoSource       = "I couldn't hear your source station. Please say the name of your departure station."
	msgNoDestination  = "I couldn't hear your destination station. Please say the name of your arrival station."
	msgSameStations   = "Source and destination cannot be the same. Please choose a different station."
	msgAskDate        = "Please say your travel date in the format month day, for example 'March 30', or say 'tomorrow'. Say 'skip' to leave it open."
	msgInvalidDate    = "Invalid date. Please provide a valid date, for example 'March 30'."
	msgUnparsedDate   = "I couldn't understand the date. Please say a date like 'March 30' or 'tomorrow'."
	msgNoDate         = "I couldn't hear your travel date. Please say a date like 'March 30' or 'tomorrow'."
	msgBookConfirmAsk = "Please say 'Confirm' to book the ticket or 'Cancel' to abort."
	msgNoBookConfirm  = "I couldn't hear your response. Please say 'Confirm' to book the ticket or 'Cancel' to abort."
	msgBookAborted    = "Booking cancelled. Returning to main menu."

	// modify
	msgNoTicketsToModify = "You don't have any tickets to modify. Say 'Book a ticket' to create a new booking."
	msgModifyStart       = "You have the following tickets. You can say the ID number or passenger name of the ticket you want to modify."
	msgNoModifySelection = "I couldn't hear your command. Please say the ID or passenger name of the ticket you want to modify."
	msgFieldChoice       = "What would you like to modify? Say name, age, gender, source, or destination."
	msgFieldRetry        = "Please specify what you want to modify: name, age, gender, source, or destination. Or say 'Confirm' to save changes or 'Cancel' to abort."
	msgNoField           = "I couldn't hear your command. Please specify what you want to modify: name, age, gender, source, or destination."
	msgMoreChanges       = "What else would you like to modify? Or say 'Confirm' to save changes."
	msgNoFieldValue      = "I couldn't hear your input. Please say the new %s."
	msgModified          = "Ticket updated successfully. Returning to main menu."
	msgModifyFailed      = "Error updating ticket: it no longer exists. Returning to main menu."
	msgModifyAborted     = "Modification cancelled. Returning to main menu."

	// cancel
	msgNoTicketsToCancel  = "You don't have any tickets to cancel. Say 'Book a ticket' to create a new booking."
	msgCancelStart        = "You have the following tickets. Please say the ID number or passenger name of the ticket you want to cancel."
	msgNoCancelSelection  = "I couldn't hear your command. Please say the ID or passenger name of the ticket you want to cancel."
	msgCancelConfirmAsk   = "Please say 'Confirm' to cancel the ticket or 'No' to keep it."
	msgNoCancelConfirm    = "I couldn't hear your command. Please say 'Confirm' to cancel the ticket or 'No' to keep it."
	msgCancelled          = "Ticket cancelled successfully. Returning to main menu."
	msgCancelFailed       = "Error cancelling ticket: it no longer exists. Returning to main menu."
	msgCancelAborted      = "Cancellation aborted. Ticket is kept. Returning to main menu."
	msgNoMatchNameOrID    = "No tickets found matching that name or ID. Please try again with a different name or ticket ID."
	msgChooseByID         = "Found %d tickets for '%s'. Please choose one by saying the ticket ID:"
	msgTicketIDNotFound   = "No ticket found with ID %s. Please try again."
	msgSelectedForModify  = "Found ticket for %s, from %s to %s. " + msgFieldChoice
	msgSelectedForCancel  = "Found ticket for %s, from %s to %s. Say 'Confirm' to cancel this ticket or 'No' to keep it."

	// view
	msgViewStart        = "How would you like to view your tickets? Say 'All tickets' to see all, say a name to search by passenger, or say a ticket ID to see a specific ticket."
	msgNoViewOption     = "I couldn't hear your input. Please say a ticket ID, name, or 'All tickets' to see all bookings."
	msgAskName          = "Please say the passenger name to search for."
	msgNoAskName        = "I couldn't hear your input. Please say a name to search for."
	msgAskID            = "Please say the ticket ID you want to look up."
	msgNoAskID          = "I couldn't hear your input. Please say the ticket ID clearly."
	msgNoIDRecognized   = "I couldn't recognize a ticket ID in what you said. Ticket IDs consist of 8 letters and numbers. Please try again or say 'main menu' to return."
	msgIDNotFoundOrMenu = "No ticket found with ID %s. Please try again or say 'main menu' to return."
	msgNoTickets        = "You don't have any tickets. Say 'Book a ticket' to create a new booking."
	msgEndOfList        = "End of ticket list. Say a new command to continue."
	msgNoNameMatches    = "No tickets found for name containing '%s'. Say 'Book a ticket' to create a new booking."
	msgDownloadHint     = "You can download your ticket. Say 'download ticket' to get it, or 'main menu' to return."
	msgViewOptions      = "Say 'download ticket' to download or 'main menu' to return."
	msgNoViewNext       = "I couldn't hear your command. " + msgViewOptions
	msgDownloadUnknown  = "I don't know which ticket to download. Please view a ticket first by saying a ticket ID."
	msgDownloadMissing  = "Sorry, I couldn't find a ticket with ID %s. Please try again with a valid ticket ID."
	msgDownloadReady    = "Your ticket for %s traveling from %s to %s is ready for download as %s. Returning to main menu."
	msgDownloadFailed   = "Sorry, I couldn't prepare the ticket download. Returning to main menu."
	msgBackToMenu       = "Returning to main menu. Say a new command."
)

func msgStationRetry(examples string) string {
	return fmt.Sprintf("I couldn't match your station. Please try again. Some examples are: %s", examples)
}
