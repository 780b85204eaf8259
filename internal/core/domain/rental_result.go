package domain

// RentalOutcome tags the result of a booking attempt.
type RentalOutcome int

const (
	// RentalOK: the booking committed; Rental is set.
	RentalOK RentalOutcome = iota
	// RentalRejected: a business rule turned the booking down; Message holds
	// the human-readable reason.
	RentalRejected
	// RentalFailed: an unexpected storage or internal failure; Err holds the
	// detail, Message a client-safe summary.
	RentalFailed
)

// RentalResult is the tagged outcome of RentalService.CreateRental. Handlers
// switch on Outcome; exactly one of Rental, Message, Err carries the payload
// for its case.
type RentalResult struct {
	Outcome RentalOutcome
	Rental  *Rental
	Message string
	Err     error
}

// RentalAccepted builds the success case.
func RentalAccepted(r *Rental) RentalResult {
	return RentalResult{Outcome: RentalOK, Rental: r, Message: "Rental created successfully!"}
}

// RentalRejectedWith builds a business-rule rejection with its reason.
func RentalRejectedWith(reason string) RentalResult {
	return RentalResult{Outcome: RentalRejected, Message: reason}
}

// RentalFailedWith builds the internal-failure case.
func RentalFailedWith(err error) RentalResult {
	return RentalResult{Outcome: RentalFailed, Message: "Failed to create rental.", Err: err}
}
