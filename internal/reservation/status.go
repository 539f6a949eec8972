package reservation

// StatusCode is the resolution state of a submitted reservation. Any code
// outside the known set reads as Failed.
type StatusCode int

const (
	Pending StatusCode = iota
	Success
	NeedsPayment
)

// Failed reports whether the code reads as a failure. There is no single
// failure value; every code outside the known set counts.
func (c StatusCode) Failed() bool {
	switch c {
	case Pending, Success, NeedsPayment:
		return false
	}
	return true
}

// Label returns the display name for the code.
func (c StatusCode) Label() string {
	switch c {
	case Pending:
		return "Pending"
	case Success:
		return "Success"
	case NeedsPayment:
		return "Need Payment"
	}
	return "Failed"
}

// Status is the server's view of how a reservation resolved. Msg carries
// the reason for non-success terminal states; CourtTime carries the
// court-to-time assignments on success.
type Status struct {
	Code      StatusCode
	Msg       string
	CourtTime map[string]string
}

// Terminal reports whether the status has left Pending. Terminal statuses
// never change again from the client's perspective.
func (s Status) Terminal() bool {
	return s.Code != Pending
}

// Record is a server-confirmed reservation: the request as submitted plus
// its resolution status under a stable server-assigned id.
type Record struct {
	Uid         int64
	Reservation Draft
	Status      Status
}

// Cancellable reports whether the record may still be cancelled.
// Only pending records can be.
func (r Record) Cancellable() bool {
	return r.Status.Code == Pending
}
