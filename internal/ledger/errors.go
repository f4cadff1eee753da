package ledger

import "errors"

var (
	// ErrNotLoaded is returned when an operation runs before a successful Load.
	ErrNotLoaded = errors.New("ledger not loaded")

	// ErrUnknownStudent is returned when no row exists for the student id.
	ErrUnknownStudent = errors.New("unknown student")

	// ErrClassUnresolved is returned when a row's class could not be matched
	// to a classroom id. Payment mutations abort rather than proceed with an
	// undefined classId.
	ErrClassUnresolved = errors.New("student class not resolved to a classroom")

	// ErrNoSelection is returned when edit or delete runs without a selected
	// installment. The guard fires before any request is sent.
	ErrNoSelection = errors.New("no installment selected")

	// ErrMultipleSelected is returned when edit runs with more than one
	// installment selected.
	ErrMultipleSelected = errors.New("edit requires exactly one selected installment")

	// ErrUnknownPayment is returned when selecting an id that is not in the
	// session's payment list.
	ErrUnknownPayment = errors.New("payment not in session")

	// ErrStaleSession is returned when the dialog was closed while a request
	// was in flight; the response is discarded, never applied.
	ErrStaleSession = errors.New("session closed, result discarded")

	// ErrReportInFlight is returned when the same report download is already
	// running.
	ErrReportInFlight = errors.New("report download already in progress")
)
