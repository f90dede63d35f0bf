package domain

// Stage is the top-level state of the checkout UI. Exactly one stage is
// active at a time.
type Stage string

const (
	StageLoading    Stage = "loading"
	StageCheckout   Stage = "checkout"
	StageProcessing Stage = "processing"
	StageSuccess    Stage = "success"
	StageError      Stage = "error"
)

// String representation (for logging)
func (s Stage) String() string {
	return string(s)
}

// ViewState is everything the presentation layer needs to render the
// checkout. It is derived state, owned and written only by the session.
type ViewState struct {
	Stage Stage
	// Receiver marks the variant of the processing/success screens that shows
	// remittance details while the backend waits for asynchronous confirmation.
	Receiver     bool
	ErrorMessage string
	Note         string
}
