package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"neuralfolio/logging"
)

// Status messages.
const (
	MsgSent       = "Message sent successfully!"
	MsgRejected   = "Could not send right now. Please try again."
	MsgFailed     = "Connection error. Check your internet and try again."
	MsgIncomplete = "Please fill in: "
)

const (
	// StatusTTL is how long a status message stays visible.
	StatusTTL = 1000 * time.Millisecond
	// CelebrateTTL is how long the success celebration lasts.
	CelebrateTTL = 2300 * time.Millisecond
)

// ErrIncomplete is returned by Submit when required fields are blank.
var ErrIncomplete = errors.New("required fields are blank")

// Outcome classifies a finished submission.
type Outcome int

const (
	Sent Outcome = iota
	Rejected
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Sent:
		return "sent"
	case Rejected:
		return "rejected"
	default:
		return "failed"
	}
}

// Classify maps a Submitter error to an outcome.
func Classify(err error) Outcome {
	if err == nil {
		return Sent
	}
	var se *StatusError
	if errors.As(err, &se) {
		return Rejected
	}
	return Failed
}

// Message returns the status text for an outcome.
func (o Outcome) Message() string {
	switch o {
	case Sent:
		return MsgSent
	case Rejected:
		return MsgRejected
	default:
		return MsgFailed
	}
}

type result struct {
	err error
}

// Handler drives a Form through asynchronous submissions. Apart from the
// request itself, every method must be called from the same goroutine.
type Handler struct {
	form      *Form
	submitter Submitter
	log       *logging.Logger

	results  chan result
	inFlight int

	status         string
	statusVisible  bool
	hasFeedback    bool
	feedback       bool
	feedbackShows  int
	clearAt        time.Time
	celebrateUntil time.Time
	lastOutcome    Outcome
}

// NewHandler creates a handler for form. A nil submitter makes every
// submission fail with a connection error.
func NewHandler(form *Form, submitter Submitter, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	return &Handler{
		form:      form,
		submitter: submitter,
		log:       log.With("contact"),
		results:   make(chan result, 8),
	}
}

// EnableFeedback attaches the optional feedback panel.
func (h *Handler) EnableFeedback() {
	h.hasFeedback = true
}

// Form returns the managed form.
func (h *Handler) Form() *Form {
	return h.form
}

// Submit starts a submission of the current field values. The request runs
// in its own goroutine; its outcome is applied by a later Poll.
func (h *Handler) Submit(ctx context.Context, now time.Time) error {
	if missing := h.form.Missing(); len(missing) > 0 {
		h.show(MsgIncomplete+strings.Join(missing, ", "), now)
		return ErrIncomplete
	}

	fields := h.form.Snapshot()
	h.inFlight++
	h.log.Debug("submitting %d fields", len(fields))

	go func() {
		var err error
		if h.submitter == nil {
			err = errors.New("no form endpoint configured")
		} else {
			err = h.submitter.Submit(ctx, fields)
		}
		h.results <- result{err: err}
	}()
	return nil
}

// Poll applies finished submissions and expires the status and
// celebration deadlines.
func (h *Handler) Poll(now time.Time) {
	for drained := false; !drained; {
		select {
		case r := <-h.results:
			h.inFlight--
			h.Complete(r.err, now)
		default:
			drained = true
		}
	}
	h.expire(now)
}

// Complete applies the outcome of one submission.
func (h *Handler) Complete(err error, now time.Time) {
	o := Classify(err)
	h.lastOutcome = o
	switch o {
	case Sent:
		h.log.Info("message sent")
		h.form.Reset()
		h.celebrateUntil = now.Add(CelebrateTTL)
	case Rejected:
		h.log.Warn("submission rejected: %v", err)
	default:
		h.log.Warn("submission failed: %v", err)
	}
	h.show(o.Message(), now)
}

// show displays text and replaces any pending clear deadline.
func (h *Handler) show(text string, now time.Time) {
	h.status = text
	h.statusVisible = true
	if h.hasFeedback {
		h.feedback = true
		h.feedbackShows++
	}
	h.clearAt = now.Add(StatusTTL)
}

func (h *Handler) expire(now time.Time) {
	if !h.clearAt.IsZero() && !now.Before(h.clearAt) {
		h.status = ""
		h.statusVisible = false
		h.feedback = false
		h.clearAt = time.Time{}
	}
	if !h.celebrateUntil.IsZero() && !now.Before(h.celebrateUntil) {
		h.celebrateUntil = time.Time{}
	}
}

// Status returns the current status text and whether it is visible.
func (h *Handler) Status() (string, bool) {
	return h.status, h.statusVisible
}

// Feedback reports whether the feedback panel is shown.
func (h *Handler) Feedback() bool {
	return h.feedback
}

// FeedbackShows counts how many times the feedback panel was (re)shown.
func (h *Handler) FeedbackShows() int {
	return h.feedbackShows
}

// Celebrating reports whether the success celebration is running.
func (h *Handler) Celebrating() bool {
	return !h.celebrateUntil.IsZero()
}

// LastOutcome returns the outcome of the most recent completed submission.
func (h *Handler) LastOutcome() Outcome {
	return h.lastOutcome
}

// InFlight returns the number of requests not yet applied.
func (h *Handler) InFlight() int {
	return h.inFlight
}
