package driver

import "time"

// Stage is the step a file is in.
type Stage string

const (
	StageLoad  Stage = "load"
	StageCache Stage = "cache"
	StageLex   Stage = "lex"
)

// Status tells whether a stage started, finished or failed.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusError covers both load failures and files with lexical errors.
	StatusError Status = "error"
)

// Event reports progress of one file, or of the whole run when File is
// empty. Tokens, Cached and Elapsed are set only on the final event of a
// file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Tokens  int
	Cached  bool
}

// Final reports whether no further events follow for the file.
func (e Event) Final() bool {
	return e.File != "" && (e.Status == StatusDone || e.Status == StatusError)
}

// ProgressSink receives events from several workers at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink sends every event to Ch. It blocks while Ch is full.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch != nil {
		s.Ch <- evt
	}
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
