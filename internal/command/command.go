// Package command defines the user intents produced by the tray menu and the
// FIFO queue that carries them to the application's dispatcher loop.
package command

// Command is an immutable user intent. Producers (the tray goroutine, the
// signal handler) post it; the dispatcher consumes each value exactly once.
type Command string

const (
	OpenSettings    Command = "open_settings"
	ToggleAutoStart Command = "toggle_auto_start"
	Exit            Command = "exit"
)

// Queue is a bounded FIFO command channel. Posting never blocks a producer:
// when the buffer is full the command is dropped, which can only happen if
// the dispatcher has already stopped draining during teardown.
type Queue struct {
	ch chan Command
}

// NewQueue creates a queue buffered for size commands.
func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Command, size)}
}

// Post enqueues cmd. Returns false if the queue was full and cmd was dropped.
func (q *Queue) Post(cmd Command) bool {
	select {
	case q.ch <- cmd:
		return true
	default:
		return false
	}
}

// C exposes the receive side for the single consuming loop.
func (q *Queue) C() <-chan Command {
	return q.ch
}
