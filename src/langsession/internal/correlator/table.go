// Package correlator tracks in-flight requests by sequence number and completes each one exactly once.
package correlator

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/uber/langsession/src/langsession/internal/clock"
	"github.com/uber/langsession/src/langsession/internal/errors"
)

// DefaultTimeout is applied when a Table is created without a positive timeout.
const DefaultTimeout = 30 * time.Second

type result struct {
	body json.RawMessage
	err  error
}

type entry struct {
	command string
	created time.Time
	done    chan result
	timer   clock.Timer
}

// Table is the pending-request table of a single session.
type Table struct {
	mu      sync.Mutex
	seq     int
	pending map[int]*entry
	closed  error

	timeout time.Duration
	clock   clock.Clock
}

// Call is the caller's handle on one registered request.
type Call struct {
	Seq     int
	Command string
	Created time.Time

	done  <-chan result
	table *Table
}

// New creates an empty Table whose requests time out after timeout.
func New(timeout time.Duration, clk clock.Clock) *Table {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Table{
		pending: make(map[int]*entry),
		timeout: timeout,
		clock:   clk,
	}
}

// Register assigns the next sequence number to command and starts its timeout.
// Once the table has been closed by RejectAll, Register returns the closing error.
func (t *Table) Register(command string) (*Call, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed != nil {
		return nil, t.closed
	}

	t.seq++
	seq := t.seq
	e := &entry{
		command: command,
		created: t.clock.Now(),
		done:    make(chan result, 1),
	}
	e.timer = t.clock.AfterFunc(t.timeout, func() {
		t.complete(seq, nil, &errors.RequestTimeoutError{Command: command, Timeout: t.timeout})
	})
	t.pending[seq] = e

	return &Call{
		Seq:     seq,
		Command: command,
		Created: e.created,
		done:    e.done,
		table:   t,
	}, nil
}

// Assign consumes the next sequence number for a command the backend does not
// answer. Nothing is tracked for it.
func (t *Table) Assign() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed != nil {
		return 0, t.closed
	}
	t.seq++
	return t.seq, nil
}

// Resolve completes the request seq with a successful body.
// It returns false if seq is not pending.
func (t *Table) Resolve(seq int, body json.RawMessage) bool {
	return t.complete(seq, body, nil)
}

// Reject completes the request seq with err.
// It returns false if seq is not pending.
func (t *Table) Reject(seq int, err error) bool {
	return t.complete(seq, nil, err)
}

// Command returns the command of a pending request.
func (t *Table) Command(seq int) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.pending[seq]
	if !ok {
		return "", false
	}
	return e.command, true
}

// RejectAll completes every pending request with err and refuses further registrations.
// It returns the number of requests rejected; only the first call closes the table.
func (t *Table) RejectAll(err error) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed == nil {
		t.closed = err
	}
	n := 0
	for seq, e := range t.pending {
		delete(t.pending, seq)
		e.timer.Stop()
		e.done <- result{err: err}
		n++
	}
	return n
}

// Len returns the number of pending requests.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.pending)
}

// LastSeq returns the most recently assigned sequence number.
func (t *Table) LastSeq() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.seq
}

// complete removes seq and delivers its single result. Removal under the lock
// is the only transition out of pending, so later completions find nothing.
func (t *Table) complete(seq int, body json.RawMessage, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.pending[seq]
	if !ok {
		return false
	}
	delete(t.pending, seq)
	e.timer.Stop()
	e.done <- result{body: body, err: err}
	return true
}

// Wait blocks until the request completes or ctx is done.
// A cancelled context removes the request from the table.
func (c *Call) Wait(ctx context.Context) (json.RawMessage, error) {
	select {
	case r := <-c.done:
		return r.body, r.err
	case <-ctx.Done():
		if c.table.complete(c.Seq, nil, ctx.Err()) {
			return nil, ctx.Err()
		}
		// Completed concurrently; the result is already buffered.
		r := <-c.done
		return r.body, r.err
	}
}
