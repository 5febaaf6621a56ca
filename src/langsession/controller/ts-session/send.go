package tssession

import (
	"context"
	"encoding/json"
	stderr "errors"

	"github.com/uber/langsession/src/langsession/internal/correlator"
	"github.com/uber/langsession/src/langsession/internal/errors"
	"github.com/uber/langsession/src/langsession/internal/wire"
	"github.com/uber/langsession/src/langsession/model"
)

func (c *controller) Send(ctx context.Context, sessionID string, command string, args interface{}) (json.RawMessage, error) {
	s, err := c.liveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, s, command, args)
}

func (c *controller) send(ctx context.Context, s *model.Session, command string, args interface{}) (json.RawMessage, error) {
	c.stats.Counter(_counterRequests).Inc(1)
	sw := c.stats.Timer(_timerRequestLatency).Start()
	defer sw.Stop()

	call, err := c.write(s, command, args)
	if err != nil {
		return nil, err
	}

	body, err := call.Wait(ctx)
	if err != nil {
		var failed *errors.RequestFailedError
		switch {
		case errors.IsTimeout(err):
			c.stats.Counter(_counterRequestTimeouts).Inc(1)
			c.logger.Warnw("request timed out", "session", s.ID, "command", command, "seq", call.Seq)
		case stderr.As(err, &failed):
			c.stats.Counter(_counterRequestFailures).Inc(1)
		}
		return nil, err
	}
	return body, nil
}

// notify writes a command that the backend executes without answering, such as
// open or exit. It still consumes a sequence number.
func (c *controller) notify(s *model.Session, command string, args interface{}) error {
	s.WriteMu.Lock()
	defer s.WriteMu.Unlock()

	c.stats.Counter(_counterRequests).Inc(1)
	seq, err := s.Pending.Assign()
	if err != nil {
		return err
	}
	frame, err := wire.EncodeRequest(wire.Request{
		Seq:       seq,
		Command:   command,
		Arguments: args,
	})
	if err != nil {
		return err
	}
	if _, err := s.Process.Write(frame); err != nil {
		return &errors.ProcessFaultError{SessionID: s.ID, Err: err}
	}
	return nil
}

// write registers the request and writes it to stdin under the session's write
// lock, so requests reach the backend in sequence order.
func (c *controller) write(s *model.Session, command string, args interface{}) (*correlator.Call, error) {
	s.WriteMu.Lock()
	defer s.WriteMu.Unlock()

	call, err := s.Pending.Register(command)
	if err != nil {
		return nil, err
	}

	frame, err := wire.EncodeRequest(wire.Request{
		Seq:       call.Seq,
		Command:   command,
		Arguments: args,
	})
	if err != nil {
		s.Pending.Reject(call.Seq, err)
		return nil, err
	}

	if _, err := s.Process.Write(frame); err != nil {
		fault := &errors.ProcessFaultError{SessionID: s.ID, Err: err}
		s.Pending.Reject(call.Seq, fault)
		return nil, fault
	}
	return call, nil
}
