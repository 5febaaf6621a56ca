package tssession

import (
	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/internal/errors"
	"github.com/uber/langsession/src/langsession/internal/wire"
	"github.com/uber/langsession/src/langsession/model"
	"go.uber.org/zap"
)

// readLoop is the single owner of the session's decoder. It returns once the
// backend's exit code has been handled, leaving the decode buffer empty.
func (c *controller) readLoop(s *model.Session) {
	defer close(s.LoopDone)
	defer s.Decoder.Reset()

	log := c.logger.With("session", s.ID)
	output := s.Process.Output()
	for {
		select {
		case chunk, ok := <-output:
			if !ok {
				// Stdout is closed; only the exit code is left to arrive.
				output = nil
				continue
			}
			for _, frame := range s.Decoder.Feed(chunk) {
				if frame.Err != nil {
					log.Warnw("dropping malformed frame", "error", frame.Err)
					c.stats.Counter(_counterProtocolErrors).Inc(1)
					continue
				}
				c.route(log, s, frame.Message)
			}

		case err := <-s.Process.Errors():
			c.handleFault(log, s, err)

		case code := <-s.Process.Exited():
			c.handleExit(log, s, code)
			return
		}
	}
}

// route dispatches one decoded message to its pending request or to subscribers.
func (c *controller) route(log *zap.SugaredLogger, s *model.Session, msg wire.Message) {
	switch m := msg.(type) {
	case *wire.Response:
		command, _ := s.Pending.Command(m.RequestSeq)
		var delivered bool
		if m.Success {
			delivered = s.Pending.Resolve(m.RequestSeq, m.Body)
		} else {
			delivered = s.Pending.Reject(m.RequestSeq, &errors.RequestFailedError{Command: command, Message: m.Message})
		}
		if !delivered {
			log.Debugw("dropping response without pending request", "request_seq", m.RequestSeq, "command", m.Command)
		}

	case *wire.Event:
		c.broker.publish(entity.SessionEvent{
			SessionID: s.ID,
			Topic:     entity.TopicEvent,
			Event:     m.Event,
			Body:      m.Body,
		})
		if m.Event == entity.EventSyntaxDiag || m.Event == entity.EventSemanticDiag {
			c.broker.publish(entity.SessionEvent{
				SessionID: s.ID,
				Topic:     entity.TopicDiagnostics,
				Event:     m.Event,
				Body:      m.Body,
			})
		}

	default:
		// Neither a response nor an event.
	}
}

func (c *controller) handleExit(log *zap.SugaredLogger, s *model.Session, code int) {
	s.MarkDead()
	n := s.Pending.RejectAll(&errors.ProcessExitedError{SessionID: s.ID, Code: code})
	c.stats.Counter(_counterProcessExits).Inc(1)
	log.Infow("backend exited", "code", code, "rejected", n)

	exitCode := code
	c.broker.publish(entity.SessionEvent{
		SessionID: s.ID,
		Topic:     entity.TopicExit,
		ExitCode:  &exitCode,
	})
}

// handleFault marks the session dead without touching pending requests; those
// are rejected when the process exits or time out.
func (c *controller) handleFault(log *zap.SugaredLogger, s *model.Session, err error) {
	s.MarkDead()
	fault := &errors.ProcessFaultError{SessionID: s.ID, Err: err}
	c.stats.Counter(_counterProcessErrors).Inc(1)
	log.Warnw("backend fault", "error", err)

	c.broker.publish(entity.SessionEvent{
		SessionID: s.ID,
		Topic:     entity.TopicError,
		Error:     fault.Error(),
	})
}
