package wire

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/uber/langsession/src/langsession/internal/errors"
)

const (
	_headerName = "Content-Length:"

	// MaxPayload bounds the declared length of a length-prefixed payload.
	MaxPayload = 64 << 20
)

// Frame is the outcome of decoding one complete frame.
// Err is set, and Message is nil, when a length-prefixed payload is not valid JSON.
type Frame struct {
	Message Message
	Err     error
}

// Decoder reassembles frames from arbitrarily split chunks of a backend's output stream.
// A Decoder is owned by a single reader and is not safe for concurrent use.
type Decoder struct {
	buf []byte
}

// NewDecoder returns an empty Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends chunk to the buffer and returns every frame that is now complete, in stream order.
// Bytes of an incomplete frame stay buffered until a later Feed completes them.
func (d *Decoder) Feed(chunk []byte) []Frame {
	d.buf = append(d.buf, chunk...)

	var frames []Frame
	off := 0
	for off < len(d.buf) {
		rest := d.buf[off:]

		hdrLen, n, state := matchHeader(rest)
		if state == headerIncomplete {
			break
		}
		if state == headerOversized {
			// The declared payload is never buffered; drop the header and resync.
			off += hdrLen
			frames = append(frames, Frame{Err: &errors.ProtocolError{
				Payload: append([]byte(nil), rest[:hdrLen]...),
				Err:     fmt.Errorf("content length exceeds %d bytes", MaxPayload),
			}})
			continue
		}
		if state == headerComplete {
			if n > len(rest)-hdrLen {
				break
			}
			payload := rest[hdrLen : hdrLen+n]
			off += hdrLen + n
			msg, err := Parse(payload)
			if err != nil {
				frames = append(frames, Frame{Err: &errors.ProtocolError{
					Payload: append([]byte(nil), payload...),
					Err:     err,
				}})
				continue
			}
			frames = append(frames, Frame{Message: msg})
			continue
		}

		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			break
		}
		off += nl + 1
		line := bytes.TrimSpace(rest[:nl])
		if len(line) == 0 {
			continue
		}
		// Without framing, a bad line cannot be told apart from noise.
		msg, err := Parse(line)
		if err != nil {
			continue
		}
		frames = append(frames, Frame{Message: msg})
	}

	if off > 0 {
		d.buf = append(d.buf[:0:0], d.buf[off:]...)
	}
	return frames
}

// Buffered returns the number of bytes waiting for the rest of their frame.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

// Reset discards any buffered bytes.
func (d *Decoder) Reset() {
	d.buf = nil
}

type headerState int

const (
	headerAbsent headerState = iota
	headerIncomplete
	headerComplete
	headerOversized
)

// matchHeader matches `Content-Length: <N>\r?\n\r?\n` at the start of buf.
// headerIncomplete means buf is a proper prefix of such a header.
// headerOversized reports a complete header whose length is above MaxPayload.
func matchHeader(buf []byte) (hdrLen int, n int, state headerState) {
	name := []byte(_headerName)
	if len(buf) < len(name) {
		if bytes.HasPrefix(name, buf) {
			return 0, 0, headerIncomplete
		}
		return 0, 0, headerAbsent
	}
	if !bytes.HasPrefix(buf, name) {
		return 0, 0, headerAbsent
	}

	i := len(name)
	for i < len(buf) && buf[i] == ' ' {
		i++
	}
	digits := i
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}
	if i == len(buf) {
		return 0, 0, headerIncomplete
	}
	if i == digits {
		return 0, 0, headerAbsent
	}
	n, err := strconv.Atoi(string(buf[digits:i]))
	oversized := err != nil || n > MaxPayload

	for line := 0; line < 2; line++ {
		if i < len(buf) && buf[i] == '\r' {
			i++
		}
		if i == len(buf) {
			return 0, 0, headerIncomplete
		}
		if buf[i] != '\n' {
			return 0, 0, headerAbsent
		}
		i++
	}
	if oversized {
		return i, 0, headerOversized
	}
	return i, n, headerComplete
}
