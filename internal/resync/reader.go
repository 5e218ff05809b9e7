// Package resync recovers a framed byte stream after a malformed or
// corrupted frame, the streaming counterpart to SPEC_FULL.md's Open
// Question (b): a live connection cannot treat a bad frame as fatal, it
// must discard the offending bytes and keep looking for the next one that
// decodes cleanly.
package resync

import (
	"io"
	"math/rand"
	"time"

	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/message"
	"github.com/netaudio/wirecodec/stack"
)

// Reader pulls complete frames out of src through s, skipping one byte at a
// time past anything the stack rejects outright (StatusProtocolError,
// StatusInvalidMsgId, StatusMsgAllocFailure) and pulling more bytes from src
// whenever the stack reports StatusNotEnoughData. A frame that is correctly
// framed but fails its validator (StatusInvalidMsgData) is not skipped: it
// is handed back to the caller along with that status, per spec §4.3's
// partial-failure recovery policy.
type Reader struct {
	src     io.Reader
	stack   *stack.Stack
	buf     []byte
	backoff BackoffConfig
	rng     *rand.Rand
	onSkip  func(n int)
}

// New wraps src, decoding frames through s.
func New(src io.Reader, s *stack.Stack) *Reader {
	return &Reader{src: src, stack: s, rng: rand.New(rand.NewSource(1))}
}

// WithBackoff paces the retry loop when the stream is slow to deliver the
// bytes a layer reported missing.
func (r *Reader) WithBackoff(cfg BackoffConfig) *Reader {
	r.backoff = cfg
	return r
}

// OnSkip installs a callback invoked with the number of bytes discarded
// each time resynchronization drops data (wired to
// observability.RecordResyncSkip by callers that want the metric).
func (r *Reader) OnSkip(fn func(n int)) *Reader {
	r.onSkip = fn
	return r
}

// Next decodes the next frame from the stream, transparently skipping
// corrupted bytes until the stack can make progress again. A message that
// fails validation (StatusInvalidMsgData) is still consumed and returned,
// not skipped; the caller decides what to do with it. It returns io.EOF
// once src is exhausted and no partial frame remains.
func (r *Reader) Next() (message.Message, field.Status, error) {
	attempt := 0
	for {
		msg, consumed, missing, status := r.stack.Decode(r.buf)
		switch status {
		case field.StatusSuccess, field.StatusInvalidMsgData:
			r.buf = append([]byte(nil), r.buf[consumed:]...)
			return msg, status, nil
		case field.StatusNotEnoughData:
			attempt++
			if d := NextBackoffDelay(r.backoff, attempt, r.rng); d > 0 {
				time.Sleep(d)
			}
			if err := r.fill(missing); err != nil {
				return nil, status, err
			}
		default:
			attempt = 0
			n := r.skipOne()
			if n == 0 {
				if err := r.fill(1); err != nil {
					return nil, status, err
				}
				continue
			}
			if r.onSkip != nil {
				r.onSkip(n)
			}
		}
	}
}

func (r *Reader) fill(missing int) error {
	need := missing
	if need < 1 {
		need = 1
	}
	chunk := make([]byte, need)
	n, err := r.src.Read(chunk)
	if n > 0 {
		r.buf = append(r.buf, chunk[:n]...)
		return nil
	}
	if err != nil {
		return err
	}
	return io.ErrNoProgress
}

// skipOne discards the first byte of the pending buffer, the unit step of
// scanning forward for the next sync prefix.
func (r *Reader) skipOne() int {
	if len(r.buf) == 0 {
		return 0
	}
	r.buf = r.buf[1:]
	return 1
}
