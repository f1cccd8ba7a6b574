package chatclient

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

const streamBufferSize = 4096

// Stream is a streamed answer. It is owned by a single consumer, which
// either iterates with Next and Chunk or reads it as an io.Reader, not both.
//
// A stream that ends cleanly, or that the consumer closed, leaves Err nil. A
// stream cut short by a network failure or a cancelled context reports a
// *StreamError. Close may be called from any goroutine; everything else
// belongs to the consumer.
type Stream struct {
	ctx    context.Context
	cancel context.CancelFunc
	body   io.ReadCloser
	log    *zap.Logger

	buf      []byte
	chunk    []byte
	rest     []byte
	pending  error
	received int64
	err      error
	done     bool

	closed      atomic.Bool
	releaseOnce sync.Once
	releaseErr  error
}

func newStream(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser, log *zap.Logger) *Stream {
	return &Stream{
		ctx:    ctx,
		cancel: cancel,
		body:   body,
		log:    log,
		buf:    make([]byte, streamBufferSize),
	}
}

// Next advances to the next chunk. It returns false at the end of the
// stream or on failure; check Err afterwards.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	if s.closed.Load() {
		s.finish(nil)
		return false
	}
	for {
		if s.pending != nil {
			s.finish(s.pending)
			return false
		}
		n, err := s.body.Read(s.buf)
		s.pending = err
		if n > 0 {
			s.chunk = s.buf[:n]
			s.received += int64(n)
			return true
		}
	}
}

// Chunk returns the bytes read by the last call to Next. They are valid
// until the next call to Next.
func (s *Stream) Chunk() []byte { return s.chunk }

// Err returns the failure that ended the stream, or nil.
func (s *Stream) Err() error { return s.err }

// Received returns the number of bytes delivered so far.
func (s *Stream) Received() int64 { return s.received }

// Read implements io.Reader. It returns io.EOF on a clean end and the
// *StreamError otherwise.
func (s *Stream) Read(p []byte) (int, error) {
	for len(s.rest) == 0 {
		if !s.Next() {
			if s.err != nil {
				return 0, s.err
			}
			return 0, io.EOF
		}
		s.rest = s.chunk
	}
	n := copy(p, s.rest)
	s.rest = s.rest[n:]
	return n, nil
}

// Close aborts the request if it is still running and releases the
// connection. It is safe to call more than once and from another goroutine;
// a Next blocked on the connection then returns false with Err nil.
func (s *Stream) Close() error {
	s.closed.Store(true)
	s.cancel()
	return s.release()
}

func (s *Stream) finish(err error) {
	s.done = true
	s.chunk = nil
	if s.closed.Load() {
		s.log.Debug("stream closed", zap.Int64("received", s.received))
	} else if err != nil && !errors.Is(err, io.EOF) {
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		s.err = &StreamError{Received: s.received, Err: err}
		s.log.Debug("stream failed", zap.Int64("received", s.received), zap.Error(err))
	} else {
		s.log.Debug("stream complete", zap.Int64("received", s.received))
	}
	s.release()
}

func (s *Stream) release() error {
	first := false
	s.releaseOnce.Do(func() {
		first = true
		s.cancel()
		s.releaseErr = s.body.Close()
	})
	if !first {
		return nil
	}
	return s.releaseErr
}
