package core

import (
	"errors"
	"io"

	"github.com/valyala/bytebufferpool"

	"httprule/internal/pkg/errs"
)

// ErrStreamClosed is returned by Write and Close on a closed stream.
var ErrStreamClosed = errors.New("stream is closed")

// Stream buffers a whole request descriptor and transforms it on Close.
// Each logical stream needs its own Stream.
type Stream struct {
	t      *Transformer
	w      io.Writer
	format string
	buf    *bytebufferpool.ByteBuffer
	closed bool
}

// NewStream returns a Stream that writes the transformed result to w.
func (t *Transformer) NewStream(w io.Writer, format string) *Stream {
	return &Stream{
		t:      t,
		w:      w,
		format: format,
		buf:    bytebufferpool.Get(),
	}
}

// Write accumulates p. It never fails on an open stream.
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}
	return s.buf.Write(p)
}

// Close runs the transform over the buffered input and emits one chunk.
// The buffer goes back to the pool whatever the outcome.
func (s *Stream) Close() error {
	if s.closed {
		return ErrStreamClosed
	}
	s.closed = true
	defer func() {
		bytebufferpool.Put(s.buf)
		s.buf = nil
	}()

	tc := NewTransformContext(s.t.log, ModeStream, s.t.resolveFormat(s.format))
	tc.SetMetadata("input_bytes", s.buf.Len())
	out, err := s.t.process(tc, s.buf.Bytes(), s.format)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(out); err != nil {
		return errs.WrapIO(err, "failed to write stream output")
	}
	return nil
}

// TransformStream copies r into a fresh Stream and closes it.
func (t *Transformer) TransformStream(r io.Reader, w io.Writer, format string) error {
	if _, err := t.Codec(format); err != nil {
		return err
	}
	s := t.NewStream(w, format)
	if _, err := io.Copy(s, r); err != nil {
		s.abort()
		return errs.WrapIO(err, "failed to read stream input")
	}
	return s.Close()
}

// abort closes the stream without transforming or writing anything.
func (s *Stream) abort() {
	if s.closed {
		return
	}
	s.closed = true
	bytebufferpool.Put(s.buf)
	s.buf = nil
}
