package sensor

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/banshee-data/skeletontrail/internal/skeleton"
)

// maxLineBytes bounds a single JSON-lines frame.
const maxLineBytes = 1 << 20

// Stream replays JSON-lines skeleton frames from a reader. One malformed
// line costs one frame; the stream carries on with the next line.
type Stream struct {
	device

	// FrameRate paces delivery; 0 delivers as fast as lines are read.
	FrameRate float64

	open      func() (io.ReadCloser, error)
	connected func() bool

	rmu    sync.Mutex
	reader io.ReadCloser
	frame  uint64
}

// NewStream replays frames from r. Closing the stream closes r when it
// implements io.Closer.
func NewStream(name string, r io.Reader, width, height int) *Stream {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}
	used := false
	return newStream(name, width, height, func() (io.ReadCloser, error) {
		if used {
			return nil, fmt.Errorf("%s: reader already consumed", name)
		}
		used = true
		return rc, nil
	}, func() bool { return !used })
}

// NewFileStream replays frames from the JSON-lines file at path.
func NewFileStream(path string, width, height int) *Stream {
	return newStream("file:"+path, width, height, func() (io.ReadCloser, error) {
		return os.Open(path)
	}, func() bool {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	})
}

func newStream(name string, width, height int, open func() (io.ReadCloser, error), connected func() bool) *Stream {
	return &Stream{
		device:    newDevice(name, width, height),
		open:      open,
		connected: connected,
	}
}

// Status implements Sensor.
func (s *Stream) Status() Status {
	if st := s.currentStatus(); st != StatusDisconnected {
		return st
	}
	if s.connected() {
		return StatusConnected
	}
	return StatusDisconnected
}

// Start implements Sensor.
func (s *Stream) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rc, err := s.open()
	if err != nil {
		return fmt.Errorf("open %s: %w", s.name, err)
	}
	if err := s.markStarted(); err != nil {
		rc.Close()
		return err
	}
	s.rmu.Lock()
	s.reader = rc
	s.frame = 0
	s.rmu.Unlock()
	return nil
}

// Stop implements Sensor. It closes the reader, unblocking Run.
func (s *Stream) Stop() error {
	if !s.markStopped() {
		return nil
	}
	return s.closeReader()
}

func (s *Stream) closeReader() error {
	s.rmu.Lock()
	defer s.rmu.Unlock()
	if s.reader == nil {
		return nil
	}
	err := s.reader.Close()
	s.reader = nil
	return err
}

// Run implements Sensor. It returns nil at the end of the input.
func (s *Stream) Run(ctx context.Context, h FrameHandler) error {
	done, err := s.running()
	if err != nil {
		return err
	}
	s.rmu.Lock()
	r := s.reader
	s.rmu.Unlock()
	if r == nil {
		return fmt.Errorf("%s: %w", s.name, ErrSensorStopped)
	}

	stopOnCancel := context.AfterFunc(ctx, func() { s.closeReader() })
	defer stopOnCancel()

	var tick <-chan time.Time
	if s.FrameRate > 0 {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / s.FrameRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	return s.readFrames(ctx, done, r, tick, h)
}

func (s *Stream) readFrames(ctx context.Context, done <-chan struct{}, r io.Reader, tick <-chan time.Time, h FrameHandler) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-done:
				return nil
			case <-tick:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		s.frame++
		f, err := skeleton.DecodeFrame(line)
		if err != nil {
			err = fmt.Errorf("%s frame %d: %w", s.name, s.frame, err)
			opsf("%v", err)
			h.HandleFrameError(err)
			continue
		}
		if f.Number == 0 {
			f.Number = s.frame
		}
		ApplyTrackingMode(f, s.trackingMode())
		tracef("%s frame %d", s.name, f.Number)
		h.HandleFrame(f)
	}

	err := scanner.Err()
	select {
	case <-done:
		return nil
	default:
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("read %s: %w", s.name, err)
	}
	return nil
}
