package process

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kbukum/procout/logger"
)

// handle owns one started OS process and the read ends of its output pipes.
type handle struct {
	cmd     *exec.Cmd
	pidv    int
	group   bool
	pipes   []*os.File
	readers sync.WaitGroup
	reaped  atomic.Bool

	releaseOnce sync.Once
}

// readOptions controls how the stream readers turn reads into lines.
type readOptions struct {
	chunkSize int
	carry     bool
	deliver   func(Stream, string)
	log       *logger.Logger
}

// startHandle starts the process described by spec. When spec asks for
// redirection, stdout and stderr are connected to fresh pipes and one reader
// goroutine per stream feeds lines to opts.deliver. On error every resource
// acquired so far has been released.
func startHandle(spec *LaunchSpec, opts readOptions) (h *handle, err error) {
	cmd := newCommand(spec)
	cmd.Dir = spec.Dir
	cmd.Env = spec.environ()

	var readEnds, writeEnds []*os.File
	defer func() {
		// The parent never writes; its copies of the write ends must go so
		// the readers see EOF once the child exits.
		for _, f := range writeEnds {
			_ = f.Close()
		}
		if err != nil {
			for _, f := range readEnds {
				_ = f.Close()
			}
		}
	}()

	if spec.redirected() {
		for range 2 {
			r, w, perr := os.Pipe()
			if perr != nil {
				return nil, perr
			}
			readEnds = append(readEnds, r)
			writeEnds = append(writeEnds, w)
		}
		cmd.Stdout = writeEnds[0]
		cmd.Stderr = writeEnds[1]
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	h = &handle{cmd: cmd, pidv: cmd.Process.Pid, group: spec.Hidden, pipes: readEnds}
	if len(readEnds) == 2 {
		h.readers.Add(2)
		go h.read(Stdout, readEnds[0], opts)
		go h.read(Stderr, readEnds[1], opts)
	}
	return h, nil
}

// read delivers the lines of one stream until EOF. Each read is split on its
// own unless opts.carry is set. Read errors end the stream.
func (h *handle) read(stream Stream, r *os.File, opts readOptions) {
	defer h.readers.Done()

	emit := func(line string) { opts.deliver(stream, line) }
	var asm *lineAssembler
	if opts.carry {
		asm = &lineAssembler{}
	}

	buf := make([]byte, opts.chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			if asm != nil {
				asm.feed(chunk, emit)
			} else {
				for line := range SplitLines(chunk) {
					emit(line)
				}
			}
		}
		if err != nil {
			if asm != nil {
				asm.flush(emit)
			}
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				opts.log.Debug("stream read failed", logger.Fields(
					logger.FieldStream, stream.String(),
					logger.FieldError, err.Error(),
				))
			}
			return
		}
	}
}

// pid is fixed at start; Release resets cmd.Process.Pid.
func (h *handle) pid() int {
	return h.pidv
}

// wait reaps the process and then waits for the readers. If they are still
// busy after drainTimeout (a grandchild holding the pipe), the pipes are
// closed to stop them.
func (h *handle) wait(drainTimeout time.Duration) *os.ProcessState {
	_ = h.cmd.Wait()
	h.reaped.Store(true)

	drained := make(chan struct{})
	go func() {
		h.readers.Wait()
		close(drained)
	}()
	if drainTimeout < 0 {
		<-drained
	} else {
		select {
		case <-drained:
		case <-time.After(drainTimeout):
			h.closePipes()
			<-drained
		}
	}
	return h.cmd.ProcessState
}

func (h *handle) kill() error {
	return killProcess(h.cmd.Process, h.pidv, h.group)
}

func (h *handle) closePipes() {
	for _, f := range h.pipes {
		_ = f.Close()
	}
}

// release drops the pipes and the OS process handle. It runs once, after
// the process has been reaped, with the Output lock held so kill and
// priority calls never see a released process.
func (h *handle) release() {
	h.releaseOnce.Do(func() {
		h.closePipes()
		_ = h.cmd.Process.Release()
	})
}
