// Package backend resolves, spawns and supervises analysis server processes.
package backend

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

const _readChunkSize = 32 * 1024

// Process is a running backend. Output chunks, the exit code and runtime
// faults are delivered on separate channels.
type Process interface {
	// PID returns the operating system process id.
	PID() int
	// Write writes raw bytes to the process stdin.
	Write(p []byte) (int, error)
	// Output delivers stdout chunks in order. It is closed once stdout reaches EOF,
	// before the exit code is delivered.
	Output() <-chan []byte
	// Exited delivers the exit code once. Termination by signal reports -1.
	Exited() <-chan int
	// Errors delivers runtime faults such as failed reads.
	Errors() <-chan error
	// Done is closed after the exit code has been delivered.
	Done() <-chan struct{}
	// Kill forcibly terminates the process.
	Kill() error
}

type process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.Reader

	output chan []byte
	exited chan int
	errs   chan error
	done   chan struct{}

	writeMu sync.Mutex
}

func newProcess(cmd *exec.Cmd, stdin io.WriteCloser, stdout io.Reader) *process {
	p := &process{
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdout,
		output: make(chan []byte),
		exited: make(chan int, 1),
		errs:   make(chan error, 4),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *process) PID() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

func (p *process) Write(b []byte) (int, error) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	n, err := p.stdin.Write(b)
	if err != nil {
		return n, fmt.Errorf("writing to backend stdin: %w", err)
	}
	return n, nil
}

func (p *process) Output() <-chan []byte { return p.output }
func (p *process) Exited() <-chan int    { return p.exited }
func (p *process) Errors() <-chan error  { return p.errs }
func (p *process) Done() <-chan struct{} { return p.done }

func (p *process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func (p *process) run() {
	defer close(p.done)

	buf := make([]byte, _readChunkSize)
	for {
		n, err := p.stdout.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			p.output <- chunk
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				p.fault(fmt.Errorf("reading backend stdout: %w", err))
			}
			break
		}
	}
	close(p.output)

	// Wait must follow the final read from stdout.
	waitErr := p.cmd.Wait()
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		p.fault(fmt.Errorf("waiting for backend: %w", waitErr))
	}
	p.stdin.Close()

	code := -1
	if p.cmd.ProcessState != nil {
		code = p.cmd.ProcessState.ExitCode()
	}
	p.exited <- code
}

func (p *process) fault(err error) {
	select {
	case p.errs <- err:
	default:
	}
}
