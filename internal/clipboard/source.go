package clipboard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

// Tick is one "the clipboard changed" notification.
type Tick = struct{}

// PollSource turns backend watches on the text and image formats into ticks.
type PollSource struct {
	b Backend
}

func NewPollSource(b Backend) *PollSource {
	return &PollSource{b: b}
}

// Ticks starts watching and returns the tick channel. It is closed when ctx is done.
func (p *PollSource) Ticks(ctx context.Context) <-chan Tick {
	text := p.b.Watch(ctx, clipboard.FmtText)
	img := p.b.Watch(ctx, clipboard.FmtImage)

	out := make(chan Tick)
	var wg sync.WaitGroup
	forward := func(in <-chan []byte) {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- Tick{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}
	wg.Add(2)
	go forward(text)
	go forward(img)
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Listener runs a native change-notification helper. Each line the helper
// writes to stdout is one tick. The helper is not restarted if it exits.
type Listener struct {
	path   string
	args   []string
	logger *zap.SugaredLogger

	mu      sync.Mutex
	cmd     *exec.Cmd
	done    chan struct{}
	stopped bool
}

// NewListener prepares a listener for the helper binary at path.
func NewListener(logger *zap.SugaredLogger, path string, args ...string) *Listener {
	return &Listener{path: path, args: args, logger: logger}
}

// Start spawns the helper. The returned channel closes when the helper exits.
func (l *Listener) Start(ctx context.Context) (<-chan Tick, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cmd != nil {
		return nil, errors.New("listener already started")
	}

	cmd := exec.Command(l.path, l.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("listener stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start listener %s: %w", l.path, err)
	}
	l.cmd = cmd
	l.done = make(chan struct{})
	l.logger.Infow("native listener started", "path", l.path, "pid", cmd.Process.Pid)

	out := make(chan Tick)
	go func() {
		defer close(out)
		defer close(l.done)

		sc := bufio.NewScanner(stdout)
		for sc.Scan() {
			select {
			case out <- Tick{}:
			case <-ctx.Done():
				// продолжаем читать, чтобы helper не заблокировался на записи
			}
		}
		err := cmd.Wait()
		if ctx.Err() != nil || l.isStopped() {
			l.logger.Debugw("native listener stopped", "path", l.path)
			return
		}
		l.logger.Errorw("native listener exited", "path", l.path, "error", err)
	}()
	return out, nil
}

// Stop kills the helper and waits for it to be reaped. Safe to call when not started.
func (l *Listener) Stop() {
	l.mu.Lock()
	cmd, done := l.cmd, l.done
	l.stopped = true
	l.mu.Unlock()
	if cmd == nil {
		return
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		l.logger.Warnw("kill native listener", "error", err)
	}
	<-done
}

func (l *Listener) isStopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}
