//go:build windows

package watcher

import (
	"errors"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/windows"
)

const notifyBufferSize = 8192

const eventBuffer = 64

const notifyFilter = windows.FILE_NOTIFY_CHANGE_FILE_NAME |
	windows.FILE_NOTIFY_CHANGE_DIR_NAME |
	windows.FILE_NOTIFY_CHANGE_SIZE |
	windows.FILE_NOTIFY_CHANGE_LAST_WRITE |
	windows.FILE_NOTIFY_CHANGE_CREATION

// Session is one active watch on a directory root. Events are delivered in
// the order the OS reported them. A slow or detached consumer never blocks
// the watch; overflow events are dropped.
type Session struct {
	root string

	state *watchState
}

// watchState is the only data shared with the background worker. The worker
// never holds the Session itself, so an abandoned Session stays collectable
// and its finalizer can still request a stop.
type watchState struct {
	mu     sync.Mutex
	handle windows.Handle

	stopped atomic.Bool

	events chan Event
	errors chan error
	done   chan struct{}
}

// Start opens path for change notification and begins watching it on a
// dedicated background worker. With recursive set, changes in
// subdirectories are reported as well.
func Start(path string, recursive bool) (*Session, error) {
	info, err := os.Stat(path)

	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	if !info.IsDir() {
		return nil, &OpenError{Path: path, Err: errors.New("not a directory")}
	}

	name, err := windows.UTF16PtrFromString(path)

	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	handle, err := windows.CreateFile(
		name,
		windows.FILE_LIST_DIRECTORY,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)

	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	state := &watchState{
		handle: handle,

		events: make(chan Event, eventBuffer),
		errors: make(chan error, 1),
		done:   make(chan struct{}),
	}

	session := &Session{
		root:  path,
		state: state,
	}

	go watch(path, recursive, state)

	runtime.SetFinalizer(session, (*Session).Stop)

	return session, nil
}

func (s *Session) Root() string {
	return s.root
}

// Events returns the change stream. The channel is closed once the watch
// has ended, whether through Stop or a fatal error.
func (s *Session) Events() <-chan Event {
	return s.state.events
}

// Errors reports at most one fatal watch error. Deliberate cancellation
// through Stop is not an error and is never reported here.
func (s *Session) Errors() <-chan error {
	return s.state.errors
}

// Stop ends the watch and blocks until the background worker has exited.
// No event is published after Stop returns. Stop is idempotent.
func (s *Session) Stop() {
	state := s.state

	if state.stopped.CompareAndSwap(false, true) {
		runtime.SetFinalizer(s, nil)

		// The worker blocks inside ReadDirectoryChanges and cannot see the
		// flag until that call returns, so force the return. CancelIoEx
		// only reaches a request that is already pending; the worker may
		// sit between its flag check and the blocking call, so keep
		// cancelling until it has exited.
		for {
			state.mu.Lock()

			if state.handle != windows.InvalidHandle {
				_ = windows.CancelIoEx(state.handle, nil)
			}

			state.mu.Unlock()

			select {
			case <-state.done:
				return

			case <-time.After(time.Millisecond):
			}
		}
	}

	<-state.done
}

func watch(root string, recursive bool, state *watchState) {
	defer close(state.done)
	defer close(state.errors)
	defer close(state.events)

	defer func() {
		state.mu.Lock()

		_ = windows.CloseHandle(state.handle)
		state.handle = windows.InvalidHandle

		state.mu.Unlock()
	}()

	buf := make([]byte, notifyBufferSize)

	for !state.stopped.Load() {
		var returned uint32

		err := windows.ReadDirectoryChanges(
			state.handle,
			&buf[0],
			uint32(len(buf)),
			recursive,
			notifyFilter,
			&returned,
			nil,
			0,
		)

		if err != nil {
			if errors.Is(err, windows.ERROR_OPERATION_ABORTED) || state.stopped.Load() {
				// deliberate cancellation
				return
			}

			slog.Error("watch failed", "root", root, "error", err)

			select {
			case state.errors <- err:
			default:
			}

			return
		}

		if returned == 0 {
			// the OS signals overflow with an empty buffer
			continue
		}

		events, ok := decodeNotify(buf[:returned], root)

		for _, event := range events {
			select {
			case state.events <- event:
			default:
				// consumer is slow or gone; stale change notifications
				// are droppable and the watch continues
			}
		}

		if !ok {
			slog.Warn("truncated notification buffer", "root", root)
		}
	}
}
