//go:build !windows

package watcher

import (
	"errors"
)

// Native change notification is implemented on Windows only
// (ReadDirectoryChangesW). On other platforms Start fails without spawning
// a worker.

type Session struct{}

func Start(path string, recursive bool) (*Session, error) {
	return nil, &OpenError{Path: path, Err: errors.ErrUnsupported}
}

func (s *Session) Root() string {
	return ""
}

func (s *Session) Events() <-chan Event {
	return nil
}

func (s *Session) Errors() <-chan error {
	return nil
}

func (s *Session) Stop() {
}
