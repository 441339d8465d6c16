package watcher

import (
	"fmt"
)

// Kind classifies a single filesystem change.
type Kind int

const (
	Create Kind = iota
	Remove
	Modify
	Rename
)

func (k Kind) String() string {
	switch k {
	case Create:
		return "create"
	case Remove:
		return "remove"
	case Modify:
		return "modify"
	case Rename:
		return "rename"
	}

	return "unknown"
}

// Event is one observed change. Rename is reported once per old-name and
// once per new-name, as the OS delivers them.
type Event struct {
	Path string
	Kind Kind
}

// OpenError indicates the target could not be opened for change
// notification. It is returned by Start and never occurs afterwards.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("watcher: open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
