//go:build windows

package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForPath(t *testing.T, session *Session, path string, kind Kind) bool {
	t.Helper()

	deadline := time.After(5 * time.Second)

	for {
		select {
		case event, ok := <-session.Events():
			if !ok {
				return false
			}

			if event.Path == path && event.Kind == kind {
				return true
			}

		case <-deadline:
			return false
		}
	}
}

func TestWatchReportsCreate(t *testing.T) {
	dir := t.TempDir()

	session, err := Start(dir, false)
	if err != nil {
		t.Fatalf("start watch: %v", err)
	}
	defer session.Stop()

	path := filepath.Join(dir, "test.txt")

	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if !waitForPath(t, session, path, Create) {
		t.Fatal("timed out waiting for create event")
	}
}

func TestWatchReportsRecursive(t *testing.T) {
	dir := t.TempDir()

	nested := filepath.Join(dir, "nested")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatalf("create nested dir: %v", err)
	}

	session, err := Start(dir, true)
	if err != nil {
		t.Fatalf("start watch: %v", err)
	}
	defer session.Stop()

	path := filepath.Join(nested, "deep.txt")

	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if !waitForPath(t, session, path, Create) {
		t.Fatal("timed out waiting for nested create event")
	}
}

func TestStopReturnsAndEndsStream(t *testing.T) {
	dir := t.TempDir()

	session, err := Start(dir, false)
	if err != nil {
		t.Fatalf("start watch: %v", err)
	}

	stopped := make(chan struct{})

	go func() {
		session.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stop did not return")
	}

	// activity after stop must not surface; the stream ends instead
	after := filepath.Join(dir, "after.txt")

	if err := os.WriteFile(after, []byte("data"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	for {
		select {
		case event, ok := <-session.Events():
			if !ok {
				return
			}

			if event.Path == after {
				t.Fatal("received event after stop")
			}

		case <-time.After(time.Second):
			t.Fatal("event stream not closed after stop")
		}
	}
}

func TestStopImmediatelyAfterStart(t *testing.T) {
	// a stop issued before the worker has its notification request
	// pending must still wake it; repeat to hit that window
	for i := 0; i < 25; i++ {
		session, err := Start(t.TempDir(), false)
		if err != nil {
			t.Fatalf("start watch: %v", err)
		}

		stopped := make(chan struct{})

		go func() {
			session.Stop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(5 * time.Second):
			t.Fatalf("stop hung on iteration %d", i)
		}
	}
}

func TestSlowConsumerDoesNotBlockStop(t *testing.T) {
	dir := t.TempDir()

	session, err := Start(dir, false)
	if err != nil {
		t.Fatalf("start watch: %v", err)
	}

	// overflow the event buffer without draining; surplus events are
	// dropped and the worker must keep running
	for i := 0; i < 2*eventBuffer; i++ {
		path := filepath.Join(dir, fmt.Sprintf("f%03d.txt", i))

		if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}

	// let the worker publish into the full buffer
	time.Sleep(500 * time.Millisecond)

	stopped := make(chan struct{})

	go func() {
		session.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stop blocked behind a full event buffer")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	session, err := Start(dir, false)
	if err != nil {
		t.Fatalf("start watch: %v", err)
	}

	done := make(chan struct{})

	go func() {
		session.Stop()
		session.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("repeated stop did not return")
	}
}

func TestStartMissingPath(t *testing.T) {
	_, err := Start(filepath.Join(t.TempDir(), "missing"), false)

	var openErr *OpenError

	if !errors.As(err, &openErr) {
		t.Fatalf("expected OpenError, got %v", err)
	}
}

func TestStartOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")

	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := Start(path, false)

	var openErr *OpenError

	if !errors.As(err, &openErr) {
		t.Fatalf("expected OpenError, got %v", err)
	}
}
