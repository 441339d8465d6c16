package watcher

import (
	"encoding/binary"
	"os"
	"strings"
	"unicode/utf16"
)

// FILE_NOTIFY_INFORMATION action codes
const (
	actionAdded          = 1
	actionRemoved        = 2
	actionModified       = 3
	actionRenamedOldName = 4
	actionRenamedNewName = 5
)

// NextEntryOffset, Action and FileNameLength, each a little-endian uint32
const notifyHeaderLen = 12

// decodeNotify parses a buffer of variable-length FILE_NOTIFY_INFORMATION
// records into events, joining each record's relative name onto root.
//
// The second return value is false if the buffer ends mid-record or a
// record points past the supplied length. The OS can truncate the buffer
// under overflow conditions, so a malformed tail stops the walk and keeps
// the events decoded up to that point.
func decodeNotify(buf []byte, root string) ([]Event, bool) {
	var events []Event

	offset := 0

	for {
		if offset+notifyHeaderLen > len(buf) {
			return events, false
		}

		next := binary.LittleEndian.Uint32(buf[offset:])
		action := binary.LittleEndian.Uint32(buf[offset+4:])
		nameLen := int(binary.LittleEndian.Uint32(buf[offset+8:]))

		nameEnd := offset + notifyHeaderLen + nameLen

		if nameLen%2 != 0 || nameEnd > len(buf) {
			return events, false
		}

		name := decodeUTF16(buf[offset+notifyHeaderLen : nameEnd])

		events = append(events, Event{
			Path: joinRoot(root, name),
			Kind: actionKind(action),
		})

		if next == 0 {
			return events, true
		}

		offset += int(next)
	}
}

func actionKind(action uint32) Kind {
	switch action {
	case actionAdded:
		return Create

	case actionRemoved:
		return Remove

	case actionModified:
		return Modify

	case actionRenamedOldName, actionRenamedNewName:
		return Rename
	}

	// unknown action codes still describe some change
	return Modify
}

// decodeUTF16 converts little-endian UTF-16 bytes to a string, replacing
// invalid sequences rather than dropping them. File names are not
// guaranteed to be ASCII.
func decodeUTF16(b []byte) string {
	u := make([]uint16, len(b)/2)

	for i := range u {
		u[i] = binary.LittleEndian.Uint16(b[2*i:])
	}

	return string(utf16.Decode(u))
}

func joinRoot(root, name string) string {
	if strings.HasSuffix(root, `\`) || strings.HasSuffix(root, "/") {
		return root + name
	}

	return root + string(os.PathSeparator) + name
}
