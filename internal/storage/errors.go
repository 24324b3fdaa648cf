package storage

import "fmt"

// FormatError reports a legacy file that exists but contains zero parsable
// credential blocks. It signals a genuinely corrupt migration source and is
// surfaced to the caller instead of silently producing an empty database.
type FormatError struct {
	// Path is the location of the unparsable legacy file.
	Path string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("legacy file %s contains no parsable credential blocks", e.Path)
}

// NotFoundError reports an index-based update or delete on a record that
// does not exist in the current collection.
type NotFoundError struct {
	// Index is the requested position.
	Index int
	// Len is the collection size at the time of the call.
	Len int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %d not found (database holds %d records)", e.Index, e.Len)
}
