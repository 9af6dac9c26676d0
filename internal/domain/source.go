package domain

import "context"

// RecordSource yields parsed census files. The concrete implementation
// reads bzip2-compressed CSV from disk; a caching decorator can sit in
// front of it.
type RecordSource interface {
	// Read parses the named census file into a YearRecordSet. A file
	// that does not exist yields a *NotFoundError.
	Read(ctx context.Context, filename string) (*YearRecordSet, error)
}
