package folio

import (
	"fmt"
	"strings"
)

// SchemaValidationError reports a malformed frontmatter block. It aborts the
// load of the whole collection.
type SchemaValidationError struct {
	EntryID string
	Field   string
	Reason  string
}

func (e *SchemaValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("entry %s: invalid frontmatter: %s", e.EntryID, e.Reason)
	}
	return fmt.Sprintf("entry %s: field %q: %s", e.EntryID, e.Field, e.Reason)
}

// MissingFieldError reports an entry that cannot be projected because a
// required field is absent. Only that entry is skipped.
type MissingFieldError struct {
	EntryID string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("entry %s: missing required field %q", e.EntryID, e.Field)
}

// DuplicateSlugError reports an entry whose slug was already claimed by an
// earlier entry of the same locale. Only the later entry is skipped.
type DuplicateSlugError struct {
	EntryID string
	Slug    string
	FirstID string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("entry %s: slug %q already used by %s", e.EntryID, e.Slug, e.FirstID)
}

// ImageGenerationError is returned when the image generator rejects a title.
type ImageGenerationError struct {
	Title string
	Err   error
}

func (e *ImageGenerationError) Error() string {
	return fmt.Sprintf("generate image for %q: %v", e.Title, e.Err)
}

func (e *ImageGenerationError) Unwrap() error { return e.Err }

// ProjectionError collects the per-entry failures of one projection run.
// The projection's output is still valid for the entries not listed here.
type ProjectionError struct {
	Projection string
	Errs       []error
}

func (e *ProjectionError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: %d entries skipped: %s", e.Projection, len(e.Errs), strings.Join(msgs, "; "))
}

func (e *ProjectionError) Unwrap() []error { return e.Errs }

// projectionErr returns nil when errs is empty so callers can return it
// directly.
func projectionErr(name string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &ProjectionError{Projection: name, Errs: errs}
}
