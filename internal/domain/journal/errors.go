package journal

import "errors"

var (
	// ErrNotFound is returned when a lookup or delete references an
	// identifier no entry has.
	ErrNotFound = errors.New("eintrag nicht gefunden")

	// ErrNameRequired rejects project creation without a name.
	ErrNameRequired = errors.New("projektname erforderlich")
)
