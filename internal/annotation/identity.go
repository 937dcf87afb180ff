package annotation

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceLibraryIdentity is the UUID v5 namespace for library IDs.
var NamespaceLibraryIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("clientlibs/library-identity/v1"))

// LibraryID returns a deterministic UUID for a library name.
// The same name always yields the same ID across runs and machines.
func LibraryID(name string) uuid.UUID {
	return uuid.NewSHA1(NamespaceLibraryIdentity, []byte(strings.TrimSpace(name)))
}
