package errsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Two concerns sharing a code makes crash reports ambiguous, so every code in
// the taxonomy has to stay unique.
func TestErrorCodesDistinct(t *testing.T) {
	codes := []ErrorType{
		ErrCatalogSchema,
		ErrInvalidMetadata,
		ErrExtensionNotFound,
		ErrCatalogRead,
		ErrAlreadyInstalled,
		ErrUnsupportedMethod,
		ErrVersionResolution,
		ErrInstallExtension,
		ErrCatalogFetch,
		ErrWorkingDirectory,
		ErrCleanCache,
		ErrVersionCheck,
		ErrScanExtensions,
	}
	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code.Code)
		assert.NotEmpty(t, code.Message)
		assert.False(t, seen[code.Code], "duplicate code %s", code.Code)
		seen[code.Code] = true
	}
}
