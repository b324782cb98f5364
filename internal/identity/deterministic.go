package identity

import (
	"path/filepath"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DocumentUUID derives the identity of a document from its path relative to
// the loader base. Separators are normalised so the same file maps to the
// same ID on every platform.
func DocumentUUID(path string) uuid.UUID {
	trimmed := strings.TrimSpace(filepath.ToSlash(path))
	if trimmed == "" {
		return uuid.Nil
	}
	return UUID("surfdoc:doc:" + trimmed)
}
