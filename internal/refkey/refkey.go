// Package refkey derives reference and index keys for store records.
package refkey

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Ref computes the type-qualified reference for a record.
// References are unique across the store, e.g. "user#1".
func Ref(kind string, id int) string {
	return fmt.Sprintf("%s#%d", kind, id)
}

// Nested computes the reference for a record whose identity is scoped
// to a parent, e.g. "photo#3/comment#5". The numeric id only has to be
// unique within the parent.
func Nested(parentRef, kind string, id int) string {
	return fmt.Sprintf("%s/%s#%d", parentRef, kind, id)
}

// Kind extracts the entity kind from a reference. For nested
// references the innermost kind is returned.
func Kind(ref string) string {
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		ref = ref[i+1:]
	}
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i]
	}
	return ref
}

// Unique computes a hash-distributed index key for a unique field
// constraint. Hashing keeps keys a constant size and makes them safe
// for field values that contain the '#' delimiter.
func Unique(kind, field, value string) string {
	data := fmt.Sprintf("%s#%s#%s", kind, field, value)
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:16]) // 128-bit hash as hex
}
