// Package renamer derives tagged output filenames for Nametag.
package renamer

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes is the default ceiling for an output filename's
// UTF-8 byte length.
const DefaultMaxBytes = 200

// hashLen is the number of hex characters kept from the digest when a
// filename is truncated.
const hashLen = 8

// Fragment extracts the project-name portion of a filename: everything
// before the first underscore, or the whole filename when it contains
// none. Filenames follow the convention
// <project>_<phase>_<deliverable>_... and no normalization is applied
// at extraction time.
func Fragment(filename string) string {
	if i := strings.IndexByte(filename, '_'); i >= 0 {
		return filename[:i]
	}
	return filename
}

// Compose builds the tagged output filename by prefixing the original
// name with the identifier in full-width brackets.
func Compose(identifier, filename string) string {
	return "【" + identifier + "】" + filename
}

// Truncate shortens a composed filename whose UTF-8 encoding exceeds
// maxBytes. Names at or under the budget are returned unchanged.
//
// Overlong names keep their extension and gain a digest suffix so that
// distinct inputs truncating to the same base still get distinct
// names: the base (name minus extension) is trimmed a whole rune at a
// time, never mid-character, until base + "_" + hash + ext fits, where
// hash is the first 8 hex characters of the md5 of the entire
// untruncated name. Deterministic and idempotent.
func Truncate(filename string, maxBytes int) string {
	if len(filename) <= maxBytes {
		return filename
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	digest := md5.Sum([]byte(filename))
	hash := hex.EncodeToString(digest[:])[:hashLen]

	available := maxBytes - len(ext) - hashLen - 1

	runes := []rune(base)
	for len(runes) > 0 && len(string(runes)) > available {
		runes = runes[:len(runes)-1]
	}

	return string(runes) + "_" + hash + ext
}
