package mdlocal

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/alnah/go-mdlocal/internal/fileutil"
	"github.com/alnah/go-mdlocal/internal/pipeline"
)

// Extension bounds, dot included.
const (
	minExtensionLength = 2
	maxExtensionLength = 16
)

// DeriveFilename maps a URL to the name of its cached asset: the hex SHA-256
// digest of the URL, followed by the extension of the URL path when it is a
// plain alphanumeric one. The result depends on rawURL only.
func DeriveFilename(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	digest := hex.EncodeToString(sum[:])

	ext := pipeline.URLExtension(rawURL)
	if !isSafeExtension(ext) {
		return digest
	}
	return digest + ext
}

// isSafeExtension accepts ".<alnum>+" within the length bounds.
func isSafeExtension(ext string) bool {
	if len(ext) < minExtensionLength || len(ext) > maxExtensionLength {
		return false
	}
	if fileutil.ValidateExtension(ext) != nil {
		return false
	}
	for i := 1; i < len(ext); i++ {
		c := ext[i]
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum {
			return false
		}
	}
	return true
}
