package domain

import (
	"crypto/md5" //nolint:gosec // identity hash, not a security boundary
	"encoding/hex"
)

// DocumentIDLength is the number of hex characters in a short document ID.
const DocumentIDLength = 8

// DocumentID derives the short identifier for a filename: the first
// eight hex characters of the MD5 digest of the filename string.
func DocumentID(filename string) string {
	return FullDocumentID(filename)[:DocumentIDLength]
}

// FullDocumentID returns the complete 32-character MD5 hex digest of filename.
// Used to disambiguate when two filenames share a short ID.
func FullDocumentID(filename string) string {
	sum := md5.Sum([]byte(filename)) //nolint:gosec // identity hash
	return hex.EncodeToString(sum[:])
}
