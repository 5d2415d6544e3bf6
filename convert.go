package lfx

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

var (
	crlf = []byte{'\r', '\n'}
	lf   = []byte{'\n'}
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// Dos2Unix returns data with every CRLF pair replaced by a single LF.
// Lone CR bytes are kept. The input slice is not modified.
func Dos2Unix(data []byte) []byte {
	return bytes.ReplaceAll(data, crlf, lf)
}

// CountCRLF returns the number of CRLF pairs in data
func CountCRLF(data []byte) int {
	return bytes.Count(data, crlf)
}

// decodeText checks that data can be treated as text
func decodeText(data []byte) error {
	if !utf8.Valid(data) {
		return errInvalidUTF8
	}

	return nil
}
