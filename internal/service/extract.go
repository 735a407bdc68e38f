package service

import "strings"

// ExtractText derives plain text from uploaded file bytes. Declared text
// types pass through unchanged; everything else gets a permissive decode
// where runs of unprintable bytes collapse to a single space. Arbitrary
// binary input never fails, it just degrades to a best-effort
// approximation.
func ExtractText(raw []byte, fileType string) string {
	if strings.HasPrefix(fileType, "text/") || strings.Contains(fileType, "csv") {
		return string(raw)
	}

	var b strings.Builder
	b.Grow(len(raw))

	inRun := false
	for _, c := range raw {
		if printableByte(c) {
			b.WriteByte(c)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte(' ')
			inRun = true
		}
	}

	return b.String()
}

// printableByte reports whether c survives the permissive decode: tab,
// newline, carriage return, and the printable ASCII range.
func printableByte(c byte) bool {
	switch c {
	case '\t', '\n', '\r':
		return true
	}
	return c >= 0x20 && c <= 0x7E
}
