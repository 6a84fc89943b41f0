// internal/ident/ident.go
package ident

import (
	"regexp"
	"strings"
)

// HeaderMarker starts a sequence header line.
const HeaderMarker = '>'

var accessionVersion = regexp.MustCompile(`^[^.]+\.\p{Nd}+`)

// ExtractBaseID returns the canonical ACCESSION.VERSION key of a raw identifier.
//
//	">MG559732.1.<1.>690" -> "MG559732.1"
//	"MG559732.1"          -> "MG559732.1"
//	"AB12"                -> "AB12"
//
// Leading '>' markers are stripped first. When the accession/version prefix
// is absent the part before the first dot is returned. Never fails.
func ExtractBaseID(raw string) string {
	s := strings.TrimLeft(raw, string(HeaderMarker))
	if m := accessionVersion.FindString(s); m != "" {
		return m
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}
