// Package ident provides case-insensitive identifier handling shared by the
// reader, the symbol interner and the environment. golisp case-folds every
// identifier to upper case at the point of interning (spec: the reader
// folds "define" to "DEFINE"); the helpers here centralize that rule so it
// is applied consistently everywhere an identifier is compared or stored.
package ident

import "strings"

// Normalize returns the canonical form of an identifier used as a map key
// or as the interned spelling of a symbol.
func Normalize(name string) string {
	return strings.ToUpper(name)
}

// Equal reports whether two identifiers are the same under case folding.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Compare orders two identifiers case-insensitively, returning a negative,
// zero, or positive number in the manner of strings.Compare.
func Compare(a, b string) int {
	return strings.Compare(Normalize(a), Normalize(b))
}

// Contains reports whether name appears in list under case folding.
func Contains(list []string, name string) bool {
	return Index(list, name) >= 0
}

// Index returns the index of the first case-insensitive match of name in
// list, or -1 if none is found.
func Index(list []string, name string) int {
	for i, s := range list {
		if Equal(s, name) {
			return i
		}
	}
	return -1
}

// IsKeyword reports whether name matches any of the given keywords under
// case folding.
func IsKeyword(name string, keywords ...string) bool {
	return Contains(keywords, name)
}
