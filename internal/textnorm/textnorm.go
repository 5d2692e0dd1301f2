/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package textnorm folds free-form spreadsheet labels into comparable keys.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripAccents removes combining marks after canonical decomposition ("Réflexion" -> "Reflexion").
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold lowercases, strips accents, trims and collapses inner whitespace.
func Fold(s string) string {
	s = strings.ToLower(StripAccents(s))
	return strings.Join(strings.Fields(s), " ")
}

// Label folds a type label and drops a leading ordinal prefix such as "3-", "3 - " or "2.".
func Label(s string) string {
	s = Fold(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i == len(s) {
		return s
	}
	rest := strings.TrimLeft(s[i:], " ")
	if rest == "" {
		return s
	}
	switch rest[0] {
	case '-', '.', ')', '_', ':':
		return strings.TrimSpace(rest[1:])
	}
	return s
}
