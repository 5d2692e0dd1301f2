/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package catalog

import (
	"fmt"
	"strings"

	"github.com/friendsincode/grimnir_planner/internal/textnorm"
)

// Aliases maps alternative type labels onto a canonical one. Keys and values
// are stored in normalized form (see textnorm.Label).
type Aliases map[string]string

// ParseAliases reads "canonical:alias|alias;canonical:alias". Whitespace is
// ignored and an empty string yields no aliases.
func ParseAliases(spec string) (Aliases, error) {
	out := Aliases{}
	for _, group := range strings.Split(spec, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		canonical, rest, ok := strings.Cut(group, ":")
		canonical = textnorm.Label(canonical)
		if !ok || canonical == "" {
			return nil, fmt.Errorf("alias group %q: want canonical:alias|alias", group)
		}
		for _, a := range strings.Split(rest, "|") {
			if a = textnorm.Label(a); a != "" && a != canonical {
				out[a] = canonical
			}
		}
	}
	return out, nil
}

// Key returns the comparison form of a type label.
func (a Aliases) Key(label string) string {
	k := textnorm.Label(label)
	if canonical, ok := a[k]; ok {
		return canonical
	}
	return k
}
