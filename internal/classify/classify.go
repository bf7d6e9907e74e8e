// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a specialty and a topical tag to a map. Both
// classifiers are ordered substring rule lists where the first match wins;
// neither can fail.
package classify

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Rule maps a lower-case substring to a label.
type Rule struct {
	Substring string
	Label     string
}

// TagRule maps a set of lower-case keywords to a tag.
type TagRule struct {
	Tag      string
	Keywords []string
}

// fold lower-cases s and normalizes it to NFC so that paths written by
// filesystems that store decomposed accents still match the rules.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

func firstRule(rules []Rule, s string) (string, bool) {
	for _, r := range rules {
		if strings.Contains(s, r.Substring) {
			return r.Label, true
		}
	}
	return "", false
}
