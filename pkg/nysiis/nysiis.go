// Package nysiis implements the New York State Identification and
// Intelligence System phonetic encoding.
//
// See https://en.wikipedia.org/wiki/New_York_State_Identification_and_Intelligence_System
package nysiis

import "strings"

type rule struct {
	pattern     string
	replacement string
}

var prefixRules = []rule{
	{"mac", "mcc"},
	{"kn", "n"},
	{"k", "c"},
	{"ph", "ff"},
	{"pf", "ff"},
	{"sch", "sss"},
}

var suffixRules = []rule{
	{"ee", "y"},
	{"ie", "y"},
	{"dt", "d"},
	{"rt", "d"},
	{"rd", "d"},
	{"nt", "d"},
	{"nd", "d"},
}

// bodyRuleGroups are tried in order; within a group the first matching
// alternative wins.
var bodyRuleGroups = [][]rule{
	{
		{"ev", "af"},
		{"a", "a"},
		{"e", "a"},
		{"i", "a"},
		{"o", "a"},
		{"u", "a"},
	},
	{
		{"q", "g"},
		{"z", "s"},
		{"m", "n"},
	},
	{
		{"kn", "n"},
		{"k", "c"},
	},
	{
		{"sch", "sss"},
		{"ph", "ff"},
	},
}

func isVowel(ch byte) bool {
	switch ch {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Encode computes the NYSIIS phonetic key for s. Only alphabetic characters
// of s participate, lowercased; everything else is dropped. Encoding is
// deterministic and depends only on its input.
func Encode(s string) string {
	letters := alphabeticLower(s)
	if len(letters) == 0 {
		return ""
	}

	letters = applyPrefix(letters)
	letters = applySuffix(letters)
	letters = transcode(letters)
	letters = terminalCleanup(letters)
	return compressRuns(letters)
}

func alphabeticLower(s string) []byte {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r - 'A' + 'a')
		} else if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return []byte(b.String())
}

func applyPrefix(letters []byte) []byte {
	for _, r := range prefixRules {
		if hasPrefixBytes(letters, r.pattern) {
			return append([]byte(r.replacement), letters[len(r.pattern):]...)
		}
	}
	return letters
}

func applySuffix(letters []byte) []byte {
	for _, r := range suffixRules {
		if hasSuffixBytes(letters, r.pattern) {
			head := letters[:len(letters)-len(r.pattern)]
			return append(append([]byte{}, head...), r.replacement...)
		}
	}
	return letters
}

func hasPrefixBytes(s []byte, prefix string) bool {
	return len(s) >= len(prefix) && string(s[:len(prefix)]) == prefix
}

func hasSuffixBytes(s []byte, suffix string) bool {
	return len(s) >= len(suffix) && string(s[len(s)-len(suffix):]) == suffix
}

// transcode applies the body rules, the H-rule and the W-rule, left to
// right, keeping the first character of the name as the first character of
// the key (the original name's opening character, after prefix rewriting,
// is never itself transcoded).
func transcode(letters []byte) []byte {
	if len(letters) == 0 {
		return letters
	}

	out := make([]byte, 0, len(letters)+2)
	out = append(out, letters[0])

	i := 1
	for i < len(letters) {
		rest := letters[i:]
		prev := out[len(out)-1]

		switch {
		case rest[0] == 'h':
			var next byte
			hasNext := len(rest) > 1
			if hasNext {
				next = rest[1]
			}
			if !isVowel(prev) || (hasNext && !isVowel(next)) {
				out = append(out, prev)
			} else {
				out = append(out, 'h')
			}
			i++

		case rest[0] == 'w':
			if isVowel(prev) {
				out = append(out, 'a')
			} else {
				out = append(out, 'w')
			}
			i++

		default:
			matched := false
			for _, group := range bodyRuleGroups {
				for _, r := range group {
					if hasPrefixBytes(rest, r.pattern) {
						out = append(out, r.replacement...)
						i += len(r.pattern)
						matched = true
						break
					}
				}
				if matched {
					break
				}
			}
			if !matched {
				out = append(out, rest[0])
				i++
			}
		}
	}

	return out
}

func terminalCleanup(letters []byte) []byte {
	if len(letters) >= 2 {
		tail := letters[len(letters)-2:]
		switch string(tail) {
		case "as":
			return letters[:len(letters)-2]
		case "ay":
			return append(letters[:len(letters)-2], 'y')
		}
	}
	if len(letters) >= 1 {
		last := letters[len(letters)-1]
		if last == 's' || last == 'a' {
			return letters[:len(letters)-1]
		}
	}
	return letters
}

func compressRuns(letters []byte) string {
	if len(letters) == 0 {
		return ""
	}
	out := make([]byte, 0, len(letters))
	out = append(out, letters[0])
	for i := 1; i < len(letters); i++ {
		if letters[i] != letters[i-1] {
			out = append(out, letters[i])
		}
	}
	return string(out)
}
