// Package normalize repairs mis-decoded text and strips known promotional boilerplate
// from feed item fields. All functions are pure and idempotent.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minBoilerplateLen is the shortest text considered for boilerplate stripping
const minBoilerplateLen = 20

// encodingFixes maps UTF-8 bytes decoded as Windows-1252 back to the intended characters.
// Longer sequences come before their prefixes, the bare "â€" rule must stay after all dash and quote rules.
var encodingFixes = []struct{ from, to string }{
	{"Ã¦", "æ"},
	{"Ã¸", "ø"},
	{"Ã¥", "å"},
	{"Ã†", "Æ"},
	{"Ã˜", "Ø"},
	{"Ã…", "Å"},
	{"Ã©", "é"},
	{"Ã¨", "è"},
	{"Ã¶", "ö"},
	{"Ã¤", "ä"},
	{"Ã¼", "ü"},
	{"â€™", "'"},
	{"â€˜", "'"},
	{"â€œ", "\""},
	{"â€\u009d", "\""},
	{"â€\u201c", "–"},
	{"â€\u201d", "—"},
	{"â€¦", "…"},
	{"â€", "\""},
	{"Â\u00a0", " "},
	{"Â ", " "},
	{"Â", ""},
}

// RepairEncoding fixes common UTF-8 read as Latin-1 artifacts and trims the result.
// The table is applied until nothing changes, every rule shortens its input so this terminates.
func RepairEncoding(text string) string {
	if text == "" {
		return text
	}
	res := text
	for {
		next := res
		for _, fix := range encodingFixes {
			next = strings.ReplaceAll(next, fix.from, fix.to)
		}
		if next == res {
			break
		}
		res = next
	}
	return strings.TrimSpace(res)
}

// upsellPhrases is the Danish subscription upsell block appended to paywalled articles
var upsellPhrases = []string{
	"Vil du have det hele med?",
	"Prøv 30 dage for 0 kr.",
	"Ingen binding eller kortoplysninger påkrævet.",
	"Prøv nu",
	"Køb et abonnement",
	"Udforsk vores abonnementer, og vælg den løsning, der matcher dine behov.",
	"Vælg dit abonnement",
	"Log ind",
}

var upsellRe = compileTrailing(upsellPhrases)

// compileTrailing builds a case-insensitive pattern matching phrases at the end of a text,
// with any run of whitespace allowed between words and phrases
func compileTrailing(phrases []string) *regexp.Regexp {
	parts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		words := strings.Fields(p)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		parts = append(parts, strings.Join(words, `\s+`))
	}
	return regexp.MustCompile(`(?i)\s*` + strings.Join(parts, `\s*`) + `\s*$`)
}

// StripBoilerplate removes the trailing upsell block. Short texts are returned as is,
// and a text that would become empty is returned unchanged.
func StripBoilerplate(text string) string {
	if utf8.RuneCountInString(text) < minBoilerplateLen {
		return text
	}
	res := text
	for upsellRe.MatchString(res) {
		res = strings.TrimSpace(upsellRe.ReplaceAllString(res, ""))
		if res == "" {
			return text
		}
	}
	return res
}
