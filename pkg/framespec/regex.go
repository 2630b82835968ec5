package framespec

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DefaultUDIMIdentifier is the placeholder recognized in file names when
// no custom identifier is given.
const DefaultUDIMIdentifier = "<UDIM>"

var (
	// A printf-style sequence identifier preceded by a dot or underscore.
	printfTest = regexp.MustCompile(`[._]%\d+d`)

	// The identifier itself; the first occurrence wins.
	printfID = regexp.MustCompile(`%(\d+)d`)

	// A run of hashes preceded by a dot or underscore.
	hashID = regexp.MustCompile(`([._])(#+)`)
)

// SeqToRegex splits a string around its sequence identifier and converts
// the identifier to a regex fragment. An identifier is either a run of
// hashes after a dot or underscore ("file.####.exr") or a printf token
// ("file.%04d.exr"); printf wins when both are present, and only the first
// occurrence is used. matchHashLength makes "#" count digits exactly;
// printf always does. The prefix and suffix are returned unescaped. When
// no identifier is present the input comes back whole as the prefix.
func SeqToRegex(s string, matchHashLength bool) (prefix, pattern, suffix string) {
	if printfTest.MatchString(s) {
		loc := printfID.FindStringSubmatchIndex(s)
		digits, _ := strconv.Atoi(s[loc[2]:loc[3]])
		return s[:loc[0]], fmt.Sprintf(`\d{%d}`, digits), s[loc[1]:]
	}

	if loc := hashID.FindStringSubmatchIndex(s); loc != nil {
		delim := s[loc[2]:loc[3]]
		hashes := s[loc[4]:loc[5]]

		pattern := regexp.QuoteMeta(delim)
		if matchHashLength {
			pattern += fmt.Sprintf(`\d{%d}`, len(hashes))
		} else {
			pattern += `\d+`
		}
		return s[:loc[0]], pattern, s[loc[5]:]
	}

	return s, "", ""
}

// UDIMToRegex splits a string around its UDIM identifier and converts the
// identifier to a regex fragment. Strict UDIMs are exactly four digits
// starting at 1001; loose ones may trail extra characters (Substance
// Painter writes those). Only the first occurrence of the identifier is
// used. When the identifier is absent the input comes back whole as the
// prefix.
func UDIMToRegex(s, identifier string, loose bool) (prefix, pattern, suffix string) {
	if identifier == "" {
		identifier = DefaultUDIMIdentifier
	}

	idx := strings.Index(s, identifier)
	if idx < 0 {
		return s, "", ""
	}

	pattern = `[1-9]\d{3}`
	if loose {
		pattern += `.*`
	}
	return s[:idx], pattern, s[idx+len(identifier):]
}

// SeqAndUDIMToRegex converts a file string that may hold a UDIM identifier
// and/or sequence identifiers into a full regex pattern matching the files
// it describes. Sequence identifiers are looked for on both sides of the
// UDIM split, so "file_<UDIM>.####.exr" handles both at once. Literal text
// is escaped.
func SeqAndUDIMToRegex(path string, matchHashLength bool, udimIdentifier string, loose bool) string {
	dir, file := filepath.Split(path)

	uPre, uPat, uSuf := UDIMToRegex(file, udimIdentifier, loose)

	p0, p1, p2 := SeqToRegex(uPre, matchHashLength)
	s0, s1, s2 := SeqToRegex(uSuf, matchHashLength)

	var out strings.Builder
	out.WriteString(regexp.QuoteMeta(dir + p0))
	out.WriteString(p1) // may hold a sequence pattern
	out.WriteString(regexp.QuoteMeta(p2))
	out.WriteString(uPat) // may hold a UDIM pattern
	out.WriteString(regexp.QuoteMeta(s0))
	out.WriteString(s1) // may hold a sequence pattern
	out.WriteString(regexp.QuoteMeta(s2))
	return out.String()
}
