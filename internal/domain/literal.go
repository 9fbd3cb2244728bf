package domain

import (
	"errors"
	"regexp"
	"strings"

	m "github.com/rezi-labs/cup/internal/model"
)

// ErrNoPatternMatched is returned when an annotated line carries no version
// literal in any of the supported syntaxes.
var ErrNoPatternMatched = errors.New("no version pattern matched")

// captureRole tells the renderer what a capture group of a syntax holds.
type captureRole int

const (
	rolePrefix captureRole = iota
	roleLiteral
	roleClosing
	roleTrailer
)

const (
	numericLiteral  = `(\d+(?:\.\d+)*)`
	prefixedLiteral = `([A-Za-z_.+\-]*\d+(?:\.\d+)*)`
	trailingComment = `(\s*(?://|#).*)`
)

var (
	bareLayout   = []captureRole{rolePrefix, roleLiteral, roleTrailer}
	quotedLayout = []captureRole{rolePrefix, roleLiteral, roleClosing, roleTrailer}
)

// versionSyntax is one entry of the literal catalog. Its regular expression
// is a plain concatenation of the capture groups listed in roles, so every
// byte of a match belongs to exactly one role.
type versionSyntax struct {
	name  string
	re    *regexp.Regexp
	roles []captureRole
}

func newSyntax(name, expr string, roles []captureRole) versionSyntax {
	return versionSyntax{
		name:  name,
		re:    regexp.MustCompile(expr),
		roles: roles,
	}
}

// versionSyntaxes is evaluated top to bottom and the first entry that
// matches wins. Quoted and prefixed forms must stay behind the forms they
// specialise, otherwise lines would be claimed by the wrong entry.
var versionSyntaxes = []versionSyntax{
	newSyntax("assign", `(\w+\s*=\s*)`+numericLiteral+trailingComment, bareLayout),
	newSyntax("short-assign", `(\w+\s*:=\s*)`+numericLiteral+trailingComment, bareLayout),
	newSyntax("colon", `(\w+:\s*)`+numericLiteral+trailingComment, bareLayout),
	newSyntax("quoted-image", `("\w+:)`+numericLiteral+`(")`+trailingComment, quotedLayout),
	newSyntax("quoted-key-value", `("\w+":\s*")`+numericLiteral+`(")`+trailingComment, quotedLayout),

	newSyntax("assign-single", `(\w+\s*=\s*')`+numericLiteral+`(')`+trailingComment, quotedLayout),
	newSyntax("short-assign-single", `(\w+\s*:=\s*')`+numericLiteral+`(')`+trailingComment, quotedLayout),
	newSyntax("colon-single", `(\w+:\s*')`+numericLiteral+`(')`+trailingComment, quotedLayout),
	newSyntax("single-image", `('\w+:)`+numericLiteral+`(')`+trailingComment, quotedLayout),
	newSyntax("single-key-value", `('\w+':\s*')`+numericLiteral+`(')`+trailingComment, quotedLayout),

	newSyntax("assign-double", `(\w+\s*=\s*")`+numericLiteral+`(")`+trailingComment, quotedLayout),
	newSyntax("short-assign-double", `(\w+\s*:=\s*")`+numericLiteral+`(")`+trailingComment, quotedLayout),
	newSyntax("colon-double", `(\w+:\s*")`+numericLiteral+`(")`+trailingComment, quotedLayout),
	newSyntax("dashed-key-assign", `("[\w-]+"\s*=\s*")`+numericLiteral+`(")`+trailingComment, quotedLayout),

	newSyntax("assign-prefixed", `(\w+\s*=\s*")`+prefixedLiteral+`(")`+trailingComment, quotedLayout),
	newSyntax("short-assign-prefixed", `(\w+\s*:=\s*")`+prefixedLiteral+`(")`+trailingComment, quotedLayout),
	newSyntax("colon-prefixed", `(\w+:\s*")`+prefixedLiteral+`(")`+trailingComment, quotedLayout),
}

// token splits the first match on line into its regions.
func (s versionSyntax) token(line string) (m.VersionToken, bool) {
	groups := s.re.FindStringSubmatch(line)
	if groups == nil {
		return m.VersionToken{}, false
	}

	token := m.VersionToken{Syntax: s.name}

	for i, role := range s.roles {
		value := groups[i+1]

		switch role {
		case rolePrefix:
			token.Prefix = value
		case roleLiteral:
			token.Literal = value
		case roleClosing:
			token.Closing = value
		case roleTrailer:
			token.Trailer = value
		}
	}

	return token, true
}

// rewrite replaces the literal of every match on line with value. Text
// outside the literal regions is copied through unchanged.
func (s versionSyntax) rewrite(line, value string) (string, bool) {
	matches := s.re.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return line, false
	}

	var b strings.Builder

	b.Grow(len(line) + len(value))

	last := 0

	for _, loc := range matches {
		b.WriteString(line[last:loc[0]])

		for i, role := range s.roles {
			start, end := loc[2*(i+1)], loc[2*(i+1)+1]

			if role == roleLiteral {
				b.WriteString(value)
				continue
			}

			if start >= 0 {
				b.WriteString(line[start:end])
			}
		}

		last = loc[1]
	}

	b.WriteString(line[last:])

	return b.String(), true
}

// LocateVersion finds the version literal on an annotated line.
func LocateVersion(line string) (m.VersionToken, error) {
	for _, syntax := range versionSyntaxes {
		if token, ok := syntax.token(line); ok {
			return token, nil
		}
	}

	return m.VersionToken{}, ErrNoPatternMatched
}

// RewriteLine replaces the version literal on line with version using the
// first syntax that matches. All matches of that syntax on the line receive
// the same value.
func RewriteLine(line, version string) (string, error) {
	for _, syntax := range versionSyntaxes {
		if updated, ok := syntax.rewrite(line, version); ok {
			return updated, nil
		}
	}

	return line, ErrNoPatternMatched
}

// CleanTag normalises a registry tag before it is written. When the tag
// starts with "v" or "V", every "v" and "V" in it is removed, not only the
// leading one: "vversion" becomes "ersion".
func CleanTag(tag string) string {
	if !strings.HasPrefix(tag, "v") && !strings.HasPrefix(tag, "V") {
		return tag
	}

	return strings.NewReplacer("v", "", "V", "").Replace(tag)
}
