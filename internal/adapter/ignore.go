package adapter

import (
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ignoreScope holds the compiled rules of one .gitignore file.
type ignoreScope struct {
	base  string // slash-separated directory holding the .gitignore, "" for the root
	rules *gitignore.GitIgnore
}

// IgnoreMatcher evaluates .gitignore rules collected while walking a tree.
// Rules only apply below the directory that declared them. Inside one file
// the last matching rule wins; a deeper .gitignore can ignore more but does
// not re-include what a parent ignored.
type IgnoreMatcher struct {
	scopes []ignoreScope
}

// NewIgnoreMatcher returns an empty matcher.
func NewIgnoreMatcher() *IgnoreMatcher {
	return &IgnoreMatcher{}
}

// AddRules compiles the contents of a .gitignore located in base.
func (im *IgnoreMatcher) AddRules(base, content string) {
	lines := strings.Split(content, "\n")
	if !hasIgnorePatterns(lines) {
		return
	}

	im.scopes = append(im.scopes, ignoreScope{
		base:  base,
		rules: gitignore.CompileIgnoreLines(lines...),
	})
}

// Match reports whether rel (slash-separated, relative to the walk root)
// is ignored. Directories are matched with a trailing slash so that
// directory-only patterns such as "build/" apply to them alone.
func (im *IgnoreMatcher) Match(rel string, isDir bool) bool {
	for _, scope := range im.scopes {
		local, ok := relativeTo(scope.base, rel)
		if !ok {
			continue
		}

		if isDir {
			local += "/"
		}

		if scope.rules.MatchesPath(local) {
			return true
		}
	}

	return false
}

func relativeTo(base, rel string) (string, bool) {
	if base == "" {
		return rel, true
	}

	if !strings.HasPrefix(rel, base+"/") {
		return "", false
	}

	return rel[len(base)+1:], true
}

func hasIgnorePatterns(lines []string) bool {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return true
		}
	}

	return false
}
