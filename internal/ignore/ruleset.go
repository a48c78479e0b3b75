// Package ignore implements hierarchical ignore-file pattern matching for
// deciding which source paths are documented. Semantics follow gitignore:
// comments, blank lines, trailing-slash directory rules, leading-! negation,
// * and ** wildcards, root anchoring for slashed patterns, and last match
// wins.
package ignore

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// PatternError reports a syntactically malformed exclusion pattern. It is a
// configuration error: the run must fail before any extraction begins.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("malformed ignore pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// rule is one compiled pattern line.
type rule struct {
	pattern string
	negate  bool
	dirOnly bool

	// self matches the named path itself; descendants matches anything
	// beneath it. A rule matching a directory excludes its contents too,
	// which is what makes whole-subtree pruning possible.
	self        []glob.Glob
	descendants []glob.Glob
}

// RuleSet is an ordered list of compiled rules. Evaluation is declaration
// order with the last matching rule winning, so a later negation re-includes
// a path excluded by an earlier rule.
type RuleSet struct {
	rules []rule

	// negationAfter[i] is true when any rule with index > i negates.
	negationAfter []bool
}

// Compile builds a RuleSet from ordered pattern lines. Blank lines and
// lines starting with # are ignored. A malformed pattern (for example an
// unbalanced character class) fails compilation.
func Compile(patterns []string) (*RuleSet, error) {
	rs := &RuleSet{}

	for _, raw := range patterns {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		r := rule{pattern: line}

		body := line
		if strings.HasPrefix(body, "!") {
			r.negate = true
			body = body[1:]
		}
		if strings.HasSuffix(body, "/") {
			r.dirOnly = true
			body = strings.TrimSuffix(body, "/")
		}

		// A slash anywhere in the body anchors the pattern to the root;
		// slash-less patterns match at any depth.
		anchored := strings.Contains(body, "/")
		body = strings.TrimPrefix(body, "/")
		if body == "" {
			continue
		}

		selfPatterns := []string{body}
		if !anchored {
			selfPatterns = append(selfPatterns, "**/"+body)
		}

		for _, p := range selfPatterns {
			g, err := glob.Compile(p, '/')
			if err != nil {
				return nil, &PatternError{Pattern: line, Err: err}
			}
			r.self = append(r.self, g)

			d, err := glob.Compile(p+"/**", '/')
			if err != nil {
				return nil, &PatternError{Pattern: line, Err: err}
			}
			r.descendants = append(r.descendants, d)
		}

		rs.rules = append(rs.rules, r)
	}

	rs.negationAfter = make([]bool, len(rs.rules))
	seen := false
	for i := len(rs.rules) - 1; i >= 0; i-- {
		rs.negationAfter[i] = seen
		if rs.rules[i].negate {
			seen = true
		}
	}

	return rs, nil
}

// Match reports whether relPath (forward-slash, repo-relative) is excluded.
func (rs *RuleSet) Match(relPath string, isDir bool) bool {
	excluded, _ := rs.match(relPath, isDir)
	return excluded
}

// Prunable reports whether an excluded directory's subtree can be skipped
// without evaluating its entries. Pruning is unsafe only when a negating
// rule declared after the deciding rule could re-include something beneath.
func (rs *RuleSet) Prunable(relPath string) bool {
	excluded, deciding := rs.match(relPath, true)
	return excluded && !rs.negationAfter[deciding]
}

// match evaluates all rules in order and returns the final decision along
// with the index of the rule that made it.
func (rs *RuleSet) match(relPath string, isDir bool) (excluded bool, deciding int) {
	deciding = -1
	for i, r := range rs.rules {
		if r.matches(relPath, isDir) {
			excluded = !r.negate
			deciding = i
		}
	}
	if deciding < 0 {
		return false, 0
	}
	return excluded, deciding
}

func (r *rule) matches(relPath string, isDir bool) bool {
	// Directory-only rules never match a file directly, but they do match
	// files beneath a matching directory.
	if !r.dirOnly || isDir {
		for _, g := range r.self {
			if g.Match(relPath) {
				return true
			}
		}
	}
	for _, g := range r.descendants {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// Len returns the number of active (non-comment, non-blank) rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }
