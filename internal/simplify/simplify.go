// Package simplify annotates legal jargon with plain-language glosses.
package simplify

import (
	"regexp"
	"strings"
)

type entry struct {
	term      string
	gloss     string
	replace   *regexp.Regexp
	explained *regexp.Regexp
}

// Simplifier rewrites answers so common legal terms carry an inline
// explanation in brackets. The glossary order is fixed and substitutions run
// sequentially over the evolving text, so an inserted gloss that itself
// contains a later term can pick up a second annotation. That matches the
// reference behavior and is a known limitation, not a bug to fix here.
type Simplifier struct {
	entries []entry
}

// glossary pairs jargon with its plain-language explanation, in application
// order.
var glossary = []struct {
	Term  string
	Gloss string
}{
	{"mutatis mutandis", "with necessary changes"},
	{"prima facie", "at first glance / on the surface"},
	{"ipso facto", "by that very fact / automatically"},
	{"bona fide", "genuine / in good faith"},
	{"caveat", "warning / condition"},
	{"suo moto", "on its own / without being asked"},
	{"ad hoc", "temporary / for this specific purpose"},
	{"quorum", "minimum number of members needed"},
	{"resolution", "official decision"},
	{"bylaws", "society rules"},
	{"AGM", "Annual General Meeting (yearly meeting of all members)"},
	{"nominee", "person appointed to represent"},
	{"proxy", "someone authorized to vote on your behalf"},
	{"arrears", "unpaid dues / pending payments"},
	{"audit", "official checking of accounts"},
}

func New() *Simplifier {
	entries := make([]entry, 0, len(glossary))
	for _, g := range glossary {
		quoted := regexp.QuoteMeta(g.Term)
		entries = append(entries, entry{
			term:      g.Term,
			gloss:     g.Gloss,
			replace:   regexp.MustCompile(`(?i)` + quoted),
			explained: regexp.MustCompile(`(?i)` + quoted + `\s*\([^)]*\)`),
		})
	}
	return &Simplifier{entries: entries}
}

// Terms returns the tracked glossary as term → gloss pairs in application
// order.
func (s *Simplifier) Terms() []struct{ Term, Gloss string } {
	out := make([]struct{ Term, Gloss string }, len(s.entries))
	for i, e := range s.entries {
		out[i] = struct{ Term, Gloss string }{e.term, e.gloss}
	}
	return out
}

// Apply replaces each tracked term, case-insensitively, with
// "term (explanation)". A term already followed anywhere in the text by a
// bracketed explanation is left alone so repeated application does not stack
// duplicate glosses.
func (s *Simplifier) Apply(text string) string {
	result := text
	for _, e := range s.entries {
		if e.explained.MatchString(result) {
			continue
		}
		if !strings.Contains(strings.ToLower(result), strings.ToLower(e.term)) {
			continue
		}
		result = e.replace.ReplaceAllString(result, e.term+" ("+e.gloss+")")
	}
	return result
}
