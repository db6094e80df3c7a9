// Package fixapply merges the textual fixes carried by violations into
// a source buffer and iterates lint-then-fix until the buffer is clean,
// a fixed point is reached, or the iteration cap is hit.
package fixapply

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/nulint/nulint/internal/langparser"
	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

// DefaultMaxIterations caps the convergence loop. Reaching the cap is a
// reported outcome, not an error.
const DefaultMaxIterations = 10

// LintFunc re-lints one source buffer. The convergence loop re-parses
// on every iteration, so the callback receives a fresh context.
type LintFunc func(ctx *lintctx.Context) []violation.Violation

// Outcome is the result of the convergence loop.
type Outcome struct {
	// Source is the final buffer after all applied iterations.
	Source span.Source

	// Violations are the diagnostics of the final buffer.
	Violations []violation.Violation

	// Iterations counts applied (not rolled-back) fix rounds.
	Iterations int

	// Applied counts individual replacements applied across rounds.
	Applied int

	// ReachedCap is true when the loop stopped at the iteration cap
	// with fixable violations still present.
	ReachedCap bool

	// RolledBack is true when the last round introduced parse errors
	// and its edits were discarded.
	RolledBack bool

	// CycleDetected is true when a round selected a replacement set
	// already applied in an earlier round.
	CycleDetected bool
}

// candidate is one violation's fix, treated as an atomic unit: either
// all of its replacements apply this round or none do.
type candidate struct {
	ruleID       string
	start        int
	replacements []violation.Replacement
}

// Converge runs lint-fix rounds on src until no fixable violations
// remain, a fixed point or cycle is hit, or DefaultMaxIterations rounds
// were applied.
func Converge(src span.Source, lint LintFunc) Outcome {
	return ConvergeN(src, lint, DefaultMaxIterations)
}

// ConvergeN is Converge with an explicit iteration cap.
func ConvergeN(src span.Source, lint LintFunc, maxIterations int) Outcome {
	cur := src
	ctx := lintctx.New(cur)
	vs := lint(ctx)
	errs := errorCounts(ctx.ParseErrors)

	out := Outcome{}
	seen := make(map[uint64]bool)

	for out.Iterations < maxIterations {
		cands := collectCandidates(vs, len(cur.Text))
		if len(cands) == 0 {
			break
		}
		selected := selectNonOverlapping(cands)
		if len(selected) == 0 {
			break
		}
		h := hashSelection(selected)
		if seen[h] {
			out.CycleDetected = true
			break
		}
		seen[h] = true

		next := span.Source{Name: cur.Name, Text: applyReplacements(cur.Text, selected)}
		nctx := lintctx.New(next)
		nvs := lint(nctx)
		nerrs := errorCounts(nctx.ParseErrors)
		if introducesParseErrors(errs, nerrs) {
			// The round broke the buffer; keep the prior state.
			out.RolledBack = true
			break
		}

		cur, vs, errs = next, nvs, nerrs
		out.Iterations++
		for _, c := range selected {
			out.Applied += len(c.replacements)
		}
	}

	out.Source = cur
	out.Violations = vs
	if out.Iterations == maxIterations && len(collectCandidates(vs, len(cur.Text))) > 0 {
		out.ReachedCap = true
	}
	return out
}

// collectCandidates gathers every violation's fix whose replacements
// all lie inside the current source bounds. Malformed fixes are dropped
// for this iteration; the violation itself remains reportable.
func collectCandidates(vs []violation.Violation, sourceLen int) []candidate {
	var cands []candidate
	for _, v := range vs {
		if !v.IsFixable() {
			continue
		}
		ok := true
		minStart := -1
		for _, r := range v.Fix.Replacements {
			if r.Span.Start < 0 || r.Span.End > sourceLen || r.Span.Start > r.Span.End {
				ok = false
				break
			}
			if minStart < 0 || r.Span.Start < minStart {
				minStart = r.Span.Start
			}
		}
		if !ok {
			continue
		}
		cands = append(cands, candidate{
			ruleID:       v.RuleID,
			start:        minStart,
			replacements: v.Fix.Replacements,
		})
	}
	return cands
}

// selectNonOverlapping filters candidates to a maximal non-overlapping
// subset, preferring lower start offsets and, on ties, the rule id that
// sorts earlier. Exactly adjacent spans do not conflict.
func selectNonOverlapping(cands []candidate) []candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		return cands[i].ruleID < cands[j].ruleID
	})

	var selected []candidate
	var taken []span.Span
	for _, c := range cands {
		conflict := false
		for _, r := range c.replacements {
			for _, t := range taken {
				if r.Span.Overlaps(t) {
					conflict = true
					break
				}
			}
			if conflict {
				break
			}
		}
		if conflict {
			continue
		}
		selected = append(selected, c)
		for _, r := range c.replacements {
			taken = append(taken, r.Span)
		}
	}
	return selected
}

// applyReplacements applies the selected candidates' replacements in
// reverse start order so earlier offsets stay valid while editing.
func applyReplacements(text []byte, selected []candidate) []byte {
	var reps []violation.Replacement
	for _, c := range selected {
		reps = append(reps, c.replacements...)
	}
	sort.SliceStable(reps, func(i, j int) bool {
		return reps[i].Span.Start > reps[j].Span.Start
	})

	out := make([]byte, len(text))
	copy(out, text)
	for _, r := range reps {
		var next []byte
		next = append(next, out[:r.Span.Start]...)
		next = append(next, r.NewText...)
		next = append(next, out[r.Span.End:]...)
		out = next
	}
	return out
}

// hashSelection fingerprints a selected replacement set so a round that
// re-selects an earlier set (two rules undoing each other) terminates
// the loop.
func hashSelection(selected []candidate) uint64 {
	h := fnv.New64a()
	for _, c := range selected {
		fmt.Fprintf(h, "%s|", c.ruleID)
		for _, r := range c.replacements {
			fmt.Fprintf(h, "%d:%d:%s|", r.Span.Start, r.Span.End, r.NewText)
		}
	}
	return h.Sum64()
}

// errorCounts builds a message multiset of parse errors; spans shift
// between iterations, so messages are the stable identity.
func errorCounts(errs []langparser.ParseError) map[string]int {
	counts := make(map[string]int, len(errs))
	for _, e := range errs {
		counts[e.Message]++
	}
	return counts
}

// introducesParseErrors reports whether after has any error message
// more often than before did.
func introducesParseErrors(before, after map[string]int) bool {
	for msg, n := range after {
		if n > before[msg] {
			return true
		}
	}
	return false
}
