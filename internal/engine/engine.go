// Package engine runs the enabled rule set over a lint context and
// assembles the final, deterministic violation list: rules execute on a
// worker pool against the shared read-only context, each rule's output
// is enriched with its metadata, and the merged result is deduplicated
// and stably sorted.
package engine

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/nulog"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/violation"
)

// CrashRuleID is the id of the synthetic diagnostic reported when a
// rule panics. It can be suppressed through the normal disabled list.
const CrashRuleID = "internal_rule_crash"

// Engine executes lint passes. It is safe to reuse across passes; all
// per-pass state lives on the stack of Run.
type Engine struct {
	Registry  *registry.Registry
	Selection registry.Selection

	// Workers bounds rule concurrency. Zero means GOMAXPROCS.
	Workers int

	// Logger receives per-rule debug output. Nil means the default
	// stderr logger.
	Logger *logrus.Logger

	// LogTail, when set, is attached to rule-crash diagnostics so the
	// crashing rule's last log lines travel with the report.
	LogTail *nulog.TailBuffer
}

// New returns an engine over the default registry with the given
// selection.
func New(sel registry.Selection) *Engine {
	return &Engine{
		Registry:  registry.DefaultRegistry(),
		Selection: sel,
	}
}

// Result is the output of one lint pass.
type Result struct {
	// Violations is sorted by (Span.Start, RuleID) and contains no
	// duplicate (RuleID, Span.Start, Span.End, Message) entries.
	Violations []violation.Violation

	// ConfigWarnings reports unknown rule or group names in the
	// selection. The pass proceeds with the best-effort resolution.
	ConfigWarnings []registry.Warning
}

// Run executes every enabled rule against ctx and returns the merged,
// deduplicated, stably sorted violations. A panicking rule contributes
// a single crash diagnostic instead of aborting the pass.
func (e *Engine) Run(ctx *lintctx.Context) Result {
	reg := e.Registry
	if reg == nil {
		reg = registry.DefaultRegistry()
	}
	log := e.Logger
	if log == nil {
		log = nulog.Default()
	}

	rules, warnings := reg.Resolve(e.Selection)

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(rules) {
		workers = len(rules)
	}

	// Per-rule result slots: each worker writes only its own index, so
	// the only cross-goroutine state is the index channel.
	results := make([][]violation.Violation, len(rules))
	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = e.runRule(ctx, rules[i], log)
			}
		}()
	}
	for i := range rules {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	var merged []violation.Violation
	for _, vs := range results {
		merged = append(merged, vs...)
	}
	return Result{
		Violations:     Finalize(merged),
		ConfigWarnings: warnings,
	}
}

// runRule executes one rule, recovering panics into a crash diagnostic
// and enriching the rule's violations with its metadata.
func (e *Engine) runRule(ctx *lintctx.Context, rl rule.Rule, log *logrus.Logger) (out []violation.Violation) {
	meta := rl.Metadata()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("rule", meta.ID).Errorf("rule panicked: %v", r)
			out = e.crashViolation(ctx, meta, r)
		}
	}()

	vs := rl.Check(ctx)
	out = make([]violation.Violation, 0, len(vs))
	for _, v := range vs {
		if v.Span.IsUnknown() {
			// A violation with an unknown span is a bug in the rule;
			// dropping it keeps the emitted stream's span invariant.
			log.WithField("rule", meta.ID).Error("dropped violation with unknown span")
			continue
		}
		if v.RuleID == "" {
			v.RuleID = meta.ID
		}
		v.Severity = e.Selection.Severity(meta)
		if v.DocURL == "" {
			v.DocURL = meta.DocURL
		}
		v.Groups = meta.Groups
		v.File = ctx.Source.Name
		v.Descriptions = violation.Descriptions{Short: meta.Description, Long: meta.LongDescription}
		out = append(out, v)
	}
	return out
}

// crashViolation builds the synthetic diagnostic for a panicking rule.
// It is the one diagnostic allowed to carry the (0, 0) span: there is
// no source location to anchor an internal bug to.
func (e *Engine) crashViolation(ctx *lintctx.Context, meta rule.Metadata, cause any) []violation.Violation {
	for _, d := range e.Selection.Disabled {
		if d == CrashRuleID {
			return nil
		}
	}
	v := violation.Violation{
		RuleID:   CrashRuleID,
		Message:  fmt.Sprintf("rule %s crashed: %v", meta.ID, cause),
		Severity: violation.SeverityError,
		File:     ctx.Source.Name,
	}
	if e.LogTail != nil {
		v.Detail = e.LogTail.String()
	}
	return []violation.Violation{v}
}

// Finalize deduplicates by (RuleID, Span.Start, Span.End, Message) and
// sorts by (Span.Start, RuleID), the engine's output ordering contract.
func Finalize(vs []violation.Violation) []violation.Violation {
	type key struct {
		rule       string
		start, end int
		message    string
	}
	seen := make(map[key]bool, len(vs))
	out := make([]violation.Violation, 0, len(vs))
	for _, v := range vs {
		k := key{v.RuleID, v.Span.Start, v.Span.End, v.Message}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Span.Start != out[j].Span.Start {
			return out[i].Span.Start < out[j].Span.Start
		}
		return out[i].RuleID < out[j].RuleID
	})
	return out
}
