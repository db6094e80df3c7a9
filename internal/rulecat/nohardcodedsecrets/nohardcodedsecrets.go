// Package nohardcodedsecrets implements secret detection in script
// source. It scans the buffer with gitleaks' curated pattern database
// and flags API keys, private keys, and credentials committed into
// scripts.
package nohardcodedsecrets

import (
	"strings"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/nulint/nulint/internal/lintctx"
	"github.com/nulint/nulint/internal/registry"
	"github.com/nulint/nulint/internal/rule"
	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/violation"
)

// Rule implements secret detection. The gitleaks detector is built
// lazily on first use and reused across passes; it is internally
// stateless with respect to scanned content.
type Rule struct {
	once     sync.Once
	detector *detect.Detector
}

// New creates a new rule instance.
func New() *Rule {
	return &Rule{}
}

// Metadata returns the rule metadata.
func (r *Rule) Metadata() rule.Metadata {
	return rule.Metadata{
		ID:              "no_hardcoded_secrets",
		Name:            "No Hardcoded Secrets",
		Description:     "Detects hardcoded secrets, API keys, and credentials in scripts",
		LongDescription: "Secrets committed into scripts leak through version control history. Load credentials from the environment or a secret store instead.",
		DocURL:          "https://nulint.dev/rules/no_hardcoded_secrets",
		Category:        rule.CategoryBestPractices,
		DefaultSeverity: violation.SeverityError,
		Groups:          []string{"security"},
	}
}

// Check scans the source buffer for secrets.
func (r *Rule) Check(ctx *lintctx.Context) []violation.Violation {
	r.once.Do(func() {
		if d, err := detect.NewDetectorDefaultConfig(); err == nil {
			r.detector = d
		}
	})
	if r.detector == nil {
		// Without a detector the rule silently contributes nothing.
		return nil
	}

	text := string(ctx.Source.Text)
	findings := r.detector.DetectString(text)
	if len(findings) == 0 {
		return nil
	}

	var out []violation.Violation
	seen := make(map[span.Span]bool)
	for _, finding := range findings {
		idx := strings.Index(text, finding.Secret)
		if idx < 0 {
			continue
		}
		sp := span.Span{Start: idx, End: idx + len(finding.Secret)}
		if seen[sp] {
			continue
		}
		seen[sp] = true

		msg := finding.Description
		if msg == "" {
			msg = "potential secret detected"
		}
		out = append(out, violation.Violation{
			Message: msg,
			Span:    sp,
			Help:    "found " + redact(finding.Secret) + " (pattern: " + finding.RuleID + "); load secrets from the environment instead",
		})
	}
	return out
}

// redact redacts a secret for safe display.
func redact(secret string) string {
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func init() {
	registry.Register(New())
}
