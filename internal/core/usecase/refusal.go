package usecase

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Default denylist: instructional verb phrases combined with violence or
// weapon nouns, plus explicit extremist-material requests. A best-effort
// gate, not a security boundary; any expansion is a policy decision made
// through the operator-supplied policy file, never silently in code.
var defaultRefusalPatterns = []string{
	`(?i)\b(how to|instructions? for|steps? to)\b.{0,40}\b(kill|bomb|attack|assassinat|weapon|explosive|genocide|poison)\b`,
	`(?i)\bextremist (propaganda|recruit|manifesto)\b`,
	`(?i)\bterror(ist)? (manual|guide|tutorial|training)\b`,
}

// RefusalPolicy pattern-matches the raw question against a denylist before
// retrieval proceeds. A match is a hard gate: the handler returns a fixed
// decline with zero citations and skips all downstream processing.
type RefusalPolicy struct {
	patterns []*regexp.Regexp
}

// NewRefusalPolicy builds the policy from the compiled-in default patterns.
func NewRefusalPolicy() *RefusalPolicy {
	policy, err := newRefusalPolicy(defaultRefusalPatterns)
	if err != nil {
		// Defaults are compile-time constants; a failure here is a bug.
		panic(err)
	}
	return policy
}

// LoadRefusalPolicy reads an operator-supplied YAML file with a `patterns`
// list of regular expressions, replacing the defaults wholesale.
func LoadRefusalPolicy(path string) (*RefusalPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read refusal policy: %w", err)
	}

	var file struct {
		Patterns []string `yaml:"patterns"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse refusal policy: %w", err)
	}
	if len(file.Patterns) == 0 {
		return nil, fmt.Errorf("refusal policy %s has no patterns", path)
	}
	return newRefusalPolicy(file.Patterns)
}

func newRefusalPolicy(patterns []string) (*RefusalPolicy, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile refusal pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &RefusalPolicy{patterns: compiled}, nil
}

// IsRefused tests the raw, non-normalized question.
func (rp *RefusalPolicy) IsRefused(question string) bool {
	for _, re := range rp.patterns {
		if re.MatchString(question) {
			return true
		}
	}
	return false
}
