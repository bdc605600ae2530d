package backtrace

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule decides whether a frame should be dropped from a cleaned stack.
// Rules must be idempotent and side-effect-free.
type Rule interface {
	Drop(f Frame) bool
}

// Policy is an ordered set of silencer rules. A frame survives cleaning when
// no rule drops it. The zero value keeps every frame.
type Policy struct {
	rules []Rule
}

// New creates a policy from the given rules, applied in order.
func New(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Keep reports whether the frame survives every rule.
func (p *Policy) Keep(f Frame) bool {
	if p == nil {
		return true
	}
	for _, r := range p.rules {
		if r.Drop(f) {
			return false
		}
	}
	return true
}

// Extend returns a new policy with additional rules appended.
// The receiver is not modified.
func (p *Policy) Extend(rules ...Rule) *Policy {
	merged := make([]Rule, 0, len(p.rules)+len(rules))
	merged = append(merged, p.rules...)
	merged = append(merged, rules...)
	return &Policy{rules: merged}
}

type patternRule struct {
	re *regexp.Regexp
}

func (r patternRule) Drop(f Frame) bool {
	return r.re.MatchString(f.String())
}

// Silence creates a rule dropping frames whose string form matches the
// regular expression. Panics on an invalid pattern, mirroring regexp.MustCompile;
// use Compile for patterns from untrusted input.
func Silence(pattern string) Rule {
	return patternRule{re: regexp.MustCompile(pattern)}
}

// Compile creates a silencer rule from a pattern, reporting invalid syntax
// instead of panicking.
func Compile(pattern string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("backtrace: compile silencer %q: %w", pattern, err)
	}
	return patternRule{re: re}, nil
}

type prefixRule struct {
	prefix string
}

func (r prefixRule) Drop(f Frame) bool {
	return strings.HasPrefix(f.Function, r.prefix)
}

// SilencePrefix creates a rule dropping frames whose fully qualified function
// name starts with the given prefix. Cheaper than a regexp for the common
// package-path silencers.
func SilencePrefix(prefix string) Rule {
	return prefixRule{prefix: prefix}
}

// policyFile is the YAML shape accepted by Load.
type policyFile struct {
	Silence []string `yaml:"silence"`
}

// Load reads a policy from YAML:
//
//	silence:
//	  - '^runtime\.'
//	  - 'internal/queue'
//
// Every entry is compiled as a regular expression over the frame's string
// form.
func Load(r io.Reader) (*Policy, error) {
	var file policyFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("backtrace: decode policy: %w", err)
	}

	rules := make([]Rule, 0, len(file.Silence))
	for _, pattern := range file.Silence {
		rule, err := Compile(pattern)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return New(rules...), nil
}
