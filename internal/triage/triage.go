// Package triage is the rule-based triage classifier: a pure keyword
// matcher over a patient's symptoms and condition text. It is a
// collaborator of the store, never called by it - callers classify
// first and pass the resulting level into Create or Update.
package triage

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/triagedesk/triagedesk/internal/record"
)

//go:embed rules.yaml
var rulesYAML []byte

type ruleLevel struct {
	Level    record.TriageLevel `yaml:"level"`
	Keywords []string           `yaml:"keywords"`
}

type ruleSet struct {
	Levels     []ruleLevel `yaml:"levels"`
	Vocabulary []string    `yaml:"vocabulary"`
}

var rules = mustLoadRules()

func mustLoadRules() ruleSet {
	var rs ruleSet
	if err := yaml.Unmarshal(rulesYAML, &rs); err != nil {
		panic(fmt.Sprintf("triage: embedded rules.yaml is invalid: %v", err))
	}
	return rs
}

// AssignLevel classifies a patient from intake data. Levels are tried
// most severe first; the first keyword contained in the symptoms or the
// condition text decides. Stateless and deterministic.
func AssignLevel(symptoms []string, condition string) record.TriageLevel {
	haystack := strings.ToLower(strings.Join(symptoms, " ") + " " + condition)
	for _, lvl := range rules.Levels {
		for _, kw := range lvl.Keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				return lvl.Level
			}
		}
	}
	return record.TriageStable
}

// Vocabulary returns the controlled symptom list offered at intake.
// The returned slice is a copy.
func Vocabulary() []string {
	out := make([]string, len(rules.Vocabulary))
	copy(out, rules.Vocabulary)
	return out
}

// IsKnownSymptom reports whether s is in the controlled vocabulary,
// case-insensitively.
func IsKnownSymptom(s string) bool {
	for _, v := range rules.Vocabulary {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
