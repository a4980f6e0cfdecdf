package experiment

import (
	"fmt"
	"sort"
	"strings"
)

// RuleCount tallies the predictions made by one rule.
type RuleCount struct {
	Correct   int
	Incorrect int
}

func (c RuleCount) Total() int {
	return c.Correct + c.Incorrect
}

// Accuracy is the fraction of correct predictions, or 0 if none were made.
func (c RuleCount) Accuracy() float64 {
	if c.Total() == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Total())
}

// Tracker accumulates prediction accuracy per rule.
type Tracker struct {
	counts map[string]*RuleCount
}

func NewTracker() *Tracker {
	return &Tracker{counts: make(map[string]*RuleCount)}
}

func (t *Tracker) Record(rule string, correct bool) {
	c, ok := t.counts[rule]
	if !ok {
		c = &RuleCount{}
		t.counts[rule] = c
	}

	if correct {
		c.Correct++
	} else {
		c.Incorrect++
	}
}

// Rules returns the rules seen so far, sorted by name.
func (t *Tracker) Rules() []string {
	rules := make([]string, 0, len(t.counts))
	for rule := range t.counts {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	return rules
}

func (t *Tracker) Count(rule string) RuleCount {
	if c, ok := t.counts[rule]; ok {
		return *c
	}
	return RuleCount{}
}

// Summary renders one line per rule.
func (t *Tracker) Summary() string {
	var sb strings.Builder
	for _, rule := range t.Rules() {
		c := t.counts[rule]
		fmt.Fprintf(&sb, "%s: Correct = %d, Incorrect = %d, Accuracy = %.2f%%\n",
			rule, c.Correct, c.Incorrect, 100*c.Accuracy())
	}
	return sb.String()
}
