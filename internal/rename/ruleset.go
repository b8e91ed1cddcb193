package rename

import "strings"

// RuleSet is an ordered sequence of rules applied left-to-right. It has value
// semantics: every editing operation returns a new RuleSet and leaves the
// receiver untouched, so callers can hold onto old versions safely.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet creates a RuleSet from the given rules. The slice is copied.
func NewRuleSet(rules ...Rule) RuleSet {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return RuleSet{rules: out}
}

// Rules returns a copy of the underlying sequence in order.
func (rs RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of rules, active or not.
func (rs RuleSet) Len() int { return len(rs.rules) }

// ActiveCount returns the number of active rules.
func (rs RuleSet) ActiveCount() int {
	n := 0
	for _, r := range rs.rules {
		if r.Active {
			n++
		}
	}
	return n
}

// Append returns a new RuleSet with the rule added at the end.
func (rs RuleSet) Append(r Rule) RuleSet {
	out := make([]Rule, 0, len(rs.rules)+1)
	out = append(out, rs.rules...)
	out = append(out, r)
	return RuleSet{rules: out}
}

// Remove returns a new RuleSet without the identified rule. Removing an
// unknown id returns the set unchanged.
func (rs RuleSet) Remove(id string) RuleSet {
	out := make([]Rule, 0, len(rs.rules))
	for _, r := range rs.rules {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return RuleSet{rules: out}
}

// MoveDirection says which way a rule is moved within the sequence.
type MoveDirection int

const (
	MoveUp MoveDirection = iota
	MoveDown
)

// Move returns a new RuleSet with the identified rule swapped one position up
// or down. Moving past either end, or moving an unknown id, returns the set
// unchanged. The rule's id never changes; only its position does.
func (rs RuleSet) Move(id string, dir MoveDirection) RuleSet {
	idx := rs.indexOf(id)
	if idx < 0 {
		return rs
	}
	target := idx + 1
	if dir == MoveUp {
		target = idx - 1
	}
	if target < 0 || target >= len(rs.rules) {
		return rs
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	out[idx], out[target] = out[target], out[idx]
	return RuleSet{rules: out}
}

// Toggle returns a new RuleSet with the identified rule's active flag
// flipped. Inactive rules keep their position and id.
func (rs RuleSet) Toggle(id string) RuleSet {
	idx := rs.indexOf(id)
	if idx < 0 {
		return rs
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	out[idx].Active = !out[idx].Active
	return RuleSet{rules: out}
}

// Update returns a new RuleSet with fn applied to a copy of the identified
// rule's config.
func (rs RuleSet) Update(id string, fn func(*RuleConfig)) RuleSet {
	idx := rs.indexOf(id)
	if idx < 0 {
		return rs
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	fn(&out[idx].Config)
	return RuleSet{rules: out}
}

// Position returns the one-based position of the identified rule, or 0 if it
// is not in the set.
func (rs RuleSet) Position(id string) int {
	return rs.indexOf(id) + 1
}

// Label returns the comma-joined kind names of the active rules, used as the
// ledger history reason for a commit applied from the live rule editor.
func (rs RuleSet) Label() string {
	var kinds []string
	for _, r := range rs.rules {
		if r.Active {
			kinds = append(kinds, r.Kind.String())
		}
	}
	return strings.Join(kinds, ", ")
}

func (rs RuleSet) indexOf(id string) int {
	for i, r := range rs.rules {
		if r.ID == id {
			return i
		}
	}
	return -1
}
