package rename

import (
	"encoding/json"
	"fmt"
)

// The preset adapter: rule sets cross the persistence boundary as a JSON
// document with a top-level "rules" array. Kind and position travel as their
// string names so stored presets stay readable and stable across releases.

type ruleDoc struct {
	Rules []ruleJSON `json:"rules"`
}

type ruleJSON struct {
	ID     string         `json:"id"`
	Kind   string         `json:"kind"`
	Active bool           `json:"active"`
	Config ruleConfigJSON `json:"config"`
}

type ruleConfigJSON struct {
	Text        string `json:"text,omitempty"`
	Search      string `json:"search,omitempty"`
	Replacement string `json:"replacement,omitempty"`
	Start       int    `json:"start,omitempty"`
	Step        int    `json:"step,omitempty"`
	Digits      int    `json:"digits,omitempty"`
	Format      string `json:"format,omitempty"`
	Position    string `json:"position,omitempty"`
}

// EncodeRules serializes a rule set for the preset store or the session.
func EncodeRules(rs RuleSet) ([]byte, error) {
	doc := ruleDoc{Rules: make([]ruleJSON, 0, rs.Len())}
	for _, r := range rs.Rules() {
		doc.Rules = append(doc.Rules, ruleJSON{
			ID:     r.ID,
			Kind:   r.Kind.String(),
			Active: r.Active,
			Config: ruleConfigJSON{
				Text:        r.Config.Text,
				Search:      r.Config.Search,
				Replacement: r.Config.Replacement,
				Start:       r.Config.Start,
				Step:        r.Config.Step,
				Digits:      r.Config.Digits,
				Format:      r.Config.Format,
				Position:    r.Config.Position.String(),
			},
		})
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding rules: %w", err)
	}
	return data, nil
}

// DecodeRules deserializes a rule set. Order is preserved; unknown kinds or
// positions fail the whole decode.
func DecodeRules(data []byte) (RuleSet, error) {
	var doc ruleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return RuleSet{}, fmt.Errorf("decoding rules: %w", err)
	}

	rules := make([]Rule, 0, len(doc.Rules))
	for _, rj := range doc.Rules {
		kind, err := ParseRuleKind(rj.Kind)
		if err != nil {
			return RuleSet{}, fmt.Errorf("decoding rule %q: %w", rj.ID, err)
		}
		r := Rule{
			ID:     rj.ID,
			Kind:   kind,
			Active: rj.Active,
			Config: RuleConfig{
				Text:        rj.Config.Text,
				Search:      rj.Config.Search,
				Replacement: rj.Config.Replacement,
				Start:       rj.Config.Start,
				Step:        rj.Config.Step,
				Digits:      rj.Config.Digits,
				Format:      rj.Config.Format,
			},
		}
		if rj.Config.Position != "" {
			pos, err := ParsePosition(rj.Config.Position)
			if err != nil {
				return RuleSet{}, fmt.Errorf("decoding rule %q: %w", rj.ID, err)
			}
			r.Config.Position = pos
		}
		rules = append(rules, r)
	}
	return NewRuleSet(rules...), nil
}
