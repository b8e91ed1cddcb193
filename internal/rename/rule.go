package rename

import "fmt"

// RuleKind identifies one of the five filename transformation rule types.
// The set is closed: the transformer switches exhaustively over it, so adding
// a kind is a compile-visible change across all consumers.
type RuleKind int

const (
	KindPrefix RuleKind = iota
	KindSuffix
	KindReplace
	KindNumbering
	KindDate
)

// kindNames maps kinds to their wire/display names. These are also the
// strings persisted inside presets, so they must stay stable.
var kindNames = map[RuleKind]string{
	KindPrefix:    "prefix",
	KindSuffix:    "suffix",
	KindReplace:   "replace",
	KindNumbering: "numbering",
	KindDate:      "date",
}

func (k RuleKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("RuleKind(%d)", int(k))
}

// ParseRuleKind converts a kind name back to its RuleKind.
func ParseRuleKind(name string) (RuleKind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown rule kind: %q", name)
}

// Position says where a date string is attached relative to the base name.
type Position int

const (
	PositionPrefix Position = iota
	PositionSuffix
)

func (p Position) String() string {
	if p == PositionSuffix {
		return "suffix"
	}
	return "prefix"
}

// ParsePosition converts a position name back to its Position.
func ParsePosition(name string) (Position, error) {
	switch name {
	case "prefix":
		return PositionPrefix, nil
	case "suffix":
		return PositionSuffix, nil
	}
	return 0, fmt.Errorf("unknown position: %q", name)
}

// RuleConfig holds the union of per-kind settings. Only the fields relevant
// to the rule's kind are consulted; the rest are ignored.
type RuleConfig struct {
	// Prefix / Suffix
	Text string

	// Replace
	Search      string
	Replacement string

	// Numbering
	Start  int
	Step   int
	Digits int

	// Date
	Format   string
	Position Position
}

// Rule is a single parameterized filename transformation step. Construction
// performs no validation: a prefix with empty text or a replace with an empty
// search is structurally valid and acts as a no-op during transformation.
type Rule struct {
	ID     string
	Kind   RuleKind
	Active bool
	Config RuleConfig
}

// NewRule creates an active rule of the given kind with that kind's default
// configuration.
func NewRule(kind RuleKind, id string) Rule {
	r := Rule{ID: id, Kind: kind, Active: true}
	switch kind {
	case KindNumbering:
		r.Config.Start = 1
		r.Config.Step = 1
		r.Config.Digits = 3
	case KindDate:
		r.Config.Format = "YYYY-MM-DD"
		r.Config.Position = PositionPrefix
	}
	return r
}
