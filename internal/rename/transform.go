package rename

import (
	"fmt"
	"strings"
	"time"
)

// Transform applies the active rules of the set, in order, to every file and
// returns a new slice with only CurrentName changed. It is a pure function:
// for a fixed file order, rule order and timestamp the output is fully
// deterministic. The caller supplies now so that all files in one invocation
// share the same instant for date rules.
//
// The extension (from the last dot to the end, if any) is detached before any
// rule runs and reattached verbatim afterwards; rules only ever see the base.
// Numbering and date outputs depend on the file's position in the files
// argument at call time, not on any stored index.
func Transform(files []FileRecord, rules RuleSet, now time.Time) []FileRecord {
	out := make([]FileRecord, len(files))
	for i, f := range files {
		base, ext := splitExtension(f.CurrentName)
		for _, r := range rules.Rules() {
			if !r.Active {
				continue
			}
			base = applyRule(base, r, i, now)
		}
		f.CurrentName = base + ext
		out[i] = f
	}
	return out
}

// applyRule transforms a base name (extension already removed) through one
// rule. index is the file's 0-based ordinal in the batch.
func applyRule(base string, r Rule, index int, now time.Time) string {
	switch r.Kind {
	case KindPrefix:
		if r.Config.Text != "" {
			return r.Config.Text + base
		}
		return base
	case KindSuffix:
		if r.Config.Text != "" {
			return base + r.Config.Text
		}
		return base
	case KindReplace:
		if r.Config.Search == "" {
			return base
		}
		// Every occurrence, matched literally.
		return strings.ReplaceAll(base, r.Config.Search, r.Config.Replacement)
	case KindNumbering:
		number := r.Config.Start + index*r.Config.Step
		return base + "_" + padNumber(number, r.Config.Digits)
	case KindDate:
		stamp := formatTimestamp(now, r.Config.Format)
		if r.Config.Position == PositionSuffix {
			return base + "_" + stamp
		}
		return stamp + "_" + base
	default:
		panic(fmt.Sprintf("unhandled rule kind: %v", r.Kind))
	}
}

// splitExtension splits a name at its last dot. Names without a dot have an
// empty extension and rules operate on the whole name.
func splitExtension(name string) (base, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx:]
}

// padNumber formats n as a zero-padded decimal of at least width digits.
// Values wider than width are never truncated.
func padNumber(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// dateTokens in substitution order. Each token is substituted once, first
// occurrence only: a format that repeats a token only fills the first
// instance.
var dateTokens = []string{"YYYY", "MM", "DD", "HH", "mm"}

// formatTimestamp substitutes calendar tokens in format with zero-padded
// fields of t.
func formatTimestamp(t time.Time, format string) string {
	values := map[string]string{
		"YYYY": fmt.Sprintf("%04d", t.Year()),
		"MM":   fmt.Sprintf("%02d", int(t.Month())),
		"DD":   fmt.Sprintf("%02d", t.Day()),
		"HH":   fmt.Sprintf("%02d", t.Hour()),
		"mm":   fmt.Sprintf("%02d", t.Minute()),
	}
	out := format
	for _, tok := range dateTokens {
		out = strings.Replace(out, tok, values[tok], 1)
	}
	return out
}
