package rename_test

import (
	"fmt"
	"testing"
	"time"

	"rn-go/internal/rename"
)

func fileNamed(name string) rename.FileRecord {
	return rename.FileRecord{
		ID:           name,
		OriginalName: name,
		CurrentName:  name,
		Content:      []byte(name),
		Size:         int64(len(name)),
	}
}

func activeRule(kind rename.RuleKind, cfg rename.RuleConfig) rename.Rule {
	r := rename.NewRule(kind, "rule-"+kind.String())
	r.Config = cfg
	return r
}

var noon = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

func TestTransform_SingleRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		rule rename.Rule
		want string
	}{
		{
			name: "prefix",
			in:   "photo.jpg",
			rule: activeRule(rename.KindPrefix, rename.RuleConfig{Text: "trip_"}),
			want: "trip_photo.jpg",
		},
		{
			name: "prefix with empty text is a no-op",
			in:   "photo.jpg",
			rule: activeRule(rename.KindPrefix, rename.RuleConfig{}),
			want: "photo.jpg",
		},
		{
			name: "suffix goes before the extension",
			in:   "report.final.docx",
			rule: activeRule(rename.KindSuffix, rename.RuleConfig{Text: "_v2"}),
			want: "report.final_v2.docx",
		},
		{
			name: "suffix with empty text is a no-op",
			in:   "report.docx",
			rule: activeRule(rename.KindSuffix, rename.RuleConfig{}),
			want: "report.docx",
		},
		{
			name: "replace is global and literal",
			in:   "foofoobar.txt",
			rule: activeRule(rename.KindReplace, rename.RuleConfig{Search: "foo", Replacement: "bar"}),
			want: "barbarbar.txt",
		},
		{
			name: "replace treats pattern metacharacters literally",
			in:   "a.b.c.txt",
			rule: activeRule(rename.KindReplace, rename.RuleConfig{Search: ".", Replacement: "-"}),
			want: "a-b-c.txt",
		},
		{
			name: "replace with empty search is a no-op",
			in:   "keep.txt",
			rule: activeRule(rename.KindReplace, rename.RuleConfig{Replacement: "x"}),
			want: "keep.txt",
		},
		{
			name: "replace with unset replacement deletes matches",
			in:   "draft_copy.txt",
			rule: activeRule(rename.KindReplace, rename.RuleConfig{Search: "_copy"}),
			want: "draft.txt",
		},
		{
			name: "numbering pads to the digit width",
			in:   "scan.png",
			rule: activeRule(rename.KindNumbering, rename.RuleConfig{Start: 7, Step: 1, Digits: 4}),
			want: "scan_0007.png",
		},
		{
			name: "numbering never truncates wide values",
			in:   "scan.png",
			rule: activeRule(rename.KindNumbering, rename.RuleConfig{Start: 12345, Step: 1, Digits: 2}),
			want: "scan_12345.png",
		},
		{
			name: "date prefix",
			in:   "notes.md",
			rule: activeRule(rename.KindDate, rename.RuleConfig{Format: "YYYY-MM-DD", Position: rename.PositionPrefix}),
			want: "2024-03-05_notes.md",
		},
		{
			name: "date suffix",
			in:   "notes.md",
			rule: activeRule(rename.KindDate, rename.RuleConfig{Format: "YYYY-MM-DD", Position: rename.PositionSuffix}),
			want: "notes_2024-03-05.md",
		},
		{
			name: "no extension means rules see the whole name",
			in:   "README",
			rule: activeRule(rename.KindSuffix, rename.RuleConfig{Text: "_old"}),
			want: "README_old",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := rename.Transform([]rename.FileRecord{fileNamed(tt.in)}, rename.NewRuleSet(tt.rule), noon)
			if got := out[0].CurrentName; got != tt.want {
				t.Errorf("CurrentName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransform_NumberingFollowsBatchOrder(t *testing.T) {
	t.Parallel()

	files := []rename.FileRecord{fileNamed("a.txt"), fileNamed("b.txt"), fileNamed("c.txt")}
	rules := rename.NewRuleSet(activeRule(rename.KindNumbering, rename.RuleConfig{Start: 1, Step: 1, Digits: 3}))

	out := rename.Transform(files, rules, noon)

	want := []string{"a_001.txt", "b_002.txt", "c_003.txt"}
	for i, w := range want {
		if out[i].CurrentName != w {
			t.Errorf("file %d: CurrentName = %q, want %q", i, out[i].CurrentName, w)
		}
	}

	// Reordering the input changes the numbering outcome: position is
	// decided at apply time, not stored per file.
	reordered := []rename.FileRecord{files[2], files[0], files[1]}
	out = rename.Transform(reordered, rules, noon)

	want = []string{"c_001.txt", "a_002.txt", "b_003.txt"}
	for i, w := range want {
		if out[i].CurrentName != w {
			t.Errorf("reordered file %d: CurrentName = %q, want %q", i, out[i].CurrentName, w)
		}
	}
}

func TestTransform_NumberingStartAndStep(t *testing.T) {
	t.Parallel()

	files := make([]rename.FileRecord, 4)
	for i := range files {
		files[i] = fileNamed(fmt.Sprintf("f%d.dat", i))
	}
	rules := rename.NewRuleSet(activeRule(rename.KindNumbering, rename.RuleConfig{Start: 10, Step: 5, Digits: 3}))

	out := rename.Transform(files, rules, noon)

	want := []string{"f0_010.dat", "f1_015.dat", "f2_020.dat", "f3_025.dat"}
	for i, w := range want {
		if out[i].CurrentName != w {
			t.Errorf("file %d: CurrentName = %q, want %q", i, out[i].CurrentName, w)
		}
	}
}

func TestTransform_RulesComposeInOrder(t *testing.T) {
	t.Parallel()

	prefix := activeRule(rename.KindPrefix, rename.RuleConfig{Text: "new_"})
	replace := activeRule(rename.KindReplace, rename.RuleConfig{Search: "new", Replacement: "old"})

	// replace after prefix sees the prefix's output
	out := rename.Transform([]rename.FileRecord{fileNamed("new.txt")}, rename.NewRuleSet(prefix, replace), noon)
	if got := out[0].CurrentName; got != "old_old.txt" {
		t.Errorf("prefix then replace: CurrentName = %q, want %q", got, "old_old.txt")
	}

	// swapping the order changes the result
	out = rename.Transform([]rename.FileRecord{fileNamed("new.txt")}, rename.NewRuleSet(replace, prefix), noon)
	if got := out[0].CurrentName; got != "new_old.txt" {
		t.Errorf("replace then prefix: CurrentName = %q, want %q", got, "new_old.txt")
	}
}

func TestTransform_InactiveRulesAreSkipped(t *testing.T) {
	t.Parallel()

	inactive := activeRule(rename.KindPrefix, rename.RuleConfig{Text: "x_"})
	inactive.Active = false

	out := rename.Transform([]rename.FileRecord{fileNamed("a.txt")}, rename.NewRuleSet(inactive), noon)
	if got := out[0].CurrentName; got != "a.txt" {
		t.Errorf("CurrentName = %q, want unchanged %q", got, "a.txt")
	}
}

func TestTransform_EmptyRuleSetLeavesNamesAlone(t *testing.T) {
	t.Parallel()

	files := []rename.FileRecord{fileNamed("report.final.docx"), fileNamed("README")}
	out := rename.Transform(files, rename.NewRuleSet(), noon)

	for i, f := range files {
		if out[i].CurrentName != f.CurrentName {
			t.Errorf("file %d: CurrentName = %q, want %q", i, out[i].CurrentName, f.CurrentName)
		}
	}
}

func TestTransform_DateTokensFillFirstOccurrenceOnly(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)

	tests := []struct {
		format string
		want   string
	}{
		{"YYYY-MM-DD", "2024-03-05_x"},
		{"DD-MM-YYYY", "05-03-2024_x"},
		{"YYYYMMDD", "20240305_x"},
		{"YYYY-MM-DD_HH-mm", "2024-03-05_14-07_x"},
		// A repeated token only fills its first instance.
		{"YYYY/YYYY", "2024/YYYY_x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			rule := activeRule(rename.KindDate, rename.RuleConfig{Format: tt.format, Position: rename.PositionPrefix})
			out := rename.Transform([]rename.FileRecord{fileNamed("x")}, rename.NewRuleSet(rule), at)
			if got := out[0].CurrentName; got != tt.want {
				t.Errorf("CurrentName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransform_SharesOneInstantAcrossBatch(t *testing.T) {
	t.Parallel()

	rule := activeRule(rename.KindDate, rename.RuleConfig{Format: "HH-mm", Position: rename.PositionSuffix})
	files := []rename.FileRecord{fileNamed("a"), fileNamed("b"), fileNamed("c")}

	out := rename.Transform(files, rename.NewRuleSet(rule), time.Date(2024, 3, 5, 9, 30, 59, 0, time.UTC))
	for i, f := range out {
		if want := files[i].CurrentName + "_09-30"; f.CurrentName != want {
			t.Errorf("file %d: CurrentName = %q, want %q", i, f.CurrentName, want)
		}
	}
}

func TestTransform_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	files := []rename.FileRecord{fileNamed("a.txt")}
	rename.Transform(files, rename.NewRuleSet(activeRule(rename.KindPrefix, rename.RuleConfig{Text: "p_"})), noon)

	if files[0].CurrentName != "a.txt" {
		t.Errorf("input mutated: CurrentName = %q", files[0].CurrentName)
	}
}

func TestTransform_ReapplyCompounds(t *testing.T) {
	t.Parallel()

	rules := rename.NewRuleSet(activeRule(rename.KindSuffix, rename.RuleConfig{Text: "_v2"}))
	out := rename.Transform([]rename.FileRecord{fileNamed("doc.txt")}, rules, noon)
	out = rename.Transform(out, rules, noon)

	// Re-applying keeps compounding on the previous output; that is the
	// intended behavior, not a bug.
	if got := out[0].CurrentName; got != "doc_v2_v2.txt" {
		t.Errorf("CurrentName = %q, want %q", got, "doc_v2_v2.txt")
	}
}
