package token

import (
	"reflect"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"three dots", "love ... neighbor", "love … neighbor"},
		{"canonical already", "love … neighbor", "love … neighbor"},
		{"outer braces", "{the poor}", "the poor"},
		{"braces and dots", "{a ... b}", "a … b"},
		{"trim", "  word  ", "word"},
		{"plain", "the poor", "the poor"},
		{"lone brace not stripped", "{unbalanced", "{unbalanced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.raw); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{"love ... neighbor", "{the poor}", "  a … b  ", "plain"}
	for _, raw := range inputs {
		once := Clean(raw)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestUppercaseFirst(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"the poor", "The poor"},
		{"The poor", "The poor"},
		{"‘he said", "‘He said"},
		{"123 abc", "123 Abc"},
		{"", ""},
		{"ΘΕΟΣ", "ΘΕΟΣ"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := UppercaseFirst(tt.in); got != tt.want {
				t.Errorf("UppercaseFirst(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestContainsOriginalScript(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"the poor", false},
		{"בְּרֵאשִׁית", true},
		{"λόγος", true},
		{"mixed λόγος text", true},
		{"", false},
	}

	for _, tt := range tests {
		if got := ContainsOriginalScript(tt.in); got != tt.want {
			t.Errorf("ContainsOriginalScript(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVariantsPriorityOrder(t *testing.T) {
	raw := "{the poor ... in spirit}"
	vars := Variants(raw)

	if len(vars) != 5 {
		t.Fatalf("got %d variants, want 5: %+v", len(vars), vars)
	}

	// 1. cleaned
	if vars[0].Split || vars[0].Text() != "the poor … in spirit" {
		t.Errorf("variant 0 = %+v, want cleaned string variant", vars[0])
	}
	// 2. raw (differs from cleaned)
	if vars[1].Split || vars[1].Text() != raw {
		t.Errorf("variant 1 = %+v, want raw string variant", vars[1])
	}
	// 3. split of the cleaned variant
	if !vars[2].Split || !reflect.DeepEqual(vars[2].Parts, []string{"the poor", "in spirit"}) {
		t.Errorf("variant 2 = %+v, want split variant", vars[2])
	}
	// 4-5. uppercase-first form of the cleaned quote, plain then split
	if vars[3].Split || vars[3].Text() != "The poor … in spirit" {
		t.Errorf("variant 3 = %+v, want uppercase-first variant", vars[3])
	}
	if !vars[4].Split || !reflect.DeepEqual(vars[4].Parts, []string{"The poor", "in spirit"}) {
		t.Errorf("variant 4 = %+v, want uppercase-first split variant", vars[4])
	}
}

func TestVariantsUppercaseFallback(t *testing.T) {
	vars := Variants("he loved … his neighbor")

	var texts [][]string
	for _, v := range vars {
		texts = append(texts, v.Parts)
	}

	want := [][]string{
		{"he loved … his neighbor"},
		{"he loved", "his neighbor"},
		{"He loved … his neighbor"},
		{"He loved", "his neighbor"},
	}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("Variants parts = %v, want %v", texts, want)
	}
}

func TestVariantsAlreadyClean(t *testing.T) {
	vars := Variants("The poor")
	if len(vars) != 1 {
		t.Fatalf("got %d variants, want 1: %+v", len(vars), vars)
	}
	if vars[0].Text() != "The poor" {
		t.Errorf("variant = %q", vars[0].Text())
	}
}

func TestSplitEllipsisEdgeCases(t *testing.T) {
	if _, ok := splitEllipsis("no marker"); ok {
		t.Error("splitEllipsis should fail without an ellipsis")
	}
	if _, ok := splitEllipsis("trailing …"); ok {
		t.Error("splitEllipsis should fail with fewer than two parts")
	}
	v, ok := splitEllipsis("a … b … c")
	if !ok || !reflect.DeepEqual(v.Parts, []string{"a", "b", "c"}) {
		t.Errorf("splitEllipsis(a … b … c) = %+v, ok=%v", v, ok)
	}
}
