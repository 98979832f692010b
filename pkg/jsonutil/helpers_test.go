package jsonutil

import (
	"math"
	"strings"
	"testing"
)

type inner struct {
	V1 float64 `json:"v1"`
	V2 float64 `json:"v2"`
}

type outer struct {
	Name  string `json:"name"`
	Layer inner  `json:"layer"`
	Bars  int    `json:"bars"`
}

func TestDiffNested(t *testing.T) {
	base := outer{Name: "a", Layer: inner{V1: 2000, V2: 2200}, Bars: 10}
	next := base
	next.Layer.V2 = 2500
	next.Bars = 12

	changes, err := Diff(base, next)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d: %v", len(changes), changes)
	}
	if changes[0].Path != "bars" || changes[0].OldValue != "10" || changes[0].NewValue != "12" {
		t.Errorf("unexpected first change: %+v", changes[0])
	}
	if changes[1].Path != "layer.v2" || changes[1].Type != "update" {
		t.Errorf("unexpected second change: %+v", changes[1])
	}
	if got := changes[1].String(); got != "layer.v2: 2200 -> 2500" {
		t.Errorf("String() = %q", got)
	}
}

func TestDiffIdentical(t *testing.T) {
	v := outer{Name: "a", Bars: 3}
	changes, err := Diff(v, v)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("expected no changes, got %v", changes)
	}
}

func TestDiffAddDelete(t *testing.T) {
	changes, err := Diff(map[string]int{"a": 1}, map[string]int{"b": 2})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(changes) != 2 || changes[0].Type != "delete" || changes[1].Type != "add" {
		t.Fatalf("unexpected changes: %+v", changes)
	}
	if got := changes[0].String(); got != "a: removed (was 1)" {
		t.Errorf("String() = %q", got)
	}
}

func TestDiffRejectsNonObjects(t *testing.T) {
	if _, err := Diff([]int{1}, map[string]int{}); err == nil {
		t.Error("expected error for a JSON array")
	}
	if _, err := Diff(map[string]int{}, math.NaN()); err == nil {
		t.Error("expected error for NaN")
	}
}

func TestPretty(t *testing.T) {
	s, err := Pretty(inner{V1: 1, V2: 2})
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(s, "\n  \"v1\": 1") {
		t.Errorf("unexpected output:\n%s", s)
	}
	if _, err := Pretty(math.Inf(1)); err == nil {
		t.Error("expected error for +Inf")
	}
}
