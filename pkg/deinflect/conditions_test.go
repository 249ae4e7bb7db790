package deinflect

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		a, b Conditions
		want bool
	}{
		{0, 0, true},
		{0, 0b100, true},
		{0b100, 0, true},
		{0b101, 0b100, true},
		{0b001, 0b110, false},
	}
	for _, tt := range tests {
		if got := Compatible(tt.a, tt.b); got != tt.want {
			t.Errorf("Compatible(%b, %b) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func mustConditions(t *testing.T) *ConditionTable {
	t.Helper()
	ct, err := NewConditionTable(JapaneseConditions())
	if err != nil {
		t.Fatalf("NewConditionTable: %v", err)
	}
	return ct
}

func mustFlags(t *testing.T, ct *ConditionTable, tags ...string) Conditions {
	t.Helper()
	c, err := ct.Flags(tags)
	if err != nil {
		t.Fatalf("Flags(%v): %v", tags, err)
	}
	return c
}

func TestConditionTableResolvesParents(t *testing.T) {
	ct := mustConditions(t)

	if v1, leaves := mustFlags(t, ct, "v1"), mustFlags(t, ct, "v1d", "v1p"); v1 != leaves {
		t.Errorf("Flags(v1) = %b, want %b", v1, leaves)
	}
	v := mustFlags(t, ct, "v")
	if v&mustFlags(t, ct, "v5ss") == 0 {
		t.Error("v does not include v5ss through v5 -> v5s")
	}
	if v&mustFlags(t, ct, "adj-i") != 0 {
		t.Error("v includes adj-i")
	}
	if got := ct.Tags(mustFlags(t, ct, "v1")); !slices.Equal(got, []string{"v1d", "v1p"}) {
		t.Errorf("Tags(v1) = %v", got)
	}
	if got := ct.Format(mustFlags(t, ct, "vk", "-te")); got != "vk -te" {
		t.Errorf("Format = %q", got)
	}
	if n := ct.DictionaryForms().Count(); n != 6 {
		t.Errorf("DictionaryForms has %d leaves, want 6", n)
	}
	if ct.DictionaryForms()&mustFlags(t, ct, "v1p") != 0 {
		t.Error("v1p marked as dictionary form")
	}
}

func TestConditionTableFlagsUnknown(t *testing.T) {
	ct := mustConditions(t)
	if _, err := ct.Flags([]string{"v1", "v9"}); !errors.Is(err, ErrUnknownCondition) {
		t.Errorf("Flags(v9) err = %v, want ErrUnknownCondition", err)
	}
	if got, want := ct.FlagsLenient([]string{"v5", "v5k", "n"}), mustFlags(t, ct, "v5"); got != want {
		t.Errorf("FlagsLenient = %b, want %b", got, want)
	}
}

func TestConditionTableErrors(t *testing.T) {
	tooMany := make([]ConditionDef, 65)
	for i := range tooMany {
		tooMany[i] = ConditionDef{Tag: fmt.Sprintf("c%d", i)}
	}
	tests := []struct {
		name string
		defs []ConditionDef
		want error
	}{
		{"cycle", []ConditionDef{{Tag: "a", SubConditions: []string{"b"}}, {Tag: "b", SubConditions: []string{"a"}}}, ErrConditionCycle},
		{"unknown sub", []ConditionDef{{Tag: "a", SubConditions: []string{"zz"}}}, ErrUnknownCondition},
		{"duplicate", []ConditionDef{{Tag: "a"}, {Tag: "a"}}, ErrDuplicateCondition},
		{"empty tag", []ConditionDef{{Name: "nameless"}}, ErrUnknownCondition},
		{"too many", tooMany, ErrTooManyConditions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConditionTable(tt.defs); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
