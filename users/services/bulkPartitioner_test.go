package services

import (
	"reflect"
	"testing"
)

func TestPartitionRows(t *testing.T) {
	t.Parallel()

	good := validCandidate()
	bad := validCandidate()
	bad.Email = "bad@yahoo.com"

	rows := []RowTaggedCandidate{
		{Row: 2, Data: good},
		{Row: 3, Data: bad},
		{Row: 4, Data: good},
	}

	valid, invalid := PartitionRows(rows)

	if len(valid) != 2 || len(invalid) != 1 {
		t.Fatalf("expected 2 valid / 1 invalid, got %d / %d", len(valid), len(invalid))
	}

	// Both buckets keep original row order and original row numbers.
	if valid[0].Row != 2 || valid[1].Row != 4 {
		t.Fatalf("valid rows out of order: %d, %d", valid[0].Row, valid[1].Row)
	}
	if invalid[0].Row != 3 {
		t.Fatalf("expected invalid row 3, got %d", invalid[0].Row)
	}
	if len(invalid[0].Errors) == 0 {
		t.Fatal("invalid row should carry its violations")
	}
}

func TestPartitionRowsCompleteness(t *testing.T) {
	t.Parallel()

	missingAll := RowTaggedCandidate{Row: 5, Data: CandidateUser{}}
	rows := []RowTaggedCandidate{
		{Row: 2, Data: validCandidate()},
		missingAll,
	}

	valid, invalid := PartitionRows(rows)
	if len(valid)+len(invalid) != len(rows) {
		t.Fatalf("partition lost rows: %d valid + %d invalid != %d total", len(valid), len(invalid), len(rows))
	}

	seen := map[int]bool{}
	for _, r := range valid {
		seen[r.Row] = true
	}
	for _, r := range invalid {
		if seen[r.Row] {
			t.Fatalf("row %d landed in both buckets", r.Row)
		}
		seen[r.Row] = true
	}
}

func TestPartitionRowsEmpty(t *testing.T) {
	t.Parallel()

	valid, invalid := PartitionRows(nil)
	if len(valid) != 0 || len(invalid) != 0 {
		t.Fatalf("expected empty partition, got %v / %v", valid, invalid)
	}
}

func TestPartitionRowsDeterministic(t *testing.T) {
	t.Parallel()

	bad := validCandidate()
	bad.Contact = "123"
	rows := []RowTaggedCandidate{
		{Row: 2, Data: validCandidate()},
		{Row: 3, Data: bad},
	}

	firstValid, firstInvalid := PartitionRows(rows)
	for i := 0; i < 5; i++ {
		valid, invalid := PartitionRows(rows)
		if !reflect.DeepEqual(valid, firstValid) || !reflect.DeepEqual(invalid, firstInvalid) {
			t.Fatal("partition not deterministic")
		}
	}
}
