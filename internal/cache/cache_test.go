package cache

import (
	"bytes"
	"testing"
)

func TestExistsFalseBeforeSave(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir, 5) {
		t.Fatalf("expected no cache to exist before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ids := [][]byte{
		{1, 1, 1, 0x01},
		{2, 1, 1, 0x03},
		{3, 2, 1, 0x01, 0x02},
	}

	if err := Save(dir, 4, ids); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists(dir, 4) {
		t.Fatalf("expected Exists(4) to be true after Save")
	}

	got, ok, err := Load(dir, 4)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true for an existing cache")
	}
	if len(got) != len(ids) {
		t.Fatalf("got %d records, want %d", len(got), len(ids))
	}
	for i := range ids {
		if !bytes.Equal(got[i], ids[i]) {
			t.Fatalf("record %d mismatch: got %x want %x", i, got[i], ids[i])
		}
	}
}

func TestLoadMissingIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	got, ok, err := Load(dir, 99)
	if err != nil {
		t.Fatalf("unexpected error for a missing cache: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for a missing cache")
	}
	if got != nil {
		t.Fatalf("expected nil ids for a missing cache, got %v", got)
	}
}

func TestSaveOverwritesExistingCache(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, 3, [][]byte{{1, 1, 1, 0x01}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(dir, 3, [][]byte{{2, 1, 1, 0x03}, {3, 1, 1, 0x07}}); err != nil {
		t.Fatalf("Save (overwrite): %v", err)
	}

	got, ok, err := Load(dir, 3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok || len(got) != 2 {
		t.Fatalf("expected the overwritten cache's 2 records, got ok=%v len=%d", ok, len(got))
	}
}
