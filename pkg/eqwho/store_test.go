package eqwho_test

import (
	"testing"

	"github.com/eqwho/eqwho-go/pkg/eqwho"
)

const sampleWho = `[Wed Oct 16 14:23:45 2024] Players on EverQuest:
[Wed Oct 16 14:23:45 2024] ---------------------------
[Wed Oct 16 14:23:45 2024] [60 Phantasmist] Accosted (Dark Elf) <Denial>
[Wed Oct 16 14:23:45 2024] [ANONYMOUS] Toad
[Wed Oct 16 14:23:45 2024] There are 2 players in Kael Drakkal.`

func parseOne(t *testing.T, text string) eqwho.Snapshot {
	t.Helper()
	for snap := range eqwho.ParseText(text) {
		return snap
	}
	t.Fatal("no snapshot parsed")
	return eqwho.Snapshot{}
}

func TestStore_AddIfNewIsIdempotent(t *testing.T) {
	store := eqwho.NewStore()

	// Parsing the same text twice and inserting both results yields
	// exactly one stored record.
	first := parseOne(t, sampleWho)
	second := parseOne(t, sampleWho)

	if !store.AddIfNew(first) {
		t.Error("first AddIfNew() = false, want true")
	}
	if store.AddIfNew(second) {
		t.Error("second AddIfNew() = true, want duplicate suppression")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestStore_InsertionOrder(t *testing.T) {
	store := eqwho.NewStore()

	a := eqwho.Snapshot{Timestamp: "a", RawText: "raw a"}
	b := eqwho.Snapshot{Timestamp: "b", RawText: "raw b"}
	c := eqwho.Snapshot{Timestamp: "c", RawText: "raw c"}
	for _, snap := range []eqwho.Snapshot{a, b, c} {
		store.AddIfNew(snap)
	}

	all := store.All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d snapshots, want 3", len(all))
	}
	for i, want := range []string{"a", "b", "c"} {
		if all[i].Timestamp != want {
			t.Errorf("All()[%d].Timestamp = %q, want %q", i, all[i].Timestamp, want)
		}
	}
}

func TestStore_ReplaceAll(t *testing.T) {
	store := eqwho.NewStore()
	store.AddIfNew(eqwho.Snapshot{Timestamp: "old", RawText: "old"})

	replacement := []eqwho.Snapshot{
		{Timestamp: "new1", RawText: "new1"},
		{Timestamp: "new2", RawText: "new2"},
	}
	store.ReplaceAll(replacement)

	all := store.All()
	if len(all) != 2 {
		t.Fatalf("Len() after ReplaceAll = %d, want 2", len(all))
	}
	for _, snap := range all {
		if snap.Timestamp == "old" {
			t.Error("ReplaceAll() left an old record behind")
		}
	}

	// The store copies its input: mutating the source slice afterwards
	// must not affect stored contents.
	replacement[0] = eqwho.Snapshot{Timestamp: "mutated", RawText: "mutated"}
	if store.All()[0].Timestamp != "new1" {
		t.Error("ReplaceAll() aliased the caller's slice")
	}
}

func TestStore_Clear(t *testing.T) {
	store := eqwho.NewStore()
	store.AddIfNew(eqwho.Snapshot{Timestamp: "a", RawText: "a"})
	store.Clear()

	if store.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", store.Len())
	}
	if store.AddIfNew(eqwho.Snapshot{Timestamp: "a", RawText: "a"}) != true {
		t.Error("AddIfNew() after Clear = false, want true")
	}
}
