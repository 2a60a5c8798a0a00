package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	h := NewHistoryAt(path)
	h.Add("s1", KindSearch, "latest AI news", "am_1", true)
	h.Add("s1", KindRecommend, "sustainable living", "dm_1", false)
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("history file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}

	loaded := NewHistoryAt(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	recent := loaded.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("Recent() returned %d entries, want 2", len(recent))
	}
	if recent[0].Kind != KindRecommend || recent[0].OK || recent[0].Target != "dm_1" {
		t.Errorf("newest entry = %+v", recent[0])
	}
	if recent[1].Query != "latest AI news" || recent[1].SessionID != "s1" || recent[1].ID == "" {
		t.Errorf("oldest entry = %+v", recent[1])
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistoryAt(filepath.Join(t.TempDir(), "none.json"))
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v, want nil for a missing file", err)
	}
}

func TestHistory_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewHistoryAt(path).Load(); err == nil {
		t.Error("Load() should fail on a corrupt file")
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistoryAt("")
	h.Add("s", KindSearch, "q", "", true)
	if err := h.Save(); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if got := h.Queries(); len(got) != 1 || got[0] != "q" {
		t.Errorf("Queries() = %v", got)
	}
}

func TestHistory_Cap(t *testing.T) {
	h := NewHistoryAt("")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	h.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Second)
	}

	for n := 0; n < MaxEntries+10; n++ {
		h.Add("s", KindSearch, "q", "", true)
	}
	if got := len(h.Queries()); got != MaxEntries {
		t.Errorf("kept %d entries, want %d", got, MaxEntries)
	}
	if newest := h.Recent(1)[0]; !newest.Timestamp.Equal(base.Add(time.Duration(MaxEntries+10) * time.Second)) {
		t.Errorf("newest timestamp = %v", newest.Timestamp)
	}
}

func TestHistory_RecentAndClear(t *testing.T) {
	h := NewHistoryAt("")
	for _, q := range []string{"a", "b", "c"} {
		h.Add("s", KindSearch, q, "", true)
	}

	recent := h.Recent(2)
	if len(recent) != 2 || recent[0].Query != "c" || recent[1].Query != "b" {
		t.Errorf("Recent(2) = %+v", recent)
	}
	if got := h.Queries(); len(got) != 3 || got[0] != "a" {
		t.Errorf("Queries() = %v", got)
	}

	h.Clear()
	if got := h.Recent(5); len(got) != 0 {
		t.Errorf("Recent() after Clear = %+v", got)
	}
}
