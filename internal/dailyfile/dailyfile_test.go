package dailyfile

import (
	"testing"
	"time"
)

func TestMatch_Prefixes(t *testing.T) {
	for _, name := range []string{
		"real-news-tracker-2024-01-01.json",
		"tracker-data-5.json",
		"test-data-x.json",
		"test-news-tracker-.json",
	} {
		if !Match(name) {
			t.Errorf("Match(%q) = false, want true", name)
		}
	}
}

func TestMatch_Rejects(t *testing.T) {
	for _, name := range []string{
		"notes.txt",
		"tracker-data-5.json.bak",
		"tracker-data-5.JSON",
		"Tracker-data-5.json",
		"master-tracker-log.json",
		"test-5.json",
		"my-tracker-data-5.json",
		"",
	} {
		if Match(name) {
			t.Errorf("Match(%q) = true, want false", name)
		}
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	in := []string{"b.txt", "test-data-b.json", "data", "tracker-data-a.json", "real-news-tracker-x.json"}
	got := Filter(in)
	want := []string{"test-data-b.json", "tracker-data-a.json", "real-news-tracker-x.json"}
	if len(got) != len(want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Filter[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilter_Empty(t *testing.T) {
	if got := Filter(nil); len(got) != 0 {
		t.Errorf("Filter(nil) = %v", got)
	}
}

func TestKind(t *testing.T) {
	cases := map[string]string{
		"real-news-tracker-1.json": "real-news-tracker",
		"tracker-data-1.json":      "tracker-data",
		"test-data-1.json":         "test-data",
		"test-news-tracker-1.json": "test-news-tracker",
	}
	for name, want := range cases {
		got, ok := Kind(name)
		if !ok || got != want {
			t.Errorf("Kind(%q) = %q, %v; want %q", name, got, ok, want)
		}
	}
	if _, ok := Kind("notes.txt"); ok {
		t.Error("Kind(notes.txt) should not match")
	}
}

func TestDate(t *testing.T) {
	d, ok := Date("tracker-data-2024-03-09.json")
	if !ok {
		t.Fatal("expected a date")
	}
	if !d.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", d)
	}
	if _, ok := Date("tracker-data-5.json"); ok {
		t.Error("no date segment should report false")
	}
	if _, ok := Date("tracker-data-2024-13-40.json"); ok {
		t.Error("invalid calendar date should report false")
	}
	if _, ok := Date("notes-2024-01-01.txt"); ok {
		t.Error("non daily file should report false")
	}
}
