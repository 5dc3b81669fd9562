package sink

import (
	"fmt"
	"testing"
)

func lineNames(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Raw
	}
	return out
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	st := NewStore(4)
	for _, raw := range []string{"a:1|c", "b:2|ms", "c:3|g"} {
		st.Add(Line{Raw: raw})
	}

	got := lineNames(st.Recent())
	want := []string{"a:1|c", "b:2|ms", "c:3|g"}
	if len(got) != len(want) {
		t.Fatalf("Recent() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Recent()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStoreEvictsOldestAtCapacity(t *testing.T) {
	st := NewStore(3)
	for i := 0; i < 10; i++ {
		st.Add(Line{Raw: fmt.Sprintf("n%d:1|c", i)})
	}

	if st.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", st.Len())
	}
	if st.Total() != 10 {
		t.Fatalf("Total() = %d, want 10", st.Total())
	}

	got := lineNames(st.Recent())
	want := []string{"n7:1|c", "n8:1|c", "n9:1|c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Recent()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStoreMinimumCapacity(t *testing.T) {
	st := NewStore(0)
	st.Add(Line{Raw: "a:1|c"})
	st.Add(Line{Raw: "b:1|c"})

	if st.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", st.Len())
	}
	if got := st.Recent()[0].Raw; got != "b:1|c" {
		t.Errorf("Recent()[0] = %q, want b:1|c", got)
	}
}
