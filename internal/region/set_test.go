package region

import "testing"

func TestSetTopmostAtPrefersLaterRegions(t *testing.T) {
	s := Set{}.
		Append(NewCircle(50, 50, 20, 10)).
		Append(NewCircle(55, 50, 20, 90))

	// Point inside both circles: the later (topmost) one wins.
	i, ok := s.TopmostAt(52, 50)
	if !ok || i != 1 {
		t.Fatalf("TopmostAt = (%d, %v), want (1, true)", i, ok)
	}

	// Point inside only the first circle.
	i, ok = s.TopmostAt(32, 50)
	if !ok || i != 0 {
		t.Fatalf("TopmostAt = (%d, %v), want (0, true)", i, ok)
	}

	if _, ok := s.TopmostAt(5, 5); ok {
		t.Fatal("TopmostAt outside all regions reported a hit")
	}
}

func TestSetMutationsProduceNewSets(t *testing.T) {
	orig := Set{}.Append(NewCircle(10, 10, 5, 0)).Append(NewCircle(90, 90, 5, 0))

	replaced := orig.Replace(0, NewCircle(20, 20, 5, 0))
	if orig[0].Shared().CenterX != 10 {
		t.Fatal("Replace mutated the original set")
	}
	if replaced[0].Shared().CenterX != 20 {
		t.Fatal("Replace did not update the copy")
	}

	removed := orig.Remove(0)
	if len(orig) != 2 || len(removed) != 1 {
		t.Fatalf("Remove: original %d regions, copy %d; want 2 and 1", len(orig), len(removed))
	}
	if removed[0].Shared().ID != orig[1].Shared().ID {
		t.Fatal("Remove dropped the wrong region")
	}

	// Out-of-range indexes are silent no-ops.
	if got := orig.Remove(7); len(got) != 2 {
		t.Fatal("Remove out of range changed the set")
	}
	if got := orig.Replace(-1, NewCircle(0, 0, 5, 0)); got[0].Shared().CenterX != 10 {
		t.Fatal("Replace out of range changed the set")
	}
}

func TestRegionIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		r := New(Kind(i%3), 50, 50, 20, 50)
		id := r.Shared().ID
		if id == "" {
			t.Fatal("region created with empty ID")
		}
		if seen[id] {
			t.Fatalf("duplicate region ID %q", id)
		}
		seen[id] = true
	}
}

func TestWithIntensityClamps(t *testing.T) {
	r := NewCircle(0, 0, 10, 50)
	if got := WithIntensity(r, 150).Shared().Intensity; got != 100 {
		t.Errorf("intensity = %d, want 100", got)
	}
	if got := WithIntensity(r, -3).Shared().Intensity; got != 0 {
		t.Errorf("intensity = %d, want 0", got)
	}
	if r.Intensity != 50 {
		t.Error("WithIntensity mutated the receiver")
	}
}
