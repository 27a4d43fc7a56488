package room

import "testing"

func TestAvatarURL(t *testing.T) {
	got := AvatarURL("morgana")
	want := "https://avatars.dicebear.com/api/adventurer-neutral/morgana.svg"
	if got != want {
		t.Errorf("AvatarURL() = %q, want %q", got, want)
	}
}

func TestRebuildKeepsOrderAndDuplicates(t *testing.T) {
	got := Rebuild([]string{"edmund", "morgana", "edmund"})
	if len(got) != 3 {
		t.Fatalf("Rebuild() returned %d profiles, want 3", len(got))
	}
	wantNames := []string{"edmund", "morgana", "edmund"}
	for i, p := range got {
		if p.Name != wantNames[i] {
			t.Errorf("Rebuild()[%d].Name = %q, want %q", i, p.Name, wantNames[i])
		}
		if p.AvatarURL != AvatarURL(p.Name) {
			t.Errorf("Rebuild()[%d].AvatarURL = %q, want derived URL", i, p.AvatarURL)
		}
	}
}

func TestRebuildEmpty(t *testing.T) {
	if got := Rebuild(nil); len(got) != 0 {
		t.Errorf("Rebuild(nil) = %v, want empty", got)
	}
}

func TestResolve(t *testing.T) {
	roster := Rebuild([]string{"edmund", "morgana"})

	p, ok := Resolve(roster, "morgana")
	if !ok {
		t.Fatal("Resolve() did not find morgana")
	}
	if p.Name != "morgana" {
		t.Errorf("Resolve().Name = %q, want %q", p.Name, "morgana")
	}

	if _, ok := Resolve(roster, "nobody"); ok {
		t.Error("Resolve() found a profile for an absent name")
	}
}

func TestFallback(t *testing.T) {
	p := Fallback("stranger")
	if p.Name != "stranger" {
		t.Errorf("Fallback().Name = %q, want %q", p.Name, "stranger")
	}
	if p.AvatarURL != AvatarURL("stranger") {
		t.Errorf("Fallback().AvatarURL = %q, want derived URL", p.AvatarURL)
	}
}
