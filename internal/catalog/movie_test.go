package catalog

import "testing"

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"862", "862"},
		{" 862.0 ", "862"},
		{"1997-08-20", "1997-08-20"},
		{"12.5", "12.5"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CanonicalID(tt.in); got != tt.want {
			t.Errorf("CanonicalID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitlesDistinctSorted(t *testing.T) {
	movies := []Movie{{Title: "Heat"}, {Title: "Alien"}, {Title: "Heat"}}
	got := Titles(movies)
	if len(got) != 2 || got[0] != "Alien" || got[1] != "Heat" {
		t.Fatalf("unexpected titles: %v", got)
	}
}

func TestReleaseYear(t *testing.T) {
	if y := (Movie{ReleaseDate: "1995-10-30"}).ReleaseYear(); y != 1995 {
		t.Fatalf("expected 1995, got %d", y)
	}
	if y := (Movie{}).ReleaseYear(); y != 0 {
		t.Fatalf("expected 0, got %d", y)
	}
}
