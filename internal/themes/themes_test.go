package themes

import "testing"

func TestAllThemesNonEmpty(t *testing.T) {
	if len(All) == 0 {
		t.Fatal("theme list is empty")
	}
	for _, theme := range All {
		if theme == "" {
			t.Error("found empty theme in list")
		}
	}
}

func TestRandomReturnsKnownTheme(t *testing.T) {
	known := make(map[string]bool, len(All))
	for _, theme := range All {
		known[theme] = true
	}

	for i := 0; i < 100; i++ {
		theme := Random()
		if theme == "" {
			t.Fatal("Random returned empty theme")
		}
		if !known[theme] {
			t.Fatalf("Random returned unknown theme %q", theme)
		}
	}
}
