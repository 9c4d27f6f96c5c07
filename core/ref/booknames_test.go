package ref

import "testing"

func TestNormalizeVariantsShareTitle(t *testing.T) {
	groups := map[string][]string{
		"Genesis":                {"Gen", "gn", "GEN.", "gen", "Gn."},
		"1 Nephi":                {"1 Ne.", "1ne", "1 ne", "1st Nephi", "First Nephi", "Nephi 1", "ne", "Ne."},
		"2 Nephi":                {"2 Ne", "2nd Ne.", "second nephi", "2nephi"},
		"3 Nephi":                {"3 Ne", "3rd Nephi", "Third Ne"},
		"4 Nephi":                {"4 Ne.", "4th Nephi", "fourth nephi"},
		"Doctrine and Covenants": {"D&C", "d&c", "D. and C.", "DC", "Section"},
		"Joseph Smith--Matthew":  {"JS-M", "js-m", "JSM"},
		"Joseph Smith--History":  {"JS-H", "js-h", "JS-Hist", "JSH", "Joseph Smith History"},
		"Words of Mormon":        {"W of M", "w of m", "WofM", "Words of Mormon"},
		"Articles of Faith":      {"A of F", "a of f", "AofF"},
		"Psalms":                 {"Ps", "Psa.", "pslm"},
		"1 Corinthians":          {"1 Cor", "1co", "1st Cor."},
		"Revelation":             {"Rev", "rev."},
		"Moroni":                 {"Moro", "Mor", "Mni"},
		"Lecture":                {"LoF", "Lectures on Faith", "Lec."},
	}

	for want, variants := range groups {
		for _, v := range variants {
			if got := Normalize(v); got != want {
				t.Errorf("Normalize(%q) = %q, want %q", v, got, want)
			}
		}
	}
}

func TestNormalizeSpecialFamiliesBeforeGeneric(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JS-H", "Joseph Smith--History"},
		{"js-h.", "Joseph Smith--History"},
		{"JS-M", "Joseph Smith--Matthew"},
		{"W of M", "Words of Mormon"},
		{"A of F", "Articles of Faith"},
		{"D. AND C.", "Doctrine and Covenants"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAmbiguousNeIsFirstNephi(t *testing.T) {
	for _, in := range []string{"Ne", "ne", "NE.", "N e"} {
		if got := Normalize(in); got != "1 Nephi" {
			t.Errorf("Normalize(%q) = %q, want 1 Nephi", in, got)
		}
	}
}

func TestNormalizeMissReturnsRaw(t *testing.T) {
	for _, in := range []string{"Hezekiah", "Xyz.", "Book of Zed", ""} {
		if got := Normalize(in); got != in {
			t.Errorf("Normalize(%q) = %q, want raw token back", in, got)
		}
		if _, ok := Lookup(in); ok {
			t.Errorf("Lookup(%q) reported a hit", in)
		}
	}
}

func TestNormalizeCanonicalTitlesAreFixedPoints(t *testing.T) {
	for _, title := range Titles() {
		if got := Normalize(title); got != title {
			t.Errorf("Normalize(%q) = %q, canonical titles must map to themselves", title, got)
		}
		if got := Normalize(Normalize(title)); got != title {
			t.Errorf("Normalize is not idempotent on %q: %q", title, got)
		}
	}
}

func TestLookup(t *testing.T) {
	title, ok := Lookup("Hel.")
	if !ok || title != "Helaman" {
		t.Errorf("Lookup(Hel.) = %q, %v", title, ok)
	}
}
