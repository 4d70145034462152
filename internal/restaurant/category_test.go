package restaurant

import (
	"slices"
	"testing"
)

func TestPrettify(t *testing.T) {
	cases := map[string]string{
		"FastFood": "Fast food",
		"Burger":   "Burger",
		"":         "",
		"ABC":      "A b c",
	}
	for in, want := range cases {
		if got := Prettify(in); got != want {
			t.Fatalf("Prettify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJoinLabels(t *testing.T) {
	tests := []struct {
		name string
		in   []Category
		want string
	}{
		{"sorted and lowered", []Category{Sandwich, Burger}, "Burger, sandwich"},
		{"fast food first", []Category{FastFood, Pizza}, "Fast food, pizza"},
		{"fast food later", []Category{FastFood, Burger}, "Burger, fast food"},
		{"unknown skipped", []Category{"NOODLES", Pasta, Pizza}, "Pasta, pizza"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinLabels(tt.in); got != tt.want {
				t.Fatalf("JoinLabels(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJoinLabelsDoesNotReorderInput(t *testing.T) {
	in := []Category{Sandwich, Burger}
	_ = JoinLabels(in)
	if !slices.Equal(in, []Category{Sandwich, Burger}) {
		t.Fatalf("input reordered: %v", in)
	}
}

func TestParseCategory(t *testing.T) {
	for _, in := range []string{"FAST_FOOD", "fastfood", "Fast food", " fast FOOD "} {
		got, ok := ParseCategory(in)
		if !ok || got != FastFood {
			t.Fatalf("ParseCategory(%q) = %q,%v want FAST_FOOD", in, got, ok)
		}
	}
	if _, ok := ParseCategory("noodles"); ok {
		t.Fatal("ParseCategory(noodles) ok, want false")
	}
	if _, ok := ParseCategory(""); ok {
		t.Fatal("ParseCategory(\"\") ok, want false")
	}
}

func TestAllCategoriesSortedByLabel(t *testing.T) {
	all := AllCategories()
	if len(all) != 15 {
		t.Fatalf("AllCategories len = %d, want 15", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Label() > all[i].Label() {
			t.Fatalf("AllCategories not sorted at %d: %q > %q", i, all[i-1].Label(), all[i].Label())
		}
	}
	if all[0] != Asian {
		t.Fatalf("first category = %q, want ASIAN", all[0])
	}
}

func TestCategoryLabelUnknown(t *testing.T) {
	if Category("NOODLES").Label() != "" || Category("NOODLES").Valid() {
		t.Fatal("unknown category should have no label and be invalid")
	}
	if FastFood.Identifier() != "FastFood" {
		t.Fatalf("Identifier = %q, want FastFood", FastFood.Identifier())
	}
}
