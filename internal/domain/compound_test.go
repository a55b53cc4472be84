package domain

import "testing"

func TestNewRegistryOrderAndCategories(t *testing.T) {
	t.Parallel()

	natural := []string{"Folic Acid", "L-Methionine"}
	synthetic := []string{"Methotrexate"}
	reg := NewRegistry(natural, synthetic)

	natural[0] = "mutated"

	items := reg.Items()
	if len(items) != 3 || reg.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	want := []Compound{
		{Name: "Folic Acid", Category: CategoryNatural},
		{Name: "L-Methionine", Category: CategoryNatural},
		{Name: "Methotrexate", Category: CategorySynthetic},
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("item %d: got %+v, want %+v", i, items[i], want[i])
		}
	}

	items[0].Name = "changed"
	if reg.Items()[0].Name != "Folic Acid" {
		t.Fatalf("registry must not expose its backing slice")
	}
	if !reg.Contains("Methotrexate", CategorySynthetic) {
		t.Fatalf("expected Methotrexate to be registered as synthetic")
	}
	if reg.Contains("Methotrexate", CategoryNatural) {
		t.Fatalf("category must be part of the match")
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	if c, err := ParseCategory("Synthetic"); err != nil || c != CategorySynthetic {
		t.Fatalf("unexpected result %q, %v", c, err)
	}
	if _, err := ParseCategory("synthetic"); err == nil {
		t.Fatalf("expected error for lower-case category")
	}
}
