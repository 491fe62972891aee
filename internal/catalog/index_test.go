package catalog

import (
	"strings"
	"testing"

	"github.com/paginatto/paginatto-bot/internal/models"
)

func defaultIndex() *Index {
	return New(DefaultItems())
}

func TestInferFamily(t *testing.T) {
	tests := []struct {
		name string
		item models.CatalogItem
		want string
	}{
		{"explicit wins", models.CatalogItem{Family: "Tabib", Name: "whatever"}, "tabib"},
		{"tabib by name", models.CatalogItem{Name: "Tabib Volume 9"}, "tabib"},
		{"airfryer by name", models.CatalogItem{Name: "500 receitas airfryer"}, "airfryer"},
		{"masterchef by name", models.CatalogItem{Name: "Master Chef em casa"}, "masterchef"},
		{"fallback", models.CatalogItem{Name: "Guia de chás"}, "outros"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferFamily(&tt.item); got != tt.want {
				t.Errorf("InferFamily(%q) = %q, want %q", tt.item.Name, got, tt.want)
			}
		})
	}
}

func TestTokensFoldDiacritics(t *testing.T) {
	got := Tokens("Antídoto não é promoção")
	want := []string{"antidoto", "nao", "e", "promocao"}
	if len(got) != len(want) {
		t.Fatalf("Tokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokens = %v, want %v", got, want)
		}
	}
}

func TestFindByText_AccentedQuery(t *testing.T) {
	idx := defaultIndex()

	hits := idx.FindByText("quero o antídoto")
	if len(hits) == 0 || hits[0].SKU != "ANTIDOTO" {
		t.Fatalf("expected ANTIDOTO first, got %v", skus(hits))
	}
}

func TestFindByText_IgnoresStrayArticleTokens(t *testing.T) {
	idx := defaultIndex()

	// "isso não é golpe" carries only articles and stopwords; no item
	// may be resolved from its 1-char fragments.
	if hits := idx.FindByText("isso não é golpe"); len(hits) != 0 {
		t.Fatalf("expected no match, got %v", skus(hits))
	}
	if hits := idx.FindByText("é"); len(hits) != 0 {
		t.Fatalf("single article should not match, got %v", skus(hits))
	}
}

func TestFindByText_DeclaredAlias(t *testing.T) {
	idx := defaultIndex()

	hits := idx.FindByText("tenho interesse em kurima")
	if len(hits) == 0 || hits[0].SKU != "KURIMA" {
		t.Fatalf("expected KURIMA first, got %v", skus(hits))
	}
}

func TestFindByText_PhraseBeatsStrayToken(t *testing.T) {
	idx := defaultIndex()

	// "volume" alone is a token shared by every volume alias; the
	// multi-token phrase "volume 3" must win over the last writer.
	hits := idx.FindByText("quero o volume 3")
	if len(hits) == 0 {
		t.Fatal("expected a match")
	}
	if hits[0].SKU != "TABIB_V3" {
		t.Errorf("expected TABIB_V3 first, got %v", skus(hits))
	}
}

func TestFindByText_AutoVolumeAlias(t *testing.T) {
	idx := defaultIndex()

	hits := idx.FindByText("v2 por favor")
	if len(hits) == 0 || hits[0].SKU != "TABIB_V2" {
		t.Fatalf("expected TABIB_V2 first, got %v", skus(hits))
	}
}

func TestFindByText_NameSubstringFallback(t *testing.T) {
	items := []*models.CatalogItem{
		{SKU: "CHA", Name: "Guia Completo de Chás Medicinais"},
	}
	idx := New(items)

	// No alias token matches ("uia" and "medicina" are not registered
	// tokens), but every input token is a substring of the item name.
	hits := idx.FindByText("uia medicina")
	if len(hits) != 1 || hits[0].SKU != "CHA" {
		t.Fatalf("expected CHA via substring fallback, got %v", skus(hits))
	}

	if hits := idx.FindByText("quantico medicina"); len(hits) != 0 {
		t.Errorf("expected no match, got %v", skus(hits))
	}
}

func TestFindByText_DeduplicatesPreservingOrder(t *testing.T) {
	idx := defaultIndex()

	hits := idx.FindByText("tabib3 tabib 3")
	seen := map[string]int{}
	for _, it := range hits {
		seen[it.SKU]++
	}
	for sku, n := range seen {
		if n > 1 {
			t.Errorf("SKU %s returned %d times", sku, n)
		}
	}
}

func TestAliasCollisionLastWriterWins(t *testing.T) {
	items := []*models.CatalogItem{
		{SKU: "A", Name: "Primeiro", Aliases: []string{"guia"}},
		{SKU: "B", Name: "Segundo", Aliases: []string{"guia"}},
	}
	idx := New(items)

	if got := idx.AliasIndex["guia"]; got != "B" {
		t.Errorf("expected last writer B for shared token, got %s", got)
	}
}

func TestPickFamilyItem(t *testing.T) {
	idx := defaultIndex()

	it := idx.PickFamilyItem("airfryer")
	if it == nil || it.SKU != "AIRFRYER_300" {
		t.Fatalf("expected AIRFRYER_300, got %v", it)
	}
	if idx.PickFamilyItem("inexistente") != nil {
		t.Error("expected nil for unknown family")
	}
}

func TestTabibChoice(t *testing.T) {
	idx := defaultIndex()

	tests := []struct {
		in   string
		want string
	}{
		{"1", "TABIB_V1"},
		{"3", "TABIB_V3"},
		{"5", "TABIB_24_25_BUNDLE"},
		{"6", ""},
		{"0", ""},
		{"12", ""},
	}
	for _, tt := range tests {
		it := idx.TabibChoice(tt.in)
		got := ""
		if it != nil {
			got = it.SKU
		}
		if got != tt.want {
			t.Errorf("TabibChoice(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTabibChoiceFiveFallsBackToFull(t *testing.T) {
	var items []*models.CatalogItem
	for _, it := range DefaultItems() {
		if it.SKU == "TABIB_24_25_BUNDLE" {
			continue
		}
		items = append(items, it)
	}
	idx := New(items)

	it := idx.TabibChoice("5")
	if it == nil || it.SKU != "TABIB_FULL" {
		t.Fatalf("expected TABIB_FULL when bundle missing, got %v", it)
	}
}

func TestTabibMenuText(t *testing.T) {
	idx := defaultIndex()

	menu := idx.TabibMenuText()
	for _, want := range []string{"1) Tabib Volume 1", "4) Tabib Volume 4", "5) Tabib 2025"} {
		if !strings.Contains(menu, want) {
			t.Errorf("menu missing %q:\n%s", want, menu)
		}
	}

	empty := New(nil)
	if !strings.Contains(empty.TabibMenuText(), "1) Tabib (todos)") {
		t.Error("empty catalog should fall back to the static menu")
	}
}

func skus(items []*models.CatalogItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.SKU
	}
	return out
}
