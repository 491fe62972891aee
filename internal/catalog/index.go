package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/paginatto/paginatto-bot/internal/intent"
	"github.com/paginatto/paginatto-bot/internal/models"
)

// Index holds the product catalog and its derived lookup tables. It is
// built once by New and read-only afterwards, so it can be shared across
// requests without locking.
type Index struct {
	Items       []*models.CatalogItem
	BySKU       map[string]*models.CatalogItem
	AliasIndex  map[string]string   // normalized token -> sku
	FamilyIndex map[string][]string // family -> skus, catalog order

	// Multi-token aliases as normalized phrases, most tokens first, so
	// "volume 3" beats any single stray token it shares with another
	// item.
	phrases []phraseAlias
}

type phraseAlias struct {
	phrase string
	sku    string
	tokens int
}

var (
	tokenRe       = regexp.MustCompile(`[a-z0-9]+`)
	tabibVolumeRe = regexp.MustCompile(`volume\s*(\d+)`)
	tabibDigitRe  = regexp.MustCompile(`^[1-5]$`)
)

// Load resolves the catalog from the highest-priority configured source:
// CATALOG_JSON (inline JSON), then CATALOG_PATH (file, default
// catalog.json), then the built-in default list. The first source that
// parses wins; failures are logged and the next source is tried.
func Load() []*models.CatalogItem {
	if raw := strings.TrimSpace(os.Getenv("CATALOG_JSON")); raw != "" {
		items, err := parseItems([]byte(raw))
		if err == nil {
			return items
		}
		log.Printf("⚠️  Failed to parse CATALOG_JSON: %v", err)
	}

	path := strings.TrimSpace(os.Getenv("CATALOG_PATH"))
	if path == "" {
		path = "catalog.json"
	}
	if data, err := os.ReadFile(path); err == nil {
		items, err := parseItems(data)
		if err == nil {
			return items
		}
		log.Printf("⚠️  Failed to parse %s: %v", path, err)
	}

	return DefaultItems()
}

func parseItems(data []byte) ([]*models.CatalogItem, error) {
	var items []*models.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// New builds the index from a catalog item list. Items without a SKU are
// skipped. Alias token collisions keep the last writer, matching how the
// catalog has always resolved shared tokens, but each overwrite is logged
// so a load-order surprise is visible.
func New(items []*models.CatalogItem) *Index {
	idx := &Index{
		BySKU:       make(map[string]*models.CatalogItem),
		AliasIndex:  make(map[string]string),
		FamilyIndex: make(map[string][]string),
	}

	for _, it := range items {
		if it.SKU == "" {
			continue
		}
		it.Family = InferFamily(it)
		idx.Items = append(idx.Items, it)
		idx.BySKU[it.SKU] = it

		aliases := dedupe(append(append([]string{}, it.Aliases...), it.Name))
		if it.Family == "tabib" {
			if m := tabibVolumeRe.FindStringSubmatch(strings.ToLower(it.Name)); m != nil {
				v := m[1]
				aliases = append(aliases, "v"+v, "volume "+v, "tabib "+v)
			}
		}
		for _, a := range aliases {
			toks := Tokens(a)
			if len(toks) > 1 {
				idx.phrases = append(idx.phrases, phraseAlias{
					phrase: strings.Join(toks, " "),
					sku:    it.SKU,
					tokens: len(toks),
				})
			}
			for _, tok := range toks {
				// Single characters ("o", "e", digits) shed by articles and
				// accented words would hijack unrelated messages.
				if len(tok) < 2 {
					continue
				}
				if prev, ok := idx.AliasIndex[tok]; ok && prev != it.SKU {
					log.Printf("⚠️  Alias token %q: %s overwrites %s", tok, it.SKU, prev)
				}
				idx.AliasIndex[tok] = it.SKU
			}
		}

		idx.FamilyIndex[it.Family] = append(idx.FamilyIndex[it.Family], it.SKU)
	}

	sort.SliceStable(idx.phrases, func(i, j int) bool {
		return idx.phrases[i].tokens > idx.phrases[j].tokens
	})

	log.Printf("📚 Catalog indexed: %d items, families: %v", len(idx.Items), idx.Families())
	return idx
}

// InferFamily returns the item's explicit family, or infers one from the
// name. Unrecognized items fall into "outros".
func InferFamily(it *models.CatalogItem) string {
	if fam := strings.ToLower(strings.TrimSpace(it.Family)); fam != "" {
		return fam
	}
	name := strings.ToLower(it.Name)
	switch {
	case strings.Contains(name, "tabib"):
		return "tabib"
	case strings.Contains(name, "airfryer"):
		return "airfryer"
	case strings.Contains(name, "masterchef"), strings.Contains(name, "master chef"):
		return "masterchef"
	}
	return "outros"
}

// Tokens splits text into lowercase, accent-folded alphanumeric tokens,
// so "Antídoto" and "antidoto" index identically.
func Tokens(text string) []string {
	return tokenRe.FindAllString(intent.Fold(strings.ToLower(text)), -1)
}

// FindByText resolves free text to catalog items. Multi-token alias
// phrases are matched first, most specific wins, then every token of
// two or more characters is looked up in the alias index with hits
// collected in token order and deduplicated by SKU. When nothing
// matches, a full-catalog pass returns items whose folded name contains
// every input token as a substring. The first element is the best
// match.
func (idx *Index) FindByText(text string) []*models.CatalogItem {
	toks := Tokens(text)
	normalized := " " + strings.Join(toks, " ") + " "

	var long []string
	for _, t := range toks {
		if len(t) >= 2 {
			long = append(long, t)
		}
	}

	var hits []*models.CatalogItem
	for _, pa := range idx.phrases {
		if strings.Contains(normalized, " "+pa.phrase+" ") {
			if it, ok := idx.BySKU[pa.sku]; ok {
				hits = append(hits, it)
			}
		}
	}
	for _, t := range long {
		if sku, ok := idx.AliasIndex[t]; ok {
			if it, ok := idx.BySKU[sku]; ok {
				hits = append(hits, it)
			}
		}
	}

	if len(hits) == 0 && len(long) > 0 {
		for _, it := range idx.Items {
			name := intent.Fold(strings.ToLower(it.Name))
			all := true
			for _, t := range long {
				if !strings.Contains(name, t) {
					all = false
					break
				}
			}
			if all {
				hits = append(hits, it)
			}
		}
	}

	seen := make(map[string]bool)
	out := hits[:0]
	for _, it := range hits {
		if !seen[it.SKU] {
			out = append(out, it)
			seen[it.SKU] = true
		}
	}
	return out
}

// PickFamilyItem returns the first catalog item registered for a family.
func (idx *Index) PickFamilyItem(family string) *models.CatalogItem {
	skus := idx.FamilyIndex[family]
	if len(skus) == 0 {
		return nil
	}
	return idx.BySKU[skus[0]]
}

// Families lists the known families, catalog order of first appearance.
func (idx *Index) Families() []string {
	var fams []string
	seen := make(map[string]bool)
	for _, it := range idx.Items {
		if !seen[it.Family] {
			fams = append(fams, it.Family)
			seen[it.Family] = true
		}
	}
	return fams
}

// TabibChoice maps a "1".."5" reply to a Tabib volume. Position 5
// resolves to the bundle SKU if present, else the full collection, else
// is unavailable.
func (idx *Index) TabibChoice(num string) *models.CatalogItem {
	if !tabibDigitRe.MatchString(num) {
		return nil
	}
	sku := ""
	switch num {
	case "1":
		sku = "TABIB_V1"
	case "2":
		sku = "TABIB_V2"
	case "3":
		sku = "TABIB_V3"
	case "4":
		sku = "TABIB_V4"
	case "5":
		if _, ok := idx.BySKU["TABIB_24_25_BUNDLE"]; ok {
			sku = "TABIB_24_25_BUNDLE"
		} else {
			sku = "TABIB_FULL"
		}
	}
	return idx.BySKU[sku]
}

// TabibMenuText renders the Tabib volume menu from whatever the catalog
// actually contains.
func (idx *Index) TabibMenuText() string {
	var lines []string
	i := 0
	for _, sku := range []string{"TABIB_V1", "TABIB_V2", "TABIB_V3", "TABIB_V4"} {
		if it, ok := idx.BySKU[sku]; ok {
			i++
			lines = append(lines, fmt.Sprintf("%d) %s", i, it.Name))
		}
	}
	if it, ok := idx.BySKU["TABIB_24_25_BUNDLE"]; ok {
		lines = append(lines, "5) "+it.Name)
	} else if it, ok := idx.BySKU["TABIB_FULL"]; ok {
		lines = append(lines, "5) "+it.Name)
	}
	if len(lines) == 0 {
		lines = []string{"1) Tabib (todos)", "2) Volumes unitários", "3) Voltar"}
	}
	return "Temos estas opções do *Tabib*: \n" +
		strings.Join(lines, "\n") +
		"\nResponda com o número (1–5) ou diga, por ex., 'v3' / 'volume 3'."
}

func dedupe(in []string) []string {
	seen := make(map[string]bool)
	out := in[:0]
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		out = append(out, s)
		seen[s] = true
	}
	return out
}
