package catalog

import "github.com/paginatto/paginatto-bot/internal/models"

// DefaultItems is the built-in catalog, used when neither CATALOG_JSON
// nor the catalog file is available.
func DefaultItems() []*models.CatalogItem {
	return []*models.CatalogItem{
		{
			SKU:         "TABIB_V1",
			Name:        "Tabib Volume 1: Tratamento de Dores e Inflamações",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/166919679:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/tabib-1.png",
			Aliases:     []string{"tabib 1", "tabib1", "v1", "volume 1", "inflamacoes", "tratamento de dores"},
			Description: "Guia para combater dores de cabeça, musculares e articulares, além de inflamações crônicas.",
			Family:      "tabib",
		},
		{
			SKU:         "TABIB_V2",
			Name:        "Tabib Volume 2: Saúde Respiratória e Imunidade",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/166919682:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/tabib-2.png",
			Aliases:     []string{"tabib 2", "tabib2", "v2", "volume 2", "respiratoria", "imunidade"},
			Description: "Focado na saúde respiratória e fortalecimento da imunidade.",
			Family:      "tabib",
		},
		{
			SKU:         "TABIB_V3",
			Name:        "Tabib Volume 3: Saúde Digestiva e Metabólica",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/166919686:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/tabib-3.png",
			Aliases:     []string{"tabib 3", "tabib3", "v3", "volume 3", "digestiva", "metabolica"},
			Description: "Receitas para equilíbrio digestivo e regulação do metabolismo.",
			Family:      "tabib",
		},
		{
			SKU:         "TABIB_V4",
			Name:        "Tabib Volume 4: Saúde Mental e Energética",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/1669197:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/tabib-4.png",
			Aliases:     []string{"tabib 4", "tabib4", "v4", "volume 4", "saude mental", "energia"},
			Description: "Bem-estar emocional, redução do estresse e aumento da energia.",
			Family:      "tabib",
		},
		{
			SKU:         "TABIB_24_25_BUNDLE",
			Name:        "Tabib 2025 + Bônus 19,90 + Tabib 2024",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/184229263:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/tabib-2025-bonus-2024.png",
			Aliases:     []string{"tabib 2025", "tabib 2024", "tabib pacote", "tabib combo", "todos", "bundle"},
			Description: "Pacote com as edições 2025 e 2024.",
			Family:      "tabib",
		},
		{
			SKU:         "TABIB_FULL",
			Name:        "Tabib completo",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/184229277:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/tabib-completo.png",
			Aliases:     []string{"tabib completo", "colecao tabib", "coleção tabib", "bundle tabib", "todos os volumes"},
			Description: "Coletânea com todos os volumes Tabib.",
			Family:      "tabib",
		},
		{
			SKU:         "ANTIDOTO",
			Name:        "Antídoto - Antídotos indígenas",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/166919637:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/antidoto.png",
			Aliases:     []string{"antidoto", "antídoto", "o livro antidoto", "antidotos indigenas"},
			Description: "Receitas inspiradas em saberes indígenas para antídotos naturais.",
			Family:      "outros",
		},
		{
			SKU:         "KURIMA",
			Name:        "Kurimã - Óleos essenciais",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/166919661:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/kurima.png",
			Aliases:     []string{"kurima", "oleos essenciais", "óleos essenciais"},
			Description: "Guia prático de óleos essenciais com receitas e usos seguros.",
			Family:      "outros",
		},
		{
			SKU:         "BALSAMO",
			Name:        "Bálsamo - Pomadas naturais",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/166919668:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/balsamo.png",
			Aliases:     []string{"balsamo", "pomadas naturais", "pomada natural"},
			Description: "Fórmulas de pomadas naturais para dores, feridas e inflamações.",
			Family:      "outros",
		},
		{
			SKU:         "PRESSAO_ALTA_PLAN",
			Name:        "Tratamento Natural Personalizado para Pressão Alta",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/174502432:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/pressao-alta.png",
			Aliases:     []string{"pressao alta", "hipertensao", "tratamento personalizado"},
			Description: "Plano individualizado com alimentação, ervas e exercícios.",
			Family:      "outros",
		},
		{
			SKU:         "AIRFRYER_300",
			Name:        "300 receitas para AirFryer",
			Checkout:    "https://somasoundsolutions.mycartpanda.com/checkout/176702038:1",
			Image:       "https://paginattoebooks.github.io/Paginatto.site.com.br/img/airfryer-300.png",
			Aliases:     []string{"airfryer", "receitas airfryer", "300 receitas"},
			Description: "Coletânea prática de 300 receitas para airfryer.",
			Family:      "airfryer",
		},
	}
}
