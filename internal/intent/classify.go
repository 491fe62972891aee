package intent

import "regexp"

// Intent names. Classification never fails: anything unmatched is Unknown.
const (
	Greeting     = "greeting"
	Thanks       = "thanks"
	Stop         = "stop"
	Shipping     = "shipping"
	Payment      = "payment"
	Price        = "price"
	Discount     = "discount"
	Deadline     = "deadline"
	Link         = "link"
	ProductInfo  = "product_info"
	EmailMissing = "email_missing"
	Resend       = "resend"
	Trust        = "trust"
	Yes          = "yes"
	No           = "no"
	Bought       = "bought"
	Quit         = "quit"
	Unknown      = "unknown"
)

type entry struct {
	name     string
	patterns []*regexp.Regexp
}

func compile(pats ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(pats))
	for i, p := range pats {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

var (
	yesPatterns = compile(
		`\bsim\b`, `\bisso\b`, `\bconfirmo\b`, `\bclaro\b`,
		`\bpositivo\b`, `\bafirmativo\b`, `\bcert[oa]\b`,
	)
	noPatterns     = compile(`\bnao\b`, `\bnegativo\b`, `\bnope\b`)
	boughtPatterns = compile(
		`ja comprei`, `\bcomprei\b`, `realizei a compra`, `\bpaguei\b`, `\bfinalizei\b`,
	)
	quitPatterns = compile(
		`\bdesisti\b`, `nao vou`, `nao quero`, `deixa pra depois`,
	)
	stopPatterns = compile(
		`\bpare\b`, `\bpara\b`, `\bstop\b`, `\bcancelar\b`, `\bcancele\b`,
		`\bsair\b`, `\bremover\b`, `\bexcluir\b`, `\bdescadastrar\b`,
		`nao quero (conversar|falar)`, `nao me (chame|incomode|envie|mande)`,
	)
	trustPatterns = compile(
		`\bgolpes?\b`, `\bfraudes?\b`, `\bscam\b`, `\bfake\b`,
		`\bseguranca\b`, `\bsegur[ao]\b`, `\bconfiavel\b`, `\bconfianca\b`,
	)
)

// table is evaluated strictly in order; the position of an intent is its
// priority, so e.g. stop wins over price when a message matches both.
var table = []entry{
	{Greeting, compile(`\b(oi|ola|eai|boa\s+noite|boa\s+tarde|bom\s+dia)\b`)},
	{Thanks, compile(`\bobrigad[oa]\b`, `\bvaleu\b`)},
	{Stop, stopPatterns},
	{Shipping, compile(
		`\b(entrega|frete|prazo|chega|chegada|quando\s+chega|vai\s+chegar)\b`,
		`\b(rastreio|rastreamento|codigo\s+de\s+rastreio|correios|sedex)\b`,
		`\b(endereco|residencia|receber\s+em\s+casa|envio\s+fisico)\b`,
	)},
	{Payment, compile(
		`\bpix\b`, `\bcartao\b`, `\bcredito\b`, `\bdebito\b`, `\bparcel`,
		`formas? de pagamento`, `\bboleto\b`,
	)},
	{Price, compile(`\b(preco|valor|quanto\s+custa|qnto)\b`)},
	{Discount, compile(`\b(desconto|cupom|promocao|oferta)\b`)},
	{Deadline, compile(`\bate\s+quando\b`, `\b(valid[ao]|vence|prazo\s+da\s+promo)\b`)},
	{Link, compile(
		`\blink\b`, `mandar?\s+o?\s*link`, `quero\s+comprar`, `pode\s+aplicar`, `vamos\s+fechar`,
	)},
	{ProductInfo, compile(
		`como\s+funciona`, `o\s+que\s+e\b`, `\bconteudo\b`, `do\s+que\s+se\s+trata`,
	)},
	{EmailMissing, compile(
		`nao\s+(recebi|chegou).*(email|e\s?mail|link)`,
		`cade\s+o\s+(email|e\s?mail|link)`,
	)},
	{Resend, compile(
		`\b(reenvia|reenviar|enviar\s+de\s+novo|manda\s+de\s+novo|mandar\s+novamente)\b`,
	)},
	{Trust, trustPatterns},
}

func anyMatch(text string, pats []*regexp.Regexp) bool {
	for _, p := range pats {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Classify normalizes the text and returns the first intent whose
// pattern list matches, falling back to the legacy yes/no/bought/quit
// checks, then Unknown.
func Classify(text string) string {
	t := Normalize(text)
	for _, e := range table {
		if anyMatch(t, e.patterns) {
			return e.name
		}
	}
	switch {
	case anyMatch(t, yesPatterns):
		return Yes
	case anyMatch(t, noPatterns):
		return No
	case anyMatch(t, boughtPatterns):
		return Bought
	case anyMatch(t, quitPatterns):
		return Quit
	}
	return Unknown
}

// IsYes reports whether the text matches an affirmative pattern. Used by
// the router for the ownership confirmation step.
func IsYes(text string) bool {
	return anyMatch(Normalize(text), yesPatterns)
}

// IsNo reports whether the text matches a negative pattern.
func IsNo(text string) bool {
	return anyMatch(Normalize(text), noPatterns)
}
