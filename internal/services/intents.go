package services

import (
	"context"
	"fmt"

	"github.com/paginatto/paginatto-bot/internal/intent"
	"github.com/paginatto/paginatto-bot/internal/models"
	"github.com/paginatto/paginatto-bot/internal/offer"
)

// handleIntent is the stage-independent fallback: one canned reply per
// intent, plus the context mutation that keeps a later bare yes/no
// meaningful.
func (r *Responder) handleIntent(ctx context.Context, phone string, conv *models.ConversationContext, text, detected string) error {
	productName := conv.ProductName
	if productName == "" {
		productName = "seu produto"
	}

	switch detected {
	case intent.Stop, intent.Quit:
		r.send(phone, "Entendido. Vou encerrar por aqui. 🙏 Se mudar de ideia, é só chamar. Boa semana!")
		return r.store.Clear(ctx, phone)

	case intent.Bought:
		r.send(phone, "Obrigada pela compra! 🎉 Qualquer dúvida, estamos à disposição por aqui.")
		return r.store.Clear(ctx, phone)

	case intent.Trust:
		conv.Asked = models.AskedNone
		r.save(ctx, phone, conv)
		r.send(phone, fmt.Sprintf(
			"Entendo sua preocupação. Pode ficar tranquilo(a)! Somos a *%s* (CNPJ **%s**) — empresa real, "+
				"produto **100%% digital (PDF)** e entrega garantida no seu e-mail após aprovação. "+
				"Se preferir, posso enviar o link por aqui também. Qualquer dúvida, é só falar. 🙂",
			r.legalName, r.legalCNPJ))
		return nil

	case intent.Shipping:
		conv.Asked = models.AskedResendLink
		r.save(ctx, phone, conv)
		r.send(phone, "Nosso produto é **100% digital (PDF/e-book)** — não existe frete, rastreio ou envio físico.\n"+
			"Assim que o pagamento é aprovado, você recebe o **link de download** no e-mail cadastrado "+
			"e, se preferir, posso enviar por aqui também. Quer que eu envie por aqui?")
		return nil

	case intent.Payment:
		r.save(ctx, phone, conv)
		r.send(phone, "Aceitamos **PIX** e **cartão** (com parcelamento). Por ser digital, a liberação é **imediata** após aprovação. "+
			"Prefere pagar via PIX ou cartão?")
		return nil

	case intent.Price, intent.Discount, intent.Deadline:
		headline, detail := offer.Build(productName)
		extra := ""
		if detected == intent.Deadline {
			extra = "\n*Validade:* promoções podem ser por tempo limitado."
		}
		conv.Asked = models.AskedApplyOffer
		r.save(ctx, phone, conv)
		r.send(phone, fmt.Sprintf("%s\n%s%s\nQuer que eu gere o link com a condição?", headline, detail, extra))
		return nil

	case intent.Link:
		r.save(ctx, phone, conv)
		r.send(phone, fmt.Sprintf("Perfeito, %s. Você pode comprar pelo nosso site: %s\n"+
			"Você pode conferir no nosso site e qualquer dúvida que você tiver, você pode me falar. 😉",
			conv.Name, r.siteURL))
		return nil

	case intent.ProductInfo:
		r.save(ctx, phone, conv)
		r.send(phone, fmt.Sprintf("O *%s* é um material digital (PDF) com conteúdo prático para aplicar hoje mesmo. "+
			"Se quiser, te envio um resumo e você pode conferir também no site: %s", productName, r.siteURL))
		return nil

	case intent.EmailMissing:
		conv.Asked = models.AskedResendLink
		r.save(ctx, phone, conv)
		r.send(phone, "Se o pagamento já foi aprovado e o e-mail não chegou, confira *Spam/Lixo/Promoções*. "+
			"Se preferir, posso **reencaminhar** o link por aqui. Quer que eu envie agora?")
		return nil

	case intent.Resend:
		conv.Asked = models.AskedResendLink
		r.save(ctx, phone, conv)
		r.send(phone, "Claro! Posso mandar o link por aqui mesmo. Quer que eu envie agora?")
		return nil

	case intent.Greeting:
		r.save(ctx, phone, conv)
		if !conv.ConfirmedOwner {
			r.send(phone, fmt.Sprintf("Oi, aqui é %s da %s. Como posso ajudar?", r.assistantName, r.brandName))
		} else {
			r.send(phone, "Oi! 😊 Como posso ajudar você a finalizar?")
		}
		return nil

	case intent.Thanks:
		r.save(ctx, phone, conv)
		r.send(phone, "Imagina! Qualquer coisa é só chamar. 🙌")
		return nil

	case intent.Yes:
		switch conv.Asked {
		case models.AskedConfirmDesist:
			headline, detail := offer.Build(productName)
			conv.Asked = models.AskedApplyOffer
			r.save(ctx, phone, conv)
			r.send(phone, fmt.Sprintf("%s\n%s\n\nSe preferir, você pode comprar direto pelo nosso site: %s\n"+
				"Qualquer dúvida, me chama aqui. 😉", headline, detail, r.siteURL))
			return nil
		case models.AskedApplyOffer:
			conv.Asked = models.AskedNone
			offer.MarkCheckout(conv, r.offerTTLMin)
			r.save(ctx, phone, conv)
			r.send(phone, fmt.Sprintf("Perfeito! Você pode finalizar pelo nosso site: %s\n"+
				"Você pode conferir no nosso site e qualquer dúvida que você tiver, você pode me falar.", r.siteURL))
			return nil
		case models.AskedResendLink:
			conv.Asked = models.AskedNone
			r.save(ctx, phone, conv)
			r.send(phone, fmt.Sprintf("Aqui está o nosso site para acessar o conteúdo: %s\n"+
				"Se preferir, posso te acompanhar por aqui até dar tudo certo. 🙂", r.siteURL))
			return nil
		}
		// A bare yes with nothing pending falls to the flow fallback.

	case intent.No:
		switch conv.Asked {
		case models.AskedConfirmDesist, models.AskedApplyOffer, models.AskedResendLink:
			conv.Asked = models.AskedNone
			r.save(ctx, phone, conv)
			r.send(phone, "Sem problemas! Se surgir qualquer dúvida, estou por aqui. 😉")
			return nil
		}

	case intent.Unknown:
		r.save(ctx, phone, conv)
		r.send(phone, "Não entendi, pode me dizer novamente?")
		return nil
	}

	// Fallback keyed on the recovery flow that opened the conversation.
	var msg string
	if conv.Flow == models.FlowPixPending {
		msg = fmt.Sprintf("Detectei um PIX pendente de *%s*. Quer que eu reenvie o QR/link agora?", productName)
	} else {
		msg = fmt.Sprintf("Posso te ajudar a concluir *%s*. "+
			"Se quiser, já pode conferir e comprar pelo nosso site: %s\n"+
			"Ou me diga qual dúvida você tem. 🙂", productName, r.siteURL)
	}
	r.save(ctx, phone, conv)
	r.send(phone, msg)
	return nil
}
