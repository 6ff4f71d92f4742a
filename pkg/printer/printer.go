package printer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/common"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
)

const (
	NotConfiguredText      = "⚙️ O sistema está sendo configurado. Tente novamente em alguns minutos."
	DegradedText           = "⏳ O serviço está temporariamente sobrecarregado. Tente um comando mais simples daqui a pouco."
	UnavailableText        = "😕 O assistente está indisponível no momento. Tente novamente em instantes."
	SaveFailedText         = "❌ Não consegui salvar isso. Tente novamente."
	NotUnderstoodText      = "🤔 Não consegui entender. Pode repetir com o valor e a descrição? Ex.: \"Gastei 50 reais no supermercado\"."
	MediaUnavailableText   = "📎 Não consegui baixar sua mídia. Tente enviar novamente."
	AudioNotUnderstoodText = "🎙️ Não consegui entender o áudio. Tente gravar novamente ou envie uma mensagem de texto."
	ImageNotReadText       = "📷 Não consegui ler esta imagem. Tente uma foto mais nítida do comprovante."
	AskDueDayText          = "📅 Em que dia do mês essa conta vence? Me diga um dia entre 1 e 31."
	UnsupportedText        = "Ainda não consigo processar esse tipo de mensagem. Envie texto, áudio ou foto de um comprovante."
)

type Printer struct {
	registrationURL string
}

func NewPrinter(registrationURL string) *Printer {
	return &Printer{
		registrationURL: registrationURL,
	}
}

func (p *Printer) Onboarding(phoneNumber string) string {
	var sb strings.Builder

	sb.WriteString("👋 Olá! Eu sou seu assistente financeiro.\n\n")
	sb.WriteString(fmt.Sprintf("Ainda não encontrei um cadastro para o número %s.\n", phoneNumber))
	sb.WriteString("Para começar a registrar seus gastos por aqui, finalize seu cadastro em:\n")
	sb.WriteString(p.registrationURL)

	return sb.String()
}

func (p *Printer) TransactionConfirmation(tx *database.Transaction) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("✅ %s registrada!\n\n", TransactionTypeLabel(tx.TransactionType)))
	p.writeTransaction(tx, &sb)

	return sb.String()
}

func (p *Printer) ImageTransactionConfirmation(tx *database.Transaction) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🧾 Comprovante lido! %s registrada.\n\n", TransactionTypeLabel(tx.TransactionType)))
	p.writeTransaction(tx, &sb)

	return sb.String()
}

func (p *Printer) BillConfirmation(bill *database.RecurringBill) string {
	var sb strings.Builder

	sb.WriteString("📅 Conta recorrente cadastrada!\n\n")
	sb.WriteString(fmt.Sprintf("📌 %s\n", bill.Name))
	sb.WriteString(fmt.Sprintf("🗓️ Vence todo dia %d", bill.DueDay))

	if bill.Amount.Valid {
		sb.WriteString(fmt.Sprintf("\n💰 %s", FormatMoney(bill.Amount.Decimal)))
	}
	if bill.Category != nil && *bill.Category != "" {
		sb.WriteString(fmt.Sprintf("\n🏷️ %s", *bill.Category))
	}

	sb.WriteString("\n\nVou te lembrar no dia do vencimento.")

	return sb.String()
}

// BillReminder is sent by the sweep. posted is the transaction created for the bill, if any.
func (p *Printer) BillReminder(bill *database.RecurringBill, posted *database.Transaction) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🔔 Lembrete: hoje vence a conta \"%s\"", bill.Name))

	if bill.Amount.Valid {
		sb.WriteString(fmt.Sprintf(" no valor de %s", FormatMoney(bill.Amount.Decimal)))
	}
	sb.WriteString(".")

	if posted != nil {
		sb.WriteString(fmt.Sprintf("\n\nRegistrei a despesa de %s em %s.",
			FormatMoney(posted.Amount), FormatDate(posted.Date)))
	}

	return sb.String()
}

func (p *Printer) writeTransaction(tx *database.Transaction, sb *strings.Builder) {
	category := tx.Category
	if category == "" {
		category = common.DefaultCategory
	}

	sb.WriteString(fmt.Sprintf("💰 %s\n", FormatMoney(tx.Amount)))
	sb.WriteString(fmt.Sprintf("📝 %s\n", tx.Description))
	sb.WriteString(fmt.Sprintf("🏷️ %s\n", category))
	sb.WriteString(fmt.Sprintf("📅 %s", FormatDate(tx.Date)))
}

func TransactionTypeLabel(t database.TransactionType) string {
	if t == database.TransactionTypeIncome {
		return "Receita"
	}

	return "Despesa"
}

// FormatMoney renders an amount as Brazilian currency, e.g. R$ 1.234,56.
func FormatMoney(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	fixed := amount.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	return fmt.Sprintf("%sR$ %s,%s", sign, grouped.String(), fracPart)
}

func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
