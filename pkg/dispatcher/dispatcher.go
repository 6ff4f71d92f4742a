package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/common"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/metrics"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/openai"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/printer"
)

const (
	RecentTransactionsLimit = 10
	dispatchTemperature     = 0.3
)

type Dispatcher struct {
	client  ChatClient
	repo    Repo
	model   string
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewDispatcher(
	client ChatClient,
	repo Repo,
	model string,
	metrics *metrics.Metrics,
) *Dispatcher {
	return &Dispatcher{
		client:  client,
		repo:    repo,
		model:   model,
		metrics: metrics,
		now:     time.Now,
	}
}

// LoadSnapshot collects the totals, recent transactions and active bills of a user.
func (d *Dispatcher) LoadSnapshot(ctx context.Context, userID string) (*Snapshot, error) {
	totals, err := d.repo.SummarizeTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := d.repo.ListRecentTransactions(ctx, userID, RecentTransactionsLimit)
	if err != nil {
		return nil, err
	}

	bills, err := d.repo.ListActiveBills(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Totals: totals,
		Recent: recent,
		Bills:  bills,
	}, nil
}

// Dispatch never fails: upstream problems are turned into a ReplyResult with a canned text.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	user *database.User,
	text string,
) Result {
	lg := zerolog.Ctx(ctx)

	snapshot, err := d.LoadSnapshot(ctx, user.ID)
	if err != nil {
		d.metrics.Error("dispatcher")
		lg.Err(err).Str("user_id", user.ID).Msg("failed to load financial context, continuing without it")

		snapshot = &Snapshot{}
	}

	return d.DispatchWithSnapshot(ctx, user, text, snapshot)
}

func (d *Dispatcher) DispatchWithSnapshot(
	ctx context.Context,
	user *database.User,
	text string,
	snapshot *Snapshot,
) Result {
	lg := zerolog.Ctx(ctx)

	started := time.Now()
	resp, err := d.client.ChatCompletion(ctx, &openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatMessage{
			{
				Role:    openai.RoleSystem,
				Content: BuildSystemPrompt(user, snapshot, d.now()),
			},
			{
				Role:    openai.RoleUser,
				Content: text,
			},
		},
		Tools:       tools,
		ToolChoice:  openai.ToolChoiceAuto,
		Temperature: lo.ToPtr(dispatchTemperature),
	})
	d.metrics.AIRequest("dispatch", started, err)

	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotConfigured):
			lg.Warn().Err(err).Msg("dispatch model is not configured")
			return ReplyResult{Text: printer.NotConfiguredText}
		case errors.Is(err, common.ErrRateLimited):
			lg.Warn().Err(err).Msg("dispatch model rate limited")
			return ReplyResult{Text: printer.DegradedText}
		default:
			d.metrics.Error("dispatcher")
			lg.Err(err).Msg("dispatch model call failed")
			return ReplyResult{Text: printer.UnavailableText}
		}
	}

	return ParseResponse(ctx, resp)
}

// ParseResponse maps the model's chosen tool call onto a Result. Arguments that cannot be
// decoded are ignored in favour of the model's text.
func ParseResponse(ctx context.Context, resp *openai.ChatCompletionResponse) Result {
	message := resp.Choices[0].Message
	fallback := ReplyResult{Text: strings.TrimSpace(message.Content)}
	if fallback.Text == "" {
		fallback.Text = printer.NotUnderstoodText
	}

	if len(message.ToolCalls) == 0 {
		return fallback
	}

	call := message.ToolCalls[0]

	var result Result
	var err error

	switch call.Function.Name {
	case ToolRegisterTransaction:
		result, err = parseTransaction(call.Function.Arguments)
	case ToolRegisterRecurringBill:
		result, err = parseRecurringBill(call.Function.Arguments)
	default:
		err = errors.Newf("unknown tool %s", call.Function.Name)
	}

	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("tool_call", spew.Sdump(call)).Msg("ignoring malformed tool call")
		return fallback
	}

	return result
}

func parseTransaction(arguments string) (Result, error) {
	var args transactionArgs

	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, errors.Wrap(err, "invalid register_transaction arguments")
	}

	tx := CreateTransaction{
		Description:     strings.TrimSpace(args.Description),
		TransactionType: database.TransactionType(strings.ToLower(strings.TrimSpace(args.TransactionType))),
	}

	if !tx.TransactionType.Valid() {
		tx.TransactionType = database.TransactionTypeExpense
	}

	// a missing or non-numeric amount is passed on as zero and rejected when writing
	if amount, ok := toDecimal(args.Amount); ok {
		tx.Amount = amount
	}

	if category := strings.TrimSpace(args.Category); category != "" {
		tx.Category = lo.ToPtr(common.NormalizeCategory(category))
	}

	return tx, nil
}

func parseRecurringBill(arguments string) (Result, error) {
	var args recurringBillArgs

	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, errors.Wrap(err, "invalid register_recurring_bill arguments")
	}

	bill := CreateRecurringBill{
		Name:   strings.TrimSpace(args.Name),
		DueDay: toInt(args.DueDay),
	}

	if bill.Name == "" {
		return nil, errors.New("recurring bill without name")
	}

	if description := strings.TrimSpace(args.Description); description != "" {
		bill.Description = &description
	}

	if amount, ok := toDecimal(args.Amount); ok && amount.IsPositive() {
		bill.Amount = decimal.NewNullDecimal(amount)
	}

	if category := strings.TrimSpace(args.Category); category != "" {
		bill.Category = lo.ToPtr(common.NormalizeCategory(category))
	}

	return bill, nil
}

func toDecimal(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v).Round(2), true
	case string:
		amount, err := common.ParseAmount(v)
		if err != nil {
			return decimal.Zero, false
		}

		return amount, true
	default:
		return decimal.Zero, false
	}
}

func toInt(raw any) int {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0
		}

		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}

		return n
	default:
		return 0
	}
}

func BuildSystemPrompt(user *database.User, snapshot *Snapshot, now time.Time) string {
	var sb strings.Builder

	name := user.DisplayName
	if name == "" {
		name = "usuário"
	}

	sb.WriteString("Você é um assistente financeiro pessoal que conversa pelo WhatsApp em português do Brasil. ")
	sb.WriteString("Responda de forma curta e amigável.\n")
	sb.WriteString("Quando o usuário informar um gasto ou uma receita, chame register_transaction. ")
	sb.WriteString("Quando ele quiser cadastrar uma conta recorrente, chame register_recurring_bill; ")
	sb.WriteString("se o dia de vencimento não for informado, pergunte antes de cadastrar. ")
	sb.WriteString("Para perguntas sobre as finanças dele, use os dados abaixo.\n\n")

	sb.WriteString(fmt.Sprintf("Data de hoje: %s\n", printer.FormatDate(now)))
	sb.WriteString(fmt.Sprintf("Nome do usuário: %s\n\n", name))

	income := sumByType(snapshot.Totals, database.TransactionTypeIncome)
	expense := sumByType(snapshot.Totals, database.TransactionTypeExpense)

	sb.WriteString(fmt.Sprintf("Total de receitas: %s\n", printer.FormatMoney(income)))
	sb.WriteString(fmt.Sprintf("Total de despesas: %s\n", printer.FormatMoney(expense)))
	sb.WriteString(fmt.Sprintf("Saldo: %s\n", printer.FormatMoney(income.Sub(expense))))

	expenses := lo.Filter(snapshot.Totals, func(item *database.CategoryTotal, _ int) bool {
		return item.TransactionType == database.TransactionTypeExpense
	})
	if len(expenses) > 0 {
		sb.WriteString("\nDespesas por categoria:\n")
		for _, item := range expenses {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", categoryOrDefault(item.Category), printer.FormatMoney(item.Total)))
		}
	}

	recent := snapshot.Recent
	if len(recent) > RecentTransactionsLimit {
		recent = recent[:RecentTransactionsLimit]
	}
	if len(recent) > 0 {
		sb.WriteString("\nÚltimas transações:\n")
		for _, tx := range recent {
			sb.WriteString(fmt.Sprintf("- %s | %s | %s | %s | %s\n",
				printer.FormatDate(tx.Date),
				printer.TransactionTypeLabel(tx.TransactionType),
				printer.FormatMoney(tx.Amount),
				tx.Description,
				categoryOrDefault(tx.Category),
			))
		}
	}

	if len(snapshot.Bills) > 0 {
		sb.WriteString("\nContas recorrentes ativas:\n")
		for _, bill := range snapshot.Bills {
			line := fmt.Sprintf("- %s, vence dia %d", bill.Name, bill.DueDay)
			if bill.Amount.Valid {
				line += ", " + printer.FormatMoney(bill.Amount.Decimal)
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}

func sumByType(totals []*database.CategoryTotal, t database.TransactionType) decimal.Decimal {
	return lo.Reduce(totals, func(acc decimal.Decimal, item *database.CategoryTotal, _ int) decimal.Decimal {
		if item.TransactionType != t {
			return acc
		}

		return acc.Add(item.Total)
	}, decimal.Zero)
}

func categoryOrDefault(category string) string {
	if category == "" {
		return common.DefaultCategory
	}

	return category
}
