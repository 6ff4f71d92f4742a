package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/common"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/openai"
)

const rawTextPrompt = "Descreva o conteúdo desta imagem em português. Se houver texto, transcreva-o " +
	"integralmente. Se for um comprovante, recibo ou nota fiscal, destaque valor, data e estabelecimento."

const structuredPromptTemplate = `Analise esta imagem de um comprovante, recibo, nota fiscal ou extrato.
Responda SOMENTE com um objeto JSON, sem texto adicional, no formato:
{"amount": number ou null, "date": "YYYY-MM-DD" ou null, "description": string, "transaction_type": "income" ou "expense", "category": string}
Regras:
- amount é o valor total pago ou recebido, positivo, usando ponto como separador decimal; use null se não for possível identificar.
- transaction_type é "income" para valores recebidos e "expense" para pagamentos.
- category deve ser sempre uma destas: %s.
- description deve ser curta, por exemplo o nome do estabelecimento.`

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02T15:04:05Z07:00",
}

type Extractor struct {
	client VisionClient
	model  string
}

func NewExtractor(
	client VisionClient,
	model string,
) *Extractor {
	return &Extractor{
		client: client,
		model:  model,
	}
}

// ExtractText returns a best-effort description of the image for the conversation log.
func (e *Extractor) ExtractText(
	ctx context.Context,
	image []byte,
	mimeType string,
) (string, error) {
	content, err := e.ask(ctx, rawTextPrompt, image, mimeType, 1000)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(content), nil
}

// ExtractFinancialRecord asks the model for a strict JSON record. A reply that cannot be
// parsed yields a nil record and no error; only upstream failures are returned.
func (e *Extractor) ExtractFinancialRecord(
	ctx context.Context,
	image []byte,
	mimeType string,
) (*FinancialRecord, error) {
	prompt := fmt.Sprintf(structuredPromptTemplate, strings.Join(common.Categories, ", "))

	content, err := e.ask(ctx, prompt, image, mimeType, 500)
	if err != nil {
		return nil, err
	}

	record, err := ParseFinancialRecord(content)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("content", content).Msg("vision model returned unparseable record")
		return nil, nil
	}

	return record, nil
}

func (e *Extractor) ask(
	ctx context.Context,
	prompt string,
	image []byte,
	mimeType string,
	maxTokens int,
) (string, error) {
	if len(image) == 0 {
		return "", errors.Wrap(common.ErrExtractionFailed, "empty image")
	}

	resp, err := e.client.ChatCompletion(ctx, &openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatMessage{
			{
				Role: openai.RoleUser,
				Content: []openai.ContentPart{
					{
						Type: "text",
						Text: prompt,
					},
					{
						Type: "image_url",
						ImageURL: &openai.ImageURL{
							URL: openai.ImageDataURL(mimeType, image),
						},
					},
				},
			},
		},
		MaxTokens:   maxTokens,
		Temperature: lo.ToPtr(0.0),
	})
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "vision request failed"), common.ErrExtractionFailed)
	}

	return resp.Choices[0].Message.Content, nil
}

// ParseFinancialRecord decodes the model's JSON answer, tolerating surrounding code fences.
func ParseFinancialRecord(content string) (*FinancialRecord, error) {
	var parsed structuredRecord

	if err := json.Unmarshal([]byte(StripCodeFence(content)), &parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode record")
	}

	record := &FinancialRecord{
		Description:     strings.TrimSpace(parsed.Description),
		TransactionType: database.TransactionTypeExpense,
		Category:        taxonomyCategory(parsed.Category),
	}

	if t := database.TransactionType(strings.ToLower(strings.TrimSpace(parsed.TransactionType))); t.Valid() {
		record.TransactionType = t
	}

	if amount, ok := parseRecordAmount(parsed.Amount); ok {
		record.Amount = &amount
	}

	if date, ok := parseRecordDate(parsed.Date); ok {
		record.Date = &date
	}

	return record, nil
}

// StripCodeFence removes a markdown code fence wrapped around a model answer.
func StripCodeFence(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		} else {
			content = strings.TrimPrefix(content, "```")
		}

		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}

	return strings.TrimSpace(content)
}

func taxonomyCategory(raw string) string {
	category := common.NormalizeCategory(raw)

	if !lo.Contains(common.Categories, category) {
		return common.DefaultCategory
	}

	return category
}

func parseRecordAmount(raw any) (decimal.Decimal, bool) {
	var amount decimal.Decimal
	var err error

	switch v := raw.(type) {
	case float64:
		amount = decimal.NewFromFloat(v).Round(2)
		if !amount.IsPositive() {
			return decimal.Zero, false
		}
	case string:
		amount, err = common.ParseAmount(v)
		if err != nil {
			return decimal.Zero, false
		}
	default:
		return decimal.Zero, false
	}

	return amount, true
}

func parseRecordDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return database.DateOnly(t), true
		}
	}

	return time.Time{}, false
}
