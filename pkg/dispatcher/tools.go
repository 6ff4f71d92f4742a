package dispatcher

import (
	"encoding/json"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/openai"
)

const (
	ToolRegisterTransaction   = "register_transaction"
	ToolRegisterRecurringBill = "register_recurring_bill"
)

var tools = []openai.Tool{
	{
		Type: "function",
		Function: openai.FunctionDefinition{
			Name:        ToolRegisterTransaction,
			Description: "Registra uma transação financeira (gasto ou receita) informada pelo usuário.",
			Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {
    "amount": {"type": "number", "description": "Valor positivo da transação em reais"},
    "description": {"type": "string", "description": "Descrição curta da transação"},
    "category": {"type": "string", "description": "Categoria, por exemplo Alimentação, Transporte, Saúde, Moradia, Educação, Lazer, Vestuário, Tecnologia, Serviços ou Outros"},
    "transaction_type": {"type": "string", "enum": ["income", "expense"], "description": "income para receitas, expense para gastos"}
  },
  "required": ["amount", "description", "transaction_type"]
}`),
		},
	},
	{
		Type: "function",
		Function: openai.FunctionDefinition{
			Name:        ToolRegisterRecurringBill,
			Description: "Cadastra uma conta recorrente mensal, como luz, água, aluguel ou internet.",
			Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {
    "name": {"type": "string", "description": "Nome da conta, por exemplo Conta de Luz"},
    "description": {"type": "string", "description": "Detalhes opcionais"},
    "amount": {"type": "number", "description": "Valor mensal, se conhecido"},
    "due_day": {"type": "integer", "minimum": 1, "maximum": 31, "description": "Dia do mês em que a conta vence"},
    "category": {"type": "string", "description": "Categoria da conta"}
  },
  "required": ["name", "due_day"]
}`),
		},
	},
}
