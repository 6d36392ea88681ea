package formula

// Catálogo estático de fórmulas: mapeia cada chave de métrica emitida pelo
// sistema para o texto da fórmula e os metadados de documentação exibidos em
// tooltips. Construído na carga do pacote e nunca mutado; leitura concorrente
// é segura.

// Chaves de métrica conhecidas. Toda chave emitida pelo agregador de snapshot
// ou pelo motor de alertas precisa existir aqui (propriedade coberta por
// teste).
const (
	MetricNetRevenue          = "netRevenue"
	MetricMarginPercent       = "marginPercent"
	MetricNoShowRate          = "noShowRate"
	MetricIdleRate            = "idleRate"
	MetricFinancialImpact     = "financialImpact"
	MetricRevPAS              = "revpas"
	MetricRevPASDrop7d        = "revpasDrop7d"
	MetricCashConversionCycle = "cashConversionCycle"
	MetricWorkingCapitalNeed  = "workingCapitalNeed"
	MetricPaybackCAC          = "paybackCac"
	MetricNetLTV              = "netLtv"
	MetricNetRevenueRetention = "netRevenueRetention"
	MetricNetPromoterScore    = "netPromoterScore"
	MetricBreakEvenVolume     = "breakEvenVolume"
	MetricMarginPerMinute     = "marginPerMinute"
	MetricOpportunityCost     = "opportunityCost"
	MetricNormalizedEBITDA    = "normalizedEbitda"
	MetricCACRevPASRatio      = "cacRevpasRatio"
)

// FallbackMetricKey é a chave genérica usada quando uma chave desconhecida
// chega de fora (tooltip nunca pode quebrar a avaliação).
const FallbackMetricKey = MetricFinancialImpact

// Definition documenta uma métrica: fórmula e textos por idioma.
type Definition struct {
	MetricKey string            `json:"metric_key"`
	Formula   string            `json:"formula"`
	Name      map[string]string `json:"name"`
	Legend    map[string]string `json:"legend"`
}

var catalog = map[string]Definition{
	MetricNetRevenue: {
		MetricKey: MetricNetRevenue,
		Formula:   "entradas - cancelamentos - (0,35 x ticket médio x no-shows)",
		Name:      map[string]string{"pt": "Receita líquida", "en": "Net revenue"},
		Legend: map[string]string{
			"pt": "Entradas do período descontando cancelamentos e a inadimplência estimada de no-shows.",
			"en": "Period inflow minus cancellations and the estimated no-show delinquency.",
		},
	},
	MetricMarginPercent: {
		MetricKey: MetricMarginPercent,
		Formula:   "(receita líquida - custos variáveis - proxy de custo fixo) / receita bruta x 100",
		Name:      map[string]string{"pt": "Margem operacional", "en": "Operating margin"},
		Legend: map[string]string{
			"pt": "Percentual da receita bruta que sobra após custos variáveis e o proxy de custo fixo.",
			"en": "Share of gross revenue left after variable costs and the fixed-cost proxy.",
		},
	},
	MetricNoShowRate: {
		MetricKey: MetricNoShowRate,
		Formula:   "no-shows / agendamentos x 100",
		Name:      map[string]string{"pt": "Taxa de no-show", "en": "No-show rate"},
		Legend: map[string]string{
			"pt": "Percentual de agendamentos em que o paciente não compareceu.",
			"en": "Share of appointments where the patient did not attend.",
		},
	},
	MetricIdleRate: {
		MetricKey: MetricIdleRate,
		Formula:   "slots vazios / slots disponíveis x 100",
		Name:      map[string]string{"pt": "Ociosidade da agenda", "en": "Idle capacity rate"},
		Legend: map[string]string{
			"pt": "Percentual da capacidade de agenda que ficou sem ocupação.",
			"en": "Share of available slots left unoccupied.",
		},
	},
	MetricFinancialImpact: {
		MetricKey: MetricFinancialImpact,
		Formula:   "slots vazios x ticket médio",
		Name:      map[string]string{"pt": "Impacto financeiro", "en": "Financial impact"},
		Legend: map[string]string{
			"pt": "Custo de oportunidade estimado da capacidade não utilizada.",
			"en": "Estimated opportunity cost of unused capacity.",
		},
	},
	MetricRevPAS: {
		MetricKey: MetricRevPAS,
		Formula:   "receita / slots disponíveis",
		Name:      map[string]string{"pt": "RevPAS", "en": "RevPAS"},
		Legend: map[string]string{
			"pt": "Receita por slot disponível de agenda.",
			"en": "Revenue per available schedule slot.",
		},
	},
	MetricRevPASDrop7d: {
		MetricKey: MetricRevPASDrop7d,
		Formula:   "(RevPAS atual - RevPAS 7d) / RevPAS atual x 100",
		Name:      map[string]string{"pt": "Queda de RevPAS (7 dias)", "en": "RevPAS drop (7 days)"},
		Legend: map[string]string{
			"pt": "Variação do RevPAS dos últimos 7 dias frente ao período completo.",
			"en": "Trailing-7-day RevPAS variation against the full period.",
		},
	},
	MetricCashConversionCycle: {
		MetricKey: MetricCashConversionCycle,
		Formula:   "prazo de recebimento + prazo de estoque - prazo de pagamento",
		Name:      map[string]string{"pt": "Ciclo de conversão de caixa", "en": "Cash conversion cycle"},
		Legend: map[string]string{
			"pt": "Dias entre desembolso e recebimento do caixa da operação.",
			"en": "Days between cash outlay and cash collection.",
		},
	},
	MetricWorkingCapitalNeed: {
		MetricKey: MetricWorkingCapitalNeed,
		Formula:   "recebíveis + estoque - contas a pagar",
		Name:      map[string]string{"pt": "Necessidade de capital de giro", "en": "Working capital need"},
		Legend: map[string]string{
			"pt": "Capital preso na operação para sustentar o ciclo de caixa.",
			"en": "Capital tied up to sustain the cash cycle.",
		},
	},
	MetricPaybackCAC: {
		MetricKey: MetricPaybackCAC,
		Formula:   "CAC / max(1, margem de contribuição média)",
		Name:      map[string]string{"pt": "Payback do CAC", "en": "CAC payback"},
		Legend: map[string]string{
			"pt": "Meses de margem de contribuição para recuperar o custo de aquisição.",
			"en": "Months of contribution margin needed to recover acquisition cost.",
		},
	},
	MetricNetLTV: {
		MetricKey: MetricNetLTV,
		Formula:   "(ticket médio x frequência x retenção) - (custo variável + CAC)",
		Name:      map[string]string{"pt": "LTV líquido", "en": "Net LTV"},
		Legend: map[string]string{
			"pt": "Valor líquido gerado por paciente ao longo do relacionamento.",
			"en": "Net value generated per patient over the relationship.",
		},
	},
	MetricNetRevenueRetention: {
		MetricKey: MetricNetRevenueRetention,
		Formula:   "receita atual da base / max(1, receita anterior da base) x 100",
		Name:      map[string]string{"pt": "Retenção líquida de receita", "en": "Net revenue retention"},
		Legend: map[string]string{
			"pt": "Evolução da receita da base existente entre períodos.",
			"en": "Existing-base revenue evolution between periods.",
		},
	},
	MetricNetPromoterScore: {
		MetricKey: MetricNetPromoterScore,
		Formula:   "(promotores - detratores) / max(1, respostas) x 100",
		Name:      map[string]string{"pt": "NPS", "en": "NPS"},
		Legend: map[string]string{
			"pt": "Saldo percentual entre promotores e detratores.",
			"en": "Percentage balance between promoters and detractors.",
		},
	},
	MetricBreakEvenVolume: {
		MetricKey: MetricBreakEvenVolume,
		Formula:   "custos fixos / max(1, ticket médio)",
		Name:      map[string]string{"pt": "Ponto de equilíbrio", "en": "Break-even volume"},
		Legend: map[string]string{
			"pt": "Quantidade de atendimentos para cobrir os custos fixos.",
			"en": "Appointments needed to cover fixed costs.",
		},
	},
	MetricMarginPerMinute: {
		MetricKey: MetricMarginPerMinute,
		Formula:   "(ticket - custo variável) / duração em minutos",
		Name:      map[string]string{"pt": "Margem por minuto", "en": "Margin per minute"},
		Legend: map[string]string{
			"pt": "Margem de contribuição por minuto de cadeira ocupada.",
			"en": "Contribution margin per occupied chair minute.",
		},
	},
	MetricOpportunityCost: {
		MetricKey: MetricOpportunityCost,
		Formula:   "slots vazios x ticket médio",
		Name:      map[string]string{"pt": "Custo de oportunidade", "en": "Opportunity cost"},
		Legend: map[string]string{
			"pt": "Receita estimada perdida com slots sem ocupação.",
			"en": "Estimated revenue lost to unoccupied slots.",
		},
	},
	MetricNormalizedEBITDA: {
		MetricKey: MetricNormalizedEBITDA,
		Formula:   "resultado operacional + retiradas dos sócios - salário de mercado",
		Name:      map[string]string{"pt": "EBITDA normalizado", "en": "Normalized EBITDA"},
		Legend: map[string]string{
			"pt": "Resultado operacional com a remuneração dos sócios ajustada a mercado.",
			"en": "Operating result with owner pay normalized to market rate.",
		},
	},
	MetricCACRevPASRatio: {
		MetricKey: MetricCACRevPASRatio,
		Formula:   "CAC / RevPAS",
		Name:      map[string]string{"pt": "CAC sobre RevPAS", "en": "CAC over RevPAS"},
		Legend: map[string]string{
			"pt": "Quantos slots de receita um paciente novo custa para ser adquirido.",
			"en": "How many revenue slots a new patient costs to acquire.",
		},
	},
}

// GetFormula retorna a definição da métrica. Chave desconhecida resolve para
// a definição genérica de impacto financeiro.
func GetFormula(metricKey string) Definition {
	if def, ok := catalog[metricKey]; ok {
		return def
	}
	return catalog[FallbackMetricKey]
}

// ResolveMetricKey valida a chave crua, resolvendo qualquer valor
// desconhecido para a chave genérica. Nunca retorna erro.
func ResolveMetricKey(raw string) string {
	if _, ok := catalog[raw]; ok {
		return raw
	}
	return FallbackMetricKey
}

// Keys lista as chaves do catálogo (ordem indefinida; chamadores ordenam se
// precisarem de saída estável).
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for key := range catalog {
		keys = append(keys, key)
	}
	return keys
}
