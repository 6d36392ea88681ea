package formula

// Funções de métrica puras consumidas pelo agregador de snapshot e pelo
// motor de alertas. Todas são totais: denominador zero resulta em 0 (ou no
// piso documentado), nunca NaN/Inf. Nenhuma faz I/O; são seguras para
// chamadas concorrentes.

// SafeDivide divide protegendo contra denominador zero.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// CashConversionCycle calcula o ciclo de conversão de caixa em dias.
func CashConversionCycle(receivableDays, inventoryDays, payableDays float64) float64 {
	return receivableDays + inventoryDays - payableDays
}

// WorkingCapitalNeed calcula a necessidade de capital de giro.
func WorkingCapitalNeed(receivables, inventory, payables float64) float64 {
	return receivables + inventory - payables
}

// PaybackCAC calcula em quantos meses a margem de contribuição média paga o
// CAC. A margem é tratada como no mínimo 1 unidade monetária.
func PaybackCAC(cac, avgContributionMargin float64) float64 {
	if avgContributionMargin < 1 {
		avgContributionMargin = 1
	}
	return cac / avgContributionMargin
}

// NetLTV calcula o valor líquido do ciclo de vida do paciente.
func NetLTV(avgTicket, frequency, retention, variableCost, cac float64) float64 {
	return (avgTicket * frequency * retention) - (variableCost + cac)
}

// NetRevenueRetention calcula a retenção líquida de receita da base
// existente, em percentual.
func NetRevenueRetention(currentRevenue, previousRevenue float64) float64 {
	if previousRevenue < 1 {
		previousRevenue = 1
	}
	return (currentRevenue / previousRevenue) * 100
}

// NetPromoterScore calcula o NPS a partir das contagens de promotores e
// detratores.
func NetPromoterScore(promoters, detractors, total float64) float64 {
	if total < 1 {
		total = 1
	}
	return ((promoters - detractors) / total) * 100
}

// BreakEvenVolume calcula o volume de atendimentos para cobrir os custos
// fixos. Ticket médio tratado como no mínimo 1 unidade monetária.
func BreakEvenVolume(fixedCosts, avgTicket float64) float64 {
	if avgTicket < 1 {
		avgTicket = 1
	}
	return fixedCosts / avgTicket
}

// MarginPerMinute calcula a margem de contribuição por minuto de cadeira.
func MarginPerMinute(ticket, variableCost, durationMinutes float64) float64 {
	return SafeDivide(ticket-variableCost, durationMinutes)
}

// OpportunityCost estima a receita perdida com slots vazios.
func OpportunityCost(slotsEmpty float64, avgTicket float64) float64 {
	return slotsEmpty * avgTicket
}

// RevPAS calcula a receita por slot disponível.
func RevPAS(revenue, slotsAvailable float64) float64 {
	return SafeDivide(revenue, slotsAvailable)
}

// NormalizedEBITDA ajusta o resultado operacional repondo retiradas dos
// sócios e descontando o salário de mercado equivalente.
func NormalizedEBITDA(operatingResult, ownerWithdrawals, marketSalary float64) float64 {
	return operatingResult + ownerWithdrawals - marketSalary
}
