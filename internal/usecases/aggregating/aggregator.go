package aggregating

import (
	"time"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/internal/formula"
	"github.com/clinsight/clinic-insights-api/pkg/utils"
)

// Fração do ticket médio perdida por no-show (estimativa de inadimplência).
const noShowDelinquencyRate = 0.35

// Aggregator reduz um conjunto de fatos já filtrado a um Snapshot de KPIs.
// Todas as reduções são somas comutativas: a saída não depende da ordem das
// linhas nem do relógio de parede — a janela de 7 dias é ancorada no fato
// mais recente do conjunto.
type Aggregator struct {
	fixedCostRate float64
}

func NewAggregator(fixedCostRate float64) *Aggregator {
	return &Aggregator{fixedCostRate: fixedCostRate}
}

// BuildSnapshot calcula os KPIs. Conjunto vazio produz zeros em tudo.
func (a *Aggregator) BuildSnapshot(facts []domain.FactRow) domain.Snapshot {
	snapshot := domain.Snapshot{}
	if len(facts) == 0 {
		return snapshot
	}

	var (
		gross, exits, variableCost, ticketSum float64
		noShowTicketSum                       float64
		cancelledEntries                      float64
		slotsAvailable, slotsEmpty            int
		newest                                time.Time
	)

	for _, fact := range facts {
		gross += fact.Entries
		exits += fact.Exits
		variableCost += fact.VariableCost
		ticketSum += fact.TicketAverage
		slotsAvailable += fact.SlotsAvailable
		slotsEmpty += fact.SlotsEmpty

		switch fact.Status {
		case domain.StatusNoShow:
			snapshot.NoShowCount++
			noShowTicketSum += fact.TicketAverage
		case domain.StatusCancelled:
			snapshot.CancelledCount++
			cancelledEntries += fact.Entries
		case domain.StatusCompleted:
			snapshot.CompletedCount++
		}

		if fact.Timestamp.After(newest) {
			newest = fact.Timestamp
		}
	}

	total := len(facts)
	avgTicket := ticketSum / float64(total)

	// Receita líquida desconta cancelamentos e a estimativa de inadimplência
	// por falta (35% do ticket médio de cada no-show).
	net := gross - cancelledEntries - noShowDelinquencyRate*noShowTicketSum

	snapshot.GrossRevenue = utils.RoundWithTwoDecimalPlace(gross)
	snapshot.ExitsTotal = utils.RoundWithTwoDecimalPlace(exits)
	snapshot.NetRevenue = utils.RoundWithTwoDecimalPlace(net)
	snapshot.AvgTicket = utils.RoundWithTwoDecimalPlace(avgTicket)
	snapshot.VariableCostTotal = utils.RoundWithTwoDecimalPlace(variableCost)
	snapshot.TotalFacts = total
	snapshot.SlotsAvailable = slotsAvailable
	snapshot.SlotsEmpty = slotsEmpty

	fixedCostProxy := a.fixedCostRate * gross
	if gross > 0 {
		snapshot.MarginPercent = utils.RoundWithTwoDecimalPlace((net - variableCost - fixedCostProxy) / gross * 100)
	}

	snapshot.NoShowRate = utils.RoundWithTwoDecimalPlace(float64(snapshot.NoShowCount) / float64(total) * 100)
	snapshot.IdleRate = utils.RoundWithTwoDecimalPlace(formula.SafeDivide(float64(slotsEmpty), float64(slotsAvailable)) * 100)
	snapshot.FinancialImpact = utils.RoundWithTwoDecimalPlace(float64(slotsEmpty) * avgTicket)

	snapshot.RevPAS = utils.RoundWithTwoDecimalPlace(formula.RevPAS(gross, float64(slotsAvailable)))
	snapshot.RevPAS7d = utils.RoundWithTwoDecimalPlace(a.revPASWindow(facts, newest))

	if snapshot.RevPAS > 0 {
		snapshot.RevPASDropPercent = utils.RoundWithTwoDecimalPlace((snapshot.RevPAS - snapshot.RevPAS7d) / snapshot.RevPAS * 100)
	}

	return snapshot
}

// revPASWindow restringe o RevPAS aos fatos dos 7 dias anteriores ao fato
// mais recente do conjunto.
func (a *Aggregator) revPASWindow(facts []domain.FactRow, newest time.Time) float64 {
	cutoff := newest.AddDate(0, 0, -7)

	var revenue float64
	var slots int
	for _, fact := range facts {
		if fact.Timestamp.Before(cutoff) {
			continue
		}
		revenue += fact.Entries
		slots += fact.SlotsAvailable
	}

	return formula.RevPAS(revenue, float64(slots))
}
