package aggregating

import (
	"testing"
	"time"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 10, 0, 0, 0, time.UTC)
}

func TestAggregator_BuildSnapshot_ConjuntoVazio(t *testing.T) {
	aggregator := NewAggregator(0.30)

	snapshot := aggregator.BuildSnapshot(nil)

	assert.Equal(t, domain.Snapshot{}, snapshot)
}

func TestAggregator_BuildSnapshot_FatoUnico(t *testing.T) {
	aggregator := NewAggregator(0.30)

	facts := []domain.FactRow{
		{
			Timestamp:      day(10),
			Status:         domain.StatusCompleted,
			Entries:        1000,
			Exits:          200,
			VariableCost:   100,
			TicketAverage:  150,
			SlotsAvailable: 10,
			SlotsEmpty:     2,
		},
	}

	snapshot := aggregator.BuildSnapshot(facts)

	assert.Equal(t, 1000.0, snapshot.GrossRevenue)
	assert.Equal(t, 200.0, snapshot.ExitsTotal)
	assert.Equal(t, 1000.0, snapshot.NetRevenue)
	assert.Equal(t, 150.0, snapshot.AvgTicket)
	assert.Equal(t, 100.0, snapshot.VariableCostTotal)

	// (1000 - 100 - 0.30x1000) / 1000 x 100 = 60%
	assert.Equal(t, 60.0, snapshot.MarginPercent)

	assert.Equal(t, 0.0, snapshot.NoShowRate)
	assert.Equal(t, 20.0, snapshot.IdleRate)
	assert.Equal(t, 300.0, snapshot.FinancialImpact)

	assert.Equal(t, 100.0, snapshot.RevPAS)
	assert.Equal(t, 100.0, snapshot.RevPAS7d)
	assert.Equal(t, 0.0, snapshot.RevPASDropPercent)

	assert.Equal(t, 1, snapshot.TotalFacts)
	assert.Equal(t, 1, snapshot.CompletedCount)
	assert.Equal(t, 10, snapshot.SlotsAvailable)
	assert.Equal(t, 2, snapshot.SlotsEmpty)
}

func TestAggregator_BuildSnapshot_SomenteNoShow(t *testing.T) {
	aggregator := NewAggregator(0.30)

	facts := []domain.FactRow{
		{Timestamp: day(10), Status: domain.StatusNoShow, TicketAverage: 100},
		{Timestamp: day(11), Status: domain.StatusNoShow, TicketAverage: 100},
	}

	snapshot := aggregator.BuildSnapshot(facts)

	assert.Equal(t, 100.0, snapshot.NoShowRate)
	assert.Equal(t, 2, snapshot.NoShowCount)

	// Sem entradas, a receita líquida vira a inadimplência estimada negativa:
	// 0 - 0.35 x (100 + 100) = -70
	assert.Equal(t, -70.0, snapshot.NetRevenue)

	// Receita bruta zero mantém a margem em zero em vez de dividir por zero.
	assert.Equal(t, 0.0, snapshot.GrossRevenue)
	assert.Equal(t, 0.0, snapshot.MarginPercent)
}

func TestAggregator_BuildSnapshot_CancelamentoEInadimplencia(t *testing.T) {
	aggregator := NewAggregator(0.30)

	facts := []domain.FactRow{
		{Timestamp: day(10), Status: domain.StatusCompleted, Entries: 500, TicketAverage: 100},
		{Timestamp: day(11), Status: domain.StatusCancelled, Entries: 200, TicketAverage: 80},
		{Timestamp: day(12), Status: domain.StatusNoShow, TicketAverage: 120},
	}

	snapshot := aggregator.BuildSnapshot(facts)

	assert.Equal(t, 700.0, snapshot.GrossRevenue)

	// 700 - 200 (cancelado) - 0.35 x 120 (no-show) = 458
	assert.Equal(t, 458.0, snapshot.NetRevenue)

	assert.Equal(t, 100.0, snapshot.AvgTicket)
	assert.Equal(t, 33.33, snapshot.NoShowRate)
	assert.Equal(t, 1, snapshot.CancelledCount)
	assert.Equal(t, 1, snapshot.NoShowCount)
	assert.Equal(t, 1, snapshot.CompletedCount)
}

func TestAggregator_BuildSnapshot_IndependenteDaOrdem(t *testing.T) {
	aggregator := NewAggregator(0.30)

	facts := []domain.FactRow{
		{Timestamp: day(10), Status: domain.StatusCompleted, Entries: 500, TicketAverage: 100, SlotsAvailable: 8, SlotsEmpty: 1},
		{Timestamp: day(15), Status: domain.StatusNoShow, TicketAverage: 120, SlotsAvailable: 8, SlotsEmpty: 3},
		{Timestamp: day(20), Status: domain.StatusCancelled, Entries: 200, TicketAverage: 80, SlotsAvailable: 8, SlotsEmpty: 2},
	}

	reversed := []domain.FactRow{facts[2], facts[1], facts[0]}

	assert.Equal(t, aggregator.BuildSnapshot(facts), aggregator.BuildSnapshot(reversed))
}

func TestAggregator_BuildSnapshot_JanelaRevPAS7Dias(t *testing.T) {
	aggregator := NewAggregator(0.30)

	// O fato mais recente ancora a janela: 20/01 recua até 13/01; o fato de
	// 01/01 fica fora da janela de 7 dias.
	facts := []domain.FactRow{
		{Timestamp: day(1), Status: domain.StatusCompleted, Entries: 1000, SlotsAvailable: 10},
		{Timestamp: day(20), Status: domain.StatusCompleted, Entries: 100, SlotsAvailable: 10},
	}

	snapshot := aggregator.BuildSnapshot(facts)

	assert.Equal(t, 55.0, snapshot.RevPAS)
	assert.Equal(t, 10.0, snapshot.RevPAS7d)

	// (55 - 10) / 55 x 100 = 81.82%
	assert.Equal(t, 81.82, snapshot.RevPASDropPercent)
}

func TestAggregator_BuildSnapshot_SemSlotsNaoDividePorZero(t *testing.T) {
	aggregator := NewAggregator(0.30)

	facts := []domain.FactRow{
		{Timestamp: day(10), Status: domain.StatusCompleted, Entries: 300, TicketAverage: 100},
	}

	snapshot := aggregator.BuildSnapshot(facts)

	assert.Equal(t, 0.0, snapshot.IdleRate)
	assert.Equal(t, 0.0, snapshot.RevPAS)
	assert.Equal(t, 0.0, snapshot.FinancialImpact)
}
