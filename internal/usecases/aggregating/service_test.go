package aggregating

import (
	"testing"
	"time"

	"github.com/clinsight/clinic-insights-api/infrastructure/repository/mocks"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestSnapshotService(t *testing.T) (SnapshotService, *mocks.MockFactRepository) {
	ctrl := gomock.NewController(t)
	factRepo := mocks.NewMockFactRepository(ctrl)
	service := NewSnapshotService(factRepo, NewAggregator(0.30))
	return service, factRepo
}

func TestSnapshotService_GetSnapshot(t *testing.T) {
	service, factRepo := newTestSnapshotService(t)

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	filters := domain.FilterState{StartDate: &startDate, EndDate: &endDate}

	factRepo.EXPECT().
		GetByClinicAndPeriod("CLI001", &startDate, &endDate).
		Return([]domain.FactRow{
			{ID: "f1", Timestamp: day(10), Status: domain.StatusCompleted, Entries: 500, TicketAverage: 100},
			{ID: "f2", Timestamp: day(12), Status: domain.StatusNoShow, TicketAverage: 120},
		}, nil)

	snapshot, err := service.GetSnapshot("CLI001", filters)

	assert.NoError(t, err)
	assert.Equal(t, 2, snapshot.TotalFacts)
	assert.Equal(t, 500.0, snapshot.GrossRevenue)
	assert.Equal(t, 1, snapshot.NoShowCount)
}

// O filtro de data final cobre o dia inteiro: um fato às 23h do último dia
// entra no snapshot quando o recorte termina naquele dia.
func TestSnapshotService_GetSnapshot_DataFinalInclusiva(t *testing.T) {
	service, factRepo := newTestSnapshotService(t)

	endDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	filters := domain.FilterState{EndDate: &endDate}

	lateOnEndDay := time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)

	factRepo.EXPECT().
		GetByClinicAndPeriod("CLI001", nil, &endDate).
		Return([]domain.FactRow{
			{ID: "f1", Timestamp: day(10), Status: domain.StatusCompleted, Entries: 300},
			{ID: "f2", Timestamp: lateOnEndDay, Status: domain.StatusCompleted, Entries: 200},
		}, nil)

	snapshot, err := service.GetSnapshot("CLI001", filters)

	assert.NoError(t, err)
	assert.Equal(t, 2, snapshot.TotalFacts)
	assert.Equal(t, 500.0, snapshot.GrossRevenue)
}

func TestSnapshotService_GetFacts_AplicaRecortesEmMemoria(t *testing.T) {
	service, factRepo := newTestSnapshotService(t)

	factRepo.EXPECT().
		GetByClinicAndPeriod("CLI001", nil, nil).
		Return([]domain.FactRow{
			{ID: "f1", Timestamp: day(10), Channel: "instagram", Status: domain.StatusCompleted},
			{ID: "f2", Timestamp: day(11), Channel: "google", Status: domain.StatusCompleted},
		}, nil)

	facts, err := service.GetFacts("CLI001", domain.FilterState{Channel: "instagram"})

	assert.NoError(t, err)
	assert.Len(t, facts, 1)
	assert.Equal(t, "f1", facts[0].ID)
}

func TestSnapshotService_GetSnapshot_ErroDoRepositorio(t *testing.T) {
	service, factRepo := newTestSnapshotService(t)

	factRepo.EXPECT().
		GetByClinicAndPeriod("CLI001", nil, nil).
		Return(nil, assert.AnError)

	snapshot, err := service.GetSnapshot("CLI001", domain.FilterState{})

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, assert.AnError)
}
