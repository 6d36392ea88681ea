package alerting

import (
	"testing"
	"time"

	"github.com/clinsight/clinic-insights-api/infrastructure/repository/mocks"
	"github.com/clinsight/clinic-insights-api/internal/config"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/internal/formula"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func testThresholds() config.Thresholds {
	return config.Thresholds{
		NoShowRateP1:      25,
		NoShowRateP2:      15,
		IdleRateP2:        28,
		CACRevPASMultiple: 6,
		MarginPercentP1:   10,
		MarginPercentP2:   20,
		RevPASDropP3:      20,
		RCADueDays:        7,
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 2, 1, 15, 30, 0, 0, time.UTC)
}

func newTestService(t *testing.T) (AlertService, *mocks.MockRcaRepository) {
	ctrl := gomock.NewController(t)
	rcaRepo := mocks.NewMockRcaRepository(ctrl)
	service := NewAlertServiceWithClock(testThresholds(), rcaRepo, fixedClock)
	return service, rcaRepo
}

// Snapshot saudável: nenhuma regra dispara.
func healthySnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		GrossRevenue:  1000,
		MarginPercent: 35,
		NoShowRate:    5,
		IdleRate:      10,
		RevPAS:        100,
		RevPAS7d:      95,
	}
}

func TestAlertService_EvaluateAlerts(t *testing.T) {
	tests := []struct {
		name     string
		snapshot func() *domain.Snapshot
		clinic   *domain.Clinic
		validate func(t *testing.T, alerts []domain.AlertEvent)
	}{
		{
			name:     "Snapshot saudável não dispara alertas",
			snapshot: healthySnapshot,
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Empty(t, alerts)
			},
		},
		{
			name:     "Snapshot nulo devolve lista vazia",
			snapshot: func() *domain.Snapshot { return nil },
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Empty(t, alerts)
			},
		},
		{
			name: "No-show acima do corte crítico dispara P1",
			snapshot: func() *domain.Snapshot {
				s := healthySnapshot()
				s.NoShowRate = 30
				s.NoShowCount = 6
				s.AvgTicket = 150
				return s
			},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Len(t, alerts, 1)
				assert.Equal(t, "no-show-critical", alerts[0].ID)
				assert.Equal(t, domain.SeverityP1, alerts[0].Severity)
				assert.Equal(t, formula.MetricNoShowRate, alerts[0].MetricKey)
				assert.Equal(t, 900.0, alerts[0].FinancialImpact)
			},
		},
		{
			name: "No-show na faixa de atenção dispara P2 e não P1",
			snapshot: func() *domain.Snapshot {
				s := healthySnapshot()
				s.NoShowRate = 20
				s.NoShowCount = 4
				s.AvgTicket = 100
				return s
			},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Len(t, alerts, 1)
				assert.Equal(t, "no-show-elevated", alerts[0].ID)
				assert.Equal(t, domain.SeverityP2, alerts[0].Severity)
			},
		},
		{
			name: "No-show exatamente no corte não dispara",
			snapshot: func() *domain.Snapshot {
				s := healthySnapshot()
				s.NoShowRate = 15
				return s
			},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Empty(t, alerts)
			},
		},
		{
			name: "Ociosidade acima do corte dispara P2 com o impacto do snapshot",
			snapshot: func() *domain.Snapshot {
				s := healthySnapshot()
				s.IdleRate = 40
				s.FinancialImpact = 1200
				return s
			},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Len(t, alerts, 1)
				assert.Equal(t, "idle-capacity", alerts[0].ID)
				assert.Equal(t, 1200.0, alerts[0].FinancialImpact)
			},
		},
		{
			name:     "CAC desproporcional exige cadastro da clínica",
			snapshot: healthySnapshot,
			clinic:   &domain.Clinic{ID: "CLI001", CAC: 700},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				// CAC 700 > 6 x RevPAS 100
				assert.Len(t, alerts, 1)
				assert.Equal(t, "cac-revpas-ratio", alerts[0].ID)
				assert.Equal(t, formula.MetricCACRevPASRatio, alerts[0].MetricKey)
				assert.Equal(t, 100.0, alerts[0].FinancialImpact)
			},
		},
		{
			name:     "CAC zero desliga a regra",
			snapshot: healthySnapshot,
			clinic:   &domain.Clinic{ID: "CLI001", CAC: 0},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Empty(t, alerts)
			},
		},
		{
			name: "Margem crítica dispara P1",
			snapshot: func() *domain.Snapshot {
				s := healthySnapshot()
				s.MarginPercent = 5
				return s
			},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Len(t, alerts, 1)
				assert.Equal(t, "margin-critical", alerts[0].ID)
				assert.Equal(t, domain.SeverityP1, alerts[0].Severity)
				// (10 - 5) / 100 x 1000 = 50
				assert.Equal(t, 50.0, alerts[0].FinancialImpact)
			},
		},
		{
			name: "Margem baixa dispara P2",
			snapshot: func() *domain.Snapshot {
				s := healthySnapshot()
				s.MarginPercent = 15
				return s
			},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Len(t, alerts, 1)
				assert.Equal(t, "margin-low", alerts[0].ID)
				assert.Equal(t, domain.SeverityP2, alerts[0].Severity)
			},
		},
		{
			name: "Sem receita bruta as regras de margem ficam mudas",
			snapshot: func() *domain.Snapshot {
				s := healthySnapshot()
				s.GrossRevenue = 0
				s.MarginPercent = 0
				return s
			},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Empty(t, alerts)
			},
		},
		{
			name: "Queda de RevPAS dispara P3",
			snapshot: func() *domain.Snapshot {
				s := healthySnapshot()
				s.RevPAS = 100
				s.RevPAS7d = 60
				s.RevPASDropPercent = 40
				s.SlotsAvailable = 10
				return s
			},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Len(t, alerts, 1)
				assert.Equal(t, "revpas-drop", alerts[0].ID)
				assert.Equal(t, domain.SeverityP3, alerts[0].Severity)
				// (100 - 60) x 10 slots = 400
				assert.Equal(t, 400.0, alerts[0].FinancialImpact)
			},
		},
		{
			name: "Impacto financeiro nunca é negativo",
			snapshot: func() *domain.Snapshot {
				s := healthySnapshot()
				s.RevPAS = 100
				s.RevPAS7d = 160
				s.RevPASDropPercent = 40 // cenário forçado para exercitar o piso
				s.SlotsAvailable = 10
				return s
			},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Len(t, alerts, 1)
				assert.Equal(t, 0.0, alerts[0].FinancialImpact)
			},
		},
		{
			name: "Vários desvios saem em ordem fixa de regra",
			snapshot: func() *domain.Snapshot {
				s := healthySnapshot()
				s.NoShowRate = 30
				s.NoShowCount = 6
				s.AvgTicket = 150
				s.IdleRate = 40
				s.MarginPercent = 5
				s.RevPAS7d = 50
				s.RevPASDropPercent = 50
				return s
			},
			clinic: &domain.Clinic{ID: "CLI001", CAC: 700},
			validate: func(t *testing.T, alerts []domain.AlertEvent) {
				assert.Len(t, alerts, 5)
				assert.Equal(t, "no-show-critical", alerts[0].ID)
				assert.Equal(t, "idle-capacity", alerts[1].ID)
				assert.Equal(t, "cac-revpas-ratio", alerts[2].ID)
				assert.Equal(t, "margin-critical", alerts[3].ID)
				assert.Equal(t, "revpas-drop", alerts[4].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(t)

			alerts := service.EvaluateAlerts(tt.snapshot(), tt.clinic)
			tt.validate(t, alerts)
		})
	}
}

func TestAlertService_EvaluateAlerts_Deterministico(t *testing.T) {
	service, _ := newTestService(t)

	snapshot := healthySnapshot()
	snapshot.NoShowRate = 30
	snapshot.NoShowCount = 6
	snapshot.AvgTicket = 150
	snapshot.IdleRate = 40

	first := service.EvaluateAlerts(snapshot, nil)
	second := service.EvaluateAlerts(snapshot, nil)

	assert.Equal(t, first, second)
}

func TestAlertService_HighestSeverity(t *testing.T) {
	service, _ := newTestService(t)

	assert.Equal(t, domain.SeverityP3, service.HighestSeverity(nil))
	assert.Equal(t, domain.SeverityP2, service.HighestSeverity([]domain.AlertEvent{
		{Severity: domain.SeverityP3},
		{Severity: domain.SeverityP2},
	}))
	assert.Equal(t, domain.SeverityP1, service.HighestSeverity([]domain.AlertEvent{
		{Severity: domain.SeverityP2},
		{Severity: domain.SeverityP1},
		{Severity: domain.SeverityP3},
	}))
}

func TestAlertService_GenerateRCA(t *testing.T) {
	service, _ := newTestService(t)

	alert := domain.AlertEvent{
		ID:       "no-show-critical",
		Severity: domain.SeverityP1,
		Title:    "Taxa de no-show crítica",
	}

	draft := service.GenerateRCA(alert)

	assert.Equal(t, "no-show-critical", draft.AlertID)
	assert.Equal(t, domain.SeverityP1, draft.Severity)
	assert.Equal(t, "Taxa de no-show crítica", draft.Title)
	assert.Equal(t, domain.RcaStatusOpen, draft.Status)

	// Relógio fixo em 01/02 + 7 dias de prazo = 08/02, somente a data, em UTC.
	assert.Equal(t, "2024-02-08", draft.DueDate)

	assert.Empty(t, draft.RootCause)
	assert.Empty(t, draft.ActionPlan)
	assert.Empty(t, draft.Owner)
}

func TestAlertService_DraftRCA(t *testing.T) {
	alert := domain.AlertEvent{
		ID:       "no-show-critical",
		Severity: domain.SeverityP1,
		Title:    "Taxa de no-show crítica",
	}

	t.Run("Rascunho salvo volta como está", func(t *testing.T) {
		service, rcaRepo := newTestService(t)

		saved := &domain.RcaDraftPayload{
			ID:        "abc123",
			ClinicID:  "CLI001",
			AlertID:   "no-show-critical",
			RootCause: "Confirmação por WhatsApp desligada",
			Status:    domain.RcaStatusOpen,
		}

		rcaRepo.EXPECT().
			GetByAlertID("CLI001", "no-show-critical").
			Return(saved, nil)

		draft, err := service.DraftRCA("CLI001", alert)

		assert.NoError(t, err)
		assert.Equal(t, saved, draft)
	})

	t.Run("Sem rascunho salvo monta um novo", func(t *testing.T) {
		service, rcaRepo := newTestService(t)

		rcaRepo.EXPECT().
			GetByAlertID("CLI001", "no-show-critical").
			Return(nil, nil)

		draft, err := service.DraftRCA("CLI001", alert)

		assert.NoError(t, err)
		assert.Equal(t, "no-show-critical", draft.AlertID)
		assert.Equal(t, "2024-02-08", draft.DueDate)
		assert.Empty(t, draft.RootCause)
	})

	t.Run("Erro do repositório propaga", func(t *testing.T) {
		service, rcaRepo := newTestService(t)

		rcaRepo.EXPECT().
			GetByAlertID("CLI001", "no-show-critical").
			Return(nil, assert.AnError)

		draft, err := service.DraftRCA("CLI001", alert)

		assert.Nil(t, draft)
		assert.ErrorIs(t, err, ErrRcaPersistence)
	})
}

func TestAlertService_SaveRCA(t *testing.T) {
	t.Run("Preenche padrões e persiste", func(t *testing.T) {
		service, rcaRepo := newTestService(t)

		rcaRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(draft *domain.RcaDraftPayload) error {
				assert.Equal(t, "CLI001", draft.ClinicID)
				assert.NotEmpty(t, draft.ID)
				assert.Equal(t, domain.RcaStatusOpen, draft.Status)
				assert.Equal(t, "2024-02-08", draft.DueDate)
				return nil
			})

		draft := &domain.RcaDraftPayload{AlertID: "margin-critical"}
		err := service.SaveRCA("CLI001", draft)

		assert.NoError(t, err)
	})

	t.Run("Clínica não informada é rejeitada", func(t *testing.T) {
		service, _ := newTestService(t)

		err := service.SaveRCA("", &domain.RcaDraftPayload{AlertID: "margin-critical"})
		assert.ErrorIs(t, err, ErrClinicNotInformed)
	})

	t.Run("Alerta não informado é rejeitado", func(t *testing.T) {
		service, _ := newTestService(t)

		err := service.SaveRCA("CLI001", &domain.RcaDraftPayload{})
		assert.ErrorIs(t, err, ErrAlertNotInformed)
	})

	t.Run("Falha do banco vira erro de persistência", func(t *testing.T) {
		service, rcaRepo := newTestService(t)

		rcaRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			Return(assert.AnError)

		err := service.SaveRCA("CLI001", &domain.RcaDraftPayload{AlertID: "idle-capacity"})
		assert.ErrorIs(t, err, ErrRcaPersistence)
	})
}

func TestAlertService_ListRCAs(t *testing.T) {
	service, rcaRepo := newTestService(t)

	expected := []*domain.RcaDraftPayload{{ID: "RCA001", AlertID: "no-show-critical"}}
	rcaRepo.EXPECT().ListByClinic("CLI001").Return(expected, nil)

	drafts, err := service.ListRCAs("CLI001")
	assert.NoError(t, err)
	assert.Equal(t, expected, drafts)
}
