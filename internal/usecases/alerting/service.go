package alerting

import (
	"fmt"
	"time"

	"github.com/clinsight/clinic-insights-api/infrastructure/repository"
	"github.com/clinsight/clinic-insights-api/internal/config"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/internal/formula"
	"github.com/clinsight/clinic-insights-api/pkg/utils"
	"github.com/pkg/errors"
)

// AlertService avalia snapshots contra os cortes de negócio e gerencia os
// rascunhos de RCA. Os alertas são efêmeros; apenas o RCA persiste.
type AlertService interface {
	EvaluateAlerts(snapshot *domain.Snapshot, clinic *domain.Clinic) []domain.AlertEvent
	HighestSeverity(alerts []domain.AlertEvent) domain.Severity
	GenerateRCA(alert domain.AlertEvent) domain.RcaDraftPayload
	DraftRCA(clinicID string, alert domain.AlertEvent) (*domain.RcaDraftPayload, error)
	SaveRCA(clinicID string, draft *domain.RcaDraftPayload) error
	ListRCAs(clinicID string) ([]*domain.RcaDraftPayload, error)
}

type alertService struct {
	thresholds config.Thresholds
	rcaRepo    repository.RcaRepository
	nowFn      func() time.Time
}

func NewAlertService(thresholds config.Thresholds, rcaRepo repository.RcaRepository) AlertService {
	return &alertService{
		thresholds: thresholds,
		rcaRepo:    rcaRepo,
		nowFn:      time.Now,
	}
}

// NewAlertServiceWithClock injeta o relógio para testes da data limite do RCA.
func NewAlertServiceWithClock(thresholds config.Thresholds, rcaRepo repository.RcaRepository, nowFn func() time.Time) AlertService {
	return &alertService{
		thresholds: thresholds,
		rcaRepo:    rcaRepo,
		nowFn:      nowFn,
	}
}

// EvaluateAlerts aplica as regras em ordem fixa para que a emissão seja
// determinística. Os IDs são derivados da regra, nunca aleatórios, para que
// rascunhos de RCA sobrevivam ao recálculo do mesmo desvio.
func (s *alertService) EvaluateAlerts(snapshot *domain.Snapshot, clinic *domain.Clinic) []domain.AlertEvent {
	alerts := make([]domain.AlertEvent, 0)
	if snapshot == nil {
		return alerts
	}

	t := s.thresholds

	if snapshot.NoShowRate > t.NoShowRateP1 {
		alerts = append(alerts, domain.AlertEvent{
			ID:       "no-show-critical",
			Severity: domain.SeverityP1,
			Title:    "Taxa de no-show crítica",
			Description: fmt.Sprintf("A taxa de faltas está em %.1f%%, acima do limite crítico de %.0f%%.",
				snapshot.NoShowRate, t.NoShowRateP1),
			MetricKey:       formula.MetricNoShowRate,
			FinancialImpact: utils.RoundWithTwoDecimalPlace(float64(snapshot.NoShowCount) * snapshot.AvgTicket),
		})
	} else if snapshot.NoShowRate > t.NoShowRateP2 {
		alerts = append(alerts, domain.AlertEvent{
			ID:       "no-show-elevated",
			Severity: domain.SeverityP2,
			Title:    "Taxa de no-show elevada",
			Description: fmt.Sprintf("A taxa de faltas está em %.1f%%, acima do limite de atenção de %.0f%%.",
				snapshot.NoShowRate, t.NoShowRateP2),
			MetricKey:       formula.MetricNoShowRate,
			FinancialImpact: utils.RoundWithTwoDecimalPlace(float64(snapshot.NoShowCount) * snapshot.AvgTicket),
		})
	}

	if snapshot.IdleRate > t.IdleRateP2 {
		alerts = append(alerts, domain.AlertEvent{
			ID:       "idle-capacity",
			Severity: domain.SeverityP2,
			Title:    "Capacidade ociosa alta",
			Description: fmt.Sprintf("%.1f%% dos horários disponíveis ficaram vazios, acima do limite de %.0f%%.",
				snapshot.IdleRate, t.IdleRateP2),
			MetricKey:       formula.MetricIdleRate,
			FinancialImpact: snapshot.FinancialImpact,
		})
	}

	// Regra de CAC depende do cadastro da clínica; CAC zero desliga a regra.
	if clinic != nil && clinic.CAC > 0 && snapshot.RevPAS > 0 &&
		clinic.CAC > t.CACRevPASMultiple*snapshot.RevPAS {
		alerts = append(alerts, domain.AlertEvent{
			ID:       "cac-revpas-ratio",
			Severity: domain.SeverityP2,
			Title:    "CAC desproporcional ao RevPAS",
			Description: fmt.Sprintf("O custo de aquisição (%.2f) excede %.0fx o RevPAS atual (%.2f).",
				clinic.CAC, t.CACRevPASMultiple, snapshot.RevPAS),
			MetricKey:       formula.MetricCACRevPASRatio,
			FinancialImpact: utils.RoundWithTwoDecimalPlace(clinic.CAC - t.CACRevPASMultiple*snapshot.RevPAS),
		})
	}

	if snapshot.GrossRevenue > 0 {
		if snapshot.MarginPercent < t.MarginPercentP1 {
			alerts = append(alerts, domain.AlertEvent{
				ID:       "margin-critical",
				Severity: domain.SeverityP1,
				Title:    "Margem líquida crítica",
				Description: fmt.Sprintf("A margem está em %.1f%%, abaixo do mínimo crítico de %.0f%%.",
					snapshot.MarginPercent, t.MarginPercentP1),
				MetricKey:       formula.MetricMarginPercent,
				FinancialImpact: marginShortfall(snapshot, t.MarginPercentP1),
			})
		} else if snapshot.MarginPercent < t.MarginPercentP2 {
			alerts = append(alerts, domain.AlertEvent{
				ID:       "margin-low",
				Severity: domain.SeverityP2,
				Title:    "Margem líquida abaixo do esperado",
				Description: fmt.Sprintf("A margem está em %.1f%%, abaixo da referência de %.0f%%.",
					snapshot.MarginPercent, t.MarginPercentP2),
				MetricKey:       formula.MetricMarginPercent,
				FinancialImpact: marginShortfall(snapshot, t.MarginPercentP2),
			})
		}
	}

	if snapshot.RevPASDropPercent > t.RevPASDropP3 {
		alerts = append(alerts, domain.AlertEvent{
			ID:       "revpas-drop",
			Severity: domain.SeverityP3,
			Title:    "Queda de RevPAS nos últimos 7 dias",
			Description: fmt.Sprintf("O RevPAS dos últimos 7 dias caiu %.1f%% em relação ao período completo.",
				snapshot.RevPASDropPercent),
			MetricKey:       formula.MetricRevPASDrop7d,
			FinancialImpact: utils.RoundWithTwoDecimalPlace((snapshot.RevPAS - snapshot.RevPAS7d) * float64(snapshot.SlotsAvailable)),
		})
	}

	for i := range alerts {
		alerts[i].MetricKey = formula.ResolveMetricKey(alerts[i].MetricKey)
		if alerts[i].FinancialImpact < 0 {
			alerts[i].FinancialImpact = 0
		}
	}

	return alerts
}

// marginShortfall estima quanto de receita falta para atingir a margem alvo.
func marginShortfall(snapshot *domain.Snapshot, targetPercent float64) float64 {
	gap := (targetPercent - snapshot.MarginPercent) / 100 * snapshot.GrossRevenue
	return utils.RoundWithTwoDecimalPlace(gap)
}

func (s *alertService) HighestSeverity(alerts []domain.AlertEvent) domain.Severity {
	return domain.HighestSeverity(alerts)
}

// GenerateRCA monta o rascunho inicial: prazo de 7 dias (UTC, só a data),
// status "open", campos do operador vazios.
func (s *alertService) GenerateRCA(alert domain.AlertEvent) domain.RcaDraftPayload {
	due := s.nowFn().UTC().AddDate(0, 0, s.thresholds.RCADueDays)

	return domain.RcaDraftPayload{
		AlertID:    alert.ID,
		Severity:   alert.Severity,
		Title:      alert.Title,
		RootCause:  "",
		ActionPlan: "",
		Owner:      "",
		DueDate:    due.Format(time.DateOnly),
		Status:     domain.RcaStatusOpen,
	}
}

// DraftRCA devolve o rascunho do alerta. Se já existe um rascunho salvo para
// (clínica, alerta), ele volta como está: o trabalho do operador sobrevive ao
// recálculo do mesmo desvio. Senão, um rascunho novo é montado.
func (s *alertService) DraftRCA(clinicID string, alert domain.AlertEvent) (*domain.RcaDraftPayload, error) {
	if clinicID != "" {
		saved, err := s.rcaRepo.GetByAlertID(clinicID, alert.ID)
		if err != nil {
			return nil, errors.Wrap(ErrRcaPersistence, err.Error())
		}
		if saved != nil {
			return saved, nil
		}
	}

	draft := s.GenerateRCA(alert)

	return &draft, nil
}

func (s *alertService) SaveRCA(clinicID string, draft *domain.RcaDraftPayload) error {
	if clinicID == "" {
		return ErrClinicNotInformed
	}

	if draft.AlertID == "" {
		return ErrAlertNotInformed
	}

	draft.ClinicID = clinicID

	if draft.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return errors.Wrap(err, "erro ao gerar id do rascunho de RCA")
		}
		draft.ID = id
	}

	if draft.Status == "" {
		draft.Status = domain.RcaStatusOpen
	}

	if draft.DueDate == "" {
		draft.DueDate = s.nowFn().UTC().AddDate(0, 0, s.thresholds.RCADueDays).Format(time.DateOnly)
	}

	if err := s.rcaRepo.SaveOrUpdate(draft); err != nil {
		return errors.Wrap(ErrRcaPersistence, err.Error())
	}

	return nil
}

func (s *alertService) ListRCAs(clinicID string) ([]*domain.RcaDraftPayload, error) {
	return s.rcaRepo.ListByClinic(clinicID)
}
