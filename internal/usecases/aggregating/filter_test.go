package aggregating

import (
	"testing"
	"time"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestApplyFilters(t *testing.T) {
	facts := []domain.FactRow{
		{ID: "f1", Timestamp: day(10), Channel: "instagram", Professional: "Dra. Ana", Procedure: "Limpeza", Status: domain.StatusCompleted, Unit: "centro", Pipeline: "avaliacao"},
		{ID: "f2", Timestamp: day(15), Channel: "google", Professional: "Dr. Caio", Procedure: "Canal", Status: domain.StatusNoShow, Unit: "norte", Pipeline: "retorno"},
		{ID: "f3", Timestamp: day(20), Channel: "instagram", Professional: "Dra. Ana", Procedure: "Canal", Status: domain.StatusCancelled, Unit: "centro", Pipeline: "avaliacao"},
	}

	tests := []struct {
		name     string
		filters  domain.FilterState
		expected []string
	}{
		{
			name:     "Sem filtros devolve tudo",
			filters:  domain.FilterState{},
			expected: []string{"f1", "f2", "f3"},
		},
		{
			name:     "Valor all não filtra",
			filters:  domain.FilterState{Channel: "all", Status: "ALL"},
			expected: []string{"f1", "f2", "f3"},
		},
		{
			name:     "Filtro de canal",
			filters:  domain.FilterState{Channel: "instagram"},
			expected: []string{"f1", "f3"},
		},
		{
			name:     "Filtro de canal ignora caixa",
			filters:  domain.FilterState{Channel: "INSTAGRAM"},
			expected: []string{"f1", "f3"},
		},
		{
			name:     "Filtros combinam por interseção",
			filters:  domain.FilterState{Channel: "instagram", Status: "cancelled"},
			expected: []string{"f3"},
		},
		{
			name:     "Data inicial corta os anteriores",
			filters:  domain.FilterState{StartDate: timePtr(day(15))},
			expected: []string{"f2", "f3"},
		},
		{
			name: "Data final é inclusiva no dia inteiro",
			filters: domain.FilterState{
				EndDate: timePtr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			},
			expected: []string{"f1", "f2"},
		},
		{
			name:     "Filtro de profissional",
			filters:  domain.FilterState{Professional: "Dr. Caio"},
			expected: []string{"f2"},
		},
		{
			name:     "Filtro de unidade e pipeline",
			filters:  domain.FilterState{Unit: "centro", Pipeline: "avaliacao"},
			expected: []string{"f1", "f3"},
		},
		{
			name:     "Recorte sem resultado devolve vazio",
			filters:  domain.FilterState{Channel: "tiktok"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := ApplyFilters(facts, tt.filters)

			ids := make([]string, 0, len(filtered))
			for _, fact := range filtered {
				ids = append(ids, fact.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}
