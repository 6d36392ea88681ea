package ingesting

import (
	"testing"
	"time"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected domain.FactStatus
	}{
		{"Realizado vira completed", "realizado", domain.StatusCompleted},
		{"Concluído com acento vira completed", "Concluído", domain.StatusCompleted},
		{"Atendido vira completed", "atendido", domain.StatusCompleted},
		{"Falta vira no-show", "falta", domain.StatusNoShow},
		{"Faltou vira no-show", "FALTOU", domain.StatusNoShow},
		{"No show com espaço vira no-show", "no show", domain.StatusNoShow},
		{"Não compareceu vira no-show", "não compareceu", domain.StatusNoShow},
		{"Cancelado vira cancelled", "cancelado", domain.StatusCancelled},
		{"Desmarcado vira cancelled", "desmarcado", domain.StatusCancelled},
		{"Cancelamento parcial casa por prefixo", "cancelamento pelo paciente", domain.StatusCancelled},
		{"Agendado vira scheduled", "agendado", domain.StatusScheduled},
		{"Confirmado vira scheduled", "confirmado", domain.StatusScheduled},
		{"Vazio vira scheduled", "", domain.StatusScheduled},
		{"Desconhecido vira scheduled", "em análise", domain.StatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStatus(tt.raw))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback float64
		expected float64
	}{
		{"Inteiro simples", "1000", 0, 1000},
		{"Decimal com ponto", "150.75", 0, 150.75},
		{"Decimal com vírgula", "150,75", 0, 150.75},
		{"Moeda brasileira com milhar", "R$ 1.234,56", 0, 1234.56},
		{"Milhar americano com decimal", "1,234.56", 0, 1234.56},
		{"Milhar com ponto sem decimal", "1.234.567", 0, 1234567},
		{"Milhar com vírgula sem decimal", "1,234,567", 0, 1234567},
		{"Negativo", "-42", 0, -42},
		{"Vazio usa fallback", "", 7, 7},
		{"Sujeira sem dígito usa fallback", "n/d", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseNumber(tt.raw, tt.fallback))
		})
	}
}

func TestParseIntField(t *testing.T) {
	assert.Equal(t, 10, parseIntField("10", 0))
	assert.Equal(t, 11, parseIntField("10,6", 0))
	assert.Equal(t, 0, parseIntField("-3", 0))
	assert.Equal(t, 5, parseIntField("", 5))
}

func TestParseTimestamp(t *testing.T) {
	fallback := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      string
		expected time.Time
	}{
		{"ISO com hora", "2024-01-10 08:30:00", time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)},
		{"ISO somente data", "2024-01-10", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"Formato brasileiro", "10/01/2024", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"Brasileiro com hífen", "10-01-2024", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"Inparseável usa fallback", "ontem", fallback},
		{"Vazio usa fallback", "", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseTimestamp(tt.raw, fallback))
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "situacao", normalizeToken("Situação"))
	assert.Equal(t, "ticket_medio", normalizeToken("Ticket Médio"))
	assert.Equal(t, "no_show", normalizeToken("no-show"))
}
