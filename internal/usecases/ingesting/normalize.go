package ingesting

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics remove acentos para comparações insensíveis a diacríticos
// ("situação" ~ "situacao"). O transformer carrega estado, então é criado a
// cada chamada.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// normalizeToken prepara um cabeçalho ou valor para comparação: minúsculas,
// sem acentos, espaços e hífens colapsados em underscore.
func normalizeToken(s string) string {
	s = strings.TrimSpace(strings.ToLower(stripDiacritics(s)))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Grupos ordenados de palavras-chave de status. O primeiro grupo que casar
// vence; nenhum casamento resolve para "scheduled".
var statusKeywordGroups = []struct {
	status   domain.FactStatus
	keywords []string
}{
	{domain.StatusNoShow, []string{"no_show", "noshow", "falta", "faltou", "ausente", "nao_compareceu"}},
	{domain.StatusCancelled, []string{"cancel", "desmarc", "abandono"}},
	{domain.StatusCompleted, []string{"realizado", "realizada", "concluido", "concluida", "finalizado", "atendido", "compareceu", "completed", "done"}},
	{domain.StatusScheduled, []string{"agendado", "agendada", "marcado", "confirmado", "scheduled", "pendente"}},
}

// NormalizeStatus resolve o valor cru para um dos quatro status canônicos.
func NormalizeStatus(raw string) domain.FactStatus {
	token := normalizeToken(raw)
	if token == "" {
		return domain.StatusScheduled
	}

	for _, group := range statusKeywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(token, keyword) {
				return group.status
			}
		}
	}

	return domain.StatusScheduled
}

// parseNumber converte um valor monetário/numérico tolerando separador de
// milhar, vírgula decimal e sujeira ("R$ 1.234,56"). Falha de parse ou valor
// não finito resolve para o fallback.
func parseNumber(raw string, fallback float64) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, raw)

	if cleaned == "" {
		return fallback
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// O separador que aparece por último é o decimal; o outro é milhar.
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") > 1 {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	case lastDot >= 0 && strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return fallback
	}

	return value
}

// parseIntField converte para inteiro com arredondamento e piso em zero.
func parseIntField(raw string, fallback int) int {
	value := parseNumber(raw, float64(fallback))
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	return rounded
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
}

// parseTimestamp tenta os formatos conhecidos; valor inparseável resolve para
// o instante da normalização, nunca derruba a linha.
func parseTimestamp(raw string, fallback time.Time) time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts
		}
	}

	return fallback
}

// parseMaterials quebra a célula de materiais em itens individuais.
func parseMaterials(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '+' || r == '/'
	})

	materials := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			materials = append(materials, trimmed)
		}
	}
	return materials
}
