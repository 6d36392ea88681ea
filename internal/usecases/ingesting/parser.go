package ingesting

import (
	"fmt"
	"strings"
	"time"

	"github.com/clinsight/clinic-insights-api/internal/domain"
)

// Campos alvo da normalização. A ordem das listas de aliases importa: o
// primeiro alias que casar com um cabeçalho resolve a coluna.
const (
	fieldTimestamp    = "timestamp"
	fieldChannel      = "channel"
	fieldProfessional = "professional"
	fieldProcedure    = "procedure"
	fieldStatus       = "status"
	fieldPipeline     = "pipeline"
	fieldUnit         = "unit"
	fieldEntries      = "entries"
	fieldExits        = "exits"
	fieldSlots        = "slotsAvailable"
	fieldSlotsEmpty   = "slotsEmpty"
	fieldTicket       = "ticketAverage"
	fieldVariableCost = "variableCost"
	fieldDuration     = "durationMinutes"
	fieldMaterials    = "materials"
	fieldWait         = "waitMinutes"
	fieldNPS          = "npsScore"
	fieldRevCurrent   = "baseRevenueCurrent"
	fieldRevPrevious  = "baseRevenuePrevious"
	fieldCRMLead      = "crmLeadId"
)

var fieldAliases = map[string][]string{
	fieldTimestamp:    {"data", "date", "timestamp", "data_hora", "datetime", "dia"},
	fieldChannel:      {"canal", "channel", "origem", "source", "midia"},
	fieldProfessional: {"profissional", "professional", "doutor", "dentista", "medico", "atendente"},
	fieldProcedure:    {"procedimento", "procedure", "servico", "tratamento"},
	fieldStatus:       {"situacao", "status", "estado", "resultado"},
	fieldPipeline:     {"pipeline", "funil", "etapa"},
	fieldUnit:         {"unidade", "unit", "filial", "sede"},
	fieldEntries:      {"entradas", "entries", "receita", "faturamento", "valor_entrada", "inflow"},
	fieldExits:        {"saidas", "exits", "despesas", "custos_totais", "valor_saida", "outflow"},
	fieldSlots:        {"slots", "horarios", "vagas", "capacidade", "slots_disponiveis"},
	fieldSlotsEmpty:   {"slots_vazios", "vazios", "ociosos", "vagas_vazias", "empty_slots"},
	fieldTicket:       {"ticket_medio", "ticket", "avg_ticket", "valor_medio"},
	fieldVariableCost: {"custo_variavel", "variable_cost", "custo"},
	fieldDuration:     {"duracao", "duration", "minutos", "tempo_atendimento"},
	fieldMaterials:    {"materiais", "materials", "insumos"},
	fieldWait:         {"espera", "wait", "tempo_espera", "fila"},
	fieldNPS:          {"nps", "nota", "satisfacao", "score"},
	fieldRevCurrent:   {"receita_base_atual", "receita_atual", "base_revenue_current"},
	fieldRevPrevious:  {"receita_base_anterior", "receita_anterior", "base_revenue_previous"},
	fieldCRMLead:      {"lead_id", "crm_lead", "id_lead", "lead"},
}

// Ordem fixa de resolução para que cabeçalhos ambíguos (ex.: "slots_vazios"
// serve a slots e slotsEmpty) sejam atribuídos de forma determinística, com o
// campo mais específico primeiro.
var fieldResolutionOrder = []string{
	fieldTimestamp,
	fieldChannel,
	fieldProfessional,
	fieldProcedure,
	fieldStatus,
	fieldPipeline,
	fieldUnit,
	fieldEntries,
	fieldExits,
	fieldSlotsEmpty,
	fieldSlots,
	fieldTicket,
	fieldVariableCost,
	fieldDuration,
	fieldMaterials,
	fieldWait,
	fieldNPS,
	fieldRevCurrent,
	fieldRevPrevious,
	fieldCRMLead,
}

// Parser transforma uploads crus em FactRows canônicos. nowFn existe para que
// os testes controlem o fallback de timestamp.
type Parser struct {
	nowFn func() time.Time
}

func NewParser() *Parser {
	return &Parser{nowFn: time.Now}
}

func NewParserWithClock(nowFn func() time.Time) *Parser {
	return &Parser{nowFn: nowFn}
}

// Parse normaliza o upload. Nunca retorna erro: tipo não suportado ou
// conteúdo vazio produzem zero linhas mais avisos.
func (p *Parser) Parse(upload domain.RawUpload) domain.ParseResult {
	result := domain.ParseResult{
		Rows:     []domain.FactRow{},
		Warnings: []string{},
	}

	switch upload.FileType {
	case domain.FileTypeCSV, domain.FileTypePDF:
		// PDFs chegam já extraídos como texto delimitado, então seguem o
		// mesmo caminho do CSV.
	default:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("tipo de arquivo não suportado: %s (apenas csv e pdf textual são aceitos)", upload.FileType))
		return result
	}

	lines := splitLines(string(upload.Content))
	if len(lines) == 0 {
		result.Warnings = append(result.Warnings, "arquivo vazio: nenhuma linha encontrada")
		return result
	}

	delimiter := senseDelimiter(lines[0])
	header := splitCells(lines[0], delimiter)
	columns := resolveColumns(header)

	if _, ok := columns[fieldTimestamp]; !ok {
		result.Warnings = append(result.Warnings, "cabeçalho sem coluna de data reconhecível; usando o instante da importação")
	}

	now := p.nowFn()

	for i, line := range lines[1:] {
		cells := splitCells(line, delimiter)
		if isBlankRow(cells) {
			continue
		}

		if len(cells) != len(header) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("linha %d: %d colunas encontradas, %d esperadas; valores ausentes tratados como vazios", i+1, len(cells), len(header)))
		}

		row := p.buildRow(cells, columns, now)
		row.ID = fmt.Sprintf("row-%d", len(result.Rows)+1)
		result.Rows = append(result.Rows, row)
	}

	if len(result.Rows) == 0 {
		result.Warnings = append(result.Warnings, "nenhuma linha de dados após o cabeçalho")
	}

	return result
}

func (p *Parser) buildRow(cells []string, columns map[string]int, now time.Time) domain.FactRow {
	cell := func(field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[idx])
	}

	text := func(field, fallback string) string {
		if v := cell(field); v != "" {
			return v
		}
		return fallback
	}

	row := domain.FactRow{
		Timestamp:           parseTimestamp(cell(fieldTimestamp), now),
		Channel:             text(fieldChannel, "unknown"),
		Professional:        text(fieldProfessional, "unknown"),
		Procedure:           text(fieldProcedure, "unknown"),
		Status:              NormalizeStatus(cell(fieldStatus)),
		Pipeline:            cell(fieldPipeline),
		Unit:                cell(fieldUnit),
		Entries:             parseNumber(cell(fieldEntries), 0),
		Exits:               parseNumber(cell(fieldExits), 0),
		SlotsAvailable:      parseIntField(cell(fieldSlots), 0),
		SlotsEmpty:          parseIntField(cell(fieldSlotsEmpty), 0),
		TicketAverage:       parseNumber(cell(fieldTicket), 0),
		VariableCost:        parseNumber(cell(fieldVariableCost), 0),
		DurationMinutes:     parseNumber(cell(fieldDuration), 0),
		Materials:           parseMaterials(cell(fieldMaterials)),
		WaitMinutes:         parseNumber(cell(fieldWait), 0),
		NPSScore:            parseNumber(cell(fieldNPS), 0),
		BaseRevenueCurrent:  parseNumber(cell(fieldRevCurrent), 0),
		BaseRevenuePrevious: parseNumber(cell(fieldRevPrevious), 0),
		CRMLeadID:           cell(fieldCRMLead),
		SourceType:          domain.SourceUpload,
	}

	// Invariante: slotsEmpty nunca excede slotsAvailable.
	if row.SlotsEmpty > row.SlotsAvailable {
		row.SlotsEmpty = row.SlotsAvailable
	}

	return row
}

// resolveColumns casa cabeçalhos com campos alvo em duas passadas: igualdade
// exata primeiro, depois substring. Cada coluna atende no máximo um campo.
func resolveColumns(header []string) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeToken(h)
	}

	columns := make(map[string]int, len(fieldResolutionOrder))
	claimed := make(map[int]bool, len(header))

	for _, field := range fieldResolutionOrder {
		idx := matchColumn(normalized, claimed, fieldAliases[field], true)
		if idx < 0 {
			idx = matchColumn(normalized, claimed, fieldAliases[field], false)
		}
		if idx >= 0 {
			columns[field] = idx
			claimed[idx] = true
		}
	}

	return columns
}

func matchColumn(normalized []string, claimed map[int]bool, aliases []string, exact bool) int {
	for _, alias := range aliases {
		for i, h := range normalized {
			if claimed[i] || h == "" {
				continue
			}
			if exact && h == alias {
				return i
			}
			if !exact && strings.Contains(h, alias) {
				return i
			}
		}
	}
	return -1
}

// senseDelimiter escolhe o delimitador mais frequente na linha de cabeçalho.
// Empate resolve na ordem vírgula, ponto e vírgula, pipe, tab.
func senseDelimiter(headerLine string) rune {
	candidates := []rune{',', ';', '|', '\t'}

	best := candidates[0]
	bestCount := strings.Count(headerLine, string(best))
	for _, c := range candidates[1:] {
		if count := strings.Count(headerLine, string(c)); count > bestCount {
			best = c
			bestCount = count
		}
	}

	return best
}

func splitLines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitCells(line string, delimiter rune) []string {
	cells := strings.Split(line, string(delimiter))
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
