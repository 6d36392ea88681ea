package ingesting

import (
	"testing"
	"time"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestParser_Parse_CSVCompleto(t *testing.T) {
	parser := NewParserWithClock(fixedClock)

	content := "data,canal,profissional,procedimento,situacao,entradas,saidas,slots,slots_vazios,ticket\n" +
		"2024-01-10,instagram,Dra. Ana,Limpeza,realizado,1000,200,10,2,150\n"

	result := parser.Parse(domain.RawUpload{
		FileName: "export.csv",
		FileType: domain.FileTypeCSV,
		Content:  []byte(content),
	})

	assert.Len(t, result.Rows, 1)
	assert.Empty(t, result.Warnings)

	row := result.Rows[0]
	assert.Equal(t, "row-1", row.ID)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), row.Timestamp)
	assert.Equal(t, "instagram", row.Channel)
	assert.Equal(t, "Dra. Ana", row.Professional)
	assert.Equal(t, "Limpeza", row.Procedure)
	assert.Equal(t, domain.StatusCompleted, row.Status)
	assert.Equal(t, 1000.0, row.Entries)
	assert.Equal(t, 200.0, row.Exits)
	assert.Equal(t, 10, row.SlotsAvailable)
	assert.Equal(t, 2, row.SlotsEmpty)
	assert.Equal(t, 150.0, row.TicketAverage)
	assert.Equal(t, domain.SourceUpload, row.SourceType)
}

func TestParser_Parse_Deterministico(t *testing.T) {
	parser := NewParserWithClock(fixedClock)

	content := "data;situacao;entradas\n" +
		"2024-01-10;realizado;100\n" +
		"2024-01-11;faltou;0\n"

	upload := domain.RawUpload{FileType: domain.FileTypeCSV, Content: []byte(content)}

	first := parser.Parse(upload)
	second := parser.Parse(upload)

	assert.Equal(t, first, second)
}

func TestParser_Parse_Cenarios(t *testing.T) {
	tests := []struct {
		name     string
		upload   domain.RawUpload
		validate func(t *testing.T, result domain.ParseResult)
	}{
		{
			name: "Tipo não suportado gera aviso e zero linhas",
			upload: domain.RawUpload{
				FileName: "planilha.xlsx",
				FileType: domain.FileTypeXLSX,
				Content:  []byte("data,entradas\n2024-01-10,100\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Empty(t, result.Rows)
				assert.Len(t, result.Warnings, 1)
				assert.Contains(t, result.Warnings[0], "tipo de arquivo não suportado")
			},
		},
		{
			name: "Arquivo vazio gera aviso",
			upload: domain.RawUpload{
				FileType: domain.FileTypeCSV,
				Content:  []byte(""),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Empty(t, result.Rows)
				assert.Contains(t, result.Warnings[0], "arquivo vazio")
			},
		},
		{
			name: "Somente cabeçalho gera aviso de zero linhas",
			upload: domain.RawUpload{
				FileType: domain.FileTypeCSV,
				Content:  []byte("data,entradas\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Empty(t, result.Rows)
				assert.Contains(t, result.Warnings[len(result.Warnings)-1], "nenhuma linha de dados")
			},
		},
		{
			name: "Sem coluna de data usa o instante da importação",
			upload: domain.RawUpload{
				FileType: domain.FileTypeCSV,
				Content:  []byte("canal,entradas\ninstagram,500\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Len(t, result.Rows, 1)
				assert.Equal(t, fixedClock(), result.Rows[0].Timestamp)
				assert.Contains(t, result.Warnings[0], "sem coluna de data")
			},
		},
		{
			name: "Delimitador ponto e vírgula é detectado",
			upload: domain.RawUpload{
				FileType: domain.FileTypeCSV,
				Content:  []byte("data;canal;entradas\n2024-02-01;google;300\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Len(t, result.Rows, 1)
				assert.Equal(t, "google", result.Rows[0].Channel)
				assert.Equal(t, 300.0, result.Rows[0].Entries)
			},
		},
		{
			name: "Delimitador pipe é detectado",
			upload: domain.RawUpload{
				FileType: domain.FileTypePDF,
				Content:  []byte("data|situacao|ticket_medio\n2024-02-01|cancelado|80,50\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Len(t, result.Rows, 1)
				assert.Equal(t, domain.StatusCancelled, result.Rows[0].Status)
				assert.Equal(t, 80.50, result.Rows[0].TicketAverage)
			},
		},
		{
			name: "Linha com colunas faltando gera aviso mas é aproveitada",
			upload: domain.RawUpload{
				FileType: domain.FileTypeCSV,
				Content:  []byte("data,canal,entradas\n2024-02-01,whatsapp\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Len(t, result.Rows, 1)
				assert.Equal(t, "whatsapp", result.Rows[0].Channel)
				assert.Equal(t, 0.0, result.Rows[0].Entries)
				assert.Contains(t, result.Warnings[0], "colunas encontradas")
			},
		},
		{
			name: "Slots vazios são limitados aos slots disponíveis",
			upload: domain.RawUpload{
				FileType: domain.FileTypeCSV,
				Content:  []byte("data,slots,slots_vazios\n2024-02-01,5,9\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Len(t, result.Rows, 1)
				assert.Equal(t, 5, result.Rows[0].SlotsAvailable)
				assert.Equal(t, 5, result.Rows[0].SlotsEmpty)
			},
		},
		{
			name: "Dimensões ausentes recebem o valor padrão",
			upload: domain.RawUpload{
				FileType: domain.FileTypeCSV,
				Content:  []byte("data,entradas\n2024-02-01,100\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Len(t, result.Rows, 1)
				assert.Equal(t, "unknown", result.Rows[0].Channel)
				assert.Equal(t, "unknown", result.Rows[0].Professional)
				assert.Equal(t, "unknown", result.Rows[0].Procedure)
				assert.Equal(t, domain.StatusScheduled, result.Rows[0].Status)
			},
		},
		{
			name: "Cabeçalhos com acento e caixa alta são reconhecidos",
			upload: domain.RawUpload{
				FileType: domain.FileTypeCSV,
				Content:  []byte("Data,Situação,Profissional\n10/01/2024,Não Compareceu,Dr. Caio\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Len(t, result.Rows, 1)
				assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), result.Rows[0].Timestamp)
				assert.Equal(t, domain.StatusNoShow, result.Rows[0].Status)
				assert.Equal(t, "Dr. Caio", result.Rows[0].Professional)
			},
		},
		{
			name: "Materiais são divididos em itens",
			upload: domain.RawUpload{
				FileType: domain.FileTypeCSV,
				Content:  []byte("data,materiais\n2024-02-01,resina; anestésico / sugador\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Len(t, result.Rows, 1)
				assert.Equal(t, []string{"resina", "anestésico", "sugador"}, result.Rows[0].Materials)
			},
		},
		{
			name: "Linhas em branco são ignoradas",
			upload: domain.RawUpload{
				FileType: domain.FileTypeCSV,
				Content:  []byte("data,entradas\n2024-02-01,100\n\n,,\n2024-02-02,200\n"),
			},
			validate: func(t *testing.T, result domain.ParseResult) {
				assert.Len(t, result.Rows, 2)
				assert.Equal(t, "row-1", result.Rows[0].ID)
				assert.Equal(t, "row-2", result.Rows[1].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParserWithClock(fixedClock)
			result := parser.Parse(tt.upload)
			tt.validate(t, result)
		})
	}
}

func TestResolveColumns_SlotsVaziosNaoRoubaSlots(t *testing.T) {
	// "slots_vazios" contém "slots"; a ordem de resolução garante que o campo
	// específico reivindica a coluna antes do genérico.
	header := []string{"slots_vazios", "slots"}

	columns := resolveColumns(header)

	assert.Equal(t, 0, columns[fieldSlotsEmpty])
	assert.Equal(t, 1, columns[fieldSlots])
}

func TestSenseDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected rune
	}{
		{"Vírgula simples", "data,canal,entradas", ','},
		{"Ponto e vírgula dominante", "data;canal;entradas", ';'},
		{"Pipe dominante", "data|canal|entradas", '|'},
		{"Tab dominante", "data\tcanal\tentradas", '\t'},
		{"Empate resolve para vírgula", "data", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, senseDelimiter(tt.header))
		})
	}
}
