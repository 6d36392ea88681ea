package domain

import "time"

// UploadFileType é a extensão declarada pelo chamador no upload.
type UploadFileType string

const (
	FileTypeCSV  UploadFileType = "csv"
	FileTypePDF  UploadFileType = "pdf"
	FileTypeXLSX UploadFileType = "xlsx"
)

// RawUpload carrega os bytes crus de um export operacional e o tipo declarado.
type RawUpload struct {
	FileName string
	FileType UploadFileType
	Content  []byte
}

// ParseResult é a saída da normalização: linhas aproveitadas mais os avisos
// acumulados. Zero linhas com avisos é um resultado válido, não um erro.
type ParseResult struct {
	Rows     []FactRow `json:"rows"`
	Warnings []string  `json:"warnings"`
}

// UploadBatch é o registro de um lote commitado de fatos.
type UploadBatch struct {
	ID           string         `json:"id"`
	ClinicID     string         `json:"clinic_id"`
	FileName     string         `json:"file_name"`
	FileType     UploadFileType `json:"file_type"`
	RowCount     int            `json:"row_count"`
	WarningCount int            `json:"warning_count"`
	CreatedAt    time.Time      `json:"created_at"`
}
