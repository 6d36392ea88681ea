package ingesting

import "errors"

var (
	ErrEmptyUpload       = errors.New("upload sem conteúdo")
	ErrNoRowsToCommit    = errors.New("nenhuma linha válida para commit")
	ErrBatchPersistence  = errors.New("falha ao persistir o lote de fatos")
	ErrClinicNotInformed = errors.New("clínica não informada")
)

type IngestError struct {
	Err     error
	Code    string
	Details map[string]interface{}
}

func (e *IngestError) Error() string {
	return e.Err.Error()
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

func NewIngestError(err error, code string, details map[string]interface{}) *IngestError {
	return &IngestError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
