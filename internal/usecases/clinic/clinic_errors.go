package clinic

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de clínicas
var (
	// Erros de validação
	ErrClinicIDRequired   = errors.New("clinic ID is required")
	ErrClinicNameRequired = errors.New("clinic name is required")
	ErrClinicNotFound     = errors.New("clinic not found")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrUpdateClinic      = errors.New("error updating clinic")
	ErrFetchClinics      = errors.New("error fetching clinics from database")

	ErrGenerateID = errors.New("error generating UUID")
)

// ClinicError é um erro com contexto adicional para clínicas
type ClinicError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	ClinicID string // ID da clínica envolvida (quando aplicável)
	Details  string // Detalhes adicionais
}

func (e *ClinicError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ClinicError) Unwrap() error {
	return e.Err
}

func NewClinicError(err error, code string, details string) *ClinicError {
	return &ClinicError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewClinicErrorWithID(err error, code string, clinicID string, details string) *ClinicError {
	return &ClinicError{
		Err:      err,
		Code:     code,
		ClinicID: clinicID,
		Details:  details,
	}
}
