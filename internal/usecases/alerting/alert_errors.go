package alerting

import "errors"

var (
	ErrClinicNotInformed = errors.New("clínica não informada")
	ErrAlertNotInformed  = errors.New("alerta não informado no rascunho de RCA")
	ErrRcaPersistence    = errors.New("falha ao persistir o rascunho de RCA")
)
