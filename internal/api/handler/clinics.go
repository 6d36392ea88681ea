package handler

import (
	"encoding/json"
	"net/http"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	clinicusecase "github.com/clinsight/clinic-insights-api/internal/usecases/clinic"
	"github.com/clinsight/clinic-insights-api/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ListClinics lista as clínicas cadastradas. `?active=true` recorta as ativas.
func ListClinics(service clinicusecase.ClinicService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := r.URL.Query().Get("active") == "true"

		clinics, err := service.ListClinics(onlyActive)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar clínicas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(clinics)
	}
}

// GetClinic retorna a clínica por ID
func GetClinic(service clinicusecase.ClinicService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clinicID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)
			return
		}

		clinic, err := service.GetClinic(clinicID)
		if err != nil {
			handleClinicError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(clinic)
	}
}

// CreateClinic cadastra uma nova clínica
func CreateClinic(service clinicusecase.ClinicService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateClinic")

		var clinic domain.Clinic
		if err := json.NewDecoder(r.Body).Decode(&clinic); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		created, err := service.CreateClinic(&clinic)
		if err != nil {
			if errors.Is(err, clinicusecase.ErrClinicNameRequired) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da clínica é obrigatório", nil)
				return
			}
			handleClinicError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

// UpdateClinic atualiza cadastro, plano e CAC da clínica
func UpdateClinic(service clinicusecase.ClinicService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateClinic")

		clinicID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clinicID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)
			return
		}

		var updateReq domain.UpdateClinicRequest
		if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		updateReq.ID = clinicID

		if err := service.UpdateClinic(&updateReq); err != nil {
			handleClinicError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

// handleClinicError traduz erros do usecase de clínicas para a resposta HTTP
func handleClinicError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var clinicErr *clinicusecase.ClinicError
	if errors.As(err, &clinicErr) {
		apiErrors.WriteError(w, clinicErr.Code, clinicErr.Error(), map[string]any{
			"clinic_id": clinicErr.ClinicID,
		})
		return
	}

	switch {
	case errors.Is(err, clinicusecase.ErrClinicIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)

	case errors.Is(err, clinicusecase.ErrClinicNotFound):
		apiErrors.WriteError(w, apiErrors.ErrClinicNotFound, "Clínica não encontrada", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar clínica", nil)
	}
}
