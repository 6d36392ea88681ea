package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/internal/usecases/ingesting"
	"github.com/clinsight/clinic-insights-api/pkg/apiErrors"
	"github.com/clinsight/clinic-insights-api/pkg/log"
	"github.com/julienschmidt/httprouter"
)

// Limite de tamanho do upload (bytes)
const maxUploadSize = 10 << 20 // 10 MB

type CommitUploadResponse struct {
	Batch    *domain.UploadBatch `json:"batch"`
	Warnings []string            `json:"warnings"`
}

// PreviewUpload normaliza o arquivo enviado sem persistir nada. É a tela de
// conferência: linhas aproveitadas mais avisos.
func PreviewUpload(service ingesting.IngestService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		upload, ok := readUpload(w, r)
		if !ok {
			return
		}

		result := service.Preview(*upload)

		logger.WithFields(log.Fields{
			"file_name": upload.FileName,
			"rows":      len(result.Rows),
			"warnings":  len(result.Warnings),
		}).Info("ingest: upload previewed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("ingest: failed to encode preview response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// CommitUpload normaliza e commita o lote para a clínica da URL.
func CommitUpload(service ingesting.IngestService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clinicID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clinicID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)
			return
		}

		upload, ok := readUpload(w, r)
		if !ok {
			return
		}

		batch, result, err := service.Ingest(r.Context(), clinicID, *upload)
		if err != nil {
			logger.WithFields(log.Fields{
				"clinic_id": clinicID,
				"file_name": upload.FileName,
				"error":     err.Error(),
			}).Error("ingest: failed to commit upload")

			switch {
			case errors.Is(err, ingesting.ErrNoRowsToCommit):
				// Zero linhas não é crash: devolve os avisos para o operador.
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(result)
			case errors.Is(err, ingesting.ErrClinicNotInformed):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrCommitRejected, "Falha ao persistir o lote; tente novamente", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"clinic_id": clinicID,
			"batch_id":  batch.ID,
			"rows":      batch.RowCount,
			"warnings":  batch.WarningCount,
		}).Info("ingest: upload committed")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CommitUploadResponse{
			Batch:    batch,
			Warnings: result.Warnings,
		})
	})
}

// ListUploadBatches lista os lotes commitados da clínica.
func ListUploadBatches(service ingesting.IngestService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clinicID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clinicID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)
			return
		}

		batches, err := service.ListBatches(clinicID)
		if err != nil {
			logger.WithError(err).Error("ingest: failed to list upload batches")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar lotes", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(batches)
	})
}

// readUpload extrai o arquivo do corpo multipart. Escreve a resposta de erro
// e retorna false quando o corpo não serve.
func readUpload(w http.ResponseWriter, r *http.Request) (*domain.RawUpload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrUploadTooLarge, "Arquivo acima do limite de 10MB", nil)
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrUploadUnreadable, "Campo 'file' ausente ou ilegível", nil)
		return nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrUploadUnreadable, "Erro ao ler o arquivo enviado", nil)
		return nil, false
	}

	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if declared := r.FormValue("file_type"); declared != "" {
		fileType = strings.ToLower(declared)
	}

	return &domain.RawUpload{
		FileName: header.Filename,
		FileType: domain.UploadFileType(fileType),
		Content:  content,
	}, true
}
