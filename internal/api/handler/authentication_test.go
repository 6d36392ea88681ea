package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clinsight/clinic-insights-api/internal/usecases/authenticating"
	"github.com/clinsight/clinic-insights-api/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
)

// Cada sentinela de autenticação precisa de um código correspondente na
// tabela de erros da API, senão o login responde 500 genérico.
func TestHandleLoginError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedCode   string
		expectedStatus int
	}{
		{
			name:           "Credenciais inválidas",
			err:            authenticating.ErrInvalidCredentials,
			expectedCode:   apiErrors.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Usuário desativado",
			err:            authenticating.ErrUserDisabled,
			expectedCode:   apiErrors.ErrUserDisabled,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Usuário não encontrado",
			err:            authenticating.ErrUserNotFound,
			expectedCode:   apiErrors.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Usuário bloqueado temporariamente",
			err:            authenticating.ErrUserLocked,
			expectedCode:   apiErrors.ErrUserLocked,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Erro desconhecido cai no genérico",
			err:            assert.AnError,
			expectedCode:   apiErrors.ErrInternalServer,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			handleLoginError(recorder, tt.err)

			assert.Equal(t, tt.expectedStatus, recorder.Code)

			var apiErr apiErrors.APIError
			assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&apiErr))
			assert.Equal(t, tt.expectedCode, apiErr.Code)
		})
	}
}

func TestHandleLoginError_AuthErrorCarregaCodigo(t *testing.T) {
	recorder := httptest.NewRecorder()

	authErr := authenticating.NewUserAuthError(
		authenticating.ErrUserLocked,
		apiErrors.ErrUserLocked,
		42,
		"muitas tentativas",
	)

	handleLoginError(recorder, authErr)

	assert.Equal(t, http.StatusForbidden, recorder.Code)

	var apiErr apiErrors.APIError
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&apiErr))
	assert.Equal(t, apiErrors.ErrUserLocked, apiErr.Code)
}
