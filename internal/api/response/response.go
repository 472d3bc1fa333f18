// Package response padroniza as respostas JSON dos handlers.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// ErrorBody é o corpo de toda resposta de erro da API.
type ErrorBody struct {
	Code     int    `json:"code"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Handle escreve data com successStatus quando err é nil, ou traduz err para o
// status HTTP correspondente.
func Handle(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if encErr := json.NewEncoder(w).Encode(data); encErr != nil {
				log.Error("Falha ao serializar resposta.", encErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorBody{Code: status, Category: category, Message: message})
}

// Decode lê o corpo JSON da requisição em v, rejeitando campos desconhecidos.
func Decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperror.NewValidationError("Payload JSON inválido.")
	}
	return nil
}
