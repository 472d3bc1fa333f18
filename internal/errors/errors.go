package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do serviço.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "CAPACITY_EXCEEDED")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio (e.g., recurso duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa falha de autenticação (token ausente, inválido ou expirado).
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// --- Rejeições de Estoque ---

// Reason identifica por que uma operação de estoque foi rejeitada.
type Reason string

const (
	ReasonNegativeQuantity  Reason = "NEGATIVE_QUANTITY"
	ReasonNilMaterial       Reason = "NIL_MATERIAL"
	ReasonNilDestination    Reason = "NIL_DESTINATION"
	ReasonMaterialNotFound  Reason = "MATERIAL_NOT_FOUND"
	ReasonInsufficientStock Reason = "INSUFFICIENT_STOCK"
	ReasonCapacityExceeded  Reason = "CAPACITY_EXCEEDED"
)

// StockError é a rejeição de uma operação de armazém. Nenhum estado foi alterado
// quando este erro é retornado.
type StockError struct {
	Reason Reason
	Msg    string
}

func (e *StockError) Error() string    { return fmt.Sprintf("Operação de estoque rejeitada (%s): %s", e.Reason, e.Msg) }
func (e *StockError) Category() string { return string(e.Reason) }
func (e *StockError) Unwrap() error    { return nil }

func (e *StockError) HTTPStatus() int {
	switch e.Reason {
	case ReasonMaterialNotFound:
		return http.StatusNotFound
	case ReasonInsufficientStock, ReasonCapacityExceeded:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// Is compara pela Reason, permitindo errors.Is(err, ErrCapacityExceeded).
func (e *StockError) Is(target error) bool {
	var t *StockError
	if !errors.As(target, &t) {
		return false
	}
	return t.Reason == e.Reason
}

// NewStockError cria uma rejeição de estoque com a razão informada.
func NewStockError(reason Reason, msg string) AppError {
	return &StockError{Reason: reason, Msg: msg}
}

// Sentinelas para comparação com errors.Is.
var (
	ErrNegativeQuantity  = &StockError{Reason: ReasonNegativeQuantity, Msg: "quantidade não pode ser negativa"}
	ErrNilMaterial       = &StockError{Reason: ReasonNilMaterial, Msg: "material não pode ser nulo"}
	ErrNilDestination    = &StockError{Reason: ReasonNilDestination, Msg: "armazém de destino não pode ser nulo"}
	ErrMaterialNotFound  = &StockError{Reason: ReasonMaterialNotFound, Msg: "material não encontrado no armazém"}
	ErrInsufficientStock = &StockError{Reason: ReasonInsufficientStock, Msg: "estoque insuficiente"}
	ErrCapacityExceeded  = &StockError{Reason: ReasonCapacityExceeded, Msg: "capacidade máxima atingida"}
)

// ReasonOf extrai a Reason de uma rejeição de estoque, se houver.
func ReasonOf(err error) (Reason, bool) {
	var se *StockError
	if errors.As(err, &se) {
		return se.Reason, true
	}
	return "", false
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou infraestrutura.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
