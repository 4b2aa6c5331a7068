package syncengine

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifica as falhas reportadas pelos adapters de plataforma
type ErrorKind string

const (
	ErrorKindTokenExpired ErrorKind = "token_expired"
	ErrorKindRateLimited  ErrorKind = "rate_limited"
	ErrorKindOther        ErrorKind = "other"
)

// Erros sentinela do motor de sync
var (
	// ErrInvalidCredentials indica credencial vazia detectada no pre-flight,
	// antes de qualquer chamada de rede
	ErrInvalidCredentials = errors.New("account credentials are missing or invalid")

	// ErrSyncInProgress indica que já existe um ciclo em andamento para a conta
	ErrSyncInProgress = errors.New("sync already in progress for this account")

	// ErrAdapterNotRegistered indica plataforma sem adapter configurado
	ErrAdapterNotRegistered = errors.New("no adapter registered for platform")
)

// APIError é a falha classificada da fronteira com a plataforma.
// A classificação vem sempre do payload estruturado de erro da plataforma
// (código/categoria), nunca de comparação de mensagens legíveis.
type APIError struct {
	Kind       ErrorKind
	Code       string
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("platform api error (%s, code=%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("platform api error (%s): %s", e.Kind, e.Message)
}

// NewTokenExpiredError cria o erro classificado de token expirado
func NewTokenExpiredError(code, message string) *APIError {
	return &APIError{Kind: ErrorKindTokenExpired, Code: code, Message: message}
}

// NewRateLimitedError cria o erro classificado de rate limit, com a sugestão
// de espera informada pela plataforma (zero se não informada)
func NewRateLimitedError(code, message string, retryAfter time.Duration) *APIError {
	return &APIError{Kind: ErrorKindRateLimited, Code: code, Message: message, RetryAfter: retryAfter}
}

// NewOtherAPIError cria o erro opaco de plataforma, não retentado neste nível
func NewOtherAPIError(code, message string) *APIError {
	return &APIError{Kind: ErrorKindOther, Code: code, Message: message}
}

// AsAPIError extrai o APIError da cadeia de erros, se houver
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTokenExpired verifica se o erro é de token expirado
func IsTokenExpired(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == ErrorKindTokenExpired
}

// IsRateLimited verifica se o erro é de rate limit
func IsRateLimited(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == ErrorKindRateLimited
}
