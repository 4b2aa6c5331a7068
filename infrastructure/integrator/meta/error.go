package meta

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/adsync-engine/internal/syncengine"
)

// errorResponse representa a estrutura de erro da Graph API
type errorResponse struct {
	Error errorDetails `json:"error"`
}

type errorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// isTokenExpired verifica se o erro é de token expirado.
// O código 190 representa token expirado; os subcódigos 460, 463 e 467 de
// OAuthException cobrem senha alterada, expiração e invalidação da sessão.
func (e *errorResponse) isTokenExpired() bool {
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" &&
			(e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// isRateLimited verifica se o erro é de limite de requisições.
// Códigos 4 (app), 17 (usuário), 32 (page) e 613 (custom) são as variantes
// de throttling da Graph API.
func (e *errorResponse) isRateLimited() bool {
	switch e.Error.Code {
	case 4, 17, 32, 613:
		return true
	}
	return false
}

// classifyError converte a resposta de erro da Graph API em um APIError
// classificado. A decisão usa somente código/subcódigo estruturados.
func classifyError(resp *http.Response, body []byte) error {
	var envelope errorResponse
	_ = json.Unmarshal(body, &envelope)

	code := strconv.Itoa(envelope.Error.Code)

	if envelope.isTokenExpired() {
		return syncengine.NewTokenExpiredError(code, envelope.Error.Message)
	}

	if envelope.isRateLimited() || resp.StatusCode == http.StatusTooManyRequests {
		return syncengine.NewRateLimitedError(code, envelope.Error.Message, retryAfter(resp))
	}

	message := envelope.Error.Message
	if message == "" {
		message = resp.Status
	}

	return syncengine.NewOtherAPIError(code, message)
}

// retryAfter extrai a sugestão de espera do cabeçalho Retry-After, se houver
func retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}
