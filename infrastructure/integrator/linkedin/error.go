package linkedin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/adsync-engine/internal/syncengine"
)

// errorResponse representa o envelope de erro da Marketing API
type errorResponse struct {
	ServiceErrorCode int    `json:"serviceErrorCode"`
	Message          string `json:"message"`
	Status           int    `json:"status"`
}

// Códigos de serviço de token da Marketing API
const (
	codeTokenExpired = 65601 // Token expirado
	codeTokenRevoked = 65600 // Token revogado
)

// classifyError converte o envelope de erro do LinkedIn em um APIError
// classificado
func classifyError(resp *http.Response, body []byte) error {
	var envelope errorResponse
	_ = json.Unmarshal(body, &envelope)

	code := strconv.Itoa(envelope.ServiceErrorCode)

	if envelope.ServiceErrorCode == codeTokenExpired || envelope.ServiceErrorCode == codeTokenRevoked {
		return syncengine.NewTokenExpiredError(code, envelope.Message)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return syncengine.NewRateLimitedError(code, envelope.Message, retryAfter(resp))
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return syncengine.NewTokenExpiredError(code, envelope.Message)
	}

	message := envelope.Message
	if message == "" {
		message = resp.Status
	}

	return syncengine.NewOtherAPIError(code, message)
}

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
