package snapchat

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/adsync-engine/internal/syncengine"
)

// errorResponse representa o envelope de erro da Marketing API
type errorResponse struct {
	RequestStatus string `json:"request_status"`
	ErrorCode     string `json:"error_code"`
	DebugMessage  string `json:"debug_message"`
}

// classifyError converte o erro da Marketing API em um APIError classificado.
// O Snapchat sinaliza token inválido por HTTP 401 e throttling por 429.
func classifyError(resp *http.Response, body []byte) error {
	var envelope errorResponse
	_ = json.Unmarshal(body, &envelope)

	code := envelope.ErrorCode
	if code == "" {
		code = strconv.Itoa(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return syncengine.NewTokenExpiredError(code, envelope.DebugMessage)
	case http.StatusTooManyRequests:
		return syncengine.NewRateLimitedError(code, envelope.DebugMessage, retryAfter(resp))
	}

	message := envelope.DebugMessage
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
