package pinterest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/adsync-engine/internal/syncengine"
)

// errorResponse representa o envelope de erro da Ads API
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// classifyError converte o erro da Ads API em um APIError classificado.
// O Pinterest sinaliza token inválido por HTTP 401 e throttling por 429.
func classifyError(resp *http.Response, body []byte) error {
	var envelope errorResponse
	_ = json.Unmarshal(body, &envelope)

	code := strconv.Itoa(envelope.Code)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return syncengine.NewTokenExpiredError(code, envelope.Message)
	case http.StatusTooManyRequests:
		return syncengine.NewRateLimitedError(code, envelope.Message, retryAfter(resp))
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
