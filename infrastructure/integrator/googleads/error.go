package googleads

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/adsync-engine/internal/syncengine"
)

// errorResponse representa o envelope de erro padrão das APIs do Google
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// classifyError converte o envelope de erro do Google Ads em um APIError
// classificado. O campo status carrega a categoria canônica do gRPC.
func classifyError(resp *http.Response, body []byte) error {
	var envelope errorResponse
	_ = json.Unmarshal(body, &envelope)

	code := envelope.Error.Status
	if code == "" {
		code = strconv.Itoa(resp.StatusCode)
	}

	switch envelope.Error.Status {
	case "UNAUTHENTICATED":
		return syncengine.NewTokenExpiredError(code, envelope.Error.Message)
	case "RESOURCE_EXHAUSTED":
		return syncengine.NewRateLimitedError(code, envelope.Error.Message, retryAfter(resp))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return syncengine.NewRateLimitedError(code, envelope.Error.Message, retryAfter(resp))
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return syncengine.NewTokenExpiredError(code, envelope.Error.Message)
	}

	message := envelope.Error.Message
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
