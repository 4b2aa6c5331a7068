package tiktok

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/adsync-engine/internal/syncengine"
)

// Códigos de erro relevantes da TikTok Business API. O status vem no corpo
// da resposta, então a classificação ignora o status HTTP na maioria dos
// casos.
const (
	codeRateLimited  = 40100 // Too many requests
	codeTokenExpired = 40105 // Access token expirado
	codeTokenInvalid = 40104 // Access token inválido
)

// classifyError converte o envelope de erro do TikTok em um APIError
// classificado
func classifyError(resp *http.Response, env envelope) error {
	code := strconv.Itoa(env.Code)

	switch env.Code {
	case codeTokenExpired, codeTokenInvalid:
		return syncengine.NewTokenExpiredError(code, env.Message)
	case codeRateLimited:
		return syncengine.NewRateLimitedError(code, env.Message, retryAfter(resp))
	}

	return syncengine.NewOtherAPIError(code, env.Message)
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
