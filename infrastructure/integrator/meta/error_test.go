package meta

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-engine/internal/syncengine"
)

func graphResponse(statusCode int, headers map[string]string) *http.Response {
	resp := &http.Response{
		StatusCode: statusCode,
		Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Header:     http.Header{},
	}
	for key, value := range headers {
		resp.Header.Set(key, value)
	}
	return resp
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		resp     *http.Response
		wantKind syncengine.ErrorKind
	}{
		{
			name:     "Deve classificar código 190 como token expirado",
			body:     `{"error":{"message":"Error validating access token","type":"OAuthException","code":190}}`,
			resp:     graphResponse(http.StatusUnauthorized, nil),
			wantKind: syncengine.ErrorKindTokenExpired,
		},
		{
			name:     "Deve classificar OAuthException subcódigo 460 como token expirado",
			body:     `{"error":{"message":"Session invalidated","type":"OAuthException","code":102,"error_subcode":460}}`,
			resp:     graphResponse(http.StatusUnauthorized, nil),
			wantKind: syncengine.ErrorKindTokenExpired,
		},
		{
			name:     "Deve classificar OAuthException subcódigo 463 como token expirado",
			body:     `{"error":{"message":"Session expired","type":"OAuthException","code":102,"error_subcode":463}}`,
			resp:     graphResponse(http.StatusUnauthorized, nil),
			wantKind: syncengine.ErrorKindTokenExpired,
		},
		{
			name:     "Deve classificar OAuthException subcódigo 467 como token expirado",
			body:     `{"error":{"message":"Session invalid","type":"OAuthException","code":102,"error_subcode":467}}`,
			resp:     graphResponse(http.StatusUnauthorized, nil),
			wantKind: syncengine.ErrorKindTokenExpired,
		},
		{
			name:     "Deve classificar código 4 como rate limit de aplicação",
			body:     `{"error":{"message":"Application request limit reached","type":"OAuthException","code":4}}`,
			resp:     graphResponse(http.StatusBadRequest, nil),
			wantKind: syncengine.ErrorKindRateLimited,
		},
		{
			name:     "Deve classificar código 17 como rate limit de usuário",
			body:     `{"error":{"message":"User request limit reached","type":"OAuthException","code":17}}`,
			resp:     graphResponse(http.StatusBadRequest, nil),
			wantKind: syncengine.ErrorKindRateLimited,
		},
		{
			name:     "Deve classificar código 32 como rate limit",
			body:     `{"error":{"message":"Page request limit reached","type":"OAuthException","code":32}}`,
			resp:     graphResponse(http.StatusBadRequest, nil),
			wantKind: syncengine.ErrorKindRateLimited,
		},
		{
			name:     "Deve classificar código 613 como rate limit",
			body:     `{"error":{"message":"Calls to this api have exceeded the rate limit","type":"OAuthException","code":613}}`,
			resp:     graphResponse(http.StatusBadRequest, nil),
			wantKind: syncengine.ErrorKindRateLimited,
		},
		{
			name:     "Deve classificar HTTP 429 como rate limit mesmo sem código conhecido",
			body:     `{"error":{"message":"Too many requests","code":1}}`,
			resp:     graphResponse(http.StatusTooManyRequests, nil),
			wantKind: syncengine.ErrorKindRateLimited,
		},
		{
			name:     "Deve classificar erro de permissão como opaco",
			body:     `{"error":{"message":"Unsupported get request","type":"GraphMethodException","code":100}}`,
			resp:     graphResponse(http.StatusBadRequest, nil),
			wantKind: syncengine.ErrorKindOther,
		},
		{
			name:     "Deve classificar corpo não estruturado como opaco",
			body:     `<html>Bad Gateway</html>`,
			resp:     graphResponse(http.StatusBadGateway, nil),
			wantKind: syncengine.ErrorKindOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyError(tt.resp, []byte(tt.body))

			apiErr, ok := syncengine.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
		})
	}
}

func TestClassifyErrorRetryAfter(t *testing.T) {
	t.Run("Deve extrair a sugestão de espera do cabeçalho Retry-After", func(t *testing.T) {
		resp := graphResponse(http.StatusTooManyRequests, map[string]string{"Retry-After": "30"})
		err := classifyError(resp, []byte(`{"error":{"message":"limit","code":4}}`))

		apiErr, ok := syncengine.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 30*time.Second, apiErr.RetryAfter)
	})

	t.Run("Deve ignorar Retry-After inválido", func(t *testing.T) {
		resp := graphResponse(http.StatusTooManyRequests, map[string]string{"Retry-After": "soon"})
		err := classifyError(resp, []byte(`{"error":{"message":"limit","code":4}}`))

		apiErr, ok := syncengine.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, time.Duration(0), apiErr.RetryAfter)
	})
}
