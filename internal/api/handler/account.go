package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-engine/internal/domain"
	"github.com/vfg2006/adsync-engine/internal/usecases/account"
	"github.com/vfg2006/adsync-engine/pkg/apiErrors"
)

const metricsDefaultRangeDays = 7

// AccountList lista as contas de anúncio conectadas, com filtro opcional de
// saúde da credencial (?health=active,token_expired)
func AccountList(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var health []domain.AccountHealth

		if raw := r.URL.Query().Get("health"); raw != "" {
			for _, value := range strings.Split(raw, ",") {
				health = append(health, domain.AccountHealth(strings.TrimSpace(value)))
			}
		}

		accounts, err := service.ListAccounts(r.Context(), health)
		if err != nil {
			handleAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(accounts)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ConnectAccount conecta uma conta de anúncios de uma plataforma externa
func ConnectAccount(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ConnectAccount")

		var req *domain.ConnectAccountRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		accountResponse, err := service.ConnectAccount(r.Context(), req)
		if err != nil {
			handleAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		err = json.NewEncoder(w).Encode(accountResponse)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GetAccountMetrics consulta as métricas diárias persistidas de uma conta
// no período informado (?start_date=2026-08-01&end_date=2026-08-07)
func GetAccountMetrics(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
			return
		}

		endDate := time.Now().Truncate(24 * time.Hour)
		startDate := endDate.AddDate(0, 0, -metricsDefaultRangeDays)

		var err error
		if raw := r.URL.Query().Get("start_date"); raw != "" {
			startDate, err = time.Parse("2006-01-02", raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválido, use o formato YYYY-MM-DD", nil)
				return
			}
		}

		if raw := r.URL.Query().Get("end_date"); raw != "" {
			endDate, err = time.Parse("2006-01-02", raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválido, use o formato YYYY-MM-DD", nil)
				return
			}
		}

		if endDate.Before(startDate) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "end_date deve ser posterior a start_date", nil)
			return
		}

		metrics, err := service.GetAccountMetrics(r.Context(), accountID, startDate, endDate)
		if err != nil {
			handleAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(metrics)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// handleAccountError converte os erros do caso de uso de contas na resposta
// padronizada da API
func handleAccountError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var accountErr *account.AccountError
	if errors.As(err, &accountErr) {
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), nil)
		return
	}

	if errors.Is(err, account.ErrAccountIDRequired) {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a requisição", nil)
}
