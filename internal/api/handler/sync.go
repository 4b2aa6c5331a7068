package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-engine/internal/scheduler"
	"github.com/vfg2006/adsync-engine/internal/syncengine"
	"github.com/vfg2006/adsync-engine/internal/usecases/account"
	"github.com/vfg2006/adsync-engine/pkg/apiErrors"
)

// SyncServices contém os serviços necessários para operar o sync pela API
type SyncServices struct {
	Scheduler      *scheduler.AccountSyncService
	AccountService account.AccountService
}

// TriggerAccountSync executa o ciclo de sync de uma única conta de forma
// síncrona e devolve o relatório do ciclo
func TriggerAccountSync(services SyncServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - TriggerAccountSync")

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
			return
		}

		// Valida a existência da conta antes de acionar o ciclo
		if _, err := services.AccountService.GetAccount(r.Context(), accountID); err != nil {
			handleAccountError(w, err)
			return
		}

		report, err := services.Scheduler.TriggerAccountSync(r.Context(), accountID)
		if err != nil {
			handleSyncError(w, accountID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(report)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GetSyncReport devolve o último relatório de sync de uma conta
func GetSyncReport(services SyncServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
			return
		}

		report := services.Scheduler.LastReport(accountID)
		if report == nil {
			apiErrors.WriteError(w, apiErrors.ErrSyncReportUnavailable, "Nenhum relatório de sync disponível para a conta", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(report)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// RunSync inicia manualmente a sincronização de todas as contas saudáveis
func RunSync(services SyncServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunSync")

		services.Scheduler.TriggerManualSync()

		response := map[string]any{
			"message": "Sincronização de contas iniciada com sucesso",
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetSyncStatus retorna o status do agendador de sincronização
func GetSyncStatus(services SyncServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(services.Scheduler.GetStatus())
	}
}

// handleSyncError converte os erros do motor de sync na resposta padronizada
func handleSyncError(w http.ResponseWriter, accountID string, err error) {
	logrus.WithField("account_id", accountID).Error(err)

	switch {
	case errors.Is(err, syncengine.ErrSyncInProgress):
		apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Já existe um ciclo de sync em andamento para a conta", nil)

	case errors.Is(err, syncengine.ErrAdapterNotRegistered):
		apiErrors.WriteError(w, apiErrors.ErrPlatformUnsupported, "Plataforma da conta não possui adapter registrado", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao sincronizar a conta", nil)
	}
}
