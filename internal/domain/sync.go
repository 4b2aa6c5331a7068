package domain

import "time"

// SyncState representa o estado da máquina de estados de um ciclo de sync
type SyncState string

const (
	SyncStateIdle            SyncState = "idle"
	SyncStateTokenChecked    SyncState = "token_checked"
	SyncStateCampaignsSynced SyncState = "campaigns_synced"
	SyncStateAdGroupsSynced  SyncState = "ad_groups_synced"
	SyncStateAdsSynced       SyncState = "ads_synced"
	SyncStateMetricsSynced   SyncState = "metrics_synced"
	SyncStateDone            SyncState = "done"
	SyncStateAborted         SyncState = "aborted"
)

// SyncStep identifica uma etapa do ciclo de sync de uma conta
type SyncStep string

const (
	SyncStepTokenCheck SyncStep = "token_check"
	SyncStepCampaigns  SyncStep = "campaigns"
	SyncStepAdGroups   SyncStep = "ad_groups"
	SyncStepAds        SyncStep = "ads"
	SyncStepMetrics    SyncStep = "metrics"
)

// StepStatus é o resultado estruturado de uma etapa
type StepStatus string

const (
	StepStatusOK      StepStatus = "ok"
	StepStatusFailed  StepStatus = "failed"
	StepStatusSkipped StepStatus = "skipped"
)

// Razões de aborto de um ciclo
const (
	AbortReasonInvalidCredentials = "invalid_credentials"
	AbortReasonTokenExpired       = "token_expired"
)

// StepResult é o resultado de uma etapa do ciclo: nenhuma falha abaixo do
// orquestrador vira exceção não tratada, tudo é convertido nesta estrutura.
type StepResult struct {
	Step              SyncStep   `json:"step"`
	Status            StepStatus `json:"status"`
	Synced            int        `json:"synced"`
	Skipped           int        `json:"skipped"`
	Error             string     `json:"error,omitempty"`
	RetryAfterSeconds int        `json:"retry_after_seconds,omitempty"`
}

// SyncReport agrega os resultados de um ciclo completo de sync de uma conta
type SyncReport struct {
	AccountID   string       `json:"account_id"`
	Platform    Platform     `json:"platform"`
	StartedAt   time.Time    `json:"started_at"`
	FinishedAt  time.Time    `json:"finished_at"`
	FinalState  SyncState    `json:"final_state"`
	AbortReason string       `json:"abort_reason,omitempty"`
	Steps       []StepResult `json:"steps"`
}

// AddStep registra o resultado de uma etapa no relatório
func (r *SyncReport) AddStep(result StepResult) {
	r.Steps = append(r.Steps, result)
}

// HasProgress retorna verdadeiro se ao menos uma etapa de entidade persistiu
// dados (progresso parcial deve atualizar o last_sync_at da conta)
func (r *SyncReport) HasProgress() bool {
	for _, s := range r.Steps {
		if s.Step != SyncStepTokenCheck && s.Status == StepStatusOK {
			return true
		}
	}
	return false
}

// TotalSynced soma as entidades sincronizadas em todas as etapas
func (r *SyncReport) TotalSynced() int {
	total := 0
	for _, s := range r.Steps {
		total += s.Synced
	}
	return total
}

// TotalSkipped soma os registros órfãos pulados em todas as etapas
func (r *SyncReport) TotalSkipped() int {
	total := 0
	for _, s := range r.Steps {
		total += s.Skipped
	}
	return total
}
