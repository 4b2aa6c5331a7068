// Package meta implementa o adapter da Graph API do Meta (Facebook/Instagram).
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-engine/infrastructure/integrator/fake"
	"github.com/vfg2006/adsync-engine/internal/config"
	"github.com/vfg2006/adsync-engine/internal/domain"
	"github.com/vfg2006/adsync-engine/internal/syncengine"
	"github.com/vfg2006/adsync-engine/pkg/utils"
)

const pageLimit = 50

type Adapter struct {
	cfg        config.Platform
	httpClient *http.Client
	fake       *fake.Generator
}

func NewAdapter(cfg config.Platform) *Adapter {
	adapter := &Adapter{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	if cfg.UseFakeData {
		logrus.Warn("Adapter Meta operando com dados fake")
		adapter.fake = fake.NewGenerator("ACTIVE", "PAUSED", "PENDING_REVIEW", "ARCHIVED")
	}

	return adapter
}

func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformMeta
}

type paging struct {
	Cursors struct {
		After string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next"`
}

func (p paging) nextCursor() string {
	// A Graph API sempre devolve o cursor "after", mesmo na última página;
	// só existe continuação quando "next" também está presente
	if p.Next == "" {
		return ""
	}
	return p.Cursors.After
}

type campaignEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	DailyBudget string `json:"daily_budget"`
	StartTime   string `json:"start_time"`
	StopTime    string `json:"stop_time"`
}

type adSetEntry struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type adEntry struct {
	ID       string `json:"id"`
	AdsetID  string `json:"adset_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Creative struct {
		ID string `json:"id"`
	} `json:"creative"`
}

type insightEntry struct {
	AdID        string `json:"ad_id"`
	DateStart   string `json:"date_start"`
	Impressions string `json:"impressions"`
	Clicks      string `json:"clicks"`
	Spend       string `json:"spend"`
	Conversions string `json:"conversions"`
	Revenue     string `json:"conversion_values"`
}

func (a *Adapter) FetchCampaigns(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Campaigns(cursor)
	}

	params := url.Values{}
	params.Add("fields", "id,name,status,daily_budget,start_time,stop_time")

	var response struct {
		Data   []campaignEntry `json:"data"`
		Paging paging          `json:"paging"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("act_%s/campaigns", ref.ExternalID), params, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Data))
	for _, entry := range response.Data {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: entry.ID,
			syncengine.FieldName:       entry.Name,
			syncengine.FieldStatus:     entry.Status,
		}

		if entry.DailyBudget != "" {
			// daily_budget já vem em centavos, como string
			if budget, err := strconv.ParseInt(entry.DailyBudget, 10, 64); err == nil {
				record[syncengine.FieldBudgetCents] = budget
			}
		}

		addTimestamp(record, syncengine.FieldStartDate, entry.StartTime)
		addTimestamp(record, syncengine.FieldEndDate, entry.StopTime)

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.Paging.nextCursor()}, nil
}

func (a *Adapter) FetchAdGroups(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.AdGroups(cursor)
	}

	params := url.Values{}
	params.Add("fields", "id,campaign_id,name,status,start_time,end_time")

	var response struct {
		Data   []adSetEntry `json:"data"`
		Paging paging       `json:"paging"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("act_%s/adsets", ref.ExternalID), params, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Data))
	for _, entry := range response.Data {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: entry.ID,
			syncengine.FieldParentID:   entry.CampaignID,
			syncengine.FieldName:       entry.Name,
			syncengine.FieldStatus:     entry.Status,
		}

		addTimestamp(record, syncengine.FieldStartDate, entry.StartTime)
		addTimestamp(record, syncengine.FieldEndDate, entry.EndTime)

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.Paging.nextCursor()}, nil
}

func (a *Adapter) FetchAds(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Ads(cursor)
	}

	params := url.Values{}
	params.Add("fields", "id,adset_id,name,status,creative{id}")

	var response struct {
		Data   []adEntry `json:"data"`
		Paging paging    `json:"paging"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("act_%s/ads", ref.ExternalID), params, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Data))
	for _, entry := range response.Data {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: entry.ID,
			syncengine.FieldParentID:   entry.AdsetID,
			syncengine.FieldName:       entry.Name,
			syncengine.FieldStatus:     entry.Status,
		}

		if entry.Creative.ID != "" {
			record[syncengine.FieldCreativeRef] = entry.Creative.ID
		}

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.Paging.nextCursor()}, nil
}

func (a *Adapter) FetchMetrics(ctx context.Context, ref syncengine.AccountRef, window syncengine.DateRange, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Metrics(window, cursor)
	}

	params := url.Values{}
	params.Add("fields", "ad_id,date_start,impressions,clicks,spend,conversions,conversion_values")
	params.Add("level", "ad")
	params.Add("time_increment", "1")
	params.Add("time_range", fmt.Sprintf(
		`{"since":"%s","until":"%s"}`,
		window.Since.Format("2006-01-02"),
		window.Until.Format("2006-01-02"),
	))

	var response struct {
		Data   []insightEntry `json:"data"`
		Paging paging         `json:"paging"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("act_%s/insights", ref.ExternalID), params, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Data))
	for _, entry := range response.Data {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: entry.AdID,
		}

		if date, err := time.Parse("2006-01-02", entry.DateStart); err == nil {
			record[syncengine.FieldDate] = date
		}

		addCount(record, syncengine.FieldImpressions, entry.Impressions)
		addCount(record, syncengine.FieldClicks, entry.Clicks)
		addCount(record, syncengine.FieldConversions, entry.Conversions)
		addMoney(record, syncengine.FieldSpendCents, entry.Spend)
		addMoney(record, syncengine.FieldRevenueCents, entry.Revenue)

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.Paging.nextCursor()}, nil
}

// get executa uma chamada GET paginada na Graph API e decodifica a resposta
func (a *Adapter) get(ctx context.Context, ref syncengine.AccountRef, path string, params url.Values, cursor string, out any) error {
	params.Add("limit", strconv.Itoa(pageLimit))
	params.Add("access_token", ref.AccessToken)
	if cursor != "" {
		params.Add("after", cursor)
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", a.cfg.BaseURL, a.cfg.Version, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição para a Meta")
		return err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return syncengine.NewOtherAPIError("", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return syncengine.NewOtherAPIError("", err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return classifyError(resp, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON da Meta")
		return syncengine.NewOtherAPIError("", err.Error())
	}

	return nil
}

func addTimestamp(record syncengine.RawRecord, key, value string) {
	if value == "" {
		return
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		record[key] = ts
	}
}

func addCount(record syncengine.RawRecord, key, value string) {
	if value == "" {
		return
	}
	if count, err := strconv.ParseInt(value, 10, 64); err == nil {
		record[key] = count
	}
}

func addMoney(record syncengine.RawRecord, key, value string) {
	if value == "" {
		return
	}
	if cents, err := utils.ParseMoneyToCents(value); err == nil {
		record[key] = cents
	}
}
