// Package pinterest implementa o adapter da Pinterest Ads API.
package pinterest

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
)

const pageSize = 50

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
		logrus.Warn("Adapter Pinterest operando com dados fake")
		adapter.fake = fake.NewGenerator("ACTIVE", "PAUSED", "ARCHIVED")
	}

	return adapter
}

func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformPinterest
}

type campaignItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	DailySpendCap int64  `json:"daily_spend_cap"`
	StartTime     int64  `json:"start_time"`
	EndTime       int64  `json:"end_time"`
}

type adGroupItem struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
}

type adItem struct {
	ID        string `json:"id"`
	AdGroupID string `json:"ad_group_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	PinID     string `json:"pin_id"`
}

func (a *Adapter) FetchCampaigns(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Campaigns(cursor)
	}

	var response struct {
		Items    []campaignItem `json:"items"`
		Bookmark string         `json:"bookmark"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("ad_accounts/%s/campaigns", ref.ExternalID), nil, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Items))
	for _, item := range response.Items {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: item.ID,
			syncengine.FieldName:       item.Name,
			syncengine.FieldStatus:     item.Status,
		}

		if item.DailySpendCap > 0 {
			// Valores monetários vêm em microcurrency
			record[syncengine.FieldBudgetCents] = item.DailySpendCap / 10000
		}

		if item.StartTime > 0 {
			record[syncengine.FieldStartDate] = time.Unix(item.StartTime, 0).UTC()
		}
		if item.EndTime > 0 {
			record[syncengine.FieldEndDate] = time.Unix(item.EndTime, 0).UTC()
		}

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.Bookmark}, nil
}

func (a *Adapter) FetchAdGroups(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.AdGroups(cursor)
	}

	var response struct {
		Items    []adGroupItem `json:"items"`
		Bookmark string        `json:"bookmark"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("ad_accounts/%s/ad_groups", ref.ExternalID), nil, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Items))
	for _, item := range response.Items {
		records = append(records, syncengine.RawRecord{
			syncengine.FieldExternalID: item.ID,
			syncengine.FieldParentID:   item.CampaignID,
			syncengine.FieldName:       item.Name,
			syncengine.FieldStatus:     item.Status,
		})
	}

	return &syncengine.Page{Records: records, NextCursor: response.Bookmark}, nil
}

func (a *Adapter) FetchAds(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Ads(cursor)
	}

	var response struct {
		Items    []adItem `json:"items"`
		Bookmark string   `json:"bookmark"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("ad_accounts/%s/ads", ref.ExternalID), nil, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Items))
	for _, item := range response.Items {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: item.ID,
			syncengine.FieldParentID:   item.AdGroupID,
			syncengine.FieldName:       item.Name,
			syncengine.FieldStatus:     item.Status,
		}

		if item.PinID != "" {
			record[syncengine.FieldCreativeRef] = item.PinID
		}

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.Bookmark}, nil
}

func (a *Adapter) FetchMetrics(ctx context.Context, ref syncengine.AccountRef, window syncengine.DateRange, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Metrics(window, cursor)
	}

	// O endpoint de analytics não é paginado por bookmark
	if cursor != "" {
		return &syncengine.Page{}, nil
	}

	params := url.Values{}
	params.Add("start_date", window.Since.Format("2006-01-02"))
	params.Add("end_date", window.Until.Format("2006-01-02"))
	params.Add("granularity", "DAY")
	params.Add("columns", "AD_ID,DATE,IMPRESSION_2,CLICKTHROUGH_2,SPEND_IN_MICRO_DOLLAR,TOTAL_CONVERSIONS,TOTAL_ORDER_VALUE_IN_MICRO_DOLLAR")

	// A resposta de analytics é uma lista de linhas com as colunas pedidas
	var rows []struct {
		AdID                    string  `json:"AD_ID"`
		Date                    string  `json:"DATE"`
		Impressions             int64   `json:"IMPRESSION_2"`
		Clicks                  int64   `json:"CLICKTHROUGH_2"`
		SpendMicro              int64   `json:"SPEND_IN_MICRO_DOLLAR"`
		Conversions             float64 `json:"TOTAL_CONVERSIONS"`
		OrderValueInMicroDollar int64   `json:"TOTAL_ORDER_VALUE_IN_MICRO_DOLLAR"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("ad_accounts/%s/ads/analytics", ref.ExternalID), params, "", &rows); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(rows))
	for _, row := range rows {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID:   row.AdID,
			syncengine.FieldImpressions:  row.Impressions,
			syncengine.FieldClicks:       row.Clicks,
			syncengine.FieldSpendCents:   row.SpendMicro / 10000,
			syncengine.FieldConversions:  int64(row.Conversions),
			syncengine.FieldRevenueCents: row.OrderValueInMicroDollar / 10000,
		}

		if date, err := time.Parse("2006-01-02", row.Date); err == nil {
			record[syncengine.FieldDate] = date
		}

		records = append(records, record)
	}

	return &syncengine.Page{Records: records}, nil
}

// get executa uma chamada GET paginada por bookmark na Ads API
func (a *Adapter) get(ctx context.Context, ref syncengine.AccountRef, path string, params url.Values, cursor string, out any) error {
	if params == nil {
		params = url.Values{}
		params.Add("page_size", strconv.Itoa(pageSize))
	}
	if cursor != "" {
		params.Add("bookmark", cursor)
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", a.cfg.BaseURL, a.cfg.Version, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição para o Pinterest")
		return err
	}
	req.Header.Set("Authorization", "Bearer "+ref.AccessToken)

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
		logrus.WithError(err).Error("Erro ao decodificar JSON do Pinterest")
		return syncengine.NewOtherAPIError("", err.Error())
	}

	return nil
}
