// Package tiktok implementa o adapter da TikTok Business API.
package tiktok

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
		logrus.Warn("Adapter TikTok operando com dados fake")
		adapter.fake = fake.NewGenerator("ENABLE", "DISABLE", "FROZEN")
	}

	return adapter
}

func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformTikTok
}

// envelope é a resposta padrão da TikTok Business API: o status vem no
// corpo (code 0 = sucesso), não no status HTTP
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type pageInfo struct {
	Page      int `json:"page"`
	TotalPage int `json:"total_page"`
}

func (p pageInfo) nextCursor() string {
	if p.Page >= p.TotalPage {
		return ""
	}
	return strconv.Itoa(p.Page + 1)
}

func (a *Adapter) FetchCampaigns(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Campaigns(cursor)
	}

	var data struct {
		List []struct {
			CampaignID      string  `json:"campaign_id"`
			CampaignName    string  `json:"campaign_name"`
			OperationStatus string  `json:"operation_status"`
			Budget          float64 `json:"budget"`
		} `json:"list"`
		PageInfo pageInfo `json:"page_info"`
	}
	if err := a.get(ctx, ref, "campaign/get/", nil, cursor, &data); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(data.List))
	for _, entry := range data.List {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: entry.CampaignID,
			syncengine.FieldName:       entry.CampaignName,
			syncengine.FieldStatus:     entry.OperationStatus,
		}

		if entry.Budget > 0 {
			record[syncengine.FieldBudgetCents] = int64(entry.Budget * 100)
		}

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: data.PageInfo.nextCursor()}, nil
}

func (a *Adapter) FetchAdGroups(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.AdGroups(cursor)
	}

	var data struct {
		List []struct {
			AdgroupID       string `json:"adgroup_id"`
			CampaignID      string `json:"campaign_id"`
			AdgroupName     string `json:"adgroup_name"`
			OperationStatus string `json:"operation_status"`
		} `json:"list"`
		PageInfo pageInfo `json:"page_info"`
	}
	if err := a.get(ctx, ref, "adgroup/get/", nil, cursor, &data); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(data.List))
	for _, entry := range data.List {
		records = append(records, syncengine.RawRecord{
			syncengine.FieldExternalID: entry.AdgroupID,
			syncengine.FieldParentID:   entry.CampaignID,
			syncengine.FieldName:       entry.AdgroupName,
			syncengine.FieldStatus:     entry.OperationStatus,
		})
	}

	return &syncengine.Page{Records: records, NextCursor: data.PageInfo.nextCursor()}, nil
}

func (a *Adapter) FetchAds(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Ads(cursor)
	}

	var data struct {
		List []struct {
			AdID            string `json:"ad_id"`
			AdgroupID       string `json:"adgroup_id"`
			AdName          string `json:"ad_name"`
			OperationStatus string `json:"operation_status"`
			VideoID         string `json:"video_id"`
		} `json:"list"`
		PageInfo pageInfo `json:"page_info"`
	}
	if err := a.get(ctx, ref, "ad/get/", nil, cursor, &data); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(data.List))
	for _, entry := range data.List {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: entry.AdID,
			syncengine.FieldParentID:   entry.AdgroupID,
			syncengine.FieldName:       entry.AdName,
			syncengine.FieldStatus:     entry.OperationStatus,
		}

		if entry.VideoID != "" {
			record[syncengine.FieldCreativeRef] = entry.VideoID
		}

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: data.PageInfo.nextCursor()}, nil
}

func (a *Adapter) FetchMetrics(ctx context.Context, ref syncengine.AccountRef, window syncengine.DateRange, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Metrics(window, cursor)
	}

	params := url.Values{}
	params.Add("data_level", "AUCTION_AD")
	params.Add("dimensions", `["ad_id","stat_time_day"]`)
	params.Add("metrics", `["impressions","clicks","spend","conversion","total_complete_payment"]`)
	params.Add("start_date", window.Since.Format("2006-01-02"))
	params.Add("end_date", window.Until.Format("2006-01-02"))

	var data struct {
		List []struct {
			Dimensions struct {
				AdID        string `json:"ad_id"`
				StatTimeDay string `json:"stat_time_day"`
			} `json:"dimensions"`
			Metrics struct {
				Impressions          string `json:"impressions"`
				Clicks               string `json:"clicks"`
				Spend                string `json:"spend"`
				Conversion           string `json:"conversion"`
				TotalCompletePayment string `json:"total_complete_payment"`
			} `json:"metrics"`
		} `json:"list"`
		PageInfo pageInfo `json:"page_info"`
	}
	if err := a.get(ctx, ref, "report/integrated/get/", params, cursor, &data); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(data.List))
	for _, entry := range data.List {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: entry.Dimensions.AdID,
		}

		// stat_time_day vem como "2006-01-02 15:04:05"
		if date, err := time.Parse("2006-01-02 15:04:05", entry.Dimensions.StatTimeDay); err == nil {
			record[syncengine.FieldDate] = date
		} else if date, err := time.Parse("2006-01-02", entry.Dimensions.StatTimeDay); err == nil {
			record[syncengine.FieldDate] = date
		}

		addCount(record, syncengine.FieldImpressions, entry.Metrics.Impressions)
		addCount(record, syncengine.FieldClicks, entry.Metrics.Clicks)
		addCount(record, syncengine.FieldConversions, entry.Metrics.Conversion)
		addMoney(record, syncengine.FieldSpendCents, entry.Metrics.Spend)
		addMoney(record, syncengine.FieldRevenueCents, entry.Metrics.TotalCompletePayment)

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: data.PageInfo.nextCursor()}, nil
}

// get executa uma chamada GET paginada e desembrulha o envelope da API
func (a *Adapter) get(ctx context.Context, ref syncengine.AccountRef, path string, params url.Values, cursor string, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Add("advertiser_id", ref.ExternalID)
	params.Add("page_size", strconv.Itoa(pageSize))
	if cursor != "" {
		if _, err := strconv.Atoi(cursor); err != nil {
			return syncengine.NewOtherAPIError("", fmt.Sprintf("invalid cursor: %q", cursor))
		}
		params.Add("page", cursor)
	}

	endpoint := fmt.Sprintf("%s/open_api/%s/%s?%s", a.cfg.BaseURL, a.cfg.Version, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição para o TikTok")
		return err
	}
	req.Header.Set("Access-Token", ref.AccessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return syncengine.NewOtherAPIError("", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return syncengine.NewOtherAPIError("", err.Error())
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON do TikTok")
		return syncengine.NewOtherAPIError("", err.Error())
	}

	if env.Code != 0 {
		return classifyError(resp, env)
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar dados do TikTok")
		return syncengine.NewOtherAPIError("", err.Error())
	}

	return nil
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
