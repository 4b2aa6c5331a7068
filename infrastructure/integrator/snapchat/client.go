// Package snapchat implementa o adapter da Snapchat Marketing API.
package snapchat

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
		logrus.Warn("Adapter Snapchat operando com dados fake")
		adapter.fake = fake.NewGenerator("ACTIVE", "PAUSED")
	}

	return adapter
}

func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformSnapchat
}

type paging struct {
	NextLink string `json:"next_link"`
}

// nextCursor extrai o cursor opaco do next_link devolvido pela API
func (p paging) nextCursor() string {
	if p.NextLink == "" {
		return ""
	}

	parsed, err := url.Parse(p.NextLink)
	if err != nil {
		return ""
	}

	return parsed.Query().Get("cursor")
}

type campaignEntry struct {
	Campaign struct {
		ID               string `json:"id"`
		Name             string `json:"name"`
		Status           string `json:"status"`
		DailyBudgetMicro int64  `json:"daily_budget_micro"`
		StartTime        string `json:"start_time"`
		EndTime          string `json:"end_time"`
	} `json:"campaign"`
}

type adSquadEntry struct {
	AdSquad struct {
		ID         string `json:"id"`
		CampaignID string `json:"campaign_id"`
		Name       string `json:"name"`
		Status     string `json:"status"`
	} `json:"adsquad"`
}

type adEntry struct {
	Ad struct {
		ID         string `json:"id"`
		AdSquadID  string `json:"ad_squad_id"`
		Name       string `json:"name"`
		Status     string `json:"status"`
		CreativeID string `json:"creative_id"`
	} `json:"ad"`
}

func (a *Adapter) FetchCampaigns(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Campaigns(cursor)
	}

	var response struct {
		Campaigns []campaignEntry `json:"campaigns"`
		Paging    paging          `json:"paging"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("adaccounts/%s/campaigns", ref.ExternalID), cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Campaigns))
	for _, entry := range response.Campaigns {
		campaign := entry.Campaign
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: campaign.ID,
			syncengine.FieldName:       campaign.Name,
			syncengine.FieldStatus:     campaign.Status,
		}

		if campaign.DailyBudgetMicro > 0 {
			record[syncengine.FieldBudgetCents] = campaign.DailyBudgetMicro / 10000
		}

		addTimestamp(record, syncengine.FieldStartDate, campaign.StartTime)
		addTimestamp(record, syncengine.FieldEndDate, campaign.EndTime)

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.Paging.nextCursor()}, nil
}

func (a *Adapter) FetchAdGroups(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.AdGroups(cursor)
	}

	var response struct {
		AdSquads []adSquadEntry `json:"adsquads"`
		Paging   paging         `json:"paging"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("adaccounts/%s/adsquads", ref.ExternalID), cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.AdSquads))
	for _, entry := range response.AdSquads {
		adSquad := entry.AdSquad
		records = append(records, syncengine.RawRecord{
			syncengine.FieldExternalID: adSquad.ID,
			syncengine.FieldParentID:   adSquad.CampaignID,
			syncengine.FieldName:       adSquad.Name,
			syncengine.FieldStatus:     adSquad.Status,
		})
	}

	return &syncengine.Page{Records: records, NextCursor: response.Paging.nextCursor()}, nil
}

func (a *Adapter) FetchAds(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Ads(cursor)
	}

	var response struct {
		Ads    []adEntry `json:"ads"`
		Paging paging    `json:"paging"`
	}
	if err := a.get(ctx, ref, fmt.Sprintf("adaccounts/%s/ads", ref.ExternalID), cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Ads))
	for _, entry := range response.Ads {
		ad := entry.Ad
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: ad.ID,
			syncengine.FieldParentID:   ad.AdSquadID,
			syncengine.FieldName:       ad.Name,
			syncengine.FieldStatus:     ad.Status,
		}

		if ad.CreativeID != "" {
			record[syncengine.FieldCreativeRef] = ad.CreativeID
		}

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.Paging.nextCursor()}, nil
}

func (a *Adapter) FetchMetrics(ctx context.Context, ref syncengine.AccountRef, window syncengine.DateRange, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Metrics(window, cursor)
	}

	// O endpoint de stats devolve a série temporal completa de uma vez
	if cursor != "" {
		return &syncengine.Page{}, nil
	}

	params := url.Values{}
	params.Add("granularity", "DAY")
	params.Add("breakdown", "ad")
	params.Add("fields", "impressions,swipes,spend,conversion_purchases,conversion_purchases_value")
	params.Add("start_time", window.Since.Format("2006-01-02"))
	params.Add("end_time", window.Until.AddDate(0, 0, 1).Format("2006-01-02"))

	endpoint := fmt.Sprintf(
		"%s/%s/adaccounts/%s/stats?%s",
		a.cfg.BaseURL, a.cfg.Version, ref.ExternalID, params.Encode(),
	)

	var response struct {
		TimeseriesStats []struct {
			TimeseriesStat struct {
				ID         string `json:"id"`
				Timeseries []struct {
					StartTime string `json:"start_time"`
					Stats     struct {
						Impressions              int64 `json:"impressions"`
						Swipes                   int64 `json:"swipes"`
						Spend                    int64 `json:"spend"`
						ConversionPurchases      int64 `json:"conversion_purchases"`
						ConversionPurchasesValue int64 `json:"conversion_purchases_value"`
					} `json:"stats"`
				} `json:"timeseries"`
			} `json:"timeseries_stat"`
		} `json:"timeseries_stats"`
	}
	if err := a.request(ctx, ref, endpoint, &response); err != nil {
		return nil, err
	}

	var records []syncengine.RawRecord

	for _, entry := range response.TimeseriesStats {
		stat := entry.TimeseriesStat
		for _, point := range stat.Timeseries {
			record := syncengine.RawRecord{
				syncengine.FieldExternalID: stat.ID,
				// swipes é o clique do Snapchat
				syncengine.FieldClicks:       point.Stats.Swipes,
				syncengine.FieldImpressions:  point.Stats.Impressions,
				syncengine.FieldSpendCents:   point.Stats.Spend / 10000,
				syncengine.FieldConversions:  point.Stats.ConversionPurchases,
				syncengine.FieldRevenueCents: point.Stats.ConversionPurchasesValue / 10000,
			}

			if ts, err := time.Parse(time.RFC3339, point.StartTime); err == nil {
				record[syncengine.FieldDate] = ts
			}

			records = append(records, record)
		}
	}

	return &syncengine.Page{Records: records}, nil
}

// get executa uma chamada GET paginada por cursor na Marketing API
func (a *Adapter) get(ctx context.Context, ref syncengine.AccountRef, path, cursor string, out any) error {
	params := url.Values{}
	params.Add("limit", strconv.Itoa(pageSize))
	if cursor != "" {
		params.Add("cursor", cursor)
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", a.cfg.BaseURL, a.cfg.Version, path, params.Encode())

	return a.request(ctx, ref, endpoint, out)
}

func (a *Adapter) request(ctx context.Context, ref syncengine.AccountRef, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição para o Snapchat")
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
		logrus.WithError(err).Error("Erro ao decodificar JSON do Snapchat")
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
