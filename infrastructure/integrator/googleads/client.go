// Package googleads implementa o adapter da Google Ads API (REST, GAQL).
package googleads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
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
		logrus.Warn("Adapter Google Ads operando com dados fake")
		adapter.fake = fake.NewGenerator("ENABLED", "PAUSED", "REMOVED")
	}

	return adapter
}

func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformGoogleAds
}

type searchRequest struct {
	Query     string `json:"query"`
	PageSize  int    `json:"pageSize"`
	PageToken string `json:"pageToken,omitempty"`
}

type searchResponse struct {
	Results       []searchResult `json:"results"`
	NextPageToken string         `json:"nextPageToken"`
}

type searchResult struct {
	Campaign struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Status    string `json:"status"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	} `json:"campaign"`
	CampaignBudget struct {
		AmountMicros string `json:"amountMicros"`
	} `json:"campaignBudget"`
	AdGroup struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
	} `json:"adGroup"`
	AdGroupAd struct {
		Status string `json:"status"`
		Ad     struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"ad"`
	} `json:"adGroupAd"`
	Metrics struct {
		Impressions      string  `json:"impressions"`
		Clicks           string  `json:"clicks"`
		CostMicros       string  `json:"costMicros"`
		Conversions      float64 `json:"conversions"`
		ConversionsValue float64 `json:"conversionsValue"`
	} `json:"metrics"`
	Segments struct {
		Date string `json:"date"`
	} `json:"segments"`
}

func (a *Adapter) FetchCampaigns(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Campaigns(cursor)
	}

	query := "SELECT campaign.id, campaign.name, campaign.status, campaign.start_date, campaign.end_date, campaign_budget.amount_micros FROM campaign"

	response, err := a.search(ctx, ref, query, cursor)
	if err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Results))
	for _, result := range response.Results {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: result.Campaign.ID,
			syncengine.FieldName:       result.Campaign.Name,
			syncengine.FieldStatus:     result.Campaign.Status,
		}

		if cents, ok := microsToCents(result.CampaignBudget.AmountMicros); ok {
			record[syncengine.FieldBudgetCents] = cents
		}

		addDate(record, syncengine.FieldStartDate, result.Campaign.StartDate)
		addDate(record, syncengine.FieldEndDate, result.Campaign.EndDate)

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.NextPageToken}, nil
}

func (a *Adapter) FetchAdGroups(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.AdGroups(cursor)
	}

	query := "SELECT ad_group.id, ad_group.name, ad_group.status, campaign.id FROM ad_group"

	response, err := a.search(ctx, ref, query, cursor)
	if err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Results))
	for _, result := range response.Results {
		records = append(records, syncengine.RawRecord{
			syncengine.FieldExternalID: result.AdGroup.ID,
			syncengine.FieldParentID:   result.Campaign.ID,
			syncengine.FieldName:       result.AdGroup.Name,
			syncengine.FieldStatus:     result.AdGroup.Status,
		})
	}

	return &syncengine.Page{Records: records, NextCursor: response.NextPageToken}, nil
}

func (a *Adapter) FetchAds(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Ads(cursor)
	}

	query := "SELECT ad_group_ad.ad.id, ad_group_ad.ad.name, ad_group_ad.status, ad_group.id FROM ad_group_ad"

	response, err := a.search(ctx, ref, query, cursor)
	if err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Results))
	for _, result := range response.Results {
		records = append(records, syncengine.RawRecord{
			syncengine.FieldExternalID: result.AdGroupAd.Ad.ID,
			syncengine.FieldParentID:   result.AdGroup.ID,
			syncengine.FieldName:       result.AdGroupAd.Ad.Name,
			syncengine.FieldStatus:     result.AdGroupAd.Status,
		})
	}

	return &syncengine.Page{Records: records, NextCursor: response.NextPageToken}, nil
}

func (a *Adapter) FetchMetrics(ctx context.Context, ref syncengine.AccountRef, window syncengine.DateRange, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Metrics(window, cursor)
	}

	query := fmt.Sprintf(
		"SELECT ad_group_ad.ad.id, segments.date, metrics.impressions, metrics.clicks, metrics.cost_micros, metrics.conversions, metrics.conversions_value FROM ad_group_ad WHERE segments.date BETWEEN '%s' AND '%s'",
		window.Since.Format("2006-01-02"),
		window.Until.Format("2006-01-02"),
	)

	response, err := a.search(ctx, ref, query, cursor)
	if err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Results))
	for _, result := range response.Results {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID:   result.AdGroupAd.Ad.ID,
			syncengine.FieldConversions:  int64(math.Round(result.Metrics.Conversions)),
			syncengine.FieldRevenueCents: int64(math.Round(result.Metrics.ConversionsValue * 100)),
		}

		if date, err := time.Parse("2006-01-02", result.Segments.Date); err == nil {
			record[syncengine.FieldDate] = date
		}

		if impressions, err := strconv.ParseInt(result.Metrics.Impressions, 10, 64); err == nil {
			record[syncengine.FieldImpressions] = impressions
		}

		if clicks, err := strconv.ParseInt(result.Metrics.Clicks, 10, 64); err == nil {
			record[syncengine.FieldClicks] = clicks
		}

		if cents, ok := microsToCents(result.Metrics.CostMicros); ok {
			record[syncengine.FieldSpendCents] = cents
		}

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.NextPageToken}, nil
}

// search executa uma consulta GAQL paginada no endpoint googleAds:search
func (a *Adapter) search(ctx context.Context, ref syncengine.AccountRef, query, cursor string) (*searchResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/customers/%s/googleAds:search", a.cfg.BaseURL, a.cfg.Version, ref.ExternalID)

	payload, err := json.Marshal(searchRequest{
		Query:     query,
		PageSize:  pageSize,
		PageToken: cursor,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição para o Google Ads")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ref.AccessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, syncengine.NewOtherAPIError("", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, syncengine.NewOtherAPIError("", err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyError(resp, body)
	}

	response := &searchResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON do Google Ads")
		return nil, syncengine.NewOtherAPIError("", err.Error())
	}

	return response, nil
}

// microsToCents converte valores em micros (milionésimos da moeda) para centavos
func microsToCents(micros string) (int64, bool) {
	if micros == "" {
		return 0, false
	}

	value, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return 0, false
	}

	return value / 10000, true
}

func addDate(record syncengine.RawRecord, key, value string) {
	if value == "" {
		return
	}
	if date, err := time.Parse("2006-01-02", value); err == nil {
		record[key] = date
	}
}
