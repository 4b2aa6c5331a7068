// Package linkedin implementa o adapter da LinkedIn Marketing API.
//
// A hierarquia do LinkedIn é campaign group -> campaign -> creative; ela é
// projetada no grafo unificado como campanha -> grupo de anúncio -> anúncio.
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
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
		logrus.Warn("Adapter LinkedIn operando com dados fake")
		adapter.fake = fake.NewGenerator("ACTIVE", "PAUSED", "DRAFT", "ARCHIVED")
	}

	return adapter
}

func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformLinkedIn
}

type paging struct {
	Start int `json:"start"`
	Count int `json:"count"`
	Total int `json:"total"`
}

func (p paging) nextCursor() string {
	next := p.Start + p.Count
	if next >= p.Total {
		return ""
	}
	return strconv.Itoa(next)
}

type moneyAmount struct {
	Amount string `json:"amount"`
}

type campaignGroupEntry struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Status      string      `json:"status"`
	TotalBudget moneyAmount `json:"totalBudget"`
	RunSchedule struct {
		Start int64 `json:"start"`
		End   int64 `json:"end"`
	} `json:"runSchedule"`
}

type campaignEntry struct {
	ID            int64  `json:"id"`
	CampaignGroup string `json:"campaignGroup"`
	Name          string `json:"name"`
	Status        string `json:"status"`
}

type creativeEntry struct {
	ID        int64  `json:"id"`
	Campaign  string `json:"campaign"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
}

func (a *Adapter) FetchCampaigns(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Campaigns(cursor)
	}

	var response struct {
		Elements []campaignGroupEntry `json:"elements"`
		Paging   paging               `json:"paging"`
	}
	if err := a.get(ctx, ref, "adCampaignGroupsV2", nil, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Elements))
	for _, entry := range response.Elements {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: strconv.FormatInt(entry.ID, 10),
			syncengine.FieldName:       entry.Name,
			syncengine.FieldStatus:     entry.Status,
		}

		if cents, err := utils.ParseMoneyToCents(entry.TotalBudget.Amount); err == nil && entry.TotalBudget.Amount != "" {
			record[syncengine.FieldBudgetCents] = cents
		}

		if entry.RunSchedule.Start > 0 {
			record[syncengine.FieldStartDate] = time.UnixMilli(entry.RunSchedule.Start).UTC()
		}
		if entry.RunSchedule.End > 0 {
			record[syncengine.FieldEndDate] = time.UnixMilli(entry.RunSchedule.End).UTC()
		}

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.Paging.nextCursor()}, nil
}

func (a *Adapter) FetchAdGroups(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.AdGroups(cursor)
	}

	var response struct {
		Elements []campaignEntry `json:"elements"`
		Paging   paging          `json:"paging"`
	}
	if err := a.get(ctx, ref, "adCampaignsV2", nil, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Elements))
	for _, entry := range response.Elements {
		records = append(records, syncengine.RawRecord{
			syncengine.FieldExternalID: strconv.FormatInt(entry.ID, 10),
			syncengine.FieldParentID:   urnID(entry.CampaignGroup),
			syncengine.FieldName:       entry.Name,
			syncengine.FieldStatus:     entry.Status,
		})
	}

	return &syncengine.Page{Records: records, NextCursor: response.Paging.nextCursor()}, nil
}

func (a *Adapter) FetchAds(ctx context.Context, ref syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
	if a.fake != nil {
		return a.fake.Ads(cursor)
	}

	var response struct {
		Elements []creativeEntry `json:"elements"`
		Paging   paging          `json:"paging"`
	}
	if err := a.get(ctx, ref, "adCreativesV2", nil, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Elements))
	for _, entry := range response.Elements {
		id := strconv.FormatInt(entry.ID, 10)
		record := syncengine.RawRecord{
			syncengine.FieldExternalID: id,
			syncengine.FieldParentID:   urnID(entry.Campaign),
			// Creatives não têm nome próprio na API
			syncengine.FieldName:   fmt.Sprintf("creative %s", id),
			syncengine.FieldStatus: entry.Status,
		}

		if entry.Reference != "" {
			record[syncengine.FieldCreativeRef] = urnID(entry.Reference)
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
	params.Add("q", "analytics")
	params.Add("pivot", "CREATIVE")
	params.Add("timeGranularity", "DAILY")
	params.Add("dateRange.start.day", strconv.Itoa(window.Since.Day()))
	params.Add("dateRange.start.month", strconv.Itoa(int(window.Since.Month())))
	params.Add("dateRange.start.year", strconv.Itoa(window.Since.Year()))
	params.Add("dateRange.end.day", strconv.Itoa(window.Until.Day()))
	params.Add("dateRange.end.month", strconv.Itoa(int(window.Until.Month())))
	params.Add("dateRange.end.year", strconv.Itoa(window.Until.Year()))

	var response struct {
		Elements []struct {
			PivotValue string `json:"pivotValue"`
			DateRange  struct {
				Start struct {
					Day   int `json:"day"`
					Month int `json:"month"`
					Year  int `json:"year"`
				} `json:"start"`
			} `json:"dateRange"`
			Impressions                    int64  `json:"impressions"`
			Clicks                         int64  `json:"clicks"`
			CostInLocalCurrency            string `json:"costInLocalCurrency"`
			ExternalWebsiteConversions     int64  `json:"externalWebsiteConversions"`
			ConversionValueInLocalCurrency string `json:"conversionValueInLocalCurrency"`
		} `json:"elements"`
		Paging paging `json:"paging"`
	}
	if err := a.get(ctx, ref, "adAnalyticsV2", params, cursor, &response); err != nil {
		return nil, err
	}

	records := make([]syncengine.RawRecord, 0, len(response.Elements))
	for _, entry := range response.Elements {
		record := syncengine.RawRecord{
			syncengine.FieldExternalID:  urnID(entry.PivotValue),
			syncengine.FieldImpressions: entry.Impressions,
			syncengine.FieldClicks:      entry.Clicks,
			syncengine.FieldConversions: entry.ExternalWebsiteConversions,
		}

		start := entry.DateRange.Start
		if start.Year > 0 {
			record[syncengine.FieldDate] = time.Date(start.Year, time.Month(start.Month), start.Day, 0, 0, 0, 0, time.UTC)
		}

		if cents, err := utils.ParseMoneyToCents(entry.CostInLocalCurrency); err == nil && entry.CostInLocalCurrency != "" {
			record[syncengine.FieldSpendCents] = cents
		}
		if cents, err := utils.ParseMoneyToCents(entry.ConversionValueInLocalCurrency); err == nil && entry.ConversionValueInLocalCurrency != "" {
			record[syncengine.FieldRevenueCents] = cents
		}

		records = append(records, record)
	}

	return &syncengine.Page{Records: records, NextCursor: response.Paging.nextCursor()}, nil
}

// get executa uma chamada GET paginada por offset na Marketing API
func (a *Adapter) get(ctx context.Context, ref syncengine.AccountRef, path string, params url.Values, cursor string, out any) error {
	if params == nil {
		params = url.Values{}
		params.Add("q", "search")
		params.Add("search.account.values[0]", fmt.Sprintf("urn:li:sponsoredAccount:%s", ref.ExternalID))
	}
	params.Add("count", strconv.Itoa(pageSize))
	if cursor != "" {
		if _, err := strconv.Atoi(cursor); err != nil {
			return syncengine.NewOtherAPIError("", fmt.Sprintf("invalid cursor: %q", cursor))
		}
		params.Add("start", cursor)
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", a.cfg.BaseURL, a.cfg.Version, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição para o LinkedIn")
		return err
	}
	req.Header.Set("Authorization", "Bearer "+ref.AccessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

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
		logrus.WithError(err).Error("Erro ao decodificar JSON do LinkedIn")
		return syncengine.NewOtherAPIError("", err.Error())
	}

	return nil
}

// urnID extrai o id numérico de um URN ("urn:li:sponsoredCampaign:123" -> "123")
func urnID(urn string) string {
	if idx := strings.LastIndex(urn, ":"); idx >= 0 {
		return urn[idx+1:]
	}
	return urn
}
