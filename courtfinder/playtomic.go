package courtfinder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// ProviderPlaytomic is the provider tag for playtomic.com.
const ProviderPlaytomic = "playtomic"

// DefaultPlaytomicBaseURL is the production site root.
const DefaultPlaytomicBaseURL = "https://playtomic.com"

// PlaytomicClient fetches availability from the Playtomic JSON endpoint
// and club metadata from the club page's embedded __NEXT_DATA__ island.
// Slot times are taken as the club's local wall-clock time; the client
// applies no timezone arithmetic.
type PlaytomicClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewPlaytomicClient builds a client for the given site root. All
// outbound calls share one rate limiter, so a single client should be
// reused across the process.
func NewPlaytomicClient(baseURL string, timeout time.Duration, rps float64, burst int) *PlaytomicClient {
	if baseURL == "" {
		baseURL = DefaultPlaytomicBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 4
	}
	if burst <= 0 {
		burst = 1
	}
	return &PlaytomicClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (c *PlaytomicClient) Name() string { return ProviderPlaytomic }

// Wire shapes of the availability endpoint.
type playtomicSlot struct {
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Price     string `json:"price"`
}

type playtomicResource struct {
	ResourceID string          `json:"resource_id"`
	StartDate  string          `json:"start_date"`
	Slots      []playtomicSlot `json:"slots"`
}

// Wire shapes of the club page's __NEXT_DATA__ JSON.
type playtomicNextData struct {
	Props struct {
		PageProps struct {
			Tenant playtomicTenant `json:"tenant"`
		} `json:"pageProps"`
	} `json:"props"`
}

type playtomicTenant struct {
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	Address    struct {
		Street     string `json:"street"`
		City       string `json:"city"`
		PostalCode string `json:"postal_code"`
		Country    string `json:"country"`
		Coordinate struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coordinate"`
		Timezone string `json:"timezone"`
	} `json:"address"`
	Resources []playtomicTenantResource `json:"resources"`
}

type playtomicTenantResource struct {
	ResourceID string `json:"resource_id"`
	Name       string `json:"name"`
	Properties struct {
		ResourceType    string `json:"resource_type"`    // "indoor" or "outdoor"
		ResourceSize    string `json:"resource_size"`    // "single" or "double"
		ResourceFeature string `json:"resource_feature"` // "panoramic", etc.
	} `json:"properties"`
}

// FetchAvailability calls the public availability endpoint for one club
// and date.
func (c *PlaytomicClient) FetchAvailability(ctx context.Context, tenantID, date string) (*RawAvailability, error) {
	endpoint := fmt.Sprintf("%s/api/clubs/availability?tenant_id=%s&date=%s&sport_id=PADEL",
		c.baseURL, url.QueryEscape(tenantID), url.QueryEscape(date))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var resources []playtomicResource
	if err := json.NewDecoder(body).Decode(&resources); err != nil {
		return nil, &Error{
			Code:     ErrCodeMalformed,
			Provider: ProviderPlaytomic,
			Message:  "availability payload is not valid JSON",
			Err:      err,
		}
	}

	raw := &RawAvailability{
		Provider:  ProviderPlaytomic,
		TenantID:  tenantID,
		Date:      date,
		Resources: make([]RawResource, 0, len(resources)),
	}
	for _, res := range resources {
		out := RawResource{
			ResourceID: res.ResourceID,
			StartDate:  res.StartDate,
			Slots:      make([]RawSlot, 0, len(res.Slots)),
		}
		for _, s := range res.Slots {
			out.Slots = append(out.Slots, RawSlot{
				StartTime: s.StartTime,
				Duration:  s.Duration,
				Price:     s.Price,
			})
		}
		raw.Resources = append(raw.Resources, out)
	}
	return raw, nil
}

// FetchClubInfo loads the club page and decodes the tenant JSON embedded
// in its __NEXT_DATA__ script tag.
func (c *PlaytomicClient) FetchClubInfo(ctx context.Context, slug string) (*RawClub, error) {
	endpoint := fmt.Sprintf("%s/clubs/%s", c.baseURL, url.PathEscape(slug))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, &Error{
			Code:     ErrCodeMalformed,
			Provider: ProviderPlaytomic,
			Message:  "club page is not parseable HTML",
			Err:      err,
		}
	}

	payload := strings.TrimSpace(doc.Find("#__NEXT_DATA__").First().Text())
	if payload == "" {
		return nil, &Error{
			Code:     ErrCodeMalformed,
			Provider: ProviderPlaytomic,
			Message:  fmt.Sprintf("club page for %q has no embedded data island", slug),
		}
	}

	var next playtomicNextData
	if err := json.Unmarshal([]byte(payload), &next); err != nil {
		return nil, &Error{
			Code:     ErrCodeMalformed,
			Provider: ProviderPlaytomic,
			Message:  "embedded club data is not valid JSON",
			Err:      err,
		}
	}

	tenant := next.Props.PageProps.Tenant
	if tenant.TenantName == "" {
		return nil, &Error{
			Code:     ErrCodeMalformed,
			Provider: ProviderPlaytomic,
			Message:  fmt.Sprintf("club page for %q carries no tenant data", slug),
		}
	}

	club := &RawClub{
		Provider: ProviderPlaytomic,
		TenantID: tenant.TenantID,
		Name:     tenant.TenantName,
		Slug:     slug,
		Address: RawAddress{
			Street:     tenant.Address.Street,
			City:       tenant.Address.City,
			PostalCode: tenant.Address.PostalCode,
			Country:    tenant.Address.Country,
			Latitude:   tenant.Address.Coordinate.Lat,
			Longitude:  tenant.Address.Coordinate.Lon,
			Timezone:   tenant.Address.Timezone,
		},
		Courts: make([]RawCourt, 0, len(tenant.Resources)),
	}
	for _, res := range tenant.Resources {
		club.Courts = append(club.Courts, RawCourt{
			ResourceID: res.ResourceID,
			Name:       res.Name,
			Type:       res.Properties.ResourceType,
			Size:       res.Properties.ResourceSize,
			Feature:    res.Properties.ResourceFeature,
		})
	}
	return club, nil
}

// BookingURL deep-links into the Playtomic payment flow with the slot
// pre-selected.
func (c *PlaytomicClient) BookingURL(tenantID, resourceID, date string, startMinute, durationMinutes int) string {
	if tenantID == "" || resourceID == "" {
		return ""
	}
	start := fmt.Sprintf("%sT%02d:%02d:00.000Z", date, startMinute/60, startMinute%60)
	returnURL := fmt.Sprintf("/payments?type=CUSTOMER_MATCH&tenant_id=%s&resource_id=%s&start=%s&duration=%d",
		tenantID, resourceID, url.QueryEscape(start), durationMinutes)
	return "https://app.playtomic.com/login?return_url=" + url.QueryEscape(returnURL)
}

// get performs one rate-limited GET and classifies transport failures.
// The caller owns the returned body.
func (c *PlaytomicClient) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{
			Code:     ErrCodeUnavailable,
			Provider: ProviderPlaytomic,
			Message:  "request aborted while rate limited",
			Err:      err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{
			Code:     ErrCodeUnavailable,
			Provider: ProviderPlaytomic,
			Message:  "building request failed",
			Err:      err,
		}
	}
	req.Header.Set("Accept", "application/json, text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Code:     ErrCodeUnavailable,
			Provider: ProviderPlaytomic,
			Message:  "request failed",
			Err:      err,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &Error{
			Code:     ErrCodeRejected,
			Provider: ProviderPlaytomic,
			Message:  fmt.Sprintf("request returned status %d", resp.StatusCode),
		}
	}
	return resp.Body, nil
}
