package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"padelwatch/courtfinder"
	"padelwatch/models"
	"padelwatch/utils"
)

// NormalizeClub maps a raw club payload onto the internal location and
// court schema. The returned records carry no ids and no location
// linkage yet; the caller persists the location first and stamps its id
// onto the courts.
func NormalizeClub(raw *courtfinder.RawClub) (models.Location, []models.Court) {
	location := models.Location{
		Name:               raw.Name,
		Slug:               raw.Slug,
		Provider:           raw.Provider,
		ProviderLocationID: raw.TenantID,
		Address: models.Address{
			Street:     raw.Address.Street,
			City:       raw.Address.City,
			PostalCode: raw.Address.PostalCode,
			Country:    raw.Address.Country,
			Latitude:   raw.Address.Latitude,
			Longitude:  raw.Address.Longitude,
			Timezone:   raw.Address.Timezone,
		},
	}

	courts := make([]models.Court, 0, len(raw.Courts))
	for _, rc := range raw.Courts {
		indoor, double := courtTraits(rc)
		courts = append(courts, models.Court{
			ProviderCourtID: rc.ResourceID,
			Name:            rc.Name,
			Indoor:          indoor,
			Double:          double,
		})
	}
	return location, courts
}

// courtTraits maps platform court attributes onto the internal flags.
//
// Attribute vocabulary per platform:
//
//	playtomic: resource_type "indoor"  -> indoor, anything else outdoor
//	           resource_size "double"  -> double, anything else single
//
// Values the platform leaves empty default to outdoor single, matching
// how courts first materialize from availability payloads before club
// metadata fills them in.
func courtTraits(raw courtfinder.RawCourt) (indoor, double bool) {
	indoor = strings.EqualFold(raw.Type, "indoor")
	double = strings.EqualFold(raw.Size, "double")
	return indoor, double
}

// NormalizeAvailability converts a raw availability payload into cache
// rows. courtIDs maps platform resource ids to internal court ids; the
// caller resolves it before normalizing. Malformed records are skipped
// rather than aborting the batch; the skip count is returned for
// logging upstream.
func NormalizeAvailability(raw *courtfinder.RawAvailability, courtIDs map[string]string, fetchedAt time.Time) ([]models.Availability, int) {
	logger := utils.GetLogger()

	rows := make([]models.Availability, 0, len(raw.Resources)*8)
	skipped := 0
	for _, res := range raw.Resources {
		courtID, ok := courtIDs[res.ResourceID]
		if !ok {
			logger.Debug("skipping slots for unresolved court",
				zap.String("provider", raw.Provider),
				zap.String("resourceID", res.ResourceID),
				zap.Int("slots", len(res.Slots)))
			skipped += len(res.Slots)
			continue
		}
		date := res.StartDate
		if date == "" {
			date = raw.Date
		}
		for _, slot := range res.Slots {
			row, err := normalizeSlot(courtID, date, slot, fetchedAt)
			if err != nil {
				logger.Debug("skipping malformed slot",
					zap.String("provider", raw.Provider),
					zap.String("resourceID", res.ResourceID),
					zap.Error(err))
				skipped++
				continue
			}
			rows = append(rows, row)
		}
	}
	return rows, skipped
}

func normalizeSlot(courtID, date string, slot courtfinder.RawSlot, fetchedAt time.Time) (models.Availability, error) {
	start, err := models.ParseClock(slot.StartTime)
	if err != nil {
		return models.Availability{}, err
	}
	if slot.Duration <= 0 {
		return models.Availability{}, fmt.Errorf("non-positive duration %d", slot.Duration)
	}
	end := start + slot.Duration
	if end > 24*60 {
		return models.Availability{}, fmt.Errorf("slot %s+%dm crosses midnight", slot.StartTime, slot.Duration)
	}

	price, currency := parsePrice(slot.Price)
	return models.Availability{
		CourtID:         courtID,
		Date:            date,
		StartMinute:     start,
		EndMinute:       end,
		DurationMinutes: slot.Duration,
		Price:           price,
		Currency:        currency,
		Available:       true,
		FetchedAt:       fetchedAt,
	}, nil
}

// parsePrice splits a platform price string such as "36 EUR" or
// "28,5 EUR" into amount and currency. Price is optional on the row; an
// unparsable string yields nil rather than a skipped record.
func parsePrice(s string) (*float64, string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, ""
	}
	amount, err := strconv.ParseFloat(strings.Replace(fields[0], ",", ".", 1), 64)
	if err != nil {
		return nil, ""
	}
	currency := ""
	if len(fields) > 1 {
		currency = fields[1]
	}
	return &amount, currency
}
