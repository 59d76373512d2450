// File: services/influencer/service.go
package influencer

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	influencerRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/influencer"
	submissionRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/submission"
	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

const defaultCampaign = "guide_xperts"

// platformSources maps a display platform to its utm_source value.
var platformSources = map[string]string{
	"Instagram": "instagram",
	"YouTube":   "youtube",
	"Twitter":   "twitter",
	"WhatsApp":  "whatsapp",
}

// CreateLinkRequest describes a campaign link to mint. Save false returns
// the link without persisting it.
type CreateLinkRequest struct {
	InfluencerName string
	Platform       string
	Campaign       string
	Save           bool
}

// Service manages influencer campaign links and the registration analytics
// their UTM tags feed.
type Service interface {
	CreateLink(ctx context.Context, req CreateLinkRequest) (*models.InfluencerLink, error)
	ListLinks(ctx context.Context) ([]models.InfluencerLink, error)
	DeleteLink(ctx context.Context, id string) error
	Analytics(ctx context.Context, from, to time.Time, sortLatest bool) ([]submissionRepo.InfluencerCount, error)
	Trend(ctx context.Context, from, to time.Time) ([]submissionRepo.DailyCount, error)
}

type DefaultService struct {
	Links influencerRepo.InfluencerLinkRepository
	Subs  submissionRepo.SubmissionRepository

	// BaseURL is the registration page the link points at.
	BaseURL string
}

// CreateLink builds the UTM link for an influencer and optionally saves it.
func (s *DefaultService) CreateLink(ctx context.Context, req CreateLinkRequest) (*models.InfluencerLink, error) {
	name := strings.TrimSpace(req.InfluencerName)
	if name == "" {
		return nil, utils.NewValidationError("Influencer name is required.")
	}
	if len(name) > 200 {
		return nil, utils.NewValidationError("Influencer name is too long.")
	}
	platform := req.Platform
	if platform == "" {
		platform = "Instagram"
	}
	if _, ok := platformSources[platform]; !ok {
		return nil, utils.NewValidationError("Invalid platform. Use Instagram, YouTube, Twitter, or WhatsApp.")
	}
	campaign := strings.TrimSpace(req.Campaign)
	if campaign == "" {
		campaign = defaultCampaign
	}

	link := models.InfluencerLink{
		InfluencerName: name,
		Platform:       platform,
		Campaign:       campaign,
		UTMLink:        s.buildUTMLink(name, platform, campaign),
	}
	if !req.Save {
		link.CreatedAt = time.Now()
		return &link, nil
	}

	saved, err := s.Links.Create(ctx, link)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("influencer link saved",
		zap.String("influencer", saved.InfluencerName), zap.String("platform", saved.Platform))
	return saved, nil
}

func (s *DefaultService) ListLinks(ctx context.Context) ([]models.InfluencerLink, error) {
	return s.Links.List(ctx)
}

func (s *DefaultService) DeleteLink(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.NewValidationError("Invalid link ID.")
	}
	if err := s.Links.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewNotFoundError("Link not found.")
		}
		return err
	}
	return nil
}

// Analytics aggregates registrations per influencer. Registrations are
// attributed by the utm_content tag, which the link carries URL-escaped;
// names are unescaped here for display.
func (s *DefaultService) Analytics(ctx context.Context, from, to time.Time, sortLatest bool) ([]submissionRepo.InfluencerCount, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, utils.NewValidationError("Invalid date range.")
	}
	counts, err := s.Subs.CountRegistrationsByInfluencer(ctx, from, to, sortLatest)
	if err != nil {
		return nil, err
	}
	for i := range counts {
		if name, err := url.QueryUnescape(counts[i].InfluencerName); err == nil {
			counts[i].InfluencerName = name
		}
	}
	return counts, nil
}

// Trend returns attributed registrations per IST day for charting.
func (s *DefaultService) Trend(ctx context.Context, from, to time.Time) ([]submissionRepo.DailyCount, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, utils.NewValidationError("Invalid date range.")
	}
	return s.Subs.RegistrationTrendByDay(ctx, from, to)
}

// buildUTMLink assembles the registration URL. utm_content carries the
// URL-escaped influencer name and is escaped again by Encode, matching what
// the registration page stores back into Attribution.
func (s *DefaultService) buildUTMLink(name, platform, campaign string) string {
	params := url.Values{}
	params.Set("utm_source", platformSources[platform])
	params.Set("utm_medium", "influencer")
	params.Set("utm_campaign", campaign)
	params.Set("utm_content", url.QueryEscape(name))
	return strings.TrimRight(s.BaseURL, "/") + "?" + params.Encode()
}
