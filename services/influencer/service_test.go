package influencer

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	submissionRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/submission"
	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

type fakeLinks struct {
	links []models.InfluencerLink
}

func (f *fakeLinks) Create(ctx context.Context, link models.InfluencerLink) (*models.InfluencerLink, error) {
	link.ID = primitive.NewObjectID()
	link.CreatedAt = time.Now()
	f.links = append(f.links, link)
	cp := link
	return &cp, nil
}

func (f *fakeLinks) List(ctx context.Context) ([]models.InfluencerLink, error) {
	out := make([]models.InfluencerLink, len(f.links))
	copy(out, f.links)
	return out, nil
}

func (f *fakeLinks) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i, l := range f.links {
		if l.ID == id {
			f.links = append(f.links[:i], f.links[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeLinks) EnsureIndexes(ctx context.Context) error { return nil }

type analyticsSubs struct {
	submissionRepo.SubmissionRepository

	counts []submissionRepo.InfluencerCount
	trend  []submissionRepo.DailyCount
}

func (s *analyticsSubs) CountRegistrationsByInfluencer(ctx context.Context, from, to time.Time, sortLatest bool) ([]submissionRepo.InfluencerCount, error) {
	return s.counts, nil
}

func (s *analyticsSubs) RegistrationTrendByDay(ctx context.Context, from, to time.Time) ([]submissionRepo.DailyCount, error) {
	return s.trend, nil
}

func newTestService(links *fakeLinks, subs *analyticsSubs) *DefaultService {
	return &DefaultService{Links: links, Subs: subs, BaseURL: "https://example.test/register/"}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code)
	}
}

func TestCreateLink_BuildsUTMParams(t *testing.T) {
	svc := newTestService(&fakeLinks{}, &analyticsSubs{})

	link, err := svc.CreateLink(context.Background(), CreateLinkRequest{
		InfluencerName: "Priya Menon",
		Platform:       "YouTube",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := url.Parse(link.UTMLink)
	if err != nil {
		t.Fatalf("link did not parse: %v", err)
	}
	if u.Host != "example.test" || u.Path != "/register" {
		t.Fatalf("unexpected link target: %s", link.UTMLink)
	}
	q := u.Query()
	if q.Get("utm_source") != "youtube" {
		t.Fatalf("expected utm_source youtube, got %q", q.Get("utm_source"))
	}
	if q.Get("utm_medium") != "influencer" {
		t.Fatalf("expected utm_medium influencer, got %q", q.Get("utm_medium"))
	}
	if q.Get("utm_campaign") != "guide_xperts" {
		t.Fatalf("expected default campaign, got %q", q.Get("utm_campaign"))
	}
	// The content tag carries the name escaped once more than the URL itself.
	if q.Get("utm_content") != url.QueryEscape("Priya Menon") {
		t.Fatalf("expected escaped name, got %q", q.Get("utm_content"))
	}
}

func TestCreateLink_DefaultsAndValidation(t *testing.T) {
	svc := newTestService(&fakeLinks{}, &analyticsSubs{})

	link, err := svc.CreateLink(context.Background(), CreateLinkRequest{InfluencerName: "Asha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link.Platform != "Instagram" || link.Campaign != "guide_xperts" {
		t.Fatalf("expected defaults, got %+v", link)
	}

	_, err = svc.CreateLink(context.Background(), CreateLinkRequest{InfluencerName: "   "})
	assertCode(t, err, utils.CodeValidation)

	_, err = svc.CreateLink(context.Background(), CreateLinkRequest{
		InfluencerName: "Asha",
		Platform:       "TikTok",
	})
	assertCode(t, err, utils.CodeValidation)
}

func TestCreateLink_SaveFlag(t *testing.T) {
	links := &fakeLinks{}
	svc := newTestService(links, &analyticsSubs{})

	if _, err := svc.CreateLink(context.Background(), CreateLinkRequest{InfluencerName: "Asha"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links.links) != 0 {
		t.Fatalf("link without save must not persist")
	}

	saved, err := svc.CreateLink(context.Background(), CreateLinkRequest{InfluencerName: "Asha", Save: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links.links) != 1 || saved.ID.IsZero() {
		t.Fatalf("expected one persisted link with an id")
	}
}

func TestDeleteLink(t *testing.T) {
	links := &fakeLinks{}
	svc := newTestService(links, &analyticsSubs{})

	saved, err := svc.CreateLink(context.Background(), CreateLinkRequest{InfluencerName: "Asha", Save: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteLink(context.Background(), saved.ID.Hex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links.links) != 0 {
		t.Fatalf("expected link removed")
	}

	assertCode(t, svc.DeleteLink(context.Background(), "not-a-hex-id"), utils.CodeValidation)
	assertCode(t, svc.DeleteLink(context.Background(), primitive.NewObjectID().Hex()), utils.CodeNotFound)
}

func TestAnalytics_DecodesNames(t *testing.T) {
	subs := &analyticsSubs{counts: []submissionRepo.InfluencerCount{
		{InfluencerName: url.QueryEscape("Priya Menon"), Platform: "youtube", TotalRegistrations: 7},
	}}
	svc := newTestService(&fakeLinks{}, subs)

	counts, err := svc.Analytics(context.Background(), time.Time{}, time.Time{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counts) != 1 || counts[0].InfluencerName != "Priya Menon" {
		t.Fatalf("expected decoded name, got %+v", counts)
	}
}

func TestAnalytics_InvalidRange(t *testing.T) {
	svc := newTestService(&fakeLinks{}, &analyticsSubs{})

	from := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Analytics(context.Background(), from, to, false)
	assertCode(t, err, utils.CodeValidation)

	_, err = svc.Trend(context.Background(), from, to)
	assertCode(t, err, utils.CodeValidation)
}
