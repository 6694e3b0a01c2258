package service

import (
	"context"
	"testing"

	"pipeline_crm_backend/internal/events"
	leadsrepo "pipeline_crm_backend/internal/leads/repository"
	"pipeline_crm_backend/internal/matching/domain"
	propsrepo "pipeline_crm_backend/internal/properties/repository"
	"pipeline_crm_backend/platform/apperr"
	"pipeline_crm_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeLeadReader struct {
	prefs map[uuid.UUID]domain.LeadPreferences
	links []attachedLink
}

type attachedLink struct {
	leadID     uuid.UUID
	propertyID uuid.UUID
	matchType  string
}

func (f *fakeLeadReader) GetPreferences(ctx context.Context, leadID uuid.UUID) (domain.LeadPreferences, error) {
	prefs, ok := f.prefs[leadID]
	if !ok {
		return domain.LeadPreferences{}, leadsrepo.ErrNotFound
	}
	return prefs, nil
}

func (f *fakeLeadReader) AttachProperty(ctx context.Context, leadID, propertyID uuid.UUID, matchType string) error {
	f.links = append(f.links, attachedLink{leadID: leadID, propertyID: propertyID, matchType: matchType})
	return nil
}

type fakePropertyLister struct {
	candidates []domain.Property
}

func (f *fakePropertyLister) ListCandidates(ctx context.Context) ([]domain.Property, error) {
	return f.candidates, nil
}

func (f *fakePropertyLister) GetByID(ctx context.Context, propertyID uuid.UUID) (domain.Property, error) {
	for _, p := range f.candidates {
		if p.ID == propertyID {
			return p, nil
		}
	}
	return domain.Property{}, propsrepo.ErrNotFound
}

type matchingConfig struct{}

func (matchingConfig) GetSuggestionDefaultLimit() int { return 2 }
func (matchingConfig) GetSuggestionMinScore() int     { return 30 }

func rental(price float64, location string) domain.Property {
	return domain.Property{
		ID:          uuid.New(),
		Price:       price,
		Location:    location,
		ListingType: domain.ListingTypeRent,
		Status:      domain.StatusAvailable,
	}
}

func TestSuggestForLead_AppliesConfiguredDefaults(t *testing.T) {
	leadID := uuid.New()
	leads := &fakeLeadReader{prefs: map[uuid.UUID]domain.LeadPreferences{
		leadID: {InterestType: domain.InterestRent, PreferredAreas: []string{"amsterdam"}},
	}}
	properties := &fakePropertyLister{candidates: []domain.Property{
		rental(900, "amsterdam"),
		rental(950, "amsterdam"),
		rental(1000, "amsterdam"),
	}}
	svc := New(leads, properties, leads, nil, matchingConfig{}, logger.New("test"))

	result, err := svc.SuggestForLead(context.Background(), leadID, 0, -1)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if len(result.Suggestions) != 2 {
		t.Fatalf("expected default limit 2 applied, got %d suggestions", len(result.Suggestions))
	}
	if result.MatchedCount != 3 {
		t.Fatalf("expected 3 matches before truncation, got %d", result.MatchedCount)
	}
}

func TestSuggestForLead_UnknownLeadIsNotFound(t *testing.T) {
	leads := &fakeLeadReader{prefs: map[uuid.UUID]domain.LeadPreferences{}}
	properties := &fakePropertyLister{}
	svc := New(leads, properties, leads, nil, matchingConfig{}, logger.New("test"))

	_, err := svc.SuggestForLead(context.Background(), uuid.New(), 5, 0)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSuggestForLead_EmptyCandidateSetIsEmptyResult(t *testing.T) {
	leadID := uuid.New()
	leads := &fakeLeadReader{prefs: map[uuid.UUID]domain.LeadPreferences{leadID: {}}}
	properties := &fakePropertyLister{}
	svc := New(leads, properties, leads, nil, matchingConfig{}, logger.New("test"))

	result, err := svc.SuggestForLead(context.Background(), leadID, 5, 0)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if len(result.Suggestions) != 0 || result.TotalAvailableProperties != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestAttachProperty_RecordsLinkAndPublishes(t *testing.T) {
	leadID := uuid.New()
	property := rental(900, "amsterdam")
	leads := &fakeLeadReader{prefs: map[uuid.UUID]domain.LeadPreferences{leadID: {}}}
	properties := &fakePropertyLister{candidates: []domain.Property{property}}
	bus := events.NewInMemoryBus(logger.New("test"))

	received := make(chan events.PropertyAttached, 1)
	bus.Subscribe(events.PropertyAttached{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.PropertyAttached); ok {
			received <- e
		}
		return nil
	}))

	svc := New(leads, properties, leads, bus, matchingConfig{}, logger.New("test"))

	if err := svc.AttachProperty(context.Background(), leadID, property.ID, "suggested"); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if len(leads.links) != 1 {
		t.Fatalf("expected 1 recorded link, got %d", len(leads.links))
	}
	link := leads.links[0]
	if link.leadID != leadID || link.propertyID != property.ID || link.matchType != "suggested" {
		t.Fatalf("unexpected link: %+v", link)
	}

	event := <-received
	if event.PropertyID != property.ID || event.MatchType != "suggested" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestAttachProperty_UnknownPropertyIsNotFound(t *testing.T) {
	leadID := uuid.New()
	leads := &fakeLeadReader{prefs: map[uuid.UUID]domain.LeadPreferences{leadID: {}}}
	properties := &fakePropertyLister{}
	svc := New(leads, properties, leads, nil, matchingConfig{}, logger.New("test"))

	err := svc.AttachProperty(context.Background(), leadID, uuid.New(), "manual")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(leads.links) != 0 {
		t.Fatalf("expected no link recorded, got %d", len(leads.links))
	}
}
