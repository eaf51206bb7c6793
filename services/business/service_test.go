package business

import (
	"context"
	"testing"
	"time"

	"bookable/models"
	"bookable/services/schedule"
	"bookable/services/timezone"
	"bookable/utils"

	"go.uber.org/zap"
)

// fakeBusinesses is a map-backed business repository.
type fakeBusinesses struct {
	byID map[string]*models.Business
}

func (f *fakeBusinesses) Create(ctx context.Context, b *models.Business) error {
	f.byID[b.ID] = cloneBusiness(b)
	return nil
}

func (f *fakeBusinesses) GetByID(ctx context.Context, id string) (*models.Business, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, utils.NotFound("business not found")
	}
	return cloneBusiness(b), nil
}

func (f *fakeBusinesses) GetByEmail(ctx context.Context, email string) (*models.Business, error) {
	for _, b := range f.byID {
		if b.Email == email {
			return cloneBusiness(b), nil
		}
	}
	return nil, utils.NotFound("business not found")
}

func (f *fakeBusinesses) Update(ctx context.Context, b *models.Business) error {
	return f.Create(ctx, b)
}

func (f *fakeBusinesses) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeBusinesses) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	return ids, nil
}

func cloneBusiness(b *models.Business) *models.Business {
	c := *b
	c.Unavailability = append([]models.UnavailabilityWindow(nil), b.Unavailability...)
	c.Slots = append([]models.Slot(nil), b.Slots...)
	return &c
}

// fakeOfferings is a map-backed offering repository.
type fakeOfferings struct {
	byID map[string]*models.Offering
}

func (f *fakeOfferings) Create(ctx context.Context, o *models.Offering) error {
	cp := *o
	cp.Unavailability = append([]models.UnavailabilityWindow(nil), o.Unavailability...)
	f.byID[o.ID] = &cp
	return nil
}

func (f *fakeOfferings) GetByID(ctx context.Context, id string) (*models.Offering, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, utils.NotFound("offering not found")
	}
	cp := *o
	cp.Unavailability = append([]models.UnavailabilityWindow(nil), o.Unavailability...)
	return &cp, nil
}

func (f *fakeOfferings) FindByBusiness(ctx context.Context, businessID string) ([]models.Offering, error) {
	var out []models.Offering
	for _, o := range f.byID {
		if o.BusinessID == businessID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOfferings) Update(ctx context.Context, o *models.Offering) error {
	return f.Create(ctx, o)
}

func (f *fakeOfferings) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

// recordingResolver pins every lookup to UTC and remembers the coordinate
// it was asked about.
type recordingResolver struct {
	last models.GeoPoint
}

func (r *recordingResolver) LookupOffset(ctx context.Context, loc models.GeoPoint, unixTime int64) (timezone.ZoneOffset, error) {
	r.last = loc
	return timezone.ZoneOffset{IANAZone: "UTC"}, nil
}

func (r *recordingResolver) CoordinateForZone(ctx context.Context, iana string) (models.GeoPoint, error) {
	return models.GeoPoint{}, utils.NotFound("no representative coordinate")
}

type fixture struct {
	businesses *fakeBusinesses
	offerings  *fakeOfferings
	resolver   *recordingResolver
	service    *DefaultService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		businesses: &fakeBusinesses{byID: make(map[string]*models.Business)},
		offerings:  &fakeOfferings{byID: make(map[string]*models.Offering)},
		resolver:   &recordingResolver{},
	}
	normalizer := schedule.NewNormalizer(f.resolver)
	normalizer.Now = func() time.Time {
		return time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	f.service = NewService(f.businesses, f.offerings, normalizer)
	f.service.Logger = zap.NewNop()
	return f
}

func (f *fixture) seedBusiness(t *testing.T) *models.Business {
	t.Helper()
	biz, err := f.service.CreateBusiness(context.Background(), BusinessInput{
		Name:     "Test Cleaners",
		Email:    "owner@example.com",
		Location: models.GeoPoint{Lat: -1.2921, Lng: 36.8219},
	})
	if err != nil {
		t.Fatalf("CreateBusiness: %v", err)
	}
	return biz
}

func (f *fixture) seedOffering(t *testing.T, businessID, name string) *models.Offering {
	t.Helper()
	off, err := f.service.CreateOffering(context.Background(), businessID, OfferingInput{
		Name:     name,
		Duration: 3600,
	})
	if err != nil {
		t.Fatalf("CreateOffering(%s): %v", name, err)
	}
	return off
}

func TestCreateBusiness(t *testing.T) {
	f := newFixture(t)
	biz := f.seedBusiness(t)

	if biz.Hours != models.DefaultOperatingHours() {
		t.Fatalf("hours should default to 09:00-17:00, got %+v", biz.Hours)
	}

	_, err := f.service.CreateBusiness(context.Background(), BusinessInput{
		Name: "Copycat", Email: "owner@example.com",
	})
	if utils.CodeOf(err) != utils.CodeConflict {
		t.Fatalf("duplicate email: code = %q (err %v), want conflict", utils.CodeOf(err), err)
	}

	_, err = f.service.CreateBusiness(context.Background(), BusinessInput{Email: "x@example.com"})
	if utils.CodeOf(err) != utils.CodeInvalidInput {
		t.Fatalf("missing name: code = %q (err %v), want invalidInput", utils.CodeOf(err), err)
	}
}

func TestValidateOperatingHours(t *testing.T) {
	shuffled := models.DefaultOperatingHours()
	shuffled[0].Weekday = time.Monday

	outOfRange := models.DefaultOperatingHours()
	outOfRange[3].End = 49

	inverted := models.DefaultOperatingHours()
	inverted[2].Start, inverted[2].End = 34, 18

	invertedClosed := inverted
	invertedClosed[2].IsClosed = true

	tests := []struct {
		name    string
		hours   models.OperatingHours
		wantErr bool
	}{
		{"default table", models.DefaultOperatingHours(), false},
		{"weekday out of order", shuffled, true},
		{"closing slot past 48", outOfRange, true},
		{"opening after closing", inverted, true},
		{"closed day may carry any range", invertedClosed, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOperatingHours(tc.hours)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestAddSlot(t *testing.T) {
	f := newFixture(t)
	biz := f.seedBusiness(t)

	updated, err := f.service.AddSlot(context.Background(), biz.ID, "bay 1", nil)
	if err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	if len(updated.Slots) != 1 || updated.Slots[0].Name != "bay 1" || updated.Slots[0].ID == "" {
		t.Fatalf("unexpected slots: %+v", updated.Slots)
	}
	if updated.Version != biz.Version+1 {
		t.Fatalf("version = %d, want %d", updated.Version, biz.Version+1)
	}

	if _, err := f.service.AddSlot(context.Background(), biz.ID, "bay 1", nil); utils.CodeOf(err) != utils.CodeConflict {
		t.Fatalf("duplicate slot name: %v", err)
	}
	if _, err := f.service.AddSlot(context.Background(), biz.ID, "", nil); utils.CodeOf(err) != utils.CodeInvalidInput {
		t.Fatalf("empty slot name: %v", err)
	}
}

func TestAddUnavailability_CascadesToOfferings(t *testing.T) {
	f := newFixture(t)
	biz := f.seedBusiness(t)
	off1 := f.seedOffering(t, biz.ID, "Standard Wash")
	off2 := f.seedOffering(t, biz.ID, "Full Detail")

	updated, err := f.service.AddUnavailability(context.Background(), biz.ID, UnavailabilityInput{
		Name:  "maintenance",
		Start: "2030-02-01T10:00:00",
		End:   "2030-02-01T12:00:00",
	})
	if err != nil {
		t.Fatalf("AddUnavailability: %v", err)
	}
	if len(updated.Unavailability) != 1 || updated.Unavailability[0].Name != "maintenance" {
		t.Fatalf("unexpected windows: %+v", updated.Unavailability)
	}

	// No hint given: the business's registered location is used.
	if f.resolver.last != biz.Location {
		t.Fatalf("resolver saw %v, want business location %v", f.resolver.last, biz.Location)
	}

	for _, id := range []string{off1.ID, off2.ID} {
		off, err := f.service.GetOffering(context.Background(), id)
		if err != nil {
			t.Fatalf("GetOffering: %v", err)
		}
		if len(off.Unavailability) != 1 || off.Unavailability[0].Name != "maintenance" {
			t.Fatalf("offering %s missed the cascade: %+v", id, off.Unavailability)
		}
	}

	_, err = f.service.AddUnavailability(context.Background(), biz.ID, UnavailabilityInput{
		Name:  "maintenance",
		Start: "2030-03-01T10:00:00",
		End:   "2030-03-01T12:00:00",
	})
	if utils.CodeOf(err) != utils.CodeConflict {
		t.Fatalf("duplicate window name: code = %q (err %v), want conflict", utils.CodeOf(err), err)
	}
}

func TestAddUnavailability_AutoName(t *testing.T) {
	f := newFixture(t)
	biz := f.seedBusiness(t)

	updated, err := f.service.AddUnavailability(context.Background(), biz.ID, UnavailabilityInput{
		Start: "2030-02-01T10:00:00",
		End:   "2030-02-01T12:00:00",
	})
	if err != nil {
		t.Fatalf("AddUnavailability: %v", err)
	}
	want := "2030-02-01T10:00:00-2030-02-01T12:00:00"
	if got := updated.Unavailability[0].Name; got != want {
		t.Fatalf("auto name = %q, want %q", got, want)
	}
}

func TestRemoveUnavailability(t *testing.T) {
	f := newFixture(t)
	biz := f.seedBusiness(t)
	off := f.seedOffering(t, biz.ID, "Standard Wash")

	if _, err := f.service.AddUnavailability(context.Background(), biz.ID, UnavailabilityInput{
		Name: "maintenance", Start: "2030-02-01T10:00:00", End: "2030-02-01T12:00:00",
	}); err != nil {
		t.Fatalf("AddUnavailability: %v", err)
	}

	updated, err := f.service.RemoveUnavailability(context.Background(), biz.ID, "maintenance")
	if err != nil {
		t.Fatalf("RemoveUnavailability: %v", err)
	}
	if len(updated.Unavailability) != 0 {
		t.Fatalf("window not removed: %+v", updated.Unavailability)
	}

	got, err := f.service.GetOffering(context.Background(), off.ID)
	if err != nil {
		t.Fatalf("GetOffering: %v", err)
	}
	if len(got.Unavailability) != 0 {
		t.Fatalf("offering kept the removed window: %+v", got.Unavailability)
	}

	// Unknown name stays a no-op.
	if _, err := f.service.RemoveUnavailability(context.Background(), biz.ID, "never-existed"); err != nil {
		t.Fatalf("no-op removal errored: %v", err)
	}
}

func TestCreateOffering(t *testing.T) {
	f := newFixture(t)
	biz := f.seedBusiness(t)

	if _, err := f.service.AddUnavailability(context.Background(), biz.ID, UnavailabilityInput{
		Name: "holiday", Start: "2030-02-01T00:00:00", End: "2030-02-02T00:00:00",
	}); err != nil {
		t.Fatalf("AddUnavailability: %v", err)
	}

	off := f.seedOffering(t, biz.ID, "Standard Wash")
	if off.CustomHours != models.DefaultOperatingHours() {
		t.Fatalf("custom hours should default to the business table")
	}
	if len(off.Unavailability) != 1 || off.Unavailability[0].Name != "holiday" {
		t.Fatalf("windows not copied at creation: %+v", off.Unavailability)
	}

	if _, err := f.service.CreateOffering(context.Background(), biz.ID, OfferingInput{
		Name: "Standard Wash", Duration: 3600,
	}); utils.CodeOf(err) != utils.CodeConflict {
		t.Fatalf("duplicate offering name: %v", err)
	}
	if _, err := f.service.CreateOffering(context.Background(), biz.ID, OfferingInput{
		Name: "Too Quick", Duration: 30,
	}); utils.CodeOf(err) != utils.CodeInvalidInput {
		t.Fatalf("sub-minute duration: %v", err)
	}
}

func TestOfferingItemOps(t *testing.T) {
	f := newFixture(t)
	biz := f.seedBusiness(t)
	off := f.seedOffering(t, biz.ID, "Standard Wash")

	node := models.OptionNode{
		Name: "Wash", IsRequired: true,
		ChargeType: models.ChargePriceOnly, QuestionType: models.QuestionNumber,
	}
	if _, err := f.service.AddOfferingItem(context.Background(), off.ID, "", node); err != nil {
		t.Fatalf("AddOfferingItem: %v", err)
	}
	if _, err := f.service.AddOfferingItem(context.Background(), off.ID, "Wash", models.OptionNode{
		Name: "Wax", ChargeType: models.ChargePriceOnly, QuestionType: models.QuestionConditional, Price: 1099,
	}); err != nil {
		t.Fatalf("AddOfferingItem child: %v", err)
	}

	flat, err := f.service.FlattenOfferingItems(context.Background(), off.ID)
	if err != nil {
		t.Fatalf("FlattenOfferingItems: %v", err)
	}
	if len(flat) != 2 || flat["Wash.Wax"].Price != 1099 {
		t.Fatalf("unexpected flat view: %+v", flat)
	}

	if _, err := f.service.UpdateOfferingItem(context.Background(), off.ID, "Wash.Wax", models.FlatNode{
		Price: 1299, ChargeType: models.ChargePriceOnly, QuestionType: models.QuestionConditional,
	}); err != nil {
		t.Fatalf("UpdateOfferingItem: %v", err)
	}
	flat, _ = f.service.FlattenOfferingItems(context.Background(), off.ID)
	if flat["Wash.Wax"].Price != 1299 {
		t.Fatalf("price not updated: %+v", flat["Wash.Wax"])
	}

	if _, err := f.service.RemoveOfferingItem(context.Background(), off.ID, "Wash"); err != nil {
		t.Fatalf("RemoveOfferingItem: %v", err)
	}
	flat, _ = f.service.FlattenOfferingItems(context.Background(), off.ID)
	if len(flat) != 0 {
		t.Fatalf("subtree not removed: %+v", flat)
	}

	// Removing an unknown path is a no-op.
	if _, err := f.service.RemoveOfferingItem(context.Background(), off.ID, "Ghost"); err != nil {
		t.Fatalf("no-op removal errored: %v", err)
	}
}
