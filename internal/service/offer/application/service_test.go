// internal/service/offer/application/service_test.go
package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"foodsy/internal/service/offer/domain"
	"foodsy/internal/service/offer/infrastructure/rule"
)

type fakeOfferRepo struct {
	offers []*domain.Offer
	nextID int64
}

func (r *fakeOfferRepo) Create(_ context.Context, offer *domain.Offer) error {
	r.nextID++
	offer.ID = r.nextID
	r.offers = append(r.offers, offer)
	return nil
}

func (r *fakeOfferRepo) Update(_ context.Context, offer *domain.Offer) error {
	for i, o := range r.offers {
		if o.ID == offer.ID {
			r.offers[i] = offer
			return nil
		}
	}
	return domain.ErrOfferNotFound
}

func (r *fakeOfferRepo) Delete(_ context.Context, id int64) error {
	for i, o := range r.offers {
		if o.ID == id {
			r.offers = append(r.offers[:i], r.offers[i+1:]...)
			return nil
		}
	}
	return domain.ErrOfferNotFound
}

func (r *fakeOfferRepo) FindByID(_ context.Context, id int64) (*domain.Offer, error) {
	for _, o := range r.offers {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrOfferNotFound
}

func (r *fakeOfferRepo) ListAll(_ context.Context) ([]*domain.Offer, error) {
	return r.offers, nil
}

func (r *fakeOfferRepo) ListLive(_ context.Context, now time.Time) ([]*domain.Offer, error) {
	live := make([]*domain.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		if o.IsLive(now) {
			live = append(live, o)
		}
	}
	return live, nil
}

func newTestOfferService(t *testing.T) (*OfferService, *fakeOfferRepo) {
	t.Helper()
	engine, err := rule.NewCELRuleEngine()
	require.NoError(t, err)
	repo := &fakeOfferRepo{}
	return NewOfferService(repo, engine, otel.Tracer("test")), repo
}

func TestCreateOffer_RejectsBadRule(t *testing.T) {
	svc, repo := newTestOfferService(t)

	_, err := svc.CreateOffer(context.Background(), &SaveOfferRequest{
		Code:     "BROKEN",
		Discount: 1000,
		Rule:     "subtotal >>> 1",
		Active:   true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRule)
	assert.Empty(t, repo.offers, "bad rules must not reach the database")
}

func TestCreateOffer_RejectsInvalidFields(t *testing.T) {
	svc, _ := newTestOfferService(t)

	_, err := svc.CreateOffer(context.Background(), &SaveOfferRequest{Code: "FREE", Discount: 0, Active: true})
	assert.ErrorIs(t, err, domain.ErrInvalidOffer)
}

func TestBestFor_PicksLargestEligibleDiscount(t *testing.T) {
	svc, _ := newTestOfferService(t)

	seed := []*SaveOfferRequest{
		{Code: "SAVE10", Discount: 1000, Active: true},
		{Code: "SAVE20", Discount: 2000, Rule: "subtotal >= 50000", Active: true},
		{Code: "BULK30", Discount: 3000, Rule: "itemCount >= 5", Active: true},
		{Code: "OFF", Discount: 5000, Active: false},
	}
	for _, req := range seed {
		_, err := svc.CreateOffer(context.Background(), req)
		require.NoError(t, err)
	}

	// 小计够 SAVE20，件数不够 BULK30，停用的 OFF 不参与
	best, err := svc.BestFor(context.Background(), 60000, 2)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "SAVE20", best.Code)
	assert.Equal(t, int64(2000), best.DiscountPaise)

	// 件数够了之后 BULK30 胜出
	best, err = svc.BestFor(context.Background(), 60000, 5)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "BULK30", best.Code)
}

func TestBestFor_NoEligibleOffer(t *testing.T) {
	svc, _ := newTestOfferService(t)

	_, err := svc.CreateOffer(context.Background(), &SaveOfferRequest{
		Code: "SAVE20", Discount: 2000, Rule: "subtotal >= 50000", Active: true,
	})
	require.NoError(t, err)

	best, err := svc.BestFor(context.Background(), 10000, 1)
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestBestFor_DiscountNeverExceedsSubtotal(t *testing.T) {
	svc, _ := newTestOfferService(t)

	_, err := svc.CreateOffer(context.Background(), &SaveOfferRequest{
		Code: "MEGA", Discount: 50000, Active: true,
	})
	require.NoError(t, err)

	best, err := svc.BestFor(context.Background(), 10000, 1)
	require.NoError(t, err)
	assert.Nil(t, best, "an offer larger than the subtotal is not applicable")
}

func TestBestFor_ExpiredOfferIsIgnored(t *testing.T) {
	svc, _ := newTestOfferService(t)

	past := time.Now().UTC().Add(-time.Hour)
	_, err := svc.CreateOffer(context.Background(), &SaveOfferRequest{
		Code: "EXPIRED", Discount: 1000, Active: true, ValidTo: &past,
	})
	require.NoError(t, err)

	best, err := svc.BestFor(context.Background(), 60000, 2)
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestUpdateOffer_CodeIsImmutable(t *testing.T) {
	svc, _ := newTestOfferService(t)

	created, err := svc.CreateOffer(context.Background(), &SaveOfferRequest{
		Code: "SAVE10", Discount: 1000, Active: true,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateOffer(context.Background(), created.ID, &SaveOfferRequest{
		Code: "RENAMED", Discount: 1500, Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", updated.Code)
	assert.Equal(t, int64(1500), updated.Discount)
}
