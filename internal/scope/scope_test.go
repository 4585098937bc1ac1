package scope

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFromContext_Unbound(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoCompany)
}

func TestFromContext_Bound(t *testing.T) {
	companyID := uuid.New()
	ctx := Bind(context.Background(), companyID)

	sc, err := FromContext(ctx)
	assert.NoError(t, err)

	got, bound := sc.CompanyID()
	assert.True(t, bound)
	assert.Equal(t, companyID, got)
}

func TestFromContext_Unscoped(t *testing.T) {
	ctx := Unscoped(context.Background())

	sc, err := FromContext(ctx)
	assert.NoError(t, err)

	_, bound := sc.CompanyID()
	assert.False(t, bound)
}

func TestFilter_AppendsCompanyPredicate(t *testing.T) {
	companyID := uuid.New()
	ctx := Bind(context.Background(), companyID)
	sc, _ := FromContext(ctx)

	bookingID := uuid.New()
	query, args := sc.Filter("SELECT * FROM bookings WHERE id = $1", []any{bookingID})

	assert.Equal(t, "SELECT * FROM bookings WHERE id = $1 AND company_id = $2", query)
	assert.Equal(t, []any{bookingID, companyID}, args)
}

func TestFilter_UnscopedLeavesQueryAlone(t *testing.T) {
	sc, _ := FromContext(Unscoped(context.Background()))

	query, args := sc.Filter("SELECT * FROM bookings WHERE deleted_at IS NULL", nil)

	assert.Equal(t, "SELECT * FROM bookings WHERE deleted_at IS NULL", query)
	assert.Nil(t, args)
}

func TestFilterAs_UsesAlias(t *testing.T) {
	companyID := uuid.New()
	sc, _ := FromContext(Bind(context.Background(), companyID))

	query, args := sc.FilterAs("SELECT b.id FROM bookings b WHERE b.deleted_at IS NULL", nil, "b")

	assert.Equal(t, "SELECT b.id FROM bookings b WHERE b.deleted_at IS NULL AND b.company_id = $1", query)
	assert.Equal(t, []any{companyID}, args)
}

func TestStamp(t *testing.T) {
	companyID := uuid.New()
	other := uuid.New()
	sc, _ := FromContext(Bind(context.Background(), companyID))

	assert.Equal(t, companyID, sc.Stamp(uuid.Nil), "empty id takes the bound company")
	assert.Equal(t, other, sc.Stamp(other), "explicit id is never overwritten")

	unscoped, _ := FromContext(Unscoped(context.Background()))
	assert.Equal(t, uuid.Nil, unscoped.Stamp(uuid.Nil))
}
