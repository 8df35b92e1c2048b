package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/stitch/internal/application/dto"
	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
	"github.com/reglet-dev/stitch/internal/domain/events"
)

func TestPurchaseFlow_AddToCart_Personalized(t *testing.T) {
	ctx := context.Background()
	rig := newRig(preInstance(), nil)
	rig.personalize(ctx)
	rig.fields.quantity = 2

	cart := &dto.CartSnapshot{Token: "c", ItemCount: 6}
	rig.cart.On("Add", mock.Anything, mock.MatchedBy(func(req dto.AddRequest) bool {
		return len(req.Items) == 3 &&
			req.Items[0].VariantID == "9001" &&
			req.Items[0].Quantity == 2 &&
			req.Items[1].ParentID == "prod-1" &&
			req.Items[2].Quantity == 2
	})).Return(cart, nil).Once()

	got, err := rig.flow.AddToCart(ctx, "9001")

	require.NoError(t, err)
	assert.Same(t, cart, got)
	rig.cart.AssertExpectations(t)
	rig.cart.AssertNotCalled(t, "Change", mock.Anything, mock.Anything)
	assert.Equal(t, events.CartUpdated{CartData: cart}, rig.events.last())
	assert.True(t, rig.store.Plan().IsEmpty())
	_, saved := rig.storage.items["personalization_prod-1"]
	assert.True(t, saved, "snapshot survives for the cart page")
}

func TestPurchaseFlow_AddToCart_Plain(t *testing.T) {
	ctx := context.Background()
	rig := newRig(preInstance(), nil)

	rig.cart.On("Add", mock.Anything, mock.MatchedBy(func(req dto.AddRequest) bool {
		return len(req.Items) == 1 && req.Items[0].Properties == nil
	})).Return(&dto.CartSnapshot{}, nil).Once()

	_, err := rig.flow.AddToCart(ctx, "9001")

	require.NoError(t, err)
	rig.cart.AssertExpectations(t)
}

func TestPurchaseFlow_AddToCart_Invalid(t *testing.T) {
	ctx := context.Background()
	rig := newRig(preInstance(), nil)
	require.NoError(t, rig.store.SetEnabled(ctx, true))

	_, err := rig.flow.AddToCart(ctx, "9001")

	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "missing_name", string(valErr.Reason))
	rig.cart.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	assert.False(t, rig.control.loading())
}

func TestPurchaseFlow_AddToCart_Failure(t *testing.T) {
	ctx := context.Background()
	rig := newRig(preInstance(), nil)
	rig.personalize(ctx)

	rig.cart.On("Add", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewCartSubmissionError("add", 422, "All 1 Gold are in your cart.", nil)).Once()

	_, err := rig.flow.AddToCart(ctx, "9001")

	var subErr *apperrors.CartSubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, 422, subErr.Status)
	assert.Equal(t, "All 1 Gold are in your cart.", rig.control.lastError)
	assert.False(t, rig.store.Plan().IsEmpty(), "plan is kept for a retry")

	ev, ok := rig.events.last().(events.CartError)
	require.True(t, ok)
	assert.Equal(t, SourcePurchase, ev.Source)
}

func TestPurchaseFlow_RequiresPrePurchase(t *testing.T) {
	rig := newRig(postInstance(), nil)

	_, err := rig.flow.AddToCart(context.Background(), "9001")

	assert.Error(t, err)
}
