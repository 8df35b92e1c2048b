package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/stitch/internal/application/dto"
	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/events"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// PurchaseFlow is the product page add-to-cart. It sends the main product and
// the personalization addons as one add request, so both land or neither does.
type PurchaseFlow struct {
	composer *CartComposer
	cart     ports.CartService
	quantity ports.QuantitySource
	events   ports.EventPublisher
	submit   ports.SubmitControl
	logger   *slog.Logger
	guard    submissionGuard
}

// NewPurchaseFlow creates the pre-purchase add-to-cart flow.
func NewPurchaseFlow(
	composer *CartComposer,
	cart ports.CartService,
	quantity ports.QuantitySource,
	publisher ports.EventPublisher,
	submit ports.SubmitControl,
	logger *slog.Logger,
) *PurchaseFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &PurchaseFlow{
		composer: composer,
		cart:     cart,
		quantity: quantity,
		events:   publisher,
		submit:   submit,
		logger:   logger,
		guard:    submissionGuard{control: submit},
	}
}

// AddToCart adds the product with its personalization, if any.
func (f *PurchaseFlow) AddToCart(ctx context.Context, variantID string) (*dto.CartSnapshot, error) {
	inst := f.composer.store.Instance()
	if inst.Mode != values.ModePrePurchase {
		return nil, fmt.Errorf("add to cart requires pre-purchase mode, got %s", inst.Mode)
	}

	release, err := f.guard.begin()
	if err != nil {
		return nil, err
	}
	defer release()

	validity := f.composer.store.Derived().Validity
	if !validity.Valid {
		return nil, &apperrors.ValidationError{Reason: validity.Reason, Group: validity.Group}
	}

	qty, err := f.quantity.Quantity(ctx)
	if err != nil {
		return nil, f.composer.fail(ctx, SourcePurchase, apperrors.NewCartSubmissionError("add", 0, "", fmt.Errorf("read quantity: %w", err)))
	}

	req := dto.AddRequest{Items: []dto.CartItem{{VariantID: variantID, Quantity: qty}}}
	personalized := f.composer.Contribute(&req, qty)

	cart, err := f.cart.Add(ctx, req)
	if err != nil {
		return nil, f.composer.fail(ctx, SourcePurchase, asSubmissionError("add", err))
	}

	f.logger.Info("added to cart",
		"variant", variantID,
		"quantity", qty,
		"personalized", personalized,
		"lines", len(req.Items))

	if f.events != nil {
		f.events.Publish(ctx, events.CartUpdated{CartData: cart})
	}
	if personalized {
		f.composer.store.Discard(ctx)
	}
	return cart, nil
}
