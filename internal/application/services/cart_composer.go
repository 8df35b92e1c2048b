package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/reglet-dev/stitch/internal/application/dto"
	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/events"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// Sources reported on cart:error notifications.
const (
	SourcePurchase = "purchase"
	SourceRetrofit = "retrofit"
)

// CartComposer turns a completed configuration into cart operations.
//
// Pre-purchase: the plan is folded into the add request the product form is
// already sending (see Contribute and PurchaseFlow).
// Post-purchase: the existing line's properties are rewritten and the addon
// lines appended, concurrently, and both must succeed (see Retrofit).
type CartComposer struct {
	store    *ConfigurationStore
	cart     ports.CartService
	quantity ports.QuantitySource
	events   ports.EventPublisher
	submit   ports.SubmitControl
	logger   *slog.Logger
	guard    submissionGuard
}

// NewCartComposer creates a composer bound to a store.
func NewCartComposer(
	store *ConfigurationStore,
	cart ports.CartService,
	quantity ports.QuantitySource,
	publisher ports.EventPublisher,
	submit ports.SubmitControl,
	logger *slog.Logger,
) *CartComposer {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartComposer{
		store:    store,
		cart:     cart,
		quantity: quantity,
		events:   publisher,
		submit:   submit,
		logger:   logger,
		guard:    submissionGuard{control: submit},
	}
}

// InFlight reports whether a retrofit is running.
func (c *CartComposer) InFlight() bool {
	return c.guard.InFlight()
}

// Contribute appends the addon lines to an outbound add request whose first
// item is the main product, and attaches the plan properties to that item.
// It returns false when there is nothing to contribute.
func (c *CartComposer) Contribute(req *dto.AddRequest, quantity int) bool {
	plan := c.store.Plan()
	if plan.IsEmpty() || len(req.Items) == 0 {
		return false
	}
	plan = plan.WithQuantity(quantity)

	main := &req.Items[0]
	if main.Properties == nil {
		main.Properties = make(map[string]string, len(plan.Properties))
	}
	for k, v := range plan.Properties {
		main.Properties[k] = v
	}
	req.Items = append(req.Items, addonItems(plan)...)
	return true
}

// Retrofit applies the configuration onto the existing cart line.
// The change and add operations run concurrently and are joined; if either
// fails the submission fails and the plan is kept. On success cart:updated is
// published and the configuration discarded, so a second submit cannot
// double-apply it.
func (c *CartComposer) Retrofit(ctx context.Context) (*dto.CartSnapshot, error) {
	inst := c.store.Instance()
	if inst.Mode != values.ModePostPurchase {
		return nil, fmt.Errorf("retrofit requires post-purchase mode, got %s", inst.Mode)
	}

	release, err := c.guard.begin()
	if err != nil {
		return nil, err
	}
	defer release()

	derived := c.store.Derived()
	if !derived.Validity.Valid {
		return nil, &apperrors.ValidationError{Reason: derived.Validity.Reason, Group: derived.Validity.Group}
	}
	if derived.Plan.IsEmpty() {
		return nil, apperrors.ErrNothingToSubmit
	}

	qty, err := c.quantity.Quantity(ctx)
	if err != nil {
		return nil, c.fail(ctx, SourceRetrofit, apperrors.NewCartSubmissionError(SourceRetrofit, 0, "", fmt.Errorf("read quantity: %w", err)))
	}
	plan := derived.Plan.WithQuantity(qty)

	var changed, added *dto.CartSnapshot
	var g errgroup.Group
	g.Go(func() error {
		resp, err := c.cart.Change(ctx, dto.ChangeRequest{
			Line:       inst.Subject.Line.String(),
			Properties: plan.Properties,
		})
		if err != nil {
			return err
		}
		changed = resp
		return nil
	})
	if len(plan.Lines) > 0 {
		g.Go(func() error {
			resp, err := c.cart.Add(ctx, dto.AddRequest{Items: addonItems(plan)})
			if err != nil {
				return err
			}
			added = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, c.fail(ctx, SourceRetrofit, asSubmissionError(SourceRetrofit, err))
	}

	cart := added
	if cart == nil {
		cart = changed
	}
	c.logger.Info("personalization applied to cart line",
		"line", inst.Subject.Line.String(),
		"addon_lines", len(plan.Lines),
		"quantity", qty)

	if c.events != nil {
		c.events.Publish(ctx, events.CartUpdated{CartData: cart})
	}
	c.store.Discard(ctx)
	return cart, nil
}

// fail reports a failed submission to the user and to listeners.
func (c *CartComposer) fail(ctx context.Context, source string, err *apperrors.CartSubmissionError) error {
	c.logger.Error("cart submission failed", "source", source, "error", err)
	if c.submit != nil {
		c.submit.ShowError(err.UserMessage())
	}
	if c.events != nil {
		c.events.Publish(ctx, events.CartError{Source: source, Error: err})
	}
	return err
}

func asSubmissionError(op string, err error) *apperrors.CartSubmissionError {
	var subErr *apperrors.CartSubmissionError
	if errors.As(err, &subErr) {
		return apperrors.NewCartSubmissionError(op, subErr.Status, subErr.Description, err)
	}
	return apperrors.NewCartSubmissionError(op, 0, "", err)
}

func addonItems(plan entities.AddonPlan) []dto.CartItem {
	items := make([]dto.CartItem, 0, len(plan.Lines))
	for _, l := range plan.Lines {
		item := dto.CartItem{
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		}
		if l.Parent.IsLine() {
			item.ParentLineKey = l.Parent.Line.String()
		} else {
			item.ParentID = l.Parent.Product.String()
		}
		items = append(items, item)
	}
	return items
}
