package services

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/reglet-dev/stitch/internal/application/dto"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/events"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

func testCatalog() *entities.Catalog {
	return entities.MustNewCatalog(entities.CatalogMetadata{Name: "embroidery", Version: "1.0.0"}, []entities.OptionGroup{
		{Name: "color", Values: []entities.OptionValue{
			{Value: "Navy", IsColorKind: true},
			{Value: "Gold", PriceDelta: 150, RemoteVariantID: "40001", IsColorKind: true},
		}},
		{Name: "font", Values: []entities.OptionValue{
			{Value: "Block"},
			{Value: "Script", PriceDelta: 200, RemoteVariantID: "40010"},
		}},
	})
}

func preInstance() entities.Instance {
	return entities.Instance{
		Subject:   entities.Subject{ID: values.MustNewSubjectID("prod-1")},
		Mode:      values.ModePrePurchase,
		BasePrice: 500,
	}
}

func postInstance() entities.Instance {
	inst := preInstance()
	inst.Mode = values.ModePostPurchase
	inst.Subject.Line = values.MustNewLineReference("line-1")
	return inst
}

// fakeStorage is an in-memory SessionStorage that can be made to fail.
type fakeStorage struct {
	items   map[string]string
	failErr error
	mu      sync.Mutex
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{items: make(map[string]string)}
}

func (s *fakeStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return "", false, s.failErr
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *fakeStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.items[key] = value
	return nil
}

func (s *fakeStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

var errQuota = errors.New("quota exceeded")

// recorder captures published events.
type recorder struct {
	events []events.Event
	mu     sync.Mutex
}

func (r *recorder) Publish(_ context.Context, ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) topics() []events.Topic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Topic, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Topic())
	}
	return out
}

func (r *recorder) last() events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// fakeControl records the submit control state.
type fakeControl struct {
	lastError string
	loadings  []bool
	enabled   bool
	mu        sync.Mutex
}

func (c *fakeControl) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

func (c *fakeControl) SetLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadings = append(c.loadings, loading)
}

func (c *fakeControl) ShowError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = message
}

func (c *fakeControl) loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.loadings) > 0 && c.loadings[len(c.loadings)-1]
}

// fakePreview records rendered previews.
type fakePreview struct {
	renders []entities.Preview
}

func (p *fakePreview) RenderPreview(preview entities.Preview) {
	p.renders = append(p.renders, preview)
}

// fakeFields is a minimal FieldBindings and QuantitySource.
type fakeFields struct {
	selections map[string]string
	text       string
	quantity   int
	enabled    bool
}

func newFakeFields() *fakeFields {
	return &fakeFields{selections: make(map[string]string), quantity: 1}
}

func (f *fakeFields) ReadText() string   { return f.text }
func (f *fakeFields) ReadEnabled() bool  { return f.enabled }
func (f *fakeFields) WriteText(t string) { f.text = t }
func (f *fakeFields) WriteEnabled(e bool) {
	f.enabled = e
}

func (f *fakeFields) ReadSelection(group string) (string, bool) {
	v, ok := f.selections[group]
	return v, ok
}

func (f *fakeFields) WriteSelection(group, value string) {
	f.selections[group] = value
}

func (f *fakeFields) Quantity(_ context.Context) (int, error) {
	if f.quantity <= 0 {
		return 0, errors.New("invalid quantity")
	}
	return f.quantity, nil
}

// mockCart is a testify mock of the cart service.
type mockCart struct {
	mock.Mock
}

func (m *mockCart) Add(ctx context.Context, req dto.AddRequest) (*dto.CartSnapshot, error) {
	args := m.Called(ctx, req)
	snap, _ := args.Get(0).(*dto.CartSnapshot)
	return snap, args.Error(1)
}

func (m *mockCart) Change(ctx context.Context, req dto.ChangeRequest) (*dto.CartSnapshot, error) {
	args := m.Called(ctx, req)
	snap, _ := args.Get(0).(*dto.CartSnapshot)
	return snap, args.Error(1)
}

// testRig wires a store with every collaborator faked.
type testRig struct {
	store    *ConfigurationStore
	storage  *fakeStorage
	events   *recorder
	control  *fakeControl
	preview  *fakePreview
	fields   *fakeFields
	cart     *mockCart
	composer *CartComposer
	flow     *PurchaseFlow
}

func newRig(inst entities.Instance, storage *fakeStorage) *testRig {
	if storage == nil {
		storage = newFakeStorage()
	}
	r := &testRig{
		storage: storage,
		events:  &recorder{},
		control: &fakeControl{},
		preview: &fakePreview{},
		fields:  newFakeFields(),
		cart:    &mockCart{},
	}
	store, err := NewConfigurationStore(StoreOptions{
		Catalog:   testCatalog(),
		Snapshots: NewSnapshotStore(storage, nil, nil),
		Events:    r.events,
		Preview:   r.preview,
		Submit:    r.control,
		Instance:  inst,
	})
	if err != nil {
		panic(err)
	}
	r.store = store
	r.composer = NewCartComposer(store, r.cart, r.fields, r.events, r.control, nil)
	r.flow = NewPurchaseFlow(r.composer, r.cart, r.fields, r.events, r.control, nil)
	return r
}

// personalize drives the store to text "Ava", Gold, Script, enabled.
func (r *testRig) personalize(ctx context.Context) {
	mustNoErr(r.store.SetText(ctx, "Ava"))
	mustNoErr(r.store.SelectOption(ctx, "color", "Gold"))
	mustNoErr(r.store.SelectOption(ctx, "font", "Script"))
	mustNoErr(r.store.SetEnabled(ctx, true))
}

func mustNoErr(err error) {
	if err != nil {
		panic(err)
	}
}
