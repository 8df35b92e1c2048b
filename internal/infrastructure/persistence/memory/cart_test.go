package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/stitch/internal/application/dto"
	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
)

func TestCart_Add(t *testing.T) {
	ctx := context.Background()
	cart := NewCart("tok")

	snap, err := cart.Add(ctx, dto.AddRequest{Items: []dto.CartItem{
		{VariantID: "9001", Quantity: 2, Properties: map[string]string{"Embroidery Name": `"Ava"`}},
		{VariantID: "40001", Quantity: 2, ParentID: "prod-1"},
	}})

	require.NoError(t, err)
	assert.Equal(t, "tok", snap.Token)
	assert.Equal(t, 4, snap.ItemCount)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "9001:1", snap.Items[0].Key)
	assert.Equal(t, `"Ava"`, snap.Items[0].Properties["Embroidery Name"])
	assert.Equal(t, 2, cart.Quantity("40001:2"))
}

func TestCart_AddRejects(t *testing.T) {
	ctx := context.Background()
	cart := NewCart("tok")

	tests := []struct {
		name string
		req  dto.AddRequest
	}{
		{"no items", dto.AddRequest{}},
		{"zero quantity", dto.AddRequest{Items: []dto.CartItem{{VariantID: "1"}}}},
		{"unknown parent line", dto.AddRequest{Items: []dto.CartItem{{VariantID: "1", Quantity: 1, ParentLineKey: "nope"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cart.Add(ctx, tt.req)

			var subErr *apperrors.CartSubmissionError
			require.ErrorAs(t, err, &subErr)
			assert.Equal(t, 422, subErr.Status)
		})
	}
	assert.Empty(t, cart.Snapshot().Items, "rejected requests add nothing")
}

func TestCart_Change(t *testing.T) {
	ctx := context.Background()
	cart := NewCart("tok")
	cart.Seed(dto.CartLine{Key: "line-1", VariantID: "9001", Quantity: 1})

	snap, err := cart.Change(ctx, dto.ChangeRequest{Line: "line-1", Properties: map[string]string{"Embroidery Name": `"Ava", Gold`}})
	require.NoError(t, err)
	assert.Equal(t, `"Ava", Gold`, snap.Items[0].Properties["Embroidery Name"])

	_, err = cart.Change(ctx, dto.ChangeRequest{Line: "line-2"})
	var subErr *apperrors.CartSubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, 400, subErr.Status)
}

func TestCart_AddUnderSeededLine(t *testing.T) {
	cart := NewCart("tok")
	cart.Seed(dto.CartLine{Key: "line-1", VariantID: "9001", Quantity: 3})

	_, err := cart.Add(context.Background(), dto.AddRequest{Items: []dto.CartItem{
		{VariantID: "40001", Quantity: 3, ParentLineKey: "line-1"},
	}})

	require.NoError(t, err)
	assert.Equal(t, 6, cart.Snapshot().ItemCount)
	assert.Equal(t, 0, cart.Quantity("missing"))
}
