package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"modshift/adapters/boxcar"
	"modshift/internal/errors"
	"modshift/internal/pipeline"
)

func TestNewBatchVetter_RejectsZeroWorkers(t *testing.T) {
	svc := NewVetService(pipeline.NewDefault(), boxcar.NewGenerator(), nil, nil)
	_, err := NewBatchVetter(svc, 0)
	require.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

func TestVetAll_IndexAlignedWithMixedOutcomes(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewVetService(pipeline.NewDefault(), boxcar.NewGenerator(), ledger, nil)
	batch, err := NewBatchVetter(svc, 3)
	require.NoError(t, err)

	bad := testRequest(t)
	bad.Ephemeris.PeriodDays = -1
	reqs := []VetRequest{testRequest(t), bad, testRequest(t)}

	items, err := batch.VetAll(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, items, 3)

	for i, item := range items {
		require.Equal(t, i, item.Index)
	}
	require.NoError(t, items[0].Err)
	require.NotNil(t, items[0].Report)
	require.True(t, errors.HasCode(items[1].Err, errors.CodeInputValidation))
	require.Nil(t, items[1].Report)
	require.NoError(t, items[2].Err)

	// Only the two successful runs reached the ledger.
	require.Len(t, ledger.reports, 2)
}

func TestVetAll_EmptyBatch(t *testing.T) {
	svc := NewVetService(pipeline.NewDefault(), boxcar.NewGenerator(), nil, nil)
	batch, err := NewBatchVetter(svc, 2)
	require.NoError(t, err)

	items, err := batch.VetAll(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestVetAll_MoreRequestsThanWorkers(t *testing.T) {
	svc := NewVetService(pipeline.NewDefault(), boxcar.NewGenerator(), nil, nil)
	batch, err := NewBatchVetter(svc, 2)
	require.NoError(t, err)

	reqs := make([]VetRequest, 5)
	for i := range reqs {
		reqs[i] = testRequest(t)
	}

	items, err := batch.VetAll(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, items, 5)
	for i, item := range items {
		require.Equal(t, i, item.Index)
		require.NoError(t, item.Err)
		require.NotNil(t, item.Report)
	}
}
