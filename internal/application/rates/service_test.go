package rates_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/rates"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/memory"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

func TestSeed_SoloSiVacio(t *testing.T) {
	ctx := context.Background()
	svc := rates.NewService(memory.New().Rates(), logger.Nop())

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(rates.DefaultServiceTiers)+len(rates.DefaultWeightHandlings), n)

	n, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	cfg, err := svc.GetShippingConfig(ctx)
	require.NoError(t, err)
	assert.Len(t, cfg.ServiceTiers, len(rates.DefaultServiceTiers))
	assert.Len(t, cfg.WeightHandlings, len(rates.DefaultWeightHandlings))
}

func TestCreate_Validacion(t *testing.T) {
	ctx := context.Background()
	svc := rates.NewService(memory.New().Rates(), logger.Nop())

	_, err := svc.CreateServiceTier(ctx, "", "", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.CreateServiceTier(ctx, "Express", "", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = svc.CreateWeightHandling(ctx, "Normal", "", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	w, err := svc.CreateWeightHandling(ctx, "Normal", "", decimal.NewFromInt(2500))
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
}
