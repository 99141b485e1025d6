package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     "5432",
		User:     "shop",
		Password: "secret",
		DBName:   "storefront",
		SSLMode:  "disable",
		TimeZone: "Asia/Dubai",
	}
	assert.Equal(t,
		"host=db user=shop password=secret dbname=storefront port=5432 sslmode=disable TimeZone=Asia/Dubai",
		cfg.DSN())
}

func TestSeedData_Consistent(t *testing.T) {
	emirates := map[uint]bool{}
	for _, e := range seedEmirates {
		assert.False(t, emirates[e.ID], "duplicate emirate %d", e.ID)
		emirates[e.ID] = true
		assert.NotEmpty(t, e.NameAr)
	}
	assert.Len(t, emirates, 7)

	regionIDs := map[uint]bool{}
	for _, r := range seedRegions {
		assert.True(t, emirates[r.EmirateID], "region %s points at unknown emirate", r.NameEn)
		assert.False(t, regionIDs[r.ID], "duplicate region %d", r.ID)
		regionIDs[r.ID] = true
	}

	ids, codes := map[uint]bool{}, map[string]bool{}
	for _, s := range seedSizes {
		assert.False(t, ids[s.ID], "duplicate size id %d", s.ID)
		assert.False(t, codes[s.Code], "duplicate size code %s", s.Code)
		ids[s.ID], codes[s.Code] = true, true
	}
	for _, code := range []string{"S", "M", "L", "XL", "2xL", "3XL", "4XL", "12XL"} {
		assert.True(t, codes[code], "missing size %s", code)
	}
}

func TestSeedAdmin_SkipsWithoutCredentials(t *testing.T) {
	assert.NoError(t, SeedAdmin(context.Background(), nil, "", "", zap.NewNop()))
	assert.NoError(t, SeedAdmin(context.Background(), nil, "admin@example.com", "", zap.NewNop()))
}

func TestClose_NilDB(t *testing.T) {
	assert.NoError(t, Close(nil))
}
