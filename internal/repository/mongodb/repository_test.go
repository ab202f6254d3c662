package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/geotree/internal/domain/models"
)

func TestCarbonTypeCollections_CoverEveryKind(t *testing.T) {
	s := &Store{}
	seen := map[string]bool{}

	for _, kind := range models.CarbonTypeKinds {
		coll, err := s.carbonTypeCollection(kind)
		assert.NoError(t, err, kind)
		assert.False(t, seen[coll], "collection %s reused", coll)
		seen[coll] = true
	}

	_, err := s.carbonTypeCollection("water_type")
	assert.Error(t, err)
}

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid, objectID(oid))
	assert.True(t, objectID("not-an-id").IsZero())
	assert.True(t, objectID(nil).IsZero())
}

func TestNewStore_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := NewStore(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100&connectTimeoutMS=100", "geotree_test", zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "failed to ping mongodb")
}
