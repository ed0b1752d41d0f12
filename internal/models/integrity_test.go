package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDuplicateUsersPipeline(t *testing.T) {
	// Seeding emails [a@x.com, a@x.com, b@x.com] must yield exactly one group
	// for a@x.com with count 2, so the pipeline groups by the field value and
	// keeps only count > 1 groups, carrying the member ids.
	pipeline := DuplicateUsersPipeline("email")
	require.Len(t, pipeline, 2)

	group, ok := pipeline[0]["$group"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "$email", group["_id"])
	assert.Equal(t, bson.M{"$sum": 1}, group["count"])
	assert.Equal(t, bson.M{"$push": "$_id"}, group["users"])

	assert.Equal(t, bson.M{"count": bson.M{"$gt": 1}}, pipeline[1]["$match"])
}

func TestDuplicateUsersPipelineByUsername(t *testing.T) {
	pipeline := DuplicateUsersPipeline("username")
	group := pipeline[0]["$group"].(bson.M)
	assert.Equal(t, "$username", group["_id"])
}

func TestInvalidProductPriceFilter(t *testing.T) {
	filter := InvalidProductPriceFilter()
	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 4)
	assert.Contains(t, or, bson.M{"price": nil})
	assert.Contains(t, or, bson.M{"price": bson.M{"$exists": false}})
	assert.Contains(t, or, bson.M{"price": bson.M{"$lte": 0}})
	assert.Contains(t, or, bson.M{"price": bson.M{"$type": "string"}})
}

func TestInvalidTransactionPriceFilter(t *testing.T) {
	// Transactions have no string-typed price variant to detect.
	filter := InvalidTransactionPriceFilter()
	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.NotContains(t, or, bson.M{"price": bson.M{"$type": "string"}})
}

func TestOrphanProductsFilter(t *testing.T) {
	filter := OrphanProductsFilter()
	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 4)
	assert.Contains(t, or, bson.M{"seller": nil})
	assert.Contains(t, or, bson.M{"seller._id": nil})
}

func TestOrphanAddressesPipeline(t *testing.T) {
	// An address referencing a deleted user joins to zero users and must be
	// kept; one referencing an existing user joins to one and must not.
	pipeline := OrphanAddressesPipeline()
	require.Len(t, pipeline, 2)

	lookup, ok := pipeline[0]["$lookup"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "users", lookup["from"])
	assert.Equal(t, "user", lookup["localField"])
	assert.Equal(t, "_id", lookup["foreignField"])

	assert.Equal(t, bson.M{"userExists": bson.M{"$size": 0}}, pipeline[1]["$match"])
}

func TestOrphanTransactionsPipeline(t *testing.T) {
	pipeline := OrphanTransactionsPipeline()
	require.Len(t, pipeline, 3)

	productLookup := pipeline[0]["$lookup"].(bson.M)
	assert.Equal(t, "products", productLookup["from"])
	buyerLookup := pipeline[1]["$lookup"].(bson.M)
	assert.Equal(t, "users", buyerLookup["from"])
	assert.Equal(t, "buyer", buyerLookup["localField"])

	// A missing product OR a missing buyer makes the transaction an orphan.
	match := pipeline[2]["$match"].(bson.M)
	or, ok := match["$or"].([]bson.M)
	require.True(t, ok)
	assert.Contains(t, or, bson.M{"productExists": bson.M{"$size": 0}})
	assert.Contains(t, or, bson.M{"buyerExists": bson.M{"$size": 0}})
}

func TestSoldMismatchPipeline(t *testing.T) {
	// Only products already flagged sold are candidates; of those, only the
	// ones with zero transactions are mismatches.
	pipeline := SoldMismatchPipeline()
	require.Len(t, pipeline, 3)

	assert.Equal(t, bson.M{"sold": true}, pipeline[0]["$match"])

	lookup := pipeline[1]["$lookup"].(bson.M)
	assert.Equal(t, "transactions", lookup["from"])
	assert.Equal(t, "product", lookup["foreignField"])

	assert.Equal(t, bson.M{"transactions": bson.M{"$size": 0}}, pipeline[2]["$match"])
}

func TestIntegritySummaryTotal(t *testing.T) {
	s := IntegritySummary{
		DuplicateEmails:      1,
		DuplicateUsernames:   2,
		InvalidProductPrices: 3,
		InvalidTxnPrices:     4,
		OrphanProducts:       5,
		OrphanAddresses:      6,
		OrphanTransactions:   7,
		SoldMismatches:       8,
	}
	assert.Equal(t, 36, s.Total())
	assert.Zero(t, IntegritySummary{}.Total())
}
