package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAvailableProductsFilter(t *testing.T) {
	// A missing sold field must count as "not sold".
	want := bson.M{"$or": []bson.M{
		{"sold": false},
		{"sold": bson.M{"$exists": false}},
	}}
	assert.Equal(t, want, AvailableProductsFilter())
}

func TestNoImageFilter(t *testing.T) {
	// null, empty string and absent all mean "no image".
	want := bson.M{"$or": []bson.M{
		{"imagePath": nil},
		{"imagePath": ""},
		{"imagePath": bson.M{"$exists": false}},
	}}
	assert.Equal(t, want, NoImageFilter())
}

func TestProductNameFilter(t *testing.T) {
	filter := ProductNameFilter("espada|sword")
	name, ok := filter["name"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "espada|sword", name["$regex"])
	assert.Equal(t, "i", name["$options"], "search must be case-insensitive")
}

func TestCreatedSinceFilter(t *testing.T) {
	since := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, bson.M{"createdAt": bson.M{"$gte": since}}, CreatedSinceFilter(since))
}

func TestUserHistoryFilter(t *testing.T) {
	id := primitive.NewObjectID()
	filter := UserHistoryFilter(id)

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"buyer": id}, or[0])
	assert.Equal(t, bson.M{"seller": id}, or[1])
}

func TestSellerProductsFilter(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, bson.M{"seller._id": id}, SellerProductsFilter(id))
}

func TestProductListingFilter(t *testing.T) {
	tests := []struct {
		name    string
		listing ProductListing
		want    bson.M
	}{
		{
			name:    "empty listing matches everything",
			listing: ProductListing{},
			want:    bson.M{},
		},
		{
			name:    "single condition is not wrapped in $and",
			listing: ProductListing{Sold: true},
			want:    SoldProductsFilter(),
		},
		{
			name:    "category only",
			listing: ProductListing{Category: CategoryWeapons},
			want:    bson.M{"category": CategoryWeapons},
		},
		{
			name:    "category and availability combine with $and",
			listing: ProductListing{Category: CategoryWeapons, Available: true},
			want: bson.M{"$and": []bson.M{
				{"category": CategoryWeapons},
				AvailableProductsFilter(),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.listing.filter())
		})
	}
}

func TestProductListingSort(t *testing.T) {
	tests := []struct {
		name    string
		listing ProductListing
		want    bson.D
	}{
		{"default is newest first", ProductListing{}, byNewest},
		{"most expensive first with no filter", ProductListing{ByPrice: true}, byPriceDesc},
		{"category listings rank by price", ProductListing{Category: CategoryWeapons}, byPriceDesc},
		{"availability filter keeps newest first", ProductListing{Available: true}, byNewest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.listing.sort())
		})
	}
}

func TestFindOpts(t *testing.T) {
	opts := findOpts(byPriceDesc, 5)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(5), *opts.Limit)
	assert.Equal(t, byPriceDesc, opts.Sort)

	opts = findOpts(byNewest, 0)
	assert.Nil(t, opts.Limit, "limit 0 means unlimited")
}
