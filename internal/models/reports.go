package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Filter constructors are kept separate from the methods that run them so the
// query shapes can be asserted in tests without a live server.

// AvailableProductsFilter matches products still up for sale. A missing sold
// field means the product was listed before the flag existed and counts as
// not sold.
func AvailableProductsFilter() bson.M {
	return bson.M{"$or": []bson.M{
		{"sold": false},
		{"sold": bson.M{"$exists": false}},
	}}
}

func SoldProductsFilter() bson.M {
	return bson.M{"sold": true}
}

// NoImageFilter treats null, empty string and absent imagePath as "no image".
func NoImageFilter() bson.M {
	return bson.M{"$or": []bson.M{
		{"imagePath": nil},
		{"imagePath": ""},
		{"imagePath": bson.M{"$exists": false}},
	}}
}

func ProductNameFilter(expr string) bson.M {
	return bson.M{"name": bson.M{"$regex": expr, "$options": "i"}}
}

func CreatedSinceFilter(since time.Time) bson.M {
	return bson.M{"createdAt": bson.M{"$gte": since}}
}

func MinPriceFilter(min float64) bson.M {
	return bson.M{"price": bson.M{"$gte": min}}
}

func NoDeliveryAddressFilter() bson.M {
	return bson.M{"deliveryAddress": bson.M{"$exists": false}}
}

// UserHistoryFilter matches transactions where the user appears on either
// side of the trade.
func UserHistoryFilter(userID primitive.ObjectID) bson.M {
	return bson.M{"$or": []bson.M{
		{"buyer": userID},
		{"seller": userID},
	}}
}

func SellerProductsFilter(userID primitive.ObjectID) bson.M {
	return bson.M{"seller._id": userID}
}

func findOpts(sort bson.D, limit int64) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return opts
}

var (
	byNewest    = bson.D{{Key: "createdAt", Value: -1}}
	byPriceDesc = bson.D{{Key: "price", Value: -1}}
)

func (m *MongoDB) findUsers(filter bson.M, sort bson.D, limit int64) ([]*User, error) {
	ctx, cancel := m.opCtx()
	defer cancel()

	cur, err := m.Users.Find(ctx, filter, findOpts(sort, limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []*User
	err = cur.All(ctx, &users)
	return users, err
}

func (m *MongoDB) findProducts(filter bson.M, sort bson.D, limit int64) ([]*Product, error) {
	ctx, cancel := m.opCtx()
	defer cancel()

	cur, err := m.Products.Find(ctx, filter, findOpts(sort, limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var products []*Product
	err = cur.All(ctx, &products)
	return products, err
}

func (m *MongoDB) findTransactions(filter bson.M, sort bson.D, limit int64) ([]*Transaction, error) {
	ctx, cancel := m.opCtx()
	defer cancel()

	cur, err := m.Txns.Find(ctx, filter, findOpts(sort, limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var txns []*Transaction
	err = cur.All(ctx, &txns)
	return txns, err
}

// ListUsers returns users newest first; userType "" means all types.
func (m *MongoDB) ListUsers(userType UserType, limit int64) ([]*User, error) {
	filter := bson.M{}
	if userType != "" {
		filter["userType"] = userType
	}
	return m.findUsers(filter, byNewest, limit)
}

// ProductListing narrows ListProducts. Zero value lists everything.
type ProductListing struct {
	Category  ProductCategory
	Available bool
	Sold      bool
	NoImage   bool
	ByPrice   bool
}

func (l ProductListing) filter() bson.M {
	conds := []bson.M{}
	if l.Category != "" {
		conds = append(conds, bson.M{"category": l.Category})
	}
	if l.Available {
		conds = append(conds, AvailableProductsFilter())
	}
	if l.Sold {
		conds = append(conds, SoldProductsFilter())
	}
	if l.NoImage {
		conds = append(conds, NoImageFilter())
	}
	switch len(conds) {
	case 0:
		return bson.M{}
	case 1:
		return conds[0]
	default:
		return bson.M{"$and": conds}
	}
}

func (l ProductListing) sort() bson.D {
	if l.ByPrice || l.Category != "" {
		return byPriceDesc
	}
	return byNewest
}

// ListProducts sorts by price descending when a category is given or ByPrice
// is set, otherwise newest first. ByPrice with no other condition is the
// "most expensive products" ranking.
func (m *MongoDB) ListProducts(l ProductListing, limit int64) ([]*Product, error) {
	return m.findProducts(l.filter(), l.sort(), limit)
}

func (m *MongoDB) SearchProductsByName(expr string, limit int64) ([]*Product, error) {
	return m.findProducts(ProductNameFilter(expr), byNewest, limit)
}

// ListTransactions returns transactions newest first; status "" means all.
func (m *MongoDB) ListTransactions(status TransactionStatus, limit int64) ([]*Transaction, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return m.findTransactions(filter, byNewest, limit)
}

func (m *MongoDB) TransactionsAbovePrice(min float64, limit int64) ([]*Transaction, error) {
	return m.findTransactions(MinPriceFilter(min), byPriceDesc, limit)
}

func (m *MongoDB) TransactionsSince(since time.Time, limit int64) ([]*Transaction, error) {
	return m.findTransactions(CreatedSinceFilter(since), byNewest, limit)
}

func (m *MongoDB) TransactionsWithoutAddress(limit int64) ([]*Transaction, error) {
	return m.findTransactions(NoDeliveryAddressFilter(), byNewest, limit)
}

func (m *MongoDB) UserTransactions(userID primitive.ObjectID) ([]*Transaction, error) {
	return m.findTransactions(UserHistoryFilter(userID), byNewest, 0)
}

func (m *MongoDB) UserProducts(userID primitive.ObjectID) ([]*Product, error) {
	return m.findProducts(SellerProductsFilter(userID), byNewest, 0)
}

func (m *MongoDB) UserAddresses(userID primitive.ObjectID) ([]*DeliveryAddress, error) {
	ctx, cancel := m.opCtx()
	defer cancel()

	cur, err := m.Addresses.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var addrs []*DeliveryAddress
	err = cur.All(ctx, &addrs)
	return addrs, err
}
