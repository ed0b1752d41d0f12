package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Integrity checks detect invariant violations; they never repair anything.
// Repairs live in maintenance.go behind an explicit execute gate.

// DuplicateUsersPipeline groups users on the given field and keeps groups
// holding more than one document, collecting the offending ids.
func DuplicateUsersPipeline(field string) []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
			"users": bson.M{"$push": "$_id"},
		}},
		{"$match": bson.M{"count": bson.M{"$gt": 1}}},
	}
}

// InvalidProductPriceFilter matches products whose price is missing,
// non-positive, or stored as a string.
func InvalidProductPriceFilter() bson.M {
	return bson.M{"$or": []bson.M{
		{"price": nil},
		{"price": bson.M{"$exists": false}},
		{"price": bson.M{"$lte": 0}},
		{"price": bson.M{"$type": "string"}},
	}}
}

func InvalidTransactionPriceFilter() bson.M {
	return bson.M{"$or": []bson.M{
		{"price": nil},
		{"price": bson.M{"$exists": false}},
		{"price": bson.M{"$lte": 0}},
	}}
}

// OrphanProductsFilter matches products with no usable seller reference,
// whether the embedded document or just its id is missing.
func OrphanProductsFilter() bson.M {
	return bson.M{"$or": []bson.M{
		{"seller": nil},
		{"seller": bson.M{"$exists": false}},
		{"seller._id": nil},
		{"seller._id": bson.M{"$exists": false}},
	}}
}

func OrphanAddressesPipeline() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "user",
			"foreignField": "_id",
			"as":           "userExists",
		}},
		{"$match": bson.M{"userExists": bson.M{"$size": 0}}},
	}
}

func OrphanTransactionsPipeline() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "products",
			"localField":   "product",
			"foreignField": "_id",
			"as":           "productExists",
		}},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "buyer",
			"foreignField": "_id",
			"as":           "buyerExists",
		}},
		{"$match": bson.M{"$or": []bson.M{
			{"productExists": bson.M{"$size": 0}},
			{"buyerExists": bson.M{"$size": 0}},
		}}},
	}
}

// SoldMismatchPipeline finds products flagged sold with no transaction at all
// referencing them. The flag is derived data; a flagged product with zero
// transactions is provably stale.
func SoldMismatchPipeline() []bson.M {
	return []bson.M{
		{"$match": bson.M{"sold": true}},
		{"$lookup": bson.M{
			"from":         "transactions",
			"localField":   "_id",
			"foreignField": "product",
			"as":           "transactions",
		}},
		{"$match": bson.M{"transactions": bson.M{"$size": 0}}},
	}
}

type DuplicateGroup struct {
	Value string               `bson:"_id"`
	Count int64                `bson:"count"`
	Users []primitive.ObjectID `bson:"users"`
}

func (m *MongoDB) DuplicateUsersByEmail() ([]DuplicateGroup, error) {
	var out []DuplicateGroup
	err := m.runAggregate(m.Users, DuplicateUsersPipeline("email"), &out)
	return out, err
}

func (m *MongoDB) DuplicateUsersByUsername() ([]DuplicateGroup, error) {
	var out []DuplicateGroup
	err := m.runAggregate(m.Users, DuplicateUsersPipeline("username"), &out)
	return out, err
}

func (m *MongoDB) InvalidPriceProducts() ([]*Product, error) {
	return m.findProducts(InvalidProductPriceFilter(), byNewest, 0)
}

func (m *MongoDB) InvalidPriceTransactions() ([]*Transaction, error) {
	return m.findTransactions(InvalidTransactionPriceFilter(), byNewest, 0)
}

func (m *MongoDB) OrphanProducts() ([]*Product, error) {
	return m.findProducts(OrphanProductsFilter(), byNewest, 0)
}

func (m *MongoDB) OrphanAddresses() ([]*DeliveryAddress, error) {
	var out []*DeliveryAddress
	err := m.runAggregate(m.Addresses, OrphanAddressesPipeline(), &out)
	return out, err
}

func (m *MongoDB) OrphanTransactions() ([]*Transaction, error) {
	var out []*Transaction
	err := m.runAggregate(m.Txns, OrphanTransactionsPipeline(), &out)
	return out, err
}

func (m *MongoDB) SoldMismatchProducts() ([]*Product, error) {
	var out []*Product
	err := m.runAggregate(m.Products, SoldMismatchPipeline(), &out)
	return out, err
}

// IntegritySummary is the violation count per check, for `check all`.
type IntegritySummary struct {
	DuplicateEmails      int
	DuplicateUsernames   int
	InvalidProductPrices int
	InvalidTxnPrices     int
	OrphanProducts       int
	OrphanAddresses      int
	OrphanTransactions   int
	SoldMismatches       int
}

func (s IntegritySummary) Total() int {
	return s.DuplicateEmails + s.DuplicateUsernames +
		s.InvalidProductPrices + s.InvalidTxnPrices +
		s.OrphanProducts + s.OrphanAddresses +
		s.OrphanTransactions + s.SoldMismatches
}

func (m *MongoDB) IntegrityCheck() (*IntegritySummary, error) {
	var s IntegritySummary

	emails, err := m.DuplicateUsersByEmail()
	if err != nil {
		return nil, err
	}
	s.DuplicateEmails = len(emails)

	usernames, err := m.DuplicateUsersByUsername()
	if err != nil {
		return nil, err
	}
	s.DuplicateUsernames = len(usernames)

	badProducts, err := m.InvalidPriceProducts()
	if err != nil {
		return nil, err
	}
	s.InvalidProductPrices = len(badProducts)

	badTxns, err := m.InvalidPriceTransactions()
	if err != nil {
		return nil, err
	}
	s.InvalidTxnPrices = len(badTxns)

	orphanProducts, err := m.OrphanProducts()
	if err != nil {
		return nil, err
	}
	s.OrphanProducts = len(orphanProducts)

	orphanAddrs, err := m.OrphanAddresses()
	if err != nil {
		return nil, err
	}
	s.OrphanAddresses = len(orphanAddrs)

	orphanTxns, err := m.OrphanTransactions()
	if err != nil {
		return nil, err
	}
	s.OrphanTransactions = len(orphanTxns)

	mismatches, err := m.SoldMismatchProducts()
	if err != nil {
		return nil, err
	}
	s.SoldMismatches = len(mismatches)

	return &s, nil
}
