package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Destructive operations. None of these run unless the operator passed the
// execute flag; dry runs go through the matching count/list methods instead.

// ReconcileSoldFilter matches products referenced by a completed transaction.
func ReconcileSoldFilter(soldIDs []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": soldIDs}}
}

// ReconcileUnsoldFilter is the complement of ReconcileSoldFilter over the
// same id set, so the two update passes partition the collection.
func ReconcileUnsoldFilter(soldIDs []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$nin": soldIDs}}
}

func (m *MongoDB) CountInvalidPriceProducts() (int64, error) {
	ctx, cancel := m.opCtx()
	defer cancel()
	return m.Products.CountDocuments(ctx, InvalidProductPriceFilter())
}

func (m *MongoDB) DeleteInvalidPriceProducts() (int64, error) {
	ctx, cancel := m.opCtx()
	defer cancel()

	res, err := m.Products.DeleteMany(ctx, InvalidProductPriceFilter())
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// OrphanAddressIDs is the first phase of the orphan purge: resolve the
// offending ids up front so the delete is an exact id-set match rather than
// re-running the join at delete time.
func (m *MongoDB) OrphanAddressIDs() ([]primitive.ObjectID, error) {
	pipeline := append(OrphanAddressesPipeline(), bson.M{"$project": bson.M{"_id": 1}})

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := m.runAggregate(m.Addresses, pipeline, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (m *MongoDB) DeleteAddressesByID(ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ctx, cancel := m.opCtx()
	defer cancel()

	res, err := m.Addresses.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CompletedProductIDs returns the distinct set of products referenced by
// COMPLETED transactions, the authoritative source for the sold flag.
func (m *MongoDB) CompletedProductIDs() ([]primitive.ObjectID, error) {
	ctx, cancel := m.opCtx()
	defer cancel()

	values, err := m.Txns.Distinct(ctx, "product", bson.M{"status": StatusCompleted})
	if err != nil {
		return nil, err
	}
	var ids []primitive.ObjectID
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ReconcileSoldFlags recomputes every product's sold flag from soldIDs.
// Both passes are absolute $set writes, so rerunning with the same id set
// changes nothing.
func (m *MongoDB) ReconcileSoldFlags(soldIDs []primitive.ObjectID) (markedSold, markedUnsold int64, err error) {
	ctx, cancel := m.opCtx()
	defer cancel()

	res, err := m.Products.UpdateMany(ctx, ReconcileSoldFilter(soldIDs),
		bson.M{"$set": bson.M{"sold": true}})
	if err != nil {
		return 0, 0, err
	}
	markedSold = res.ModifiedCount

	res, err = m.Products.UpdateMany(ctx, ReconcileUnsoldFilter(soldIDs),
		bson.M{"$set": bson.M{"sold": false}})
	if err != nil {
		return markedSold, 0, err
	}
	return markedSold, res.ModifiedCount, nil
}

// WipeAll deletes every document in every collection. Irreversible; gated
// twice at the CLI.
func (m *MongoDB) WipeAll() (*CollectionCounts, error) {
	ctx, cancel := m.opCtx()
	defer cancel()

	deleted := &CollectionCounts{Timestamp: time.Now()}

	res, err := m.Users.DeleteMany(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	deleted.Users = res.DeletedCount

	res, err = m.Products.DeleteMany(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	deleted.Products = res.DeletedCount

	res, err = m.Txns.DeleteMany(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	deleted.Transactions = res.DeletedCount

	res, err = m.Addresses.DeleteMany(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	deleted.Addresses = res.DeletedCount

	return deleted, nil
}
