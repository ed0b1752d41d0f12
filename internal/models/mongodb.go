package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoDB struct {
	Users     *mongo.Collection
	Products  *mongo.Collection
	Txns      *mongo.Collection
	Addresses *mongo.Collection

	client  *mongo.Client
	timeout time.Duration
}

// OpenMongoDB connects, pings, and wires up the four collection handles.
// An unreachable server is fatal for the whole session, so the caller is
// expected to exit on error.
func OpenMongoDB(uri, database string, timeout time.Duration) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(database)
	return &MongoDB{
		Users:     db.Collection("users"),
		Products:  db.Collection("products"),
		Txns:      db.Collection("transactions"),
		Addresses: db.Collection("deliveryAddresses"),
		client:    client,
		timeout:   timeout,
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := m.opCtx()
	defer cancel()
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m *MongoDB) runAggregate(coll *mongo.Collection, pipeline []bson.M, out interface{}) error {
	ctx, cancel := m.opCtx()
	defer cancel()

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}

type CollectionCounts struct {
	Users        int64
	Products     int64
	Transactions int64
	Addresses    int64
	Timestamp    time.Time
}

func (m *MongoDB) Counts() (*CollectionCounts, error) {
	ctx, cancel := m.opCtx()
	defer cancel()

	c := &CollectionCounts{Timestamp: time.Now()}
	var err error
	if c.Users, err = m.Users.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if c.Products, err = m.Products.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if c.Transactions, err = m.Txns.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if c.Addresses, err = m.Addresses.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	return c, nil
}

// Samples returns one raw document per collection, keyed by collection name.
// Empty collections are simply absent from the map.
func (m *MongoDB) Samples() (map[string]bson.M, error) {
	ctx, cancel := m.opCtx()
	defer cancel()

	samples := make(map[string]bson.M)
	for name, coll := range map[string]*mongo.Collection{
		"users":             m.Users,
		"products":          m.Products,
		"transactions":      m.Txns,
		"deliveryAddresses": m.Addresses,
	} {
		var doc bson.M
		err := coll.FindOne(ctx, bson.M{}).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			return nil, err
		}
		samples[name] = doc
	}
	return samples, nil
}
