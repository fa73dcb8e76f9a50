package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"kanban/internal/domain"
)

// mongoCollection is the subset of *mongo.Collection used here.
type mongoCollection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// MongoCollection is a Collection over a MongoDB collection.
type MongoCollection struct {
	coll mongoCollection
}

func NewMongoCollection(coll *mongo.Collection) *MongoCollection {
	return &MongoCollection{coll: coll}
}

func byID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func (c *MongoCollection) Insert(ctx context.Context, doc any) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, storageErr("insert", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, storageErr("insert", fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}
	return id, nil
}

func (c *MongoCollection) FindAll(ctx context.Context) ([]bson.Raw, error) {
	cur, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, storageErr("find", err)
	}
	defer cur.Close(ctx)
	docs := []bson.Raw{}
	for cur.Next(ctx) {
		// Current is reused by the cursor between iterations.
		docs = append(docs, append(bson.Raw(nil), cur.Current...))
	}
	if err := cur.Err(); err != nil {
		return nil, storageErr("find", err)
	}
	return docs, nil
}

func (c *MongoCollection) FindByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error) {
	raw, err := c.coll.FindOne(ctx, byID(id)).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find one", err)
	}
	return raw, nil
}

func (c *MongoCollection) Replace(ctx context.Context, id primitive.ObjectID, doc any) (ReplaceResult, error) {
	res, err := c.coll.ReplaceOne(ctx, byID(id), doc)
	if err != nil {
		return ReplaceResult{}, storageErr("replace", err)
	}
	if res.MatchedCount == 0 {
		return ReplaceResult{}, domain.ErrNotFound
	}
	return ReplaceResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (c *MongoCollection) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return storageErr("delete", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MongoOptions configures OpenMongo.
type MongoOptions struct {
	URI                string
	Database           string
	TasksCollection    string
	ProjectsCollection string
	ConnectTimeout     time.Duration
}

// OpenMongo connects once, verifies the server answers, and returns a Backend
// sharing that client across both collections.
func OpenMongo(ctx context.Context, opts MongoOptions) (*Backend, error) {
	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(opts.ConnectTimeout)
	}
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db := client.Database(opts.Database)
	return &Backend{
		Driver:   DriverMongo,
		Tasks:    NewMongoCollection(db.Collection(opts.TasksCollection)),
		Projects: NewMongoCollection(db.Collection(opts.ProjectsCollection)),
		ping: func(ctx context.Context) error {
			return client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		},
		close: client.Disconnect,
	}, nil
}
