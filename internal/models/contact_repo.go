package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateMessage(ctx context.Context, msg *ContactMessage) (*ContactMessage, error) {
	col, err := mdb.GetCollection(ctx, ContactDbName, ContactColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if err := msg.BeforeCreate(); err != nil {
		return nil, err
	}

	if _, err := col.InsertOne(ctx, msg); err != nil {
		return nil, fmt.Errorf("error inserting contact message: %v", err)
	}

	return msg, nil
}

func (mdb *MongodbRepo) ListMessages(ctx context.Context, unreadOnly bool) ([]*ContactMessage, error) {
	col, err := mdb.GetCollection(ctx, ContactDbName, ContactColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{}
	if unreadOnly {
		filter["read"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding contact messages: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []*ContactMessage
	for cursor.Next(ctx) {
		var msg ContactMessage
		if err := cursor.Decode(&msg); err != nil {
			return nil, fmt.Errorf("error decoding contact message: %v", err)
		}
		messages = append(messages, &msg)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return messages, nil
}

func (mdb *MongodbRepo) MarkMessageRead(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, ContactDbName, ContactColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true, "read_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("error marking contact message read: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mark message read: %w", ErrNotFound)
	}

	return nil
}

func (mdb *MongodbRepo) DeleteMessage(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, ContactDbName, ContactColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting contact message: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete message: %w", ErrNotFound)
	}

	return nil
}
