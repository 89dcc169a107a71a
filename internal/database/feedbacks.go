package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/samshad/5410-Serverless/internal/models"
)

// FeedbackStore is the persistence surface the feedback handlers need.
// Kept small so tests can swap in an in-memory implementation.
type FeedbackStore interface {
	List(ctx context.Context) ([]models.Feedback, error)
	Insert(ctx context.Context, f models.Feedback) error
	// Delete removes the record with the given ObjectID hex. It reports
	// false without error when no record matched.
	Delete(ctx context.Context, feedbackID string) (bool, error)
	CountByPolarity(ctx context.Context, polarity string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// MongoFeedbackStore implements FeedbackStore on the shared Mongo client.
type MongoFeedbackStore struct{}

func NewMongoFeedbackStore() *MongoFeedbackStore {
	return &MongoFeedbackStore{}
}

func (s *MongoFeedbackStore) List(ctx context.Context) ([]models.Feedback, error) {
	col := GetCollection(FeedbacksCollection)

	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (s *MongoFeedbackStore) Insert(ctx context.Context, f models.Feedback) error {
	col := GetCollection(FeedbacksCollection)
	_, err := col.InsertOne(ctx, f)
	return err
}

func (s *MongoFeedbackStore) Delete(ctx context.Context, feedbackID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(feedbackID)
	if err != nil {
		return false, nil
	}

	col := GetCollection(FeedbacksCollection)
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoFeedbackStore) CountByPolarity(ctx context.Context, polarity string) (int64, error) {
	col := GetCollection(FeedbacksCollection)
	return col.CountDocuments(ctx, bson.M{"polarity": polarity})
}

func (s *MongoFeedbackStore) Count(ctx context.Context) (int64, error) {
	col := GetCollection(FeedbacksCollection)
	return col.CountDocuments(ctx, bson.M{})
}
