package repository

import (
	"context"
	"errors"

	"batepapo-uol/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	participantsCollection = "participants"
	messagesCollection     = "messages"
)

type MongoParticipantRepository struct {
	col *mongo.Collection
}

// NewMongoParticipantRepository creates the repository and ensures the
// unique index on name, which is what keeps concurrent registrations of
// the same name from both succeeding.
func NewMongoParticipantRepository(ctx context.Context, db *mongo.Database) (*MongoParticipantRepository, error) {
	col := db.Collection(participantsCollection)

	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &MongoParticipantRepository{col: col}, nil
}

func (r *MongoParticipantRepository) Insert(ctx context.Context, participant *domain.Participant) error {
	_, err := r.col.InsertOne(ctx, participant)
	if mongo.IsDuplicateKeyError(err) {
		return ErrNameTaken
	}
	return err
}

func (r *MongoParticipantRepository) FindByName(ctx context.Context, name string) (*domain.Participant, error) {
	var participant domain.Participant
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&participant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *MongoParticipantRepository) FindAll(ctx context.Context) ([]*domain.Participant, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	participants := make([]*domain.Participant, 0)
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *MongoParticipantRepository) UpdateLastStatus(ctx context.Context, name string, lastStatus int64) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"lastStatus": lastStatus}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

// DeleteStaleBefore pops stale participants one at a time with
// FindOneAndDelete, so every returned document was removed by this call
// and no document is removed without being returned. On error the
// participants evicted so far are still returned.
func (r *MongoParticipantRepository) DeleteStaleBefore(ctx context.Context, threshold int64) ([]*domain.Participant, error) {
	filter := bson.M{"lastStatus": bson.M{"$lt": threshold}}

	evicted := make([]*domain.Participant, 0)
	for {
		var participant domain.Participant
		err := r.col.FindOneAndDelete(ctx, filter).Decode(&participant)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return evicted, nil
		}
		if err != nil {
			return evicted, err
		}
		evicted = append(evicted, &participant)
	}
}

type MongoMessageRepository struct {
	col *mongo.Collection
}

func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{col: db.Collection(messagesCollection)}
}

func (r *MongoMessageRepository) Insert(ctx context.Context, message *domain.Message) error {
	result, err := r.col.InsertOne(ctx, message)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		message.ID = id
	}
	return nil
}

func (r *MongoMessageRepository) FindVisibleTo(ctx context.Context, viewer string, limit int64) ([]*domain.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"to": domain.BroadcastTarget},
		{"to": viewer},
		{"from": viewer},
	}}

	// The tail of the visible list is fetched by sorting newest-first
	// with a limit, then restoring insertion order.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts = options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(limit)
	}

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := make([]*domain.Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	if limit > 0 {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}
	return messages, nil
}

func (r *MongoMessageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Message, error) {
	var message domain.Message
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MongoMessageRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *MongoMessageRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, message *domain.Message) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"from": message.From,
			"to":   message.To,
			"text": message.Text,
			"type": message.Type,
			"time": message.Time,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}
