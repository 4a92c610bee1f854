package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

const chatCollection = "chat_history"

type ChatRepository struct {
	coll *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{coll: db.Collection(chatCollection)}
}

type chatDoc struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty"`
	UserID            primitive.ObjectID   `bson:"user_id"`
	UserMessage       string               `bson:"user_message"`
	AssistantResponse string               `bson:"assistant_response"`
	Tokens            domain.TokenEstimate `bson:"tokens"`
	CreatedAt         time.Time            `bson:"created_at"`

	// Set by the admin listing lookup only.
	User *userDoc `bson:"user,omitempty"`
}

func (d chatDoc) toDomain() domain.ChatRecord {
	rec := domain.ChatRecord{
		ID:                d.ID.Hex(),
		UserID:            d.UserID.Hex(),
		UserMessage:       d.UserMessage,
		AssistantResponse: d.AssistantResponse,
		Tokens:            d.Tokens,
		CreatedAt:         d.CreatedAt,
	}
	if d.User != nil {
		rec.UserName = d.User.Name
		rec.UserEmail = d.User.Email
	}
	return rec
}

func (r *ChatRepository) Insert(ctx context.Context, record *domain.ChatRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid, err := primitive.ObjectIDFromHex(record.UserID)
	if err != nil {
		return domain.ErrInvalidID
	}

	doc := chatDoc{
		UserID:            uid,
		UserMessage:       record.UserMessage,
		AssistantResponse: record.AssistantResponse,
		Tokens:            record.Tokens,
		CreatedAt:         record.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert chat record: %w", err)
	}
	record.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *ChatRepository) FindByID(ctx context.Context, id string) (*domain.ChatRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var doc chatDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrChatEntryNotFound
		}
		return nil, fmt.Errorf("find chat record: %w", err)
	}

	rec := doc.toDomain()
	return &rec, nil
}

// List returns one history page, newest first. Owner listings use a plain
// filtered find; the all-users admin listing joins user name/email through a
// $lookup on the users collection.
func (r *ChatRepository) List(ctx context.Context, filter ports.ChatFilter) ([]domain.ChatRecord, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		uid, err := primitive.ObjectIDFromHex(filter.UserID)
		if err != nil {
			return nil, 0, domain.ErrInvalidID
		}
		query["user_id"] = uid
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count chat records: %w", err)
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	limit := int64(filter.Limit)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: query}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("list chat records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []domain.ChatRecord
	for cursor.Next(ctx) {
		var doc chatDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode chat record: %w", err)
		}
		records = append(records, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate chat records: %w", err)
	}

	return records, total, nil
}

func (r *ChatRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return r.coll.CountDocuments(ctx, bson.M{"user_id": uid})
}

func (r *ChatRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete chat record: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrChatEntryNotFound
	}
	return nil
}

// EnsureIndexes creates the history listing indexes.
func (r *ChatRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
