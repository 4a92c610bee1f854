package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

// AdminStatsRepository answers the dashboard counting queries across the
// users, courses and chat history collections.
type AdminStatsRepository struct {
	users   *mongo.Collection
	courses *mongo.Collection
	chats   *mongo.Collection
}

func NewAdminStatsRepository(db *mongo.Database) *AdminStatsRepository {
	return &AdminStatsRepository{
		users:   db.Collection(usersCollection),
		courses: db.Collection(coursesCollection),
		chats:   db.Collection(chatCollection),
	}
}

func sinceFilter(since time.Time) bson.M {
	if since.IsZero() {
		return bson.M{}
	}
	return bson.M{"created_at": bson.M{"$gte": since}}
}

func (r *AdminStatsRepository) CountUsers(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.users.CountDocuments(ctx, sinceFilter(since))
}

func (r *AdminStatsRepository) CountCourses(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.courses.CountDocuments(ctx, bson.M{})
}

func (r *AdminStatsRepository) CountChats(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.chats.CountDocuments(ctx, sinceFilter(since))
}

type topUserDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Count int64              `bson:"count"`
	User  *userDoc           `bson:"user,omitempty"`
}

// TopUsers groups chat history by owner and joins account details for the
// most active users.
func (r *AdminStatsRepository) TopUsers(ctx context.Context, limit int) ([]ports.TopUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := r.chats.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top users: %w", err)
	}
	defer cursor.Close(ctx)

	var top []ports.TopUser
	for cursor.Next(ctx) {
		var doc topUserDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode top user: %w", err)
		}
		entry := ports.TopUser{ID: doc.ID.Hex(), Count: doc.Count}
		if doc.User != nil {
			entry.Name = doc.User.Name
			entry.Email = doc.User.Email
		}
		top = append(top, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate top users: %w", err)
	}

	return top, nil
}
