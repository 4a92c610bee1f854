package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

const statsCollection = "user_stats"

type StatsRepository struct {
	coll *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{coll: db.Collection(statsCollection)}
}

type statsDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id"`
	QuestionsAsked  int                `bson:"questions_asked"`
	TopicsLearned   []string           `bson:"topics_learned"`
	TotalAccuracy   float64            `bson:"total_accuracy"`
	AccuracyCount   int                `bson:"accuracy_count"`
	Streak          int                `bson:"streak"`
	CoursesEnrolled []string           `bson:"courses_enrolled"`
	LastActiveDate  time.Time          `bson:"last_active_date,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

// Init zero-initializes the stats document for a fresh account. Racing a
// concurrent init is fine: the unique user_id index turns the loser into a
// harmless duplicate error.
func (r *StatsRepository) Init(ctx context.Context, userID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrInvalidID
	}

	now := time.Now().UTC()
	doc := statsDoc{
		UserID:          uid,
		TopicsLearned:   []string{},
		CoursesEnrolled: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("init user stats: %w", err)
	}
	return nil
}

func (r *StatsRepository) Find(ctx context.Context, userID string) (*domain.UserStats, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var doc statsDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_id": uid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStatsNotFound
		}
		return nil, fmt.Errorf("find user stats: %w", err)
	}

	return &domain.UserStats{
		ID:              doc.ID.Hex(),
		UserID:          doc.UserID.Hex(),
		QuestionsAsked:  doc.QuestionsAsked,
		TopicsLearned:   doc.TopicsLearned,
		TotalAccuracy:   doc.TotalAccuracy,
		AccuracyCount:   doc.AccuracyCount,
		Streak:          doc.Streak,
		CoursesEnrolled: doc.CoursesEnrolled,
		LastActiveDate:  doc.LastActiveDate,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}, nil
}

// Update applies a partial $set, creating the document when absent so the
// signup-time init is allowed to have failed.
func (r *StatsRepository) Update(ctx context.Context, userID string, fields map[string]any) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrInvalidID
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"user_id": uid}, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("update user stats: %w", err)
	}
	return nil
}

// RecordQuestion bumps the question counter after a persisted chat turn.
func (r *StatsRepository) RecordQuestion(ctx context.Context, userID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrInvalidID
	}

	now := time.Now().UTC()
	update := bson.M{
		"$inc": bson.M{"questions_asked": 1},
		"$set": bson.M{"last_active_date": now, "updated_at": now},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"user_id": uid}, update, opts); err != nil {
		return fmt.Errorf("record question: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique per-user index.
func (r *StatsRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
