package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

// StatsRepository implements ports.StatsRepository with count and
// aggregation queries across the research collections.
type StatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CollectionCounts(ctx context.Context) (users, prompts, conversations int64, err error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if users, err = r.db.Collection(collectionCredentials).CountDocuments(ctx, bson.M{}); err != nil {
		return 0, 0, 0, fmt.Errorf("count users: %w", err)
	}
	if prompts, err = r.db.Collection(collectionPrompts).CountDocuments(ctx, bson.M{}); err != nil {
		return 0, 0, 0, fmt.Errorf("count prompts: %w", err)
	}
	if conversations, err = r.db.Collection(collectionConversations).CountDocuments(ctx, bson.M{}); err != nil {
		return 0, 0, 0, fmt.Errorf("count conversations: %w", err)
	}
	return users, prompts, conversations, nil
}

func (r *StatsRepository) TotalMessages(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{"count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$messages", bson.A{}}}}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$count"}}}},
	}

	cur, err := r.db.Collection(collectionConversations).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate messages: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		Total int64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode message total: %w", err)
		}
	}
	return result.Total, cur.Err()
}

func (r *StatsRepository) ConsentBreakdown(ctx context.Context) (*ports.ConsentBreakdown, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$consent", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.db.Collection(collectionCredentials).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate consent: %w", err)
	}
	defer cur.Close(ctx)

	var breakdown ports.ConsentBreakdown
	for cur.Next(ctx) {
		var row struct {
			Consent string `bson:"_id"`
			Count   int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode consent row: %w", err)
		}
		switch domain.Consent(row.Consent) {
		case domain.ConsentGranted:
			breakdown.Granted = row.Count
		case domain.ConsentDenied:
			breakdown.Denied = row.Count
		default:
			breakdown.Unset += row.Count
		}
	}
	return &breakdown, cur.Err()
}
