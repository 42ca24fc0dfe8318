package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// PromptRepository implements ports.PromptRepository on the prompts collection.
type PromptRepository struct {
	col *mongo.Collection
}

func NewPromptRepository(db *mongo.Database) *PromptRepository {
	return &PromptRepository{col: db.Collection(collectionPrompts)}
}

func (r *PromptRepository) Insert(ctx context.Context, p *domain.Prompt) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}
	return nil
}

func (r *PromptRepository) FindByID(ctx context.Context, id, ownerCode string) (*domain.Prompt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"prompt_id": id}
	if ownerCode != "" {
		filter["user_code"] = ownerCode
	}

	var p domain.Prompt
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPromptNotFound
		}
		return nil, fmt.Errorf("find prompt: %w", err)
	}
	return &p, nil
}

func (r *PromptRepository) ListByOwner(ctx context.Context, ownerCode string) ([]*domain.Prompt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"user_code": ownerCode},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer cur.Close(ctx)

	var prompts []*domain.Prompt
	for cur.Next(ctx) {
		var p domain.Prompt
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode prompt: %w", err)
		}
		prompts = append(prompts, &p)
	}
	return prompts, cur.Err()
}
