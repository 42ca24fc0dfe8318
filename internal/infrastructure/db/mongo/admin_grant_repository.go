package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// AdminGrantRepository implements ports.AdminGrantRepository on the
// admin_codes collection. The partial unique index on {code, active:true}
// (see EnsureIndexes) is the serialization point for concurrent grants.
type AdminGrantRepository struct {
	col *mongo.Collection
}

func NewAdminGrantRepository(db *mongo.Database) *AdminGrantRepository {
	return &AdminGrantRepository{col: db.Collection(collectionAdminGrants)}
}

type grantDoc struct {
	Code      string     `bson:"code"`
	Level     string     `bson:"level"`
	GrantedBy string     `bson:"added_by"`
	GrantedAt time.Time  `bson:"created_at"`
	Active    bool       `bson:"active"`
	RevokedBy string     `bson:"removed_by,omitempty"`
	RevokedAt *time.Time `bson:"removed_at,omitempty"`
}

func (d grantDoc) toDomain() *domain.AdminGrant {
	g := &domain.AdminGrant{
		Code:      d.Code,
		Level:     domain.AdminLevel(d.Level),
		GrantedBy: d.GrantedBy,
		GrantedAt: d.GrantedAt.UTC(),
		Active:    d.Active,
		RevokedBy: d.RevokedBy,
	}
	if d.RevokedAt != nil {
		t := d.RevokedAt.UTC()
		g.RevokedAt = &t
	}
	return g
}

func (r *AdminGrantRepository) Insert(ctx context.Context, grant *domain.AdminGrant) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := grantDoc{
		Code:      grant.Code,
		Level:     string(grant.Level),
		GrantedBy: grant.GrantedBy,
		GrantedAt: grant.GrantedAt.UTC(),
		Active:    true,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyGranted
		}
		return fmt.Errorf("insert grant: %w", err)
	}
	return nil
}

func (r *AdminGrantRepository) Deactivate(ctx context.Context, code, revokedBy string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"code": code, "active": true},
		bson.M{"$set": bson.M{
			"active":     false,
			"removed_by": revokedBy,
			"removed_at": at.UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("deactivate grant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotActive
	}
	return nil
}

func (r *AdminGrantRepository) FindActive(ctx context.Context, code string) (*domain.AdminGrant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc grantDoc
	err := r.col.FindOne(ctx, bson.M{"code": code, "active": true}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotActive
		}
		return nil, fmt.Errorf("find active grant: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminGrantRepository) List(ctx context.Context, includeRevoked bool) ([]*domain.AdminGrant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if !includeRevoked {
		filter["active"] = true
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	defer cur.Close(ctx)

	var grants []*domain.AdminGrant
	for cur.Next(ctx) {
		var doc grantDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode grant: %w", err)
		}
		grants = append(grants, doc.toDomain())
	}
	return grants, cur.Err()
}
