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

// CredentialRepository implements ports.CredentialRepository on the users
// collection.
type CredentialRepository struct {
	col *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{col: db.Collection(collectionCredentials)}
}

type credentialDoc struct {
	Code       string    `bson:"code"`
	Consent    string    `bson:"consent"`
	CreatedAt  time.Time `bson:"created_at"`
	LastSeenAt time.Time `bson:"last_seen_at"`
}

func (d credentialDoc) toDomain() *domain.Credential {
	consent := domain.Consent(d.Consent)
	if consent == "" {
		consent = domain.ConsentUnset
	}
	return &domain.Credential{
		Code:       d.Code,
		Consent:    consent,
		CreatedAt:  d.CreatedAt.UTC(),
		LastSeenAt: d.LastSeenAt.UTC(),
	}
}

func (r *CredentialRepository) Resolve(ctx context.Context, code string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc credentialDoc
	err := r.col.FindOne(ctx, bson.M{"code": code}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := credentialDoc{
		Code:       cred.Code,
		Consent:    string(cred.Consent),
		CreatedAt:  cred.CreatedAt.UTC(),
		LastSeenAt: cred.LastSeenAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCredentialExists
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) SetConsent(ctx context.Context, code string, consent domain.Consent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"code": code},
		bson.M{"$set": bson.M{"consent": string(consent)}},
	)
	if err != nil {
		return fmt.Errorf("set consent: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCredentialNotFound
	}
	return nil
}

func (r *CredentialRepository) TouchLastSeen(ctx context.Context, code string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"code": code},
		bson.M{"$set": bson.M{"last_seen_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("touch last_seen_at: %w", err)
	}
	return nil
}

func (r *CredentialRepository) List(ctx context.Context) ([]*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer cur.Close(ctx)

	var creds []*domain.Credential
	for cur.Next(ctx) {
		var doc credentialDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode credential: %w", err)
		}
		creds = append(creds, doc.toDomain())
	}
	return creds, cur.Err()
}
