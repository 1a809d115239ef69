package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/admin-auth/internal/core/domain"
)

const collectionAdmins = "admins"

// AdminRepository implements ports.AdminRepository on MongoDB.
type AdminRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{
		col: db.Collection(collectionAdmins),
		now: func() time.Time { return time.Now().UTC() },
	}
}

type mongoAdmin struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password,omitempty"`
	Image     string             `bson:"image"`
	Token     string             `bson:"token,omitempty"`
	IsActive  bool               `bson:"isActive"`
	IsDeleted bool               `bson:"isDeleted"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (m *mongoAdmin) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           m.ID.Hex(),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.Password,
		Image:        m.Image,
		IsActive:     m.IsActive,
		IsDeleted:    m.IsDeleted,
		Token:        m.Token,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// activeFilter matches admins eligible for authentication. isDeleted uses
// $ne so that documents written without the flag still match.
func activeFilter(extra bson.M) bson.M {
	filter := bson.M{
		"isActive":  true,
		"isDeleted": bson.M{"$ne": true},
	}
	for k, v := range extra {
		filter[k] = v
	}
	return filter
}

// Create inserts admin and sets its timestamps.
func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(admin.ID)
	if err != nil {
		return &domain.StorageError{Op: "insert admin", Err: fmt.Errorf("invalid admin id %q: %w", admin.ID, err)}
	}

	now := r.now()
	doc := mongoAdmin{
		ID:        oid,
		Name:      admin.Name,
		Email:     admin.Email,
		Password:  admin.PasswordHash,
		Image:     admin.Image,
		Token:     admin.Token,
		IsActive:  admin.IsActive,
		IsDeleted: admin.IsDeleted,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.DuplicateKeyError{Field: duplicateField(err)}
		}
		return &domain.StorageError{Op: "insert admin", Err: err}
	}

	admin.CreatedAt = now
	admin.UpdatedAt = now
	return nil
}

// FindActiveByEmail returns the active, non-deleted admin with exactly email.
func (r *AdminRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.findOne(ctx, activeFilter(bson.M{"email": email}))
}

// FindActiveByID returns the active, non-deleted admin with id. The password
// hash and token are not loaded.
func (r *AdminRepository) FindActiveByID(ctx context.Context, id string) (*domain.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}

	projection := bson.M{"password": 0, "token": 0}
	return r.findOne(ctx, activeFilter(bson.M{"_id": oid}), options.FindOne().SetProjection(projection))
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAdmin
	if err := r.col.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, &domain.StorageError{Op: "find admin", Err: err}
	}
	return doc.toDomain(), nil
}

// UpdateToken overwrites the stored bearer token of admin id.
func (r *AdminRepository) UpdateToken(ctx context.Context, id, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"token": token, "updatedAt": r.now()}},
	)
	if err != nil {
		return &domain.StorageError{Op: "update admin token", Err: err}
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index and the isActive index.
// Email uniqueness only spans documents that are not soft-deleted.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_1").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isDeleted": false}),
		},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

var (
	dupKeyFieldRe = regexp.MustCompile(`dup key: \{\s*"?([A-Za-z0-9_.]+)"?\s*:`)
	dupIndexRe    = regexp.MustCompile(`index: ([A-Za-z0-9.]+?)_-?1\b`)
)

// duplicateField extracts the offending field from a duplicate key error
// message such as
//
//	E11000 duplicate key error collection: db.admins index: email_1 dup key: { email: "a@b.co" }
func duplicateField(err error) string {
	msg := err.Error()
	if m := dupKeyFieldRe.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	if m := dupIndexRe.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return "unknown"
}
