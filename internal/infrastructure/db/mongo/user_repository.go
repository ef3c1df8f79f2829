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

	"github.com/hopebloom/auth-service/internal/core/domain"
)

const collectionUsers = "users"

// withoutPassword is the default read projection; the hash is only loaded
// when a caller explicitly asks for it.
var withoutPassword = bson.D{{Key: "password_hash", Value: 0}}

type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers), now: time.Now}
}

type userDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	Username       string             `bson:"username"`
	PasswordHash   string             `bson:"password_hash,omitempty"`
	Role           string             `bson:"role"`
	Name           string             `bson:"name"`
	Phone          string             `bson:"phone"`
	Specialization string             `bson:"specialization"`
	LicenseNumber  string             `bson:"license_number"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

// Create inserts a new user. created_at and updated_at are stamped here.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.timestamp()
	doc := userDocument{
		ID:             primitive.NewObjectID(),
		Username:       user.Username,
		PasswordHash:   user.PasswordHash,
		Role:           user.Role.String(),
		Name:           user.Name,
		Phone:          user.Phone,
		Specialization: user.Specialization,
		LicenseNumber:  user.LicenseNumber,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string, withPassword bool) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne()
	if !withPassword {
		opts.SetProjection(withoutPassword)
	}
	return r.findOne(ctx, bson.M{"username": username}, opts)
}

// FindByID returns domain.ErrUserNotFound for ids that are not valid
// ObjectIDs as well as for missing documents.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(withoutPassword))
}

// UpdateRole sets the role and returns the updated document.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"role":       role.String(),
		"updated_at": r.timestamp(),
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var doc userDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user role: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every user, oldest first, without password hashes.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(withoutPassword).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

// EnsureIndexes creates the unique username index. It is the authoritative
// guard against duplicate registrations.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// timestamp truncates to BSON date precision so returned values match what
// a later read would see.
func (r *UserRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

func (d *userDocument) toDomain() *domain.User {
	role, ok := domain.ParseRole(d.Role)
	if !ok {
		role = domain.RoleUser
	}
	return &domain.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		PasswordHash:   d.PasswordHash,
		Role:           role,
		Name:           d.Name,
		Phone:          d.Phone,
		Specialization: d.Specialization,
		LicenseNumber:  d.LicenseNumber,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
