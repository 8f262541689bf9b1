package mongodb

import (
	"context"
	"errors"

	"healthcare-portal/internal/domain/entity"
	domainRepo "healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) domainRepo.UserRepository {
	return &userRepository{coll: db.Collection(UsersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	stamp(&user.CreatedAt, &user.UpdatedAt)
	if _, err := r.coll.InsertOne(ctx, toUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainRepo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *userRepository) FindByRole(ctx context.Context, role entity.Role) ([]entity.User, error) {
	return r.find(ctx, bson.M{"role": string(role)})
}

func (r *userRepository) find(ctx context.Context, filter bson.M) ([]entity.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]entity.User, 0, len(docs))
	for _, doc := range docs {
		user, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}
