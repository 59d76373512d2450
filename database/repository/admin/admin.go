// File: database/repository/admin/admin.go
package adminRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sripavantejb/GuideXpert-Backend/database"
	"github.com/sripavantejb/GuideXpert-Backend/models"
)

// AdminRepository stores dashboard operator accounts.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	Create(ctx context.Context, admin models.Admin) (*models.Admin, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo constructs a MongoDB AdminRepository.
func NewMongoAdminRepo() AdminRepository {
	return &mongoAdminRepo{
		coll: database.DB().Collection("admins"),
	}
}

func (r *mongoAdminRepo) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *mongoAdminRepo) Create(ctx context.Context, admin models.Admin) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, admin)
	if err != nil {
		return nil, err
	}
	var created models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

// EnsureIndexes creates the unique username key.
func (r *mongoAdminRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_username"),
	})
	if err != nil {
		return fmt.Errorf("failed to create admin index: %w", err)
	}
	return nil
}
