// File: database/repository/influencer/influencer.go
package influencerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sripavantejb/GuideXpert-Backend/database"
	"github.com/sripavantejb/GuideXpert-Backend/models"
)

// InfluencerLinkRepository stores saved campaign links.
type InfluencerLinkRepository interface {
	Create(ctx context.Context, link models.InfluencerLink) (*models.InfluencerLink, error)
	// List returns all saved links, newest first.
	List(ctx context.Context) ([]models.InfluencerLink, error)
	// Delete removes one link, mongo.ErrNoDocuments when absent.
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type mongoInfluencerRepo struct {
	coll *mongo.Collection
}

// NewMongoInfluencerRepo constructs a MongoDB InfluencerLinkRepository.
func NewMongoInfluencerRepo() InfluencerLinkRepository {
	return &mongoInfluencerRepo{
		coll: database.DB().Collection("influencerlinks"),
	}
}

func (r *mongoInfluencerRepo) Create(ctx context.Context, link models.InfluencerLink) (*models.InfluencerLink, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	link.CreatedAt = time.Now()
	res, err := r.coll.InsertOne(ctx, link)
	if err != nil {
		return nil, err
	}
	link.ID = res.InsertedID.(primitive.ObjectID)
	return &link, nil
}

func (r *mongoInfluencerRepo) List(ctx context.Context) ([]models.InfluencerLink, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var links []models.InfluencerLink
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (r *mongoInfluencerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// EnsureIndexes creates the listing-order index.
func (r *mongoInfluencerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("created_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create influencer link index: %w", err)
	}
	return nil
}
