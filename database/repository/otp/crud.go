// File: database/repository/otp/crud.go
package otpRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sripavantejb/GuideXpert-Backend/models"
)

func (r *mongoOtpRepo) Latest(ctx context.Context, phone string) (*models.OtpRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var rec models.OtpRecord
	if err := r.coll.FindOne(ctx, bson.M{"phoneNumber": phone}, opts).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *mongoOtpRepo) CountSince(ctx context.Context, phone string, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{
		"phoneNumber": phone,
		"createdAt":   bson.M{"$gte": since},
	})
}

func (r *mongoOtpRepo) Insert(ctx context.Context, rec models.OtpRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, rec)
	return err
}

func (r *mongoOtpRepo) Retire(ctx context.Context, phone string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"phoneNumber": phone},
		bson.M{"$set": bson.M{"consumed": true}},
	)
	return err
}

func (r *mongoOtpRepo) IncrementAttempts(ctx context.Context, phone string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetReturnDocument(options.After)
	var rec models.OtpRecord
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"phoneNumber": phone},
		bson.M{"$inc": bson.M{"attempts": 1}},
		opts,
	).Decode(&rec)
	if err != nil {
		return 0, err
	}
	return rec.Attempts, nil
}
