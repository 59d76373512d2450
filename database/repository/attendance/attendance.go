// File: database/repository/attendance/attendance.go
package attendanceRepo

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

// AttendanceRepository stores demo-meeting join records.
type AttendanceRepository interface {
	Create(ctx context.Context, rec models.MeetingAttendance) (*models.MeetingAttendance, error)
	// List returns one page of records, newest first, plus the total count.
	List(ctx context.Context, skip, limit int64) ([]models.MeetingAttendance, int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoAttendanceRepo struct {
	coll *mongo.Collection
}

// NewMongoAttendanceRepo constructs a MongoDB AttendanceRepository.
func NewMongoAttendanceRepo() AttendanceRepository {
	return &mongoAttendanceRepo{
		coll: database.DB().Collection("meetingattendances"),
	}
}

func (r *mongoAttendanceRepo) Create(ctx context.Context, rec models.MeetingAttendance) (*models.MeetingAttendance, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if rec.Timestamp.IsZero() {
		rec.Timestamp = now
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = res.InsertedID.(primitive.ObjectID)
	return &rec, nil
}

func (r *mongoAttendanceRepo) List(ctx context.Context, skip, limit int64) ([]models.MeetingAttendance, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var recs []models.MeetingAttendance
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, 0, err
	}
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

// EnsureIndexes creates the listing-order index.
func (r *mongoAttendanceRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("timestamp_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create attendance index: %w", err)
	}
	return nil
}
