// File: database/repository/submission/queries.go
package submissionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sripavantejb/GuideXpert-Backend/models"
)

// flagFields maps a notification kind to its persisted flag field pair.
func flagFields(kind models.NotificationKind) (sentField, sentAtField string, err error) {
	switch kind {
	case models.NotificationReminder4h:
		return "reminderSent", "reminderSentAt", nil
	case models.NotificationMeetLink1h:
		return "meetLinkSent", "meetLinkSentAt", nil
	case models.NotificationReminder30m:
		return "reminder30MinSent", "reminder30MinSentAt", nil
	}
	return "", "", fmt.Errorf("unknown notification kind %q", kind)
}

func (r *mongoSubmissionRepo) DueForNotification(ctx context.Context, kind models.NotificationKind, from, to time.Time) ([]models.Submission, error) {
	sentField, _, err := flagFields(kind)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"isRegistered": true,
		sentField:      bson.M{"$ne": true},
		"step3Data.slotDate": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due submissions: %w", err)
	}
	defer cursor.Close(ctx)

	var subs []models.Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("error decoding due submissions: %w", err)
	}
	return subs, nil
}

func (r *mongoSubmissionRepo) MarkNotificationSent(ctx context.Context, kind models.NotificationKind, phones []string, at time.Time) (int64, error) {
	sentField, sentAtField, err := flagFields(kind)
	if err != nil {
		return 0, err
	}
	if len(phones) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The flag re-check inside the filter makes the flip conditional per
	// record: an overlapping sweep that already marked a phone matches
	// nothing here.
	filter := bson.M{
		"phone":   bson.M{"$in": phones},
		sentField: bson.M{"$ne": true},
	}
	update := bson.M{
		"$set": bson.M{
			sentField:   true,
			sentAtField: at,
		},
	}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to mark %s sent: %w", kind, err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoSubmissionRepo) ResetNotificationFlag(ctx context.Context, kind models.NotificationKind, phone string) error {
	sentField, sentAtField, err := flagFields(kind)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set":   bson.M{sentField: false},
		"$unset": bson.M{sentAtField: ""},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"phone": phone}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountBookingsBySlot groups registered bookings by IST calendar day and slot
// for the given slot-date range.
func (r *mongoSubmissionRepo) CountBookingsBySlot(ctx context.Context, from, to time.Time) ([]SlotBookingCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"isRegistered":       true,
			"step3Data.slotDate": bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"date": bson.M{"$dateToString": bson.M{
					"format":   "%Y-%m-%d",
					"date":     "$step3Data.slotDate",
					"timezone": "+05:30",
				}},
				"slotId": "$selectedSlot",
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":    0,
			"date":   "$_id.date",
			"slotId": "$_id.slotId",
			"count":  1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "slotId", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking counts: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []SlotBookingCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	return counts, nil
}

// CountRegistrationsByInfluencer groups registered submissions by the
// utm_content attribution tag. Zero from/to leave that bound open.
// sortLatest orders by most recent registration instead of volume.
func (r *mongoSubmissionRepo) CountRegistrationsByInfluencer(ctx context.Context, from, to time.Time, sortLatest bool) ([]InfluencerCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	match := influencerMatch(from, to)
	sortKey := "totalRegistrations"
	if sortLatest {
		sortKey = "latestRegistration"
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":                "$attribution.utmContent",
			"totalRegistrations": bson.M{"$sum": 1},
			"latestRegistration": bson.M{"$max": "$registeredAt"},
			"platform":           bson.M{"$first": "$attribution.utmSource"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":                0,
			"influencerName":     "$_id",
			"platform":           1,
			"totalRegistrations": 1,
			"latestRegistration": 1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: sortKey, Value: -1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate influencer counts: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []InfluencerCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	return counts, nil
}

// RegistrationTrendByDay buckets attributed registrations per IST calendar
// day for charting. Zero from/to leave that bound open.
func (r *mongoSubmissionRepo) RegistrationTrendByDay(ctx context.Context, from, to time.Time) ([]DailyCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: influencerMatch(from, to)}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$registeredAt",
				"timezone": "+05:30",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{"_id": 0, "date": "$_id", "count": 1}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate registration trend: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []DailyCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	return counts, nil
}

func influencerMatch(from, to time.Time) bson.M {
	match := bson.M{
		"applicationStatus":      bson.M{"$in": bson.A{models.StatusRegistered, models.StatusCompleted}},
		"attribution.utmContent": bson.M{"$exists": true, "$nin": bson.A{nil, ""}},
	}
	if !from.IsZero() || !to.IsZero() {
		window := bson.M{}
		if !from.IsZero() {
			window["$gte"] = from
		}
		if !to.IsZero() {
			window["$lte"] = to
		}
		match["registeredAt"] = window
	}
	return match
}
