// File: database/repository/submission/crud.go
package submissionRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sripavantejb/GuideXpert-Backend/models"
)

// UpsertStep1 creates or re-enters a submission at step 1. Only identity
// fields and the step-1 snapshot are written, so data from later steps (and
// an already-advanced status) survives re-submission.
func (r *mongoSubmissionRepo) UpsertStep1(ctx context.Context, phone string, data models.Step1Data, attr *models.Attribution) (*models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"phone": phone}
	onInsert := bson.M{
		"currentStep":       1,
		"applicationStatus": models.StatusInProgress,
		"isRegistered":      false,
		"createdAt":         now,
	}
	// Attribution is first-touch: recorded on insert, never overwritten.
	if attr != nil {
		onInsert["attribution"] = attr
	}
	update := bson.M{
		"$set": bson.M{
			"fullName":   data.FullName,
			"phone":      phone,
			"occupation": data.Occupation,
			"step1Data":  data,
			"updatedAt":  now,
		},
		"$setOnInsert": onInsert,
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var sub models.Submission
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// SetStep2 records the OTP-verified gate. Returns mongo.ErrNoDocuments when
// no step-1 submission exists for the phone.
func (r *mongoSubmissionRepo) SetStep2(ctx context.Context, phone string, data models.Step2Data) (*models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"step2Data": data,
			"updatedAt": time.Now(),
		},
		"$max": bson.M{"currentStep": 2},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sub models.Submission
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"phone": phone}, update, opts).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// SetStep3 books the slot and flips the submission to registered. Status
// progression is forward-only, so the pipeline update advances currentStep
// via $max and leaves an already-completed status untouched when a lead
// re-books after finishing step 4.
func (r *mongoSubmissionRepo) SetStep3(ctx context.Context, phone string, data models.Step3Data, bookingRef string) (*models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.A{bson.M{
		"$set": bson.M{
			"selectedSlot": data.SelectedSlot,
			"step3Data":    data,
			"applicationStatus": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$applicationStatus", models.StatusCompleted}},
				models.StatusCompleted,
				models.StatusRegistered,
			}},
			"isRegistered": true,
			"registeredAt": now,
			"bookingRef":   bookingRef,
			"updatedAt":    now,
			"currentStep":  bson.M{"$max": bson.A{"$currentStep", 3}},
		},
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sub models.Submission
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"phone": phone}, update, opts).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// SetPostRegistration records the step-4 survey and completes the funnel.
func (r *mongoSubmissionRepo) SetPostRegistration(ctx context.Context, phone string, data models.PostRegistrationData) (*models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"email":                data.Email,
			"interestLevel":        data.InterestLevel,
			"postRegistrationData": data,
			"applicationStatus":    models.StatusCompleted,
			"updatedAt":            time.Now(),
		},
		"$max": bson.M{"currentStep": 4},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sub models.Submission
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"phone": phone}, update, opts).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *mongoSubmissionRepo) FindByPhone(ctx context.Context, phone string) (*models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sub models.Submission
	if err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *mongoSubmissionRepo) SetSheetRow(ctx context.Context, phone string, row int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{"$set": bson.M{"sheetRow": row}})
	return err
}
