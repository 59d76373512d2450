package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InfluencerLink is a saved campaign link handed to an influencer. The UTM
// tags it carries come back through step 1 as the submission's Attribution,
// which is what ties registrations to the influencer in analytics.
type InfluencerLink struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InfluencerName string             `bson:"influencerName" json:"influencerName"`
	Platform       string             `bson:"platform" json:"platform"`
	Campaign       string             `bson:"campaign" json:"campaign"`
	UTMLink        string             `bson:"utmLink" json:"utmLink"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
