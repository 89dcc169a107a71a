package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Polarity labels assigned to feedback at submission time.
const (
	PolarityPositive = "positive"
	PolarityNegative = "negative"
	PolarityNeutral  = "neutral"
)

// Feedback is stored in Mongo and serialized on the wire as
// {feedback_id, username, feedback, polarity, date_time}. The ObjectID
// hex string is the opaque token clients carry for deletion.
type Feedback struct {
	ID       primitive.ObjectID `json:"feedback_id" bson:"_id,omitempty"`
	Username string             `json:"username" bson:"username"`
	Feedback string             `json:"feedback" bson:"feedback"`
	Polarity string             `json:"polarity" bson:"polarity"`
	DateTime time.Time          `json:"date_time" bson:"dateTime"`
}

type SubmitFeedbackRequest struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Feedback string `json:"feedback" validate:"required"`
}

type DeleteFeedbackRequest struct {
	FeedbackID string `json:"feedback_id" validate:"required"`
}
