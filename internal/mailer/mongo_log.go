package mailer

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DeliveryRecord is the MongoDB document stored for each delivered message.
type DeliveryRecord struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Message `bson:",inline"`
	SentAt  time.Time `bson:"sent_at"`
}

// MongoLogMailer delivers through next and records every delivered message.
// The record is best effort: once next has delivered, a failed insert is only logged.
type MongoLogMailer struct {
	next       Mailer
	collection *mongo.Collection
}

// NewMongoLogMailer wraps next, recording deliveries in the "mail_log" collection of db
func NewMongoLogMailer(next Mailer, db *mongo.Database) *MongoLogMailer {
	return &MongoLogMailer{next: next, collection: db.Collection("mail_log")}
}

func (m *MongoLogMailer) Send(ctx context.Context, msg Message) error {
	if err := m.next.Send(ctx, msg); err != nil {
		return err
	}

	record := DeliveryRecord{
		ID:      primitive.NewObjectID(),
		Message: msg,
		SentAt:  time.Now(),
	}
	if _, err := m.collection.InsertOne(ctx, record); err != nil {
		log.Printf("Failed to record mail delivery %q to %v: %v", msg.Subject, msg.To, err)
	}
	return nil
}
