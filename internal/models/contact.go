package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContactDbName  = "propertyintel"
	ContactColName = "contact_messages"
)

// ContactMessage is a submission from the public contact form, stored
// in the Mongo management inbox. Phone and subject are optional.
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string             `bson:"message" json:"message" validate:"required"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type ContactRepo interface {
	CreateMessage(ctx context.Context, msg *ContactMessage) (*ContactMessage, error)
	ListMessages(ctx context.Context, unreadOnly bool) ([]*ContactMessage, error)
	MarkMessageRead(ctx context.Context, id primitive.ObjectID) error
	DeleteMessage(ctx context.Context, id primitive.ObjectID) error
}

func (m *ContactMessage) BeforeCreate() error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return nil
}
