package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactService struct {
	contactRepo models.ContactRepo
}

func NewContactService(contactRepo models.ContactRepo) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
	}
}

// SubmitMessage stores a contact-form submission. Subject and phone
// are optional business fields.
func (cs *ContactService) SubmitMessage(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Message = strings.TrimSpace(msg.Message)
	if err := models.Validate.Struct(msg); err != nil {
		return nil, fmt.Errorf("%w: contact message: %v", models.ErrInvalidInput, err)
	}

	return cs.contactRepo.CreateMessage(ctx, msg)
}

func (cs *ContactService) ListMessages(ctx context.Context, unreadOnly bool) ([]*models.ContactMessage, error) {
	return cs.contactRepo.ListMessages(ctx, unreadOnly)
}

func (cs *ContactService) MarkMessageRead(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: message id: %v", models.ErrInvalidInput, err)
	}
	return cs.contactRepo.MarkMessageRead(ctx, oid)
}

func (cs *ContactService) DeleteMessage(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: message id: %v", models.ErrInvalidInput, err)
	}
	return cs.contactRepo.DeleteMessage(ctx, oid)
}
