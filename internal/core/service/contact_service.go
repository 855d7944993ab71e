package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-api/internal/core/domain"
	"github.com/contactdesk/contact-api/internal/core/ports"
)

// ContactService implements address-book CRUD. Reads attach the owner's
// public view so responses carry {username, name} alongside the entry.
type ContactService struct {
	contacts ports.ContactRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewContactService(contacts ports.ContactRepository, users ports.UserRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{contacts: contacts, users: users, logger: logger}
}

func (s *ContactService) Create(ctx context.Context, in ports.CreateContactInput) (*domain.Contact, error) {
	now := time.Now().UTC()
	created, err := s.contacts.Create(ctx, &domain.Contact{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		UserID:    in.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("contact_id", created.ID).Str("user_id", in.UserID).Msg("contact created")
	return s.withOwner(ctx, created)
}

func (s *ContactService) FindAll(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := s.contacts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// One lookup per distinct owner; lists are small enough that a
	// per-call cache beats an aggregation pipeline here.
	owners := make(map[string]*domain.ContactOwner)
	for i := range contacts {
		owner, ok := owners[contacts[i].UserID]
		if !ok {
			owner = s.lookupOwner(ctx, contacts[i].UserID)
			owners[contacts[i].UserID] = owner
		}
		contacts[i].Owner = owner
	}
	return contacts, nil
}

func (s *ContactService) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, contact)
}

// Update applies the non-empty fields of in to the contact. The match is
// scoped to userID, so updating another user's entry reports not-found
// rather than leaking its existence.
func (s *ContactService) Update(ctx context.Context, id, userID string, in ports.UpdateContactInput) (*domain.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact.UserID != userID {
		return nil, domain.ErrContactNotFound
	}

	if in.FirstName != "" {
		contact.FirstName = in.FirstName
	}
	if in.LastName != "" {
		contact.LastName = in.LastName
	}
	if in.Email != "" {
		contact.Email = in.Email
	}
	if in.Phone != "" {
		contact.Phone = in.Phone
	}
	contact.UpdatedAt = time.Now().UTC()

	updated, err := s.contacts.Update(ctx, contact)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("contact_id", id).Msg("contact updated")
	return s.withOwner(ctx, updated)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("contact_id", id).Msg("contact deleted")
	return nil
}

func (s *ContactService) withOwner(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	contact.Owner = s.lookupOwner(ctx, contact.UserID)
	return contact, nil
}

// lookupOwner resolves the owner view, tolerating a since-deleted user:
// the contact is still returned, just without the embedded owner.
func (s *ContactService) lookupOwner(ctx context.Context, userID string) *domain.ContactOwner {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("owner lookup failed")
		}
		return nil
	}
	return &domain.ContactOwner{Username: user.Username, Name: user.Name}
}
