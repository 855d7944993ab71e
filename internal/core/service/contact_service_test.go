package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-api/internal/core/domain"
	"github.com/contactdesk/contact-api/internal/core/ports"
)

type stubContactRepo struct {
	contacts map[string]*domain.Contact
	nextID   int
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{contacts: make(map[string]*domain.Contact)}
}

func cloneContact(c *domain.Contact) *domain.Contact {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubContactRepo) Create(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	r.nextID++
	copy := cloneContact(contact)
	copy.ID = fmt.Sprintf("contact-%d", r.nextID)
	r.contacts[copy.ID] = cloneContact(copy)
	return cloneContact(copy), nil
}

func (r *stubContactRepo) FindAll(_ context.Context) ([]domain.Contact, error) {
	out := make([]domain.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		out = append(out, *cloneContact(c))
	}
	return out, nil
}

func (r *stubContactRepo) FindByID(_ context.Context, id string) (*domain.Contact, error) {
	if c, ok := r.contacts[id]; ok {
		return cloneContact(c), nil
	}
	return nil, domain.ErrContactNotFound
}

func (r *stubContactRepo) Update(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	existing, ok := r.contacts[contact.ID]
	if !ok || existing.UserID != contact.UserID {
		return nil, domain.ErrContactNotFound
	}
	r.contacts[contact.ID] = cloneContact(contact)
	return cloneContact(contact), nil
}

func (r *stubContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.contacts[id]; !ok {
		return domain.ErrContactNotFound
	}
	delete(r.contacts, id)
	return nil
}

func newContactFixture(t *testing.T) (*ContactService, *stubContactRepo, *domain.User) {
	t.Helper()
	contacts := newStubContactRepo()
	users := newStubUserRepo()
	owner := seedUser(t, users, "alice", "pw", "Alice")
	svc := NewContactService(contacts, users, zerolog.Nop())
	return svc, contacts, owner
}

func TestContactService_CreateAndFind(t *testing.T) {
	svc, _, owner := newContactFixture(t)

	created, err := svc.Create(context.Background(), ports.CreateContactInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Phone:     "+15550100",
		UserID:    owner.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned ID")
	}
	if created.Owner == nil || created.Owner.Username != "alice" || created.Owner.Name != "Alice" {
		t.Fatalf("owner view not attached: %+v", created.Owner)
	}

	found, err := svc.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.FirstName != "John" || found.Phone != "+15550100" {
		t.Fatalf("unexpected contact: %+v", found)
	}
}

func TestContactService_FindAll_AttachesOwners(t *testing.T) {
	svc, _, owner := newContactFixture(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), ports.CreateContactInput{
			FirstName: fmt.Sprintf("Contact%d", i),
			Phone:     fmt.Sprintf("+1555010%d", i),
			UserID:    owner.ID,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(all))
	}
	for _, c := range all {
		if c.Owner == nil || c.Owner.Username != "alice" {
			t.Fatalf("contact %s missing owner view", c.ID)
		}
	}
}

func TestContactService_FindByID_NotFound(t *testing.T) {
	svc, _, _ := newContactFixture(t)

	if _, err := svc.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestContactService_Update_OwnerScoped(t *testing.T) {
	svc, _, owner := newContactFixture(t)

	created, err := svc.Create(context.Background(), ports.CreateContactInput{
		FirstName: "Jane", Phone: "+15550111", UserID: owner.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, owner.ID, ports.UpdateContactInput{FirstName: "Janet"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FirstName != "Janet" || updated.Phone != "+15550111" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// Another user cannot touch the entry; the failure reads as not-found.
	if _, err := svc.Update(context.Background(), created.ID, "someone-else", ports.UpdateContactInput{FirstName: "Hack"}); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound for foreign owner, got %v", err)
	}
}

func TestContactService_Delete(t *testing.T) {
	svc, repo, owner := newContactFixture(t)

	created, err := svc.Create(context.Background(), ports.CreateContactInput{
		FirstName: "Temp", Phone: "+15550122", UserID: owner.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.contacts) != 0 {
		t.Fatalf("contact still stored after delete")
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestContactService_DeletedOwnerTolerated(t *testing.T) {
	contacts := newStubContactRepo()
	users := newStubUserRepo()
	owner := seedUser(t, users, "ghost", "pw", "Ghost")
	svc := NewContactService(contacts, users, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateContactInput{
		FirstName: "Orphan", Phone: "+15550133", UserID: owner.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := users.Delete(context.Background(), owner.ID); err != nil {
		t.Fatalf("delete owner: %v", err)
	}

	found, err := svc.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID after owner delete: %v", err)
	}
	if found.Owner != nil {
		t.Fatalf("expected nil owner view for deleted user")
	}
}
