package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contactdesk/contact-api/internal/core/domain"
)

const contactCollection = "contacts"

type MongoContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *MongoContactRepository {
	return &MongoContactRepository{coll: db.Collection(contactCollection)}
}

type contactDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name,omitempty"`
	Email     string             `bson:"email,omitempty"`
	Phone     string             `bson:"phone"`
	UserID    string             `bson:"user_id"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (d contactDoc) toDomain() *domain.Contact {
	return &domain.Contact{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		UserID:    d.UserID,
		CreatedAt: unixToTime(d.CreatedAt),
		UpdatedAt: unixToTime(d.UpdatedAt),
	}
}

func (r *MongoContactRepository) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	doc := contactDoc{
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		UserID:    contact.UserID,
		CreatedAt: contact.CreatedAt.Unix(),
		UpdatedAt: contact.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *MongoContactRepository) FindAll(ctx context.Context) ([]domain.Contact, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer cur.Close(ctx)

	var contacts []domain.Contact
	for cur.Next(ctx) {
		var doc contactDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode contact: %w", err)
		}
		contacts = append(contacts, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (r *MongoContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrContactNotFound
	}

	var doc contactDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoContactRepository) Update(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(contact.ID)
	if err != nil {
		return nil, domain.ErrContactNotFound
	}

	// Matching on both _id and user_id keeps the update owner-scoped.
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": contact.UserID},
		bson.M{"$set": bson.M{
			"first_name": contact.FirstName,
			"last_name":  contact.LastName,
			"email":      contact.Email,
			"phone":      contact.Phone,
			"updated_at": contact.UpdatedAt.Unix(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrContactNotFound
	}
	return r.FindByID(ctx, contact.ID)
}

func (r *MongoContactRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrContactNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}
