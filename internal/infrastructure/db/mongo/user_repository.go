package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

// UserRepository stores user profile documents.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database, collection string) *UserRepository {
	return &UserRepository{col: db.Collection(collection)}
}

type userDoc struct {
	ID                string `bson:"_id"`
	AccountID         string `bson:"account_id"`
	Email             string `bson:"email"`
	FirstName         string `bson:"first_name"`
	LastName          string `bson:"last_name"`
	Address1          string `bson:"address1"`
	City              string `bson:"city"`
	State             string `bson:"state"`
	PostalCode        string `bson:"postal_code"`
	DateOfBirth       string `bson:"date_of_birth"`
	SSN               string `bson:"ssn"`
	DwollaCustomerID  string `bson:"dwolla_customer_id"`
	DwollaCustomerURL string `bson:"dwolla_customer_url"`
	CreatedAt         int64  `bson:"created_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, userToDoc(user)); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"account_id": accountID})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return userFromDoc(doc), nil
}

// EnsureIndexes creates the account_id lookup index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "account_id", Value: 1}},
	})
	return err
}

func userToDoc(u *domain.User) userDoc {
	return userDoc{
		ID:                u.ID,
		AccountID:         u.AccountID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Address1:          u.Address1,
		City:              u.City,
		State:             u.State,
		PostalCode:        u.PostalCode,
		DateOfBirth:       u.DateOfBirth,
		SSN:               u.SSN,
		DwollaCustomerID:  u.DwollaCustomerID,
		DwollaCustomerURL: u.DwollaCustomerURL,
		CreatedAt:         u.CreatedAt.Unix(),
	}
}

func userFromDoc(doc userDoc) *domain.User {
	return &domain.User{
		ID:                doc.ID,
		AccountID:         doc.AccountID,
		Email:             doc.Email,
		FirstName:         doc.FirstName,
		LastName:          doc.LastName,
		Address1:          doc.Address1,
		City:              doc.City,
		State:             doc.State,
		PostalCode:        doc.PostalCode,
		DateOfBirth:       doc.DateOfBirth,
		SSN:               doc.SSN,
		DwollaCustomerID:  doc.DwollaCustomerID,
		DwollaCustomerURL: doc.DwollaCustomerURL,
		CreatedAt:         unixToTime(doc.CreatedAt),
	}
}
