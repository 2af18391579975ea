package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

// BankRepository stores linked bank-account documents.
type BankRepository struct {
	col *mongo.Collection
}

func NewBankRepository(db *mongo.Database, collection string) *BankRepository {
	return &BankRepository{col: db.Collection(collection)}
}

type bankDoc struct {
	ID               string `bson:"_id"`
	UserID           string `bson:"user_id"`
	BankID           string `bson:"bank_id"`
	AccountID        string `bson:"account_id"`
	AccessToken      string `bson:"access_token"`
	FundingSourceURL string `bson:"funding_source_url"`
	ShareableID      string `bson:"shareable_id"`
	CreatedAt        int64  `bson:"created_at"`
}

func (r *BankRepository) Create(ctx context.Context, bank *domain.BankAccount) (*domain.BankAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bankDoc{
		ID:               bank.ID,
		UserID:           bank.UserID,
		BankID:           bank.BankID,
		AccountID:        bank.AccountID,
		AccessToken:      bank.AccessToken,
		FundingSourceURL: bank.FundingSourceURL,
		ShareableID:      bank.ShareableID,
		CreatedAt:        bank.CreatedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert bank account: %w", err)
	}
	return bank, nil
}

func (r *BankRepository) FindByID(ctx context.Context, documentID string) (*domain.BankAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bankDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": documentID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBankNotFound
		}
		return nil, fmt.Errorf("find bank account: %w", err)
	}
	return bankFromDoc(doc), nil
}

func (r *BankRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.BankAccount, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *BankRepository) ListByAccountID(ctx context.Context, accountID string) ([]*domain.BankAccount, error) {
	return r.list(ctx, bson.M{"account_id": accountID})
}

func (r *BankRepository) list(ctx context.Context, filter bson.M) ([]*domain.BankAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer cur.Close(ctx)

	var banks []*domain.BankAccount
	for cur.Next(ctx) {
		var doc bankDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode bank account: %w", err)
		}
		banks = append(banks, bankFromDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	return banks, nil
}

// EnsureIndexes creates the lookup indexes used by the accessors.
func (r *BankRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "account_id", Value: 1}}},
	})
	return err
}

func bankFromDoc(doc bankDoc) *domain.BankAccount {
	return &domain.BankAccount{
		ID:               doc.ID,
		UserID:           doc.UserID,
		BankID:           doc.BankID,
		AccountID:        doc.AccountID,
		AccessToken:      doc.AccessToken,
		FundingSourceURL: doc.FundingSourceURL,
		ShareableID:      doc.ShareableID,
		CreatedAt:        unixToTime(doc.CreatedAt),
	}
}
