package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

const quotesCollection = "quotes"

type QuoteRepository struct {
	col *mongo.Collection
}

func NewQuoteRepository(db *mongo.Database) *QuoteRepository {
	return &QuoteRepository{col: db.Collection(quotesCollection)}
}

type mongoQuote struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Phone      string             `bson:"phone"`
	LoanAmount float64            `bson:"loan_amount"`
	LoanType   string             `bson:"loan_type"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (r *QuoteRepository) Create(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoQuote{
		Name:       q.Name,
		Phone:      q.Phone,
		LoanAmount: q.LoanAmount,
		LoanType:   q.LoanType,
		Status:     string(q.Status),
		CreatedAt:  q.CreatedAt.UTC(),
		UpdatedAt:  q.UpdatedAt.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert quote: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return toDomainQuote(doc), nil
}

func (r *QuoteRepository) List(ctx context.Context, f ports.QuoteFilter) ([]*domain.Quote, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["$or"] = containsAny(f.Search, "name", "phone", "loan_type")
	}

	docs, total, err := findPage[mongoQuote](ctx, r.col, filter, f.Page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.Quote, len(docs))
	for i, d := range docs {
		out[i] = toDomainQuote(d)
	}
	return out, total, nil
}

func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) (*domain.Quote, error) {
	oid, err := objectID(id, domain.ErrQuoteNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}}
	var doc mongoQuote
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	return toDomainQuote(doc), nil
}

func (r *QuoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create quote indexes: %w", err)
	}
	return nil
}

func toDomainQuote(d mongoQuote) *domain.Quote {
	return &domain.Quote{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Phone:      d.Phone,
		LoanAmount: d.LoanAmount,
		LoanType:   d.LoanType,
		Status:     domain.QuoteStatus(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
