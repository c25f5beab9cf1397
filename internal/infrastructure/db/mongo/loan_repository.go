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

const loansCollection = "loans"

type LoanRepository struct {
	col *mongo.Collection
}

func NewLoanRepository(db *mongo.Database) *LoanRepository {
	return &LoanRepository{col: db.Collection(loansCollection)}
}

type mongoLoan struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Slug          string             `bson:"slug"`
	Description   string             `bson:"description"`
	InterestRate  float64            `bson:"interest_rate"`
	ProcessingFee float64            `bson:"processing_fee"`
	MaxAmount     float64            `bson:"max_amount"`
	MinAmount     float64            `bson:"min_amount"`
	TenureOptions []int              `bson:"tenure_options"`
	IsActive      bool               `bson:"is_active"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomainLoan(loan)
	doc.ID = primitive.NilObjectID
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("insert loan: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return toDomainLoan(doc), nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id string) (*domain.Loan, error) {
	oid, err := objectID(id, domain.ErrLoanNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoLoan
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("find loan: %w", err)
	}
	return toDomainLoan(doc), nil
}

func (r *LoanRepository) List(ctx context.Context, f ports.LoanFilter) ([]*domain.Loan, int64, error) {
	filter := bson.M{}
	if f.ActiveOnly {
		filter["is_active"] = true
	}
	if f.Search != "" {
		filter["$or"] = containsAny(f.Search, "title", "description")
	}
	if f.Type != "" {
		filter["title"] = contains(f.Type)
	}

	docs, total, err := findPage[mongoLoan](ctx, r.col, filter, f.Page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.Loan, len(docs))
	for i, d := range docs {
		out[i] = toDomainLoan(d)
	}
	return out, total, nil
}

// Update replaces the mutable fields of an existing loan.
func (r *LoanRepository) Update(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	oid, err := objectID(loan.ID, domain.ErrLoanNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"title":          loan.Title,
		"slug":           loan.Slug,
		"description":    loan.Description,
		"interest_rate":  loan.InterestRate,
		"processing_fee": loan.ProcessingFee,
		"max_amount":     loan.MaxAmount,
		"min_amount":     loan.MinAmount,
		"tenure_options": loan.TenureOptions,
		"is_active":      loan.IsActive,
		"updated_at":     loan.UpdatedAt.UTC(),
	}

	var doc mongoLoan
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrLoanNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update loan: %w", err)
	}
	return toDomainLoan(doc), nil
}

func (r *LoanRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrLoanNotFound)
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count loans: %w", err)
	}
	return n, nil
}

func (r *LoanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create loan indexes: %w", err)
	}
	return nil
}

func fromDomainLoan(l *domain.Loan) mongoLoan {
	var oid primitive.ObjectID
	if l.ID != "" {
		oid, _ = primitive.ObjectIDFromHex(l.ID)
	}
	return mongoLoan{
		ID:            oid,
		Title:         l.Title,
		Slug:          l.Slug,
		Description:   l.Description,
		InterestRate:  l.InterestRate,
		ProcessingFee: l.ProcessingFee,
		MaxAmount:     l.MaxAmount,
		MinAmount:     l.MinAmount,
		TenureOptions: l.TenureOptions,
		IsActive:      l.IsActive,
		CreatedAt:     l.CreatedAt.UTC(),
		UpdatedAt:     l.UpdatedAt.UTC(),
	}
}

func toDomainLoan(d mongoLoan) *domain.Loan {
	return &domain.Loan{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Slug:          d.Slug,
		Description:   d.Description,
		InterestRate:  d.InterestRate,
		ProcessingFee: d.ProcessingFee,
		MaxAmount:     d.MaxAmount,
		MinAmount:     d.MinAmount,
		TenureOptions: d.TenureOptions,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
