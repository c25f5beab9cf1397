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

const applicationsCollection = "applications"

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(applicationsCollection)}
}

type mongoApplication struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        primitive.ObjectID `bson:"user_id"`
	LoanAmount    float64            `bson:"loan_amount"`
	LoanType      string             `bson:"loan_type"`
	TenureYears   float64            `bson:"tenure_years"`
	MonthlyIncome float64            `bson:"monthly_income"`
	FullName      string             `bson:"full_name"`
	Phone         string             `bson:"phone"`
	Email         string             `bson:"email"`
	DOB           time.Time          `bson:"dob"`
	Address       domain.Address     `bson:"address"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	uid, err := primitive.ObjectIDFromHex(app.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoApplication{
		UserID:        uid,
		LoanAmount:    app.LoanAmount,
		LoanType:      app.LoanType,
		TenureYears:   app.TenureYears,
		MonthlyIncome: app.MonthlyIncome,
		FullName:      app.FullName,
		Phone:         app.Phone,
		Email:         domain.NormalizeEmail(app.Email),
		DOB:           app.DOB.UTC(),
		Address:       app.Address,
		Status:        string(app.Status),
		CreatedAt:     app.CreatedAt.UTC(),
		UpdatedAt:     app.UpdatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return toDomainApplication(doc), nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	oid, err := objectID(id, domain.ErrApplicationNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoApplication
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return toDomainApplication(doc), nil
}

func (r *ApplicationRepository) List(ctx context.Context, f ports.ApplicationFilter) ([]*domain.Application, int64, error) {
	filter := bson.M{}
	if f.UserID != "" {
		uid, err := primitive.ObjectIDFromHex(f.UserID)
		if err != nil {
			return []*domain.Application{}, 0, nil
		}
		filter["user_id"] = uid
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.LoanType != "" {
		filter["loan_type"] = contains(f.LoanType)
	}
	if f.Search != "" {
		filter["$or"] = containsAny(f.Search, "full_name", "phone", "email", "loan_type")
	}

	docs, total, err := findPage[mongoApplication](ctx, r.col, filter, f.Page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.Application, len(docs))
	for i, d := range docs {
		out[i] = toDomainApplication(d)
	}
	return out, total, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	oid, err := objectID(id, domain.ErrApplicationNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}}
	var doc mongoApplication
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return toDomainApplication(doc), nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrApplicationNotFound)
}

func (r *ApplicationRepository) Count(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create application indexes: %w", err)
	}
	return nil
}

func toDomainApplication(d mongoApplication) *domain.Application {
	return &domain.Application{
		ID:            d.ID.Hex(),
		UserID:        d.UserID.Hex(),
		LoanAmount:    d.LoanAmount,
		LoanType:      d.LoanType,
		TenureYears:   d.TenureYears,
		MonthlyIncome: d.MonthlyIncome,
		FullName:      d.FullName,
		Phone:         d.Phone,
		Email:         d.Email,
		DOB:           d.DOB,
		Address:       d.Address,
		Status:        domain.ApplicationStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
