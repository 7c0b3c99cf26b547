package repository

import (
	"context"
	"time"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewUpdate carries the fields a specialist action writes onto a
// case. Notes is a pointer so approve can leave existing notes alone
// while review always overwrites them (possibly with ""). Medicines
// nil leaves the attached set unchanged.
type ReviewUpdate struct {
	Status     string
	Specialist uuid.UUID
	Notes      *string
	ReviewedAt time.Time
	Medicines  *[]primitive.ObjectID
}

// DiseaseRepository owns the diseases collection.
type DiseaseRepository interface {
	Create(ctx context.Context, d *model.Disease) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Disease, error)
	// Find returns cases matching the role-scoped filter, newest first.
	Find(ctx context.Context, filter bson.M) ([]model.Disease, error)
	// ApplyReview writes a review/approve transition. When
	// expectedStatus is non-empty the update only matches if the case
	// still has that status; a vanished match surfaces as
	// mongo.ErrNoDocuments and the caller decides between conflict
	// and not-found.
	ApplyReview(ctx context.Context, id primitive.ObjectID, upd ReviewUpdate, expectedStatus string) (*model.Disease, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type diseaseRepository struct {
	col *mongo.Collection
}

func NewDiseaseRepository(db *mongo.Database) DiseaseRepository {
	return &diseaseRepository{col: db.Collection("diseases")}
}

func (r *diseaseRepository) Create(ctx context.Context, d *model.Disease) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	if d.Medicines == nil {
		d.Medicines = []primitive.ObjectID{}
	}

	res, err := r.col.InsertOne(ctx, d)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

func (r *diseaseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Disease, error) {
	var d model.Disease
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *diseaseRepository) Find(ctx context.Context, filter bson.M) ([]model.Disease, error) {
	if filter == nil {
		filter = bson.M{}
	}

	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	diseases := []model.Disease{}
	if err := cur.All(ctx, &diseases); err != nil {
		return nil, err
	}
	return diseases, nil
}

func (r *diseaseRepository) ApplyReview(ctx context.Context, id primitive.ObjectID, upd ReviewUpdate, expectedStatus string) (*model.Disease, error) {
	filter := bson.M{"_id": id}
	if expectedStatus != "" {
		filter["status"] = expectedStatus
	}

	set := bson.M{
		"status":     upd.Status,
		"specialist": upd.Specialist,
		"reviewedAt": upd.ReviewedAt,
	}
	if upd.Notes != nil {
		set["specialistNotes"] = *upd.Notes
	}
	if upd.Medicines != nil {
		set["medicines"] = *upd.Medicines
	}

	var d model.Disease
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *diseaseRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 4)
	for _, status := range []string{
		model.DiseaseStatusPending,
		model.DiseaseStatusReviewed,
		model.DiseaseStatusApproved,
		model.DiseaseStatusRejected,
	} {
		n, err := r.col.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}
