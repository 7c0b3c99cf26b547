package repository

import (
	"context"
	"time"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MedicineFilter mirrors the catalog query surface: disease and
// cropType are case-insensitive substring matches, priceCategory and
// status are exact. Empty fields are ignored.
type MedicineFilter struct {
	Disease       string
	CropType      string
	PriceCategory string
	Status        string
}

// MedicineRepository owns the medicines collection.
type MedicineRepository interface {
	Create(ctx context.Context, m *model.Medicine) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Medicine, error)
	// Find returns matches ordered by price ascending.
	Find(ctx context.Context, f MedicineFilter) ([]model.Medicine, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Medicine, error)
	// Update merges the given fields and returns the updated document.
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Medicine, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// FindApprovalCandidates runs the auto-selection query: approved
	// medicines whose cropType matches the case's crop, and whose
	// disease matches the predicted label OR anything at all (the
	// permissive fallback arm). strict drops the fallback arm.
	FindApprovalCandidates(ctx context.Context, disease, cropType string, strict bool) ([]model.Medicine, error)
	Count(ctx context.Context) (int64, error)
}

type medicineRepository struct {
	col *mongo.Collection
}

func NewMedicineRepository(db *mongo.Database) MedicineRepository {
	return &medicineRepository{col: db.Collection("medicines")}
}

func (r *medicineRepository) Create(ctx context.Context, m *model.Medicine) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

func (r *medicineRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Medicine, error) {
	var m model.Medicine
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medicineRepository) Find(ctx context.Context, f MedicineFilter) ([]model.Medicine, error) {
	filter := bson.M{}
	if f.Disease != "" {
		filter["disease"] = primitive.Regex{Pattern: f.Disease, Options: "i"}
	}
	if f.CropType != "" {
		filter["cropType"] = primitive.Regex{Pattern: f.CropType, Options: "i"}
	}
	if f.PriceCategory != "" {
		filter["priceCategory"] = f.PriceCategory
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "price", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	medicines := []model.Medicine{}
	if err := cur.All(ctx, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *medicineRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Medicine, error) {
	if len(ids) == 0 {
		return []model.Medicine{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	medicines := []model.Medicine{}
	if err := cur.All(ctx, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *medicineRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Medicine, error) {
	var m model.Medicine
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medicineRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *medicineRepository) FindApprovalCandidates(ctx context.Context, disease, cropType string, strict bool) ([]model.Medicine, error) {
	diseaseMatch := bson.M{"disease": primitive.Regex{Pattern: disease, Options: "i"}}

	filter := bson.M{
		"cropType": primitive.Regex{Pattern: cropType, Options: "i"},
		"status":   model.MedicineStatusApproved,
	}
	if strict {
		filter["disease"] = diseaseMatch["disease"]
	} else {
		// Matches the specific disease or, through the catch-all
		// regex, any disease string for the crop type.
		filter["$or"] = []bson.M{
			diseaseMatch,
			{"disease": primitive.Regex{Pattern: ".*", Options: "i"}},
		}
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	medicines := []model.Medicine{}
	if err := cur.All(ctx, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *medicineRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
