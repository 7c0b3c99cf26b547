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

// LandFilter narrows the public land listing. Status defaults to
// "available" in the service when the caller sends none.
type LandFilter struct {
	Status   string
	City     string
	State    string
	MinPrice *float64
	MaxPrice *float64
}

type LandRepository interface {
	Create(ctx context.Context, l *model.CropLand) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.CropLand, error)
	Find(ctx context.Context, f LandFilter) ([]model.CropLand, error)
	FindByOwner(ctx context.Context, owner uuid.UUID) ([]model.CropLand, error)
	// Replace writes back a mutated listing (lease, owner edits).
	Replace(ctx context.Context, l *model.CropLand) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type landRepository struct {
	col *mongo.Collection
}

func NewLandRepository(db *mongo.Database) LandRepository {
	return &landRepository{col: db.Collection("lands")}
}

func (r *landRepository) Create(ctx context.Context, l *model.CropLand) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	if l.Status == "" {
		l.Status = model.LandStatusAvailable
	}

	res, err := r.col.InsertOne(ctx, l)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid
	}
	return nil
}

func (r *landRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.CropLand, error) {
	var l model.CropLand
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *landRepository) Find(ctx context.Context, f LandFilter) ([]model.CropLand, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.City != "" {
		filter["location.city"] = primitive.Regex{Pattern: f.City, Options: "i"}
	}
	if f.State != "" {
		filter["location.state"] = primitive.Regex{Pattern: f.State, Options: "i"}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}

	return r.findSorted(ctx, filter)
}

func (r *landRepository) FindByOwner(ctx context.Context, owner uuid.UUID) ([]model.CropLand, error) {
	return r.findSorted(ctx, bson.M{"owner": owner})
}

func (r *landRepository) findSorted(ctx context.Context, filter bson.M) ([]model.CropLand, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	lands := []model.CropLand{}
	if err := cur.All(ctx, &lands); err != nil {
		return nil, err
	}
	return lands, nil
}

func (r *landRepository) Replace(ctx context.Context, l *model.CropLand) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *landRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
