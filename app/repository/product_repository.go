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

// ProductFilter narrows the marketplace listing: Category exact,
// Search substring-matched against the product name.
type ProductFilter struct {
	Category string
	Search   string
}

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	Find(ctx context.Context, f ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{col: db.Collection("products")}
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var p model.Product
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Find(ctx context.Context, f ProductFilter) ([]model.Product, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		filter["name"] = primitive.Regex{Pattern: f.Search, Options: "i"}
	}

	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []model.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Product, error) {
	var p model.Product
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
