package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	Postgres *gorm.DB
	Mongo    *mongo.Database
}

// InitDB opens the PostgreSQL connection for principals and the
// MongoDB connection for marketplace documents.
func InitDB() (*Database, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	pgDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres connection failed: %v", err)
	}

	log.Println("Running PostgreSQL migrations...")
	err = pgDB.AutoMigrate(
		&model.User{},
		&model.Role{},
	)
	if err != nil {
		return nil, fmt.Errorf("postgres migration failed: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connection failed: %v", err)
	}

	if err := mongoClient.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %v", err)
	}

	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "crop_disease_advisory"
	}
	mongoDatabase := mongoClient.Database(mongoDBName)

	log.Println("Connected to PostgreSQL and MongoDB")

	return &Database{
		Postgres: pgDB,
		Mongo:    mongoDatabase,
	}, nil
}
