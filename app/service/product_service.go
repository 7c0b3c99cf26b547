package service

import (
	"errors"
	"net/http"
	"time"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/repository"
	"github.com/hridayesh-25/CropDiseaseAdvisory/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductService is the agri-product marketplace catalog.
type ProductService interface {
	GetProducts(ctx *gin.Context)
	GetProduct(ctx *gin.Context)
	CreateProduct(ctx *gin.Context)
	UpdateProduct(ctx *gin.Context)
	DeleteProduct(ctx *gin.Context)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// GET /api/products
func (s *productService) GetProducts(ctx *gin.Context) {
	products, err := s.productRepo.Find(ctx.Request.Context(), repository.ProductFilter{
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch products", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Products fetched", products))
}

// GET /api/products/:id
func (s *productService) GetProduct(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid product id", err.Error(), nil))
		return
	}

	product, err := s.productRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Product not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch product", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Product fetched", product))
}

type productInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"omitempty,min=0"`
	Rating      float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	Image       string  `json:"image"`
}

// POST /api/products
func (s *productService) CreateProduct(ctx *gin.Context) {
	var input productInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid product payload", err.Error(), nil))
		return
	}

	if !model.ValidProductCategories[input.Category] {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid product category", input.Category, nil))
		return
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		Rating:      input.Rating,
		Image:       input.Image,
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx.Request.Context(), product); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to create product", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusCreated,
		utils.BuildResponseSuccess("Product created", product))
}

type productPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Rating      *float64 `json:"rating"`
	Image       *string  `json:"image"`
}

// PUT /api/products/:id
func (s *productService) UpdateProduct(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid product id", err.Error(), nil))
		return
	}

	var patch productPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid product payload", err.Error(), nil))
		return
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		if !model.ValidProductCategories[*patch.Category] {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Invalid product category", *patch.Category, nil))
			return
		}
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}

	if len(set) == 0 {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("No fields to update", "empty_patch", nil))
		return
	}

	product, err := s.productRepo.Update(ctx.Request.Context(), id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Product not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to update product", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Product updated", product))
}

// DELETE /api/products/:id
func (s *productService) DeleteProduct(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid product id", err.Error(), nil))
		return
	}

	if err := s.productRepo.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Product not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to delete product", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Product deleted", nil))
}
