package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/footloft/footloft-api/initializers"
	"github.com/footloft/footloft-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	productCacheKey = "products:all"
	productCacheTTL = 5 * time.Minute
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func invalidateProductCache() {
	if initializers.Cache == nil {
		return
	}
	if err := initializers.Cache.Del(context.Background(), productCacheKey).Err(); err != nil {
		log.Println("Failed to invalidate product cache:", err)
	}
}

// Product handlers
func CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	invalidateProductCache()
	ctx.JSON(http.StatusCreated, product)
}

// GetProducts lists the catalog. Category and sub-category filters are
// comma-separated and OR within their dimension; combining both
// requires a match in each. Search matches the product name only.
func GetProducts(ctx *gin.Context) {
	var products []models.Product

	category := ctx.Query("category")
	subCategory := ctx.Query("subcategory")
	bestseller := ctx.Query("bestseller")
	search := ctx.Query("search")

	unfiltered := category == "" && subCategory == "" && bestseller == "" && search == ""

	if unfiltered && initializers.Cache != nil {
		cached, err := initializers.Cache.Get(ctx.Request.Context(), productCacheKey).Result()
		if err == nil {
			if jsonErr := json.Unmarshal([]byte(cached), &products); jsonErr == nil {
				ctx.JSON(http.StatusOK, gin.H{"products": products})
				return
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Println("Product cache read failed:", err)
		}
	}

	query := initializers.DB.Model(&models.Product{})

	if category != "" {
		query = query.Where("category IN ?", strings.Split(category, ","))
	}
	if subCategory != "" {
		query = query.Where("sub_category IN ?", strings.Split(subCategory, ","))
	}
	if bestseller == "true" {
		query = query.Where("bestseller = ?", true)
	}
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if result := query.Order("created_at desc").Find(&products); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	if unfiltered && initializers.Cache != nil {
		if payload, err := json.Marshal(products); err == nil {
			if err := initializers.Cache.Set(ctx.Request.Context(), productCacheKey, payload, productCacheTTL).Err(); err != nil {
				log.Println("Product cache write failed:", err)
			}
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

func GetProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	result := initializers.DB.First(&product, productId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func UpdateProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, productId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	var update models.Product
	if err := ctx.ShouldBindJSON(&update); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	update.ID = product.ID
	update.CreatedAt = product.CreatedAt
	if result := initializers.DB.Save(&update); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", result.Error)
		return
	}

	invalidateProductCache()
	ctx.JSON(http.StatusOK, update)
}

// DeleteProduct removes the product permanently. Existing order items
// keep their snapshots; they are never joined back to the catalog.
func DeleteProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	result := initializers.DB.Unscoped().Delete(&models.Product{}, productId)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	invalidateProductCache()
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader(ctx context.Context) (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadImage stores a single image in S3 and returns its public URL.
func UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No file provided", err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Unable to read file", err)
		return
	}
	defer f.Close()

	uploader, err := getAWSUploader(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	key := fmt.Sprintf("footloft_products/%s%s", uuid.New().String(), filepath.Ext(file.Filename))

	result, err := uploader.Upload(ctx.Request.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(initializers.Getenv("S3_BUCKET", "footloft")),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"url": result.Location})
}
