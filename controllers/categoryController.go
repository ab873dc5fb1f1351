package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/footloft/footloft-api/initializers"
	"github.com/footloft/footloft-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if result := initializers.DB.Order("name asc").Find(&categories); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Name is required", err)
		return
	}

	if err := initializers.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondWithError(ctx, http.StatusBadRequest, "Category already exists", nil)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func DeleteCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	result := initializers.DB.Unscoped().Delete(&models.Category{}, categoryId)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func GetSubCategories(ctx *gin.Context) {
	var subCategories []models.SubCategory
	if result := initializers.DB.Order("name asc").Find(&subCategories); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch sub-categories", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"subCategories": subCategories})
}

func CreateSubCategory(ctx *gin.Context) {
	var subCategory models.SubCategory
	if err := ctx.ShouldBindJSON(&subCategory); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Name is required", err)
		return
	}

	if err := initializers.DB.Create(&subCategory).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondWithError(ctx, http.StatusBadRequest, "Sub-category already exists", nil)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create sub-category", err)
		return
	}

	ctx.JSON(http.StatusCreated, subCategory)
}

func DeleteSubCategory(ctx *gin.Context) {
	subCategoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid sub-category ID", err)
		return
	}

	result := initializers.DB.Unscoped().Delete(&models.SubCategory{}, subCategoryId)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete sub-category", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Sub-category not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sub-category deleted"})
}
