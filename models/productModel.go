package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:191" binding:"required"`
}

type SubCategory struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:191" binding:"required"`
}

type Product struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	Category    string         `json:"category" binding:"required"`
	SubCategory string         `json:"subCategory" binding:"required"`
	Sizes       datatypes.JSON `json:"sizes"`
	Images      datatypes.JSON `json:"images" binding:"required"`
	Bestseller  bool           `json:"bestseller"`
}
