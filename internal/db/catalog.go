package db

import (
	"github.com/omspdev/omsp/internal/models"
	"gorm.io/gorm"
)

// CatalogRepository persists the FA case-type and PA category lists.
type CatalogRepository struct {
	database *gorm.DB
}

func NewCatalogRepository(database *gorm.DB) *CatalogRepository {
	return &CatalogRepository{database: database}
}

func (repository *CatalogRepository) ListFACaseTypes() ([]models.FACaseType, error) {
	caseTypes := make([]models.FACaseType, 0)
	err := repository.database.Order("name").Find(&caseTypes).Error
	return caseTypes, err
}

func (repository *CatalogRepository) CreateFACaseType(caseType *models.FACaseType) error {
	return repository.database.Create(caseType).Error
}

func (repository *CatalogRepository) FACaseTypeExists(caseTypeID string) (bool, error) {
	var count int64
	err := repository.database.Model(&models.FACaseType{}).Where("id = ?", caseTypeID).Count(&count).Error
	return count > 0, err
}

func (repository *CatalogRepository) FACaseTypeNameExists(name string) (bool, error) {
	var count int64
	err := repository.database.Model(&models.FACaseType{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (repository *CatalogRepository) ListPACategories() ([]models.PACategory, error) {
	categories := make([]models.PACategory, 0)
	err := repository.database.Order("name").Find(&categories).Error
	return categories, err
}

func (repository *CatalogRepository) CreatePACategory(category *models.PACategory) error {
	return repository.database.Create(category).Error
}

func (repository *CatalogRepository) PACategoryExists(categoryID string) (bool, error) {
	var count int64
	err := repository.database.Model(&models.PACategory{}).Where("id = ?", categoryID).Count(&count).Error
	return count > 0, err
}

func (repository *CatalogRepository) PACategoryNameExists(name string) (bool, error) {
	var count int64
	err := repository.database.Model(&models.PACategory{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
