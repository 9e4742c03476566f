package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/omspdev/omsp/internal/models"
)

var ErrDuplicateName = errors.New("name already exists")

type CatalogAdminRepository interface {
	ListFACaseTypes() ([]models.FACaseType, error)
	CreateFACaseType(caseType *models.FACaseType) error
	FACaseTypeNameExists(name string) (bool, error)
	ListPACategories() ([]models.PACategory, error)
	CreatePACategory(category *models.PACategory) error
	PACategoryNameExists(name string) (bool, error)
}

// CatalogService manages the FA case-type and PA category lists. Secretaries
// and the administrator may add entries; built-ins come from the seed.
type CatalogService struct {
	catalog    CatalogAdminRepository
	activity   *ActivityService
	thresholds TermThresholds
}

func NewCatalogService(catalog CatalogAdminRepository, activity *ActivityService, thresholds TermThresholds) *CatalogService {
	return &CatalogService{catalog: catalog, activity: activity, thresholds: thresholds}
}

// ListFACaseTypes is unrestricted: every page that renders an FA form needs it.
func (service *CatalogService) ListFACaseTypes() ([]models.FACaseType, error) {
	return service.catalog.ListFACaseTypes()
}

// ListPACategories is unrestricted like ListFACaseTypes.
func (service *CatalogService) ListPACategories() ([]models.PACategory, error) {
	return service.catalog.ListPACategories()
}

// CreateFACaseType adds a case type.
func (service *CatalogService) CreateFACaseType(session models.Session, name string, now time.Time) (models.FACaseType, error) {
	if err := Authorize(PermissionInput{Session: session, Now: now, Thresholds: service.thresholds}, ActionManageCategories); err != nil {
		return models.FACaseType{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.FACaseType{}, ErrInvalidInput
	}
	exists, err := service.catalog.FACaseTypeNameExists(name)
	if err != nil {
		return models.FACaseType{}, fmt.Errorf("check case type name: %w", err)
	}
	if exists {
		return models.FACaseType{}, ErrDuplicateName
	}

	caseType := models.FACaseType{Name: name, CreatedAt: now}
	if err := service.catalog.CreateFACaseType(&caseType); err != nil {
		return models.FACaseType{}, fmt.Errorf("create case type: %w", err)
	}
	if _, err := service.activity.Append(session, now, "Added FA case type", models.ActionTypeCreate, models.RecordTypeCaseType, caseType.ID, name); err != nil {
		return models.FACaseType{}, err
	}
	return caseType, nil
}

// CreatePACategory adds a PA category.
func (service *CatalogService) CreatePACategory(session models.Session, name string, now time.Time) (models.PACategory, error) {
	if err := Authorize(PermissionInput{Session: session, Now: now, Thresholds: service.thresholds}, ActionManageCategories); err != nil {
		return models.PACategory{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.PACategory{}, ErrInvalidInput
	}
	exists, err := service.catalog.PACategoryNameExists(name)
	if err != nil {
		return models.PACategory{}, fmt.Errorf("check category name: %w", err)
	}
	if exists {
		return models.PACategory{}, ErrDuplicateName
	}

	category := models.PACategory{Name: name, CreatedAt: now}
	if err := service.catalog.CreatePACategory(&category); err != nil {
		return models.PACategory{}, fmt.Errorf("create PA category: %w", err)
	}
	if _, err := service.activity.Append(session, now, "Added PA category", models.ActionTypeCreate, models.RecordTypePACategory, category.ID, name); err != nil {
		return models.PACategory{}, err
	}
	return category, nil
}
