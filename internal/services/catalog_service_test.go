package services

import (
	"errors"
	"testing"

	"github.com/omspdev/omsp/internal/models"
	"github.com/rs/zerolog"
)

type stubCatalogAdmin struct {
	caseTypes  []models.FACaseType
	categories []models.PACategory
}

func (stub *stubCatalogAdmin) ListFACaseTypes() ([]models.FACaseType, error) {
	return stub.caseTypes, nil
}

func (stub *stubCatalogAdmin) CreateFACaseType(caseType *models.FACaseType) error {
	caseType.ID = newStubID("case", len(stub.caseTypes)+1)
	stub.caseTypes = append(stub.caseTypes, *caseType)
	return nil
}

func (stub *stubCatalogAdmin) FACaseTypeNameExists(name string) (bool, error) {
	for _, caseType := range stub.caseTypes {
		if caseType.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubCatalogAdmin) ListPACategories() ([]models.PACategory, error) {
	return stub.categories, nil
}

func (stub *stubCatalogAdmin) CreatePACategory(category *models.PACategory) error {
	category.ID = newStubID("cat", len(stub.categories)+1)
	stub.categories = append(stub.categories, *category)
	return nil
}

func (stub *stubCatalogAdmin) PACategoryNameExists(name string) (bool, error) {
	for _, category := range stub.categories {
		if category.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func newCatalogFixture() (*CatalogService, *stubCatalogAdmin, *stubActivityEntries) {
	catalog := &stubCatalogAdmin{}
	entries := &stubActivityEntries{}
	activity := NewActivityService(entries, zerolog.Nop())
	return NewCatalogService(catalog, activity, DefaultTermThresholds()), catalog, entries
}

func TestCreateFACaseTypeTrimsAndAudits(t *testing.T) {
	service, catalog, entries := newCatalogFixture()
	session := secretarySession("bm-1")

	caseType, err := service.CreateFACaseType(session, "  Calamity  ", assistanceNow)
	if err != nil {
		t.Fatalf("create case type failed: %v", err)
	}
	if caseType.Name != "Calamity" {
		t.Fatalf("name = %q, want trimmed", caseType.Name)
	}
	if len(catalog.caseTypes) != 1 || len(entries.entries) != 1 {
		t.Fatalf("stored %d case types, %d audit entries, want 1 and 1", len(catalog.caseTypes), len(entries.entries))
	}
}

func TestCreateFACaseTypeRejectsDuplicatesAndBlanks(t *testing.T) {
	service, _, _ := newCatalogFixture()
	session := secretarySession("bm-1")

	if _, err := service.CreateFACaseType(session, "Calamity", assistanceNow); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := service.CreateFACaseType(session, "Calamity", assistanceNow); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate = %v, want ErrDuplicateName", err)
	}
	if _, err := service.CreateFACaseType(session, "   ", assistanceNow); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank = %v, want ErrInvalidInput", err)
	}
}

func TestCreatePACategoryPermissions(t *testing.T) {
	service, catalog, _ := newCatalogFixture()

	if _, err := service.CreatePACategory(ownerSession(), "Legal Aid", assistanceNow); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("board member create = %v, want denied", err)
	}

	admin := models.Session{UserID: "user-admin", Role: models.RoleSysadmin}
	if _, err := service.CreatePACategory(admin, "Legal Aid", assistanceNow); err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if len(catalog.categories) != 1 {
		t.Fatalf("stored %d categories, want 1", len(catalog.categories))
	}
}
