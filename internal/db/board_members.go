package db

import (
	"github.com/omspdev/omsp/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoardMemberRepository persists board members and their secretary
// assignments.
type BoardMemberRepository struct {
	database *gorm.DB
}

func NewBoardMemberRepository(database *gorm.DB) *BoardMemberRepository {
	return &BoardMemberRepository{database: database}
}

func (repository *BoardMemberRepository) CreateBoardMember(member *models.BoardMember) error {
	return repository.database.Create(member).Error
}

func (repository *BoardMemberRepository) FindByID(boardMemberID string) (models.BoardMember, error) {
	var member models.BoardMember
	err := repository.database.First(&member, "id = ?", boardMemberID).Error
	return member, err
}

func (repository *BoardMemberRepository) FindByUserID(userID string) (models.BoardMember, error) {
	var member models.BoardMember
	err := repository.database.First(&member, "user_id = ?", userID).Error
	return member, err
}

func (repository *BoardMemberRepository) Save(member *models.BoardMember) error {
	return repository.database.Save(member).Error
}

// ListCurrent returns the non-archived board members.
func (repository *BoardMemberRepository) ListCurrent() ([]models.BoardMember, error) {
	members := make([]models.BoardMember, 0)
	err := repository.database.
		Where("is_archived = ?", false).
		Order("district_name").
		Find(&members).Error
	return members, err
}

func (repository *BoardMemberRepository) ListAll() ([]models.BoardMember, error) {
	members := make([]models.BoardMember, 0)
	err := repository.database.Order("district_name").Find(&members).Error
	return members, err
}

// CreateAssignment links a secretary to a board member. Re-creating an
// existing link is a no-op.
func (repository *BoardMemberRepository) CreateAssignment(secretaryUserID string, boardMemberID string) error {
	assignment := models.SecretaryAssignment{
		SecretaryUserID: secretaryUserID,
		BoardMemberID:   boardMemberID,
	}
	return repository.database.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignment).Error
}

func (repository *BoardMemberRepository) RemoveAssignment(secretaryUserID string, boardMemberID string) error {
	return repository.database.
		Where("secretary_user_id = ? AND board_member_id = ?", secretaryUserID, boardMemberID).
		Delete(&models.SecretaryAssignment{}).Error
}

// AssignedBoardMemberIDs lists the board members a secretary works for.
func (repository *BoardMemberRepository) AssignedBoardMemberIDs(secretaryUserID string) ([]string, error) {
	ids := make([]string, 0)
	err := repository.database.Model(&models.SecretaryAssignment{}).
		Where("secretary_user_id = ?", secretaryUserID).
		Order("board_member_id").
		Pluck("board_member_id", &ids).Error
	return ids, err
}
