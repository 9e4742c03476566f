package db

import "gorm.io/gorm"

// Repositories bundles every store over one database handle.
type Repositories struct {
	Users         *UserRepository
	BoardMembers  *BoardMemberRepository
	Sessions      *SessionRepository
	FARecords     *FARecordRepository
	PARecords     *PARecordRepository
	Beneficiaries *BeneficiaryRepository
	RequestCounts *RequestCountRepository
	BudgetLogs    *BudgetLogRepository
	Frequencies   *MonthlyFrequencyRepository
	Activity      *ActivityRepository
	Catalog       *CatalogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		BoardMembers:  NewBoardMemberRepository(database),
		Sessions:      NewSessionRepository(database),
		FARecords:     NewFARecordRepository(database),
		PARecords:     NewPARecordRepository(database),
		Beneficiaries: NewBeneficiaryRepository(database),
		RequestCounts: NewRequestCountRepository(database),
		BudgetLogs:    NewBudgetLogRepository(database),
		Frequencies:   NewMonthlyFrequencyRepository(database),
		Activity:      NewActivityRepository(database),
		Catalog:       NewCatalogRepository(database),
	}
}
