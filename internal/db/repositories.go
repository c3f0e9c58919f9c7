package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	DailyLogs     *DailyLogRepository
	PeriodEntries *PeriodEntryRepository
	Symptoms      *SymptomRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		DailyLogs:     NewDailyLogRepository(database),
		PeriodEntries: NewPeriodEntryRepository(database),
		Symptoms:      NewSymptomRepository(database),
	}
}
