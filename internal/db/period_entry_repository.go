package db

import (
	"github.com/terraincognita07/cycletrack/internal/models"
	"gorm.io/gorm"
)

type PeriodEntryRepository struct {
	database *gorm.DB
}

func NewPeriodEntryRepository(database *gorm.DB) *PeriodEntryRepository {
	return &PeriodEntryRepository{database: database}
}

func (repo *PeriodEntryRepository) ListByUser(userID uint) ([]models.PeriodEntry, error) {
	entries := make([]models.PeriodEntry, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("start_date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *PeriodEntryRepository) Create(entry *models.PeriodEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *PeriodEntryRepository) FindByIDForUser(entryID uint, userID uint) (models.PeriodEntry, error) {
	entry := models.PeriodEntry{}
	if err := repo.database.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return models.PeriodEntry{}, err
	}
	return entry, nil
}

func (repo *PeriodEntryRepository) Delete(entry *models.PeriodEntry) error {
	return repo.database.Delete(entry).Error
}
