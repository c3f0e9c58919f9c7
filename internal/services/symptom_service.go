package services

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/cycletrack/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidSymptomID              = errors.New("invalid symptom id")
	ErrInvalidSymptomName            = errors.New("invalid symptom name")
	ErrInvalidSymptomColor           = errors.New("invalid symptom color")
	ErrSymptomNotFound               = errors.New("symptom not found")
	ErrBuiltinSymptomDeleteForbidden = errors.New("built-in symptom cannot be deleted")
)

const (
	maxSymptomNameLength = 80
	defaultSymptomIcon   = "✨"
)

var hexSymptomColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type SymptomRepository interface {
	CountByUserAndIDs(userID uint, ids []uint) (int64, error)
	ListByUser(userID uint) ([]models.SymptomType, error)
	Create(symptom *models.SymptomType) error
	CreateBatch(symptoms []models.SymptomType) error
	FindByIDForUser(symptomID uint, userID uint) (models.SymptomType, error)
	Delete(symptom *models.SymptomType) error
}

type SymptomLogRepository interface {
	ListByUserRange(userID uint, from *time.Time, to *time.Time) ([]models.DailyLog, error)
	Save(entry *models.DailyLog) error
}

type SymptomService struct {
	symptoms SymptomRepository
	logs     SymptomLogRepository
}

func NewSymptomService(symptoms SymptomRepository, logs SymptomLogRepository) *SymptomService {
	return &SymptomService{symptoms: symptoms, logs: logs}
}

// SeedBuiltinSymptoms adds any builtin symptom the user does not have yet.
func (service *SymptomService) SeedBuiltinSymptoms(userID uint) error {
	existing, err := service.symptoms.ListByUser(userID)
	if err != nil {
		return err
	}
	names := make(map[string]struct{}, len(existing))
	for _, symptom := range existing {
		names[symptomKey(symptom.Name)] = struct{}{}
	}

	missing := make([]models.SymptomType, 0)
	for _, builtin := range models.DefaultBuiltinSymptoms() {
		if _, ok := names[symptomKey(builtin.Name)]; ok {
			continue
		}
		missing = append(missing, models.SymptomType{
			UserID:    userID,
			Name:      builtin.Name,
			Icon:      builtin.Icon,
			Color:     builtin.Color,
			IsBuiltin: true,
		})
	}
	return service.symptoms.CreateBatch(missing)
}

// List returns builtin symptoms in catalog order, then custom ones by name.
func (service *SymptomService) List(userID uint) ([]models.SymptomType, error) {
	symptoms, err := service.symptoms.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	order := make(map[string]int)
	for index, builtin := range models.DefaultBuiltinSymptoms() {
		order[symptomKey(builtin.Name)] = index
	}
	sort.SliceStable(symptoms, func(i, j int) bool {
		left, right := symptoms[i], symptoms[j]
		if left.IsBuiltin != right.IsBuiltin {
			return left.IsBuiltin
		}
		if left.IsBuiltin {
			leftIndex, leftKnown := order[symptomKey(left.Name)]
			rightIndex, rightKnown := order[symptomKey(right.Name)]
			if leftKnown && rightKnown {
				return leftIndex < rightIndex
			}
		}
		return symptomKey(left.Name) < symptomKey(right.Name)
	})
	return symptoms, nil
}

func (service *SymptomService) Create(userID uint, name string, icon string, color string) (models.SymptomType, error) {
	name = strings.TrimSpace(name)
	icon = strings.TrimSpace(icon)
	color = strings.TrimSpace(color)

	if name == "" || len([]rune(name)) > maxSymptomNameLength {
		return models.SymptomType{}, ErrInvalidSymptomName
	}
	if icon == "" {
		icon = defaultSymptomIcon
	}
	if !hexSymptomColorPattern.MatchString(color) {
		return models.SymptomType{}, ErrInvalidSymptomColor
	}

	symptom := models.SymptomType{UserID: userID, Name: name, Icon: icon, Color: color}
	if err := service.symptoms.Create(&symptom); err != nil {
		return models.SymptomType{}, fmt.Errorf("create symptom: %w", err)
	}
	return symptom, nil
}

// Delete removes a custom symptom and strips it from every logged day.
func (service *SymptomService) Delete(userID uint, symptomID uint) error {
	symptom, err := service.symptoms.FindByIDForUser(symptomID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSymptomNotFound
	}
	if err != nil {
		return fmt.Errorf("load symptom: %w", err)
	}
	if symptom.IsBuiltin {
		return ErrBuiltinSymptomDeleteForbidden
	}
	if err := service.symptoms.Delete(&symptom); err != nil {
		return fmt.Errorf("delete symptom: %w", err)
	}

	logs, err := service.logs.ListByUserRange(userID, nil, nil)
	if err != nil {
		return fmt.Errorf("clean symptom logs: %w", err)
	}
	for index := range logs {
		updated := RemoveUint(logs[index].SymptomIDs, symptom.ID)
		if len(updated) == len(logs[index].SymptomIDs) {
			continue
		}
		logs[index].SymptomIDs = updated
		if err := service.logs.Save(&logs[index]); err != nil {
			return fmt.Errorf("clean symptom logs: %w", err)
		}
	}
	return nil
}

// ValidateSymptomIDs deduplicates and sorts ids, and fails unless every id
// belongs to the user.
func (service *SymptomService) ValidateSymptomIDs(userID uint, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return []uint{}, nil
	}

	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	matched, err := service.symptoms.CountByUserAndIDs(userID, unique)
	if err != nil {
		return nil, err
	}
	if int(matched) != len(unique) {
		return nil, ErrInvalidSymptomID
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })
	return unique, nil
}

func symptomKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
