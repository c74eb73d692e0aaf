package character

import (
	"errors"

	"github.com/forgeworks/itemforge-backend/internal/pkg/model"
	"github.com/forgeworks/itemforge-backend/internal/pkg/reject"
	"github.com/forgeworks/itemforge-backend/internal/pkg/store"
	"gorm.io/gorm"
)

const (
	characterNameRequired       string = "error.character.name-required"
	characterNameTaken          string = "error.character.name-taken"
	characterNotFound           string = "error.character.not-found"
	characterNotFoundOrNotOwned string = "error.character.not-found-or-not-owned"
)

const (
	startingLevel  = 1
	startingHealth = 500
	startingPower  = 100
	startingMoney  = 10000
)

type characterService struct {
	db *gorm.DB
}

// CharacterDetail is the read model for a character lookup. Money is a
// pointer on purpose: it is only populated when the viewer owns the
// character and omitted from the payload otherwise.
type CharacterDetail struct {
	Name   string `json:"name"`
	Level  int    `json:"level"`
	Health int    `json:"health"`
	Power  int    `json:"power"`
	Money  *int64 `json:"money,omitempty"`
}

func (s *characterService) create(ownerId uint64, name string) (*model.Character, *reject.ProblemWithTrace) {
	var existing model.Character
	result := s.db.Where("name = ?", name).First(&existing)
	if result.Error == nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.ConflictProblem("Character name already in use", characterNameTaken),
		}
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	character := model.Character{
		UserId: ownerId,
		Name:   name,
		Level:  startingLevel,
		Health: startingHealth,
		Power:  startingPower,
		Money:  startingMoney,
	}
	if result := s.db.Create(&character); result.Error != nil {
		if store.IsUniqueViolation(result.Error) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.ConflictProblem("Character name already in use", characterNameTaken),
				Cause:   result.Error,
			}
		}
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	return &character, nil
}

func (s *characterService) findByName(name string, viewerId uint64) (*CharacterDetail, *reject.ProblemWithTrace) {
	var character model.Character
	result := s.db.Where("name = ?", name).First(&character)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.MissingResourceProblem("Character not found", characterNotFound),
		}
	}
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	detail := &CharacterDetail{
		Name:   character.Name,
		Level:  character.Level,
		Health: character.Health,
		Power:  character.Power,
	}
	if character.UserId == viewerId {
		money := character.Money
		detail.Money = &money
	}

	return detail, nil
}

// deleteOwned removes a character and its inventory in one transaction.
// Name and owner are matched together so a missing character and someone
// else's character are indistinguishable to the caller.
func (s *characterService) deleteOwned(ownerId uint64, name string) *reject.ProblemWithTrace {
	var character model.Character
	result := s.db.Where("name = ? AND user_id = ?", name, ownerId).First(&character)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return &reject.ProblemWithTrace{
			Problem: reject.MissingResourceProblem("Character not found or not deletable", characterNotFoundOrNotOwned),
		}
	}
	if result.Error != nil {
		return &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// inventory rows first so no entry ever references a dead character
		if result := tx.Where("character_id = ?", character.Id).Delete(&model.InventoryEntry{}); result.Error != nil {
			return result.Error
		}
		if result := tx.Delete(&model.Character{}, character.Id); result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		return &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(err), Cause: err}
	}

	return nil
}
