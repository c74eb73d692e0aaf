package model

type Character struct {
	Id     uint64 `json:"id"`
	UserId uint64 `json:"userId"`
	Name   string `json:"name" gorm:"uniqueIndex"`
	Level  int    `json:"level"`
	Health int    `json:"health"`
	Power  int    `json:"power"`
	Money  int64  `json:"money"`
}

func (Character) TableName() string {
	return "character"
}
