package model

type GameUser struct {
	Id           uint64 `json:"id"`
	LoginId      string `json:"loginId" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
}

func (GameUser) TableName() string {
	return "game_user"
}
