package model

// UserProfile is 1:1 with GameUser and is only ever created inside the
// same transaction as its user.
type UserProfile struct {
	Id     uint64 `json:"id"`
	UserId uint64 `json:"userId" gorm:"uniqueIndex"`
	Name   string `json:"name"`
}

func (UserProfile) TableName() string {
	return "user_profile"
}
