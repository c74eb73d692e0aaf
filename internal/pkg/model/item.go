package model

// Item is a catalog template. Price is immutable once the row exists.
type Item struct {
	Id          uint64 `json:"itemId"`
	Name        string `json:"name"`
	Health      int    `json:"health"`
	Power       int    `json:"power"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

func (Item) TableName() string {
	return "item"
}
