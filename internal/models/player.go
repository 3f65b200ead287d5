package models

// Player is a roster row. MarketValue is stored in millions of EUR.
type Player struct {
	ID           string   `gorm:"column:id;primaryKey" json:"id"`
	Name         string   `gorm:"column:name" json:"name"`
	Age          *float64 `gorm:"column:age" json:"age"`
	Position     *string  `gorm:"column:position" json:"position"`
	MarketValue  *float64 `gorm:"column:market_value" json:"marketValue"`
	DominantFoot *string  `gorm:"column:dominant_foot" json:"dominantFoot"`
	Agency       *string  `gorm:"column:agency" json:"agency"`
	Situation    *string  `gorm:"column:situation" json:"situation"`
	PhotoURL     *string  `gorm:"column:photo_url" json:"photoUrl"`
	ClubID       *string  `gorm:"column:club_id" json:"clubId"`
	Club         *Club    `gorm:"foreignKey:ClubID;references:ID" json:"club,omitempty"`
}

func (Player) TableName() string { return "players" }
