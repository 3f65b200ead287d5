package models

import "time"

// Transfer is a market transaction. Fee is in EUR, unscaled.
type Transfer struct {
	ID                 string     `gorm:"column:id;primaryKey" json:"id"`
	AthleteName        *string    `gorm:"column:athlete_name" json:"athleteName"`
	AthleteAge         *int       `gorm:"column:athlete_age" json:"athleteAge"`
	AthletePosition    *string    `gorm:"column:athlete_position" json:"athletePosition"`
	OriginClub         *string    `gorm:"column:origin_club" json:"originClub"`
	DestinationClub    *string    `gorm:"column:destination_club" json:"destinationClub"`
	DestinationCountry *string    `gorm:"column:destination_country" json:"destinationCountry"`
	TransferDate       *time.Time `gorm:"column:transfer_date" json:"transferDate"`
	Fee                *float64   `gorm:"column:fee" json:"fee"`
}

func (Transfer) TableName() string { return "transfers" }
