package models

type Club struct {
	ID          string  `gorm:"column:id;primaryKey" json:"id"`
	Name        string  `gorm:"column:name" json:"name"`
	LogoURL     *string `gorm:"column:logo_url" json:"logoUrl"`
	CountryCode *string `gorm:"column:country_code" json:"countryCode"`
	StateCode   *string `gorm:"column:state_code" json:"stateCode"`
}

func (Club) TableName() string { return "clubs" }
