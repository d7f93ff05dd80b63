package models

type Partner struct {
	Base
	Ordering
	Name     string `gorm:"column:name;size:255" json:"name"`
	LogoURL  string `gorm:"column:logo_url;size:512" json:"logo_url"`
	Website  string `gorm:"column:website;size:512" json:"website"`
	Category string `gorm:"column:category;size:100;index" json:"category"`
}

func (Partner) TableName() string { return "partners" }
