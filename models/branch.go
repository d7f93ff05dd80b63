package models

type Branch struct {
	Base
	Ordering
	Name         string  `gorm:"column:name;size:255" json:"name"`
	City         string  `gorm:"column:city;size:120;index" json:"city"`
	Province     string  `gorm:"column:province;size:120" json:"province"`
	Address      string  `gorm:"column:address;type:text" json:"address"`
	Phone        string  `gorm:"column:phone;size:50" json:"phone"`
	Email        string  `gorm:"column:email;size:150" json:"email"`
	Latitude     float64 `gorm:"column:latitude" json:"latitude"`
	Longitude    float64 `gorm:"column:longitude" json:"longitude"`
	IsHeadOffice bool    `gorm:"column:is_head_office;not null" json:"is_head_office"`
}

func (Branch) TableName() string { return "branches" }
