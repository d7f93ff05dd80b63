package models

import "time"

type CorporateValue struct {
	Base
	Ordering
	TitleID       string `gorm:"column:title_id;size:255" json:"title_id"`
	TitleEN       string `gorm:"column:title_en;size:255" json:"title_en"`
	DescriptionID string `gorm:"column:description_id;type:text" json:"description_id"`
	DescriptionEN string `gorm:"column:description_en;type:text" json:"description_en"`
	Icon          string `gorm:"column:icon;size:100" json:"icon"`
}

func (CorporateValue) TableName() string { return "corporate_values" }

type CompanyTimeline struct {
	Base
	Ordering
	Year          string `gorm:"column:year;size:10;index" json:"year"`
	TitleID       string `gorm:"column:title_id;size:255" json:"title_id"`
	TitleEN       string `gorm:"column:title_en;size:255" json:"title_en"`
	DescriptionID string `gorm:"column:description_id;type:text" json:"description_id"`
	DescriptionEN string `gorm:"column:description_en;type:text" json:"description_en"`
	ImageURL      string `gorm:"column:image_url;size:512" json:"image_url"`
}

func (CompanyTimeline) TableName() string { return "company_timeline" }

// InvestorCalendar lists shareholder meetings, earnings releases and similar events.
type InvestorCalendar struct {
	Base
	Ordering
	EventDate     time.Time `gorm:"column:event_date;index" json:"event_date"`
	TitleID       string    `gorm:"column:title_id;size:255" json:"title_id"`
	TitleEN       string    `gorm:"column:title_en;size:255" json:"title_en"`
	DescriptionID string    `gorm:"column:description_id;type:text" json:"description_id"`
	DescriptionEN string    `gorm:"column:description_en;type:text" json:"description_en"`
	Location      string    `gorm:"column:location;size:255" json:"location"`
}

func (InvestorCalendar) TableName() string { return "investor_calendar" }
