package models

// BusinessLine is one division of the company (distribution, logistics, ...).
// Advantages, images, features and stats reference it by BusinessLineID.
type BusinessLine struct {
	Base
	Ordering
	Slug          string `gorm:"column:slug;size:120;uniqueIndex" json:"slug"`
	TitleID       string `gorm:"column:title_id;size:255" json:"title_id"`
	TitleEN       string `gorm:"column:title_en;size:255" json:"title_en"`
	DescriptionID string `gorm:"column:description_id;type:text" json:"description_id"`
	DescriptionEN string `gorm:"column:description_en;type:text" json:"description_en"`
	Icon          string `gorm:"column:icon;size:100" json:"icon"`
	ImageURL      string `gorm:"column:image_url;size:512" json:"image_url"`
}

func (BusinessLine) TableName() string { return "business_lines" }

type BusinessAdvantage struct {
	Base
	Ordering
	BusinessLineID string `gorm:"column:business_line_id;type:varchar(36);index" json:"business_line_id"`
	TitleID        string `gorm:"column:title_id;size:255" json:"title_id"`
	TitleEN        string `gorm:"column:title_en;size:255" json:"title_en"`
	DescriptionID  string `gorm:"column:description_id;type:text" json:"description_id"`
	DescriptionEN  string `gorm:"column:description_en;type:text" json:"description_en"`
	Icon           string `gorm:"column:icon;size:100" json:"icon"`
}

func (BusinessAdvantage) TableName() string { return "business_advantages" }

type BusinessImage struct {
	Base
	Ordering
	BusinessLineID string `gorm:"column:business_line_id;type:varchar(36);index" json:"business_line_id"`
	ImageURL       string `gorm:"column:image_url;size:512" json:"image_url"`
	CaptionID      string `gorm:"column:caption_id;size:255" json:"caption_id"`
	CaptionEN      string `gorm:"column:caption_en;size:255" json:"caption_en"`
}

func (BusinessImage) TableName() string { return "business_images" }

type BusinessFeature struct {
	Base
	Ordering
	BusinessLineID string `gorm:"column:business_line_id;type:varchar(36);index" json:"business_line_id"`
	TextID         string `gorm:"column:text_id;size:255" json:"text_id"`
	TextEN         string `gorm:"column:text_en;size:255" json:"text_en"`
}

func (BusinessFeature) TableName() string { return "business_features" }

type BusinessStat struct {
	Base
	Ordering
	BusinessLineID string `gorm:"column:business_line_id;type:varchar(36);index" json:"business_line_id"`
	Value          string `gorm:"column:value;size:50" json:"value"`
	LabelID        string `gorm:"column:label_id;size:255" json:"label_id"`
	LabelEN        string `gorm:"column:label_en;size:255" json:"label_en"`
}

func (BusinessStat) TableName() string { return "business_stats" }
