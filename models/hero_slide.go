package models

type HeroSlide struct {
	Base
	Ordering
	TitleID    string `gorm:"column:title_id;size:255" json:"title_id"`
	TitleEN    string `gorm:"column:title_en;size:255" json:"title_en"`
	SubtitleID string `gorm:"column:subtitle_id;type:text" json:"subtitle_id"`
	SubtitleEN string `gorm:"column:subtitle_en;type:text" json:"subtitle_en"`
	ImageURL   string `gorm:"column:image_url;size:512" json:"image_url"`
	CTALabelID string `gorm:"column:cta_label_id;size:100" json:"cta_label_id"`
	CTALabelEN string `gorm:"column:cta_label_en;size:100" json:"cta_label_en"`
	CTALink    string `gorm:"column:cta_link;size:512" json:"cta_link"`
}

func (HeroSlide) TableName() string { return "hero_slides" }
