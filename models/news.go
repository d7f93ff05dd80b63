package models

import "time"

type News struct {
	Base
	Ordering
	Slug        string     `gorm:"column:slug;size:200;uniqueIndex" json:"slug"`
	TitleID     string     `gorm:"column:title_id;size:255" json:"title_id"`
	TitleEN     string     `gorm:"column:title_en;size:255" json:"title_en"`
	ExcerptID   string     `gorm:"column:excerpt_id;type:text" json:"excerpt_id"`
	ExcerptEN   string     `gorm:"column:excerpt_en;type:text" json:"excerpt_en"`
	ContentID   string     `gorm:"column:content_id;type:text" json:"content_id"`
	ContentEN   string     `gorm:"column:content_en;type:text" json:"content_en"`
	ImageURL    string     `gorm:"column:image_url;size:512" json:"image_url"`
	Category    string     `gorm:"column:category;size:100;index" json:"category"`
	PublishedAt *time.Time `gorm:"column:published_at;index" json:"published_at"`
}

func (News) TableName() string { return "news" }
