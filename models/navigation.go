package models

import "gorm.io/datatypes"

type NavMenu struct {
	Base
	Ordering
	LabelID  string         `gorm:"column:label_id;size:120" json:"label_id"`
	LabelEN  string         `gorm:"column:label_en;size:120" json:"label_en"`
	Path     string         `gorm:"column:path;size:255" json:"path"`
	ParentID *string        `gorm:"column:parent_id;type:varchar(36);index" json:"parent_id"`
	Children datatypes.JSON `gorm:"column:children" json:"children"`
}

func (NavMenu) TableName() string { return "nav_menus" }

// SEOSetting holds per-page metadata keyed by route path.
type SEOSetting struct {
	Base
	Ordering
	PagePath       string         `gorm:"column:page_path;size:255;uniqueIndex" json:"page_path"`
	TitleID        string         `gorm:"column:title_id;size:255" json:"title_id"`
	TitleEN        string         `gorm:"column:title_en;size:255" json:"title_en"`
	DescriptionID  string         `gorm:"column:description_id;type:text" json:"description_id"`
	DescriptionEN  string         `gorm:"column:description_en;type:text" json:"description_en"`
	Keywords       string         `gorm:"column:keywords;type:text" json:"keywords"`
	OGImageURL     string         `gorm:"column:og_image_url;size:512" json:"og_image_url"`
	StructuredData datatypes.JSON `gorm:"column:structured_data" json:"structured_data"`
}

func (SEOSetting) TableName() string { return "seo_settings" }

type SocialChannel struct {
	Base
	Ordering
	Platform string `gorm:"column:platform;size:60" json:"platform"`
	Handle   string `gorm:"column:handle;size:120" json:"handle"`
	URL      string `gorm:"column:url;size:512" json:"url"`
	Icon     string `gorm:"column:icon;size:100" json:"icon"`
}

func (SocialChannel) TableName() string { return "social_channels" }
