package models

// SiteSetting is the single row of global site configuration.
type SiteSetting struct {
	Base
	CompanyName  string `gorm:"column:company_name;size:255" json:"company_name"`
	TaglineID    string `gorm:"column:tagline_id;size:255" json:"tagline_id"`
	TaglineEN    string `gorm:"column:tagline_en;size:255" json:"tagline_en"`
	Address      string `gorm:"column:address;type:text" json:"address"`
	Phone        string `gorm:"column:phone;size:50" json:"phone"`
	Email        string `gorm:"column:email;size:150" json:"email"`
	WhatsApp     string `gorm:"column:whatsapp;size:50" json:"whatsapp"`
	LogoURL      string `gorm:"column:logo_url;size:255" json:"logo_url"`
	FaviconURL   string `gorm:"column:favicon_url;size:255" json:"favicon_url"`
	MapsEmbed    string `gorm:"column:maps_embed;type:text" json:"maps_embed"`
	VisitorCount int64  `gorm:"column:visitor_count;not null;default:0" json:"visitor_count"`
}

func (SiteSetting) TableName() string { return "site_settings" }
