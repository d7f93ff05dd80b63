package services

import (
	"context"
	"errors"
	"fmt"

	"cms-backend/models"

	"gorm.io/gorm"
)

// SiteSettingsPayload is the editable part of the settings row. The visitor
// counter is owned by analytics.
type SiteSettingsPayload struct {
	CompanyName string `json:"company_name" binding:"max=255"`
	TaglineID   string `json:"tagline_id" binding:"max=255"`
	TaglineEN   string `json:"tagline_en" binding:"max=255"`
	Address     string `json:"address"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"max=150"`
	WhatsApp    string `json:"whatsapp" binding:"max=50"`
	LogoURL     string `json:"logo_url" binding:"max=255"`
	FaviconURL  string `json:"favicon_url" binding:"max=255"`
	MapsEmbed   string `json:"maps_embed"`
}

var editableSettingColumns = []string{
	"company_name", "tagline_id", "tagline_en", "address", "phone",
	"email", "whatsapp", "logo_url", "favicon_url", "maps_embed",
}

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the settings row, or an empty one when none exists yet.
func (s *SettingsService) Get(ctx context.Context) (*models.SiteSetting, error) {
	var site models.SiteSetting
	if err := s.db.WithContext(ctx).Order("created_at ASC").First(&site).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.SiteSetting{}, nil
		}
		return nil, fmt.Errorf("load site settings: %w", err)
	}
	return &site, nil
}

// Update overwrites the editable columns, creating the row on first save.
func (s *SettingsService) Update(ctx context.Context, p SiteSettingsPayload) (*models.SiteSetting, error) {
	var site models.SiteSetting
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("created_at ASC").First(&site).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		site.CompanyName = p.CompanyName
		site.TaglineID = p.TaglineID
		site.TaglineEN = p.TaglineEN
		site.Address = p.Address
		site.Phone = p.Phone
		site.Email = p.Email
		site.WhatsApp = p.WhatsApp
		site.LogoURL = p.LogoURL
		site.FaviconURL = p.FaviconURL
		site.MapsEmbed = p.MapsEmbed

		if site.ID == "" {
			return tx.Create(&site).Error
		}
		if err := tx.Model(&site).Select(editableSettingColumns).Updates(&site).Error; err != nil {
			return err
		}
		return tx.First(&site, "id = ?", site.ID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("save site settings: %w", err)
	}
	return &site, nil
}
