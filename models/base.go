package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ZeroID is the nil uuid. Clearing a table deletes every row whose id differs from it.
const ZeroID = "00000000-0000-0000-0000-000000000000"

// Base carries the columns every table shares.
type Base struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// BeforeCreate assigns a uuid when the caller did not provide one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Ordering is embedded by tables the admin console sorts and toggles.
type Ordering struct {
	SortOrder int  `gorm:"column:sort_order;not null;index" json:"sort_order"`
	IsActive  bool `gorm:"column:is_active;not null" json:"is_active"`
}

// ApplyDefaults makes rows active unless the payload says otherwise.
func (o *Ordering) ApplyDefaults() {
	o.IsActive = true
}

// All returns one value of every persisted model, in migration order.
func All() []any {
	return []any{
		&Admin{},
		&SiteSetting{},
		&HeroSlide{},
		&BusinessLine{},
		&BusinessAdvantage{},
		&BusinessImage{},
		&BusinessFeature{},
		&BusinessStat{},
		&Partner{},
		&News{},
		&Branch{},
		&Management{},
		&BoardOfDirector{},
		&BoardOfCommissioner{},
		&GCGCommittee{},
		&GCGPolicy{},
		&CorporateValue{},
		&CompanyTimeline{},
		&NavMenu{},
		&SEOSetting{},
		&SocialChannel{},
		&Career{},
		&JobApplication{},
		&ContactMessage{},
		&VisitorLog{},
		&InvestorCalendar{},
	}
}

// ResetIdentity clears server-owned columns so a client cannot choose them.
func (b *Base) ResetIdentity() {
	b.ID = ""
	b.CreatedAt = time.Time{}
	b.UpdatedAt = time.Time{}
}
