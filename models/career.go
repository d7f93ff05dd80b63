package models

import (
	"time"

	"gorm.io/datatypes"
)

type Career struct {
	Base
	Ordering
	TitleID        string         `gorm:"column:title_id;size:255" json:"title_id"`
	TitleEN        string         `gorm:"column:title_en;size:255" json:"title_en"`
	Department     string         `gorm:"column:department;size:120" json:"department"`
	Location       string         `gorm:"column:location;size:120" json:"location"`
	EmploymentType string         `gorm:"column:employment_type;size:60" json:"employment_type"`
	DescriptionID  string         `gorm:"column:description_id;type:text" json:"description_id"`
	DescriptionEN  string         `gorm:"column:description_en;type:text" json:"description_en"`
	RequirementsID datatypes.JSON `gorm:"column:requirements_id" json:"requirements_id"`
	RequirementsEN datatypes.JSON `gorm:"column:requirements_en" json:"requirements_en"`
	ClosesAt       *time.Time     `gorm:"column:closes_at" json:"closes_at"`
}

func (Career) TableName() string { return "careers" }

// IsOpen reports whether the listing accepts applications at now.
func (c Career) IsOpen(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	return c.ClosesAt == nil || now.Before(*c.ClosesAt)
}

type JobApplication struct {
	Base
	CareerID    string `gorm:"column:career_id;type:varchar(36);index" json:"career_id"`
	FullName    string `gorm:"column:full_name;size:255" json:"full_name"`
	Email       string `gorm:"column:email;size:150;index" json:"email"`
	Phone       string `gorm:"column:phone;size:50" json:"phone"`
	ResumeURL   string `gorm:"column:resume_url;size:512" json:"resume_url"`
	CoverLetter string `gorm:"column:cover_letter;type:text" json:"cover_letter"`
	Status      string `gorm:"column:status;size:40;default:new" json:"status"`
}

func (JobApplication) TableName() string { return "job_applications" }
