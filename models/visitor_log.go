package models

type VisitorLog struct {
	Base
	Page       string `gorm:"column:page;size:512" json:"page"`
	Referrer   string `gorm:"column:referrer;size:512" json:"referrer"`
	Country    string `gorm:"column:country;size:80;index" json:"country"`
	City       string `gorm:"column:city;size:120" json:"city"`
	Browser    string `gorm:"column:browser;size:60" json:"browser"`
	OS         string `gorm:"column:os;size:60" json:"os"`
	DeviceType string `gorm:"column:device_type;size:20;index" json:"device_type"`
	UserAgent  string `gorm:"column:user_agent;type:text" json:"user_agent"`
}

func (VisitorLog) TableName() string { return "visitor_logs" }
