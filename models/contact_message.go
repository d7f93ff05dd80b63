package models

type ContactMessage struct {
	Base
	Name    string `gorm:"column:name;size:255" json:"name"`
	Email   string `gorm:"column:email;size:150;index" json:"email"`
	Phone   string `gorm:"column:phone;size:50" json:"phone"`
	Company string `gorm:"column:company;size:255" json:"company"`
	Subject string `gorm:"column:subject;size:255" json:"subject"`
	Message string `gorm:"column:message;type:text" json:"message"`
	IsRead  bool   `gorm:"column:is_read;not null" json:"is_read"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
