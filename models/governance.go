package models

// Person is the profile shape shared by management and both boards.
type Person struct {
	Name       string `gorm:"column:name;size:255" json:"name"`
	PositionID string `gorm:"column:position_id;size:255" json:"position_id"`
	PositionEN string `gorm:"column:position_en;size:255" json:"position_en"`
	BioID      string `gorm:"column:bio_id;type:text" json:"bio_id"`
	BioEN      string `gorm:"column:bio_en;type:text" json:"bio_en"`
	PhotoURL   string `gorm:"column:photo_url;size:512" json:"photo_url"`
}

type Management struct {
	Base
	Ordering
	Person
}

func (Management) TableName() string { return "management" }

type BoardOfDirector struct {
	Base
	Ordering
	Person
}

func (BoardOfDirector) TableName() string { return "board_of_directors" }

type BoardOfCommissioner struct {
	Base
	Ordering
	Person
	IsIndependent bool `gorm:"column:is_independent;not null" json:"is_independent"`
}

func (BoardOfCommissioner) TableName() string { return "board_of_commissioners" }

// GCGCommittee is a good-corporate-governance committee (audit, nomination, ...).
type GCGCommittee struct {
	Base
	Ordering
	NameID        string `gorm:"column:name_id;size:255" json:"name_id"`
	NameEN        string `gorm:"column:name_en;size:255" json:"name_en"`
	DescriptionID string `gorm:"column:description_id;type:text" json:"description_id"`
	DescriptionEN string `gorm:"column:description_en;type:text" json:"description_en"`
	Chairman      string `gorm:"column:chairman;size:255" json:"chairman"`
	Members       string `gorm:"column:members;type:text" json:"members"`
}

func (GCGCommittee) TableName() string { return "gcg_committees" }

type GCGPolicy struct {
	Base
	Ordering
	TitleID       string `gorm:"column:title_id;size:255" json:"title_id"`
	TitleEN       string `gorm:"column:title_en;size:255" json:"title_en"`
	DescriptionID string `gorm:"column:description_id;type:text" json:"description_id"`
	DescriptionEN string `gorm:"column:description_en;type:text" json:"description_en"`
	DocumentURL   string `gorm:"column:document_url;size:512" json:"document_url"`
}

func (GCGPolicy) TableName() string { return "gcg_policies" }
