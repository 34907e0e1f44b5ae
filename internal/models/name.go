package models

// Name is one entry of the names catalog. Gender uses the catalog's notation:
// F, M, ?F (mostly female), ?M (mostly male) or ? (neutral).
type Name struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	Gender string `gorm:"not null"`
}

func (Name) TableName() string { return "names" }

type Country struct {
	ID      uint   `gorm:"primaryKey"`
	Country string `gorm:"uniqueIndex;not null"`
}

func (Country) TableName() string { return "countries" }

// Population records how common a name is in one country. Negative values
// mean the name is known but too rare to rank.
type Population struct {
	ID        uint `gorm:"primaryKey"`
	NameID    uint `gorm:"column:name_id;not null;index"`
	CountryID uint `gorm:"column:country_id;not null;index"`
	Pop       int  `gorm:"column:pop;not null"`
}

func (Population) TableName() string { return "population" }

// SimilarName links a name to its similarity group; names sharing a group id
// are spelling or sound variants of each other.
type SimilarName struct {
	NameID  uint `gorm:"column:name_id;primaryKey"`
	GroupID uint `gorm:"column:group_id;not null;index"`
}

func (SimilarName) TableName() string { return "similar" }

type UserLiked struct {
	UserID uint `gorm:"column:user_id;primaryKey"`
	NameID uint `gorm:"column:name_id;primaryKey"`
}

func (UserLiked) TableName() string { return "user_liked" }

type UserDisliked struct {
	UserID uint `gorm:"column:user_id;primaryKey"`
	NameID uint `gorm:"column:name_id;primaryKey"`
}

func (UserDisliked) TableName() string { return "user_disliked" }
