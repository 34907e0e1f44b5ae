package models

// Group is a two-person comparison group identified by a six character
// hexadecimal code that partners share out of band.
type Group struct {
	ID        uint   `gorm:"column:group_id;primaryKey"`
	GroupCode string `gorm:"column:group_code;uniqueIndex;not null"`
}

func (Group) TableName() string { return "groups" }

// GroupLink ties a user to a group. At most two links per group and at most
// two groups per user; both limits are enforced by the group service.
type GroupLink struct {
	UserID  uint `gorm:"column:user_id;primaryKey"`
	GroupID uint `gorm:"column:group_id;primaryKey"`
}

func (GroupLink) TableName() string { return "link_users" }
