package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	FailedLogins *FailedLoginRepository
	Names        *NameRepository
	Preferences  *PreferenceRepository
	Groups       *GroupRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		FailedLogins: NewFailedLoginRepository(database),
		Names:        NewNameRepository(database),
		Preferences:  NewPreferenceRepository(database),
		Groups:       NewGroupRepository(database),
	}
}
