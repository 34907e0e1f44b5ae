package services

import (
	"errors"
	"strings"

	"pickaname/internal/db"
	"pickaname/internal/models"
	"pickaname/internal/security"
)

const (
	// GroupCodeBytes of entropy per group code; rendered as 6 hex characters.
	GroupCodeBytes = 3

	// MaxGroupsPerUser and MaxGroupMembers pin groups to pairs: each user
	// sits in at most two groups and each group holds at most two users.
	MaxGroupsPerUser = 2
	MaxGroupMembers  = 2

	// codeAttempts bounds the collision-retry loop when minting a code.
	codeAttempts = 16
)

var errCodeSpaceExhausted = errors.New("could not mint an unused group code")

type GroupStore interface {
	CodeExists(code string) (bool, error)
	FindByCode(code string) (models.Group, bool, error)
	Create(code string) (models.Group, error)
	CountGroupsOf(userID uint) (int64, error)
	CountMembers(groupID uint) (int64, error)
	IsMember(userID uint, groupID uint) (bool, error)
	AddMember(userID uint, groupID uint) error
	RemoveMember(userID uint, groupID uint) error
	DeleteWithLinks(groupID uint) error
	GroupCodes(userID uint) (map[string]string, error)
	GroupLiked(userID uint) ([]db.GroupLikedRow, error)
	PartnerLikes(userID uint, groupCode string) ([]db.NameRow, error)
}

// GroupService manages the two-person matching groups and the liked-name
// comparisons that run inside them.
type GroupService struct {
	store GroupStore
}

func NewGroupService(store GroupStore) *GroupService {
	return &GroupService{store: store}
}

// Create mints a fresh group with a code no other group uses and adds the
// caller as its first member.
func (service *GroupService) Create(userID uint) (string, error) {
	memberships, err := service.store.CountGroupsOf(userID)
	if err != nil {
		return "", err
	}
	if memberships >= MaxGroupsPerUser {
		return "", ErrGroupLimit
	}

	code, err := service.mintCode()
	if err != nil {
		return "", err
	}
	group, err := service.store.Create(code)
	if err != nil {
		return "", err
	}
	if err := service.store.AddMember(userID, group.ID); err != nil {
		return "", err
	}
	return code, nil
}

func (service *GroupService) mintCode() (string, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := security.HexToken(GroupCodeBytes)
		if err != nil {
			return "", err
		}
		taken, err := service.store.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errCodeSpaceExhausted
}

// Join adds the caller to an existing group by code. Joining a group the
// caller already belongs to changes nothing.
func (service *GroupService) Join(userID uint, code string) error {
	code = normalizeGroupCode(code)

	group, found, err := service.store.FindByCode(code)
	if err != nil {
		return err
	}
	if !found {
		return ErrGroupNotFound
	}

	member, err := service.store.IsMember(userID, group.ID)
	if err != nil {
		return err
	}
	if member {
		return nil
	}

	memberships, err := service.store.CountGroupsOf(userID)
	if err != nil {
		return err
	}
	if memberships >= MaxGroupsPerUser {
		return ErrGroupLimit
	}

	occupants, err := service.store.CountMembers(group.ID)
	if err != nil {
		return err
	}
	if occupants >= MaxGroupMembers {
		return ErrGroupFull
	}

	return service.store.AddMember(userID, group.ID)
}

// Leave removes the caller from the group. While a partner remains only the
// caller's link goes; the last member takes the group down with them.
func (service *GroupService) Leave(userID uint, code string) error {
	code = normalizeGroupCode(code)

	group, found, err := service.store.FindByCode(code)
	if err != nil {
		return err
	}
	if !found {
		return ErrGroupNotFound
	}

	member, err := service.store.IsMember(userID, group.ID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotGroupMember
	}

	occupants, err := service.store.CountMembers(group.ID)
	if err != nil {
		return err
	}
	if occupants > 1 {
		return service.store.RemoveMember(userID, group.ID)
	}
	return service.store.DeleteWithLinks(group.ID)
}

// Codes maps each group code of the user to the partner's username, empty
// while the user is alone in the group. This is what goes into the cookie.
func (service *GroupService) Codes(userID uint) (map[string]string, error) {
	return service.store.GroupCodes(userID)
}

// GroupLikedName is one name every member of a group has liked.
type GroupLikedName struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Liked lists, per group code, the names every member of that group liked.
// Groups where the user is still alone contribute nothing.
func (service *GroupService) Liked(userID uint) (map[string][]GroupLikedName, error) {
	rows, err := service.store.GroupLiked(userID)
	if err != nil {
		return nil, err
	}

	liked := make(map[string][]GroupLikedName)
	for _, row := range rows {
		liked[row.GroupCode] = append(liked[row.GroupCode], GroupLikedName{ID: row.NameID, Name: row.Name})
	}
	return liked, nil
}

// CompareLikes returns the partner's liked names the caller has not rated
// yet, folded into catalog entries.
func (service *GroupService) CompareLikes(userID uint, code string) ([]NameEntry, error) {
	code = normalizeGroupCode(code)

	group, found, err := service.store.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrGroupNotFound
	}

	member, err := service.store.IsMember(userID, group.ID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotGroupMember
	}

	rows, err := service.store.PartnerLikes(userID, code)
	if err != nil {
		return nil, err
	}
	return foldRows(rows), nil
}

func normalizeGroupCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
