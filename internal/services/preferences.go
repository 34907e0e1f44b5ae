package services

type PreferenceStore interface {
	LikedAmong(userID uint, nameIDs []uint) (map[uint]struct{}, error)
	DislikedAmong(userID uint, nameIDs []uint) (map[uint]struct{}, error)
	AddLikes(userID uint, nameIDs []uint) error
	AddDislikes(userID uint, nameIDs []uint) error
	RemoveLikes(userID uint, nameIDs []uint) error
	RemoveDislikes(userID uint, nameIDs []uint) error
}

// PreferenceService records likes and dislikes. A name can sit on only one
// of the two lists: ids already on the opposite list are skipped rather
// than moved, so rating a name twice in different directions keeps the
// first verdict.
type PreferenceService struct {
	store PreferenceStore
}

func NewPreferenceService(store PreferenceStore) *PreferenceService {
	return &PreferenceService{store: store}
}

// Apply records both batches of one preferences submission. Ids appearing
// in both batches land on the liked list, since likes are applied first and
// the dislike pass then sees them as already rated.
func (service *PreferenceService) Apply(userID uint, liked []uint, disliked []uint) error {
	if err := service.Like(userID, liked); err != nil {
		return err
	}
	return service.Dislike(userID, disliked)
}

func (service *PreferenceService) Like(userID uint, nameIDs []uint) error {
	nameIDs = dedupeIDs(nameIDs)
	if len(nameIDs) == 0 {
		return nil
	}

	disliked, err := service.store.DislikedAmong(userID, nameIDs)
	if err != nil {
		return err
	}
	return service.store.AddLikes(userID, withoutIDs(nameIDs, disliked))
}

func (service *PreferenceService) Dislike(userID uint, nameIDs []uint) error {
	nameIDs = dedupeIDs(nameIDs)
	if len(nameIDs) == 0 {
		return nil
	}

	liked, err := service.store.LikedAmong(userID, nameIDs)
	if err != nil {
		return err
	}
	return service.store.AddDislikes(userID, withoutIDs(nameIDs, liked))
}

func (service *PreferenceService) Unlike(userID uint, nameIDs []uint) error {
	return service.store.RemoveLikes(userID, dedupeIDs(nameIDs))
}

func (service *PreferenceService) Undislike(userID uint, nameIDs []uint) error {
	return service.store.RemoveDislikes(userID, dedupeIDs(nameIDs))
}

func dedupeIDs(nameIDs []uint) []uint {
	seen := make(map[uint]struct{}, len(nameIDs))
	unique := make([]uint, 0, len(nameIDs))
	for _, id := range nameIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func withoutIDs(nameIDs []uint, excluded map[uint]struct{}) []uint {
	kept := make([]uint, 0, len(nameIDs))
	for _, id := range nameIDs {
		if _, skip := excluded[id]; skip {
			continue
		}
		kept = append(kept, id)
	}
	return kept
}
