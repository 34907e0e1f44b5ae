package services

import (
	"strings"
	"unicode"

	"pickaname/internal/db"
)

type NameCatalog interface {
	Search(filter db.NameFilter) ([]db.NameRow, error)
	Similar(nameID uint, ratedBy *uint) ([]db.NameRow, error)
	ListLikedBy(userID uint) ([]db.NameRow, error)
	ListDislikedBy(userID uint) ([]db.NameRow, error)
}

// NameEntry is one name folded from its per-country catalog rows; Countries
// and Populations are parallel slices in the order the rows came back.
type NameEntry struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Gender      string   `json:"gender"`
	Countries   []string `json:"country"`
	Populations []int    `json:"population"`
}

// SearchQuery is the raw search input before normalization.
type SearchQuery struct {
	Letter    string
	Anywhere  bool
	Genders   []string
	Countries []string
}

// NameService normalizes search input and folds catalog rows into per-name
// entries. Gender uses a compact notation: M and F are confirmed genders,
// a leading ? marks an uncertain one (?, ?M, ?F).
type NameService struct {
	catalog NameCatalog
}

func NewNameService(catalog NameCatalog) *NameService {
	return &NameService{catalog: catalog}
}

// Search looks the query up in the catalog. When ratedBy is set, names that
// user has already liked or disliked are left out of the results.
func (service *NameService) Search(query SearchQuery, ratedBy *uint) ([]NameEntry, error) {
	filter := db.NameFilter{
		Letter:    normalizeLetter(query.Letter),
		Anywhere:  query.Anywhere,
		Genders:   expandGenders(query.Genders),
		Countries: normalizeCountries(query.Countries),
		RatedBy:   ratedBy,
	}

	rows, err := service.catalog.Search(filter)
	if err != nil {
		return nil, err
	}
	return foldRows(rows), nil
}

// Similar returns the other names in nameID's similarity group, subject to
// the same rated-name exclusion as Search.
func (service *NameService) Similar(nameID uint, ratedBy *uint) ([]NameEntry, error) {
	rows, err := service.catalog.Similar(nameID, ratedBy)
	if err != nil {
		return nil, err
	}
	return foldRows(rows), nil
}

func (service *NameService) Liked(userID uint) ([]NameEntry, error) {
	rows, err := service.catalog.ListLikedBy(userID)
	if err != nil {
		return nil, err
	}
	return foldRows(rows), nil
}

func (service *NameService) Disliked(userID uint) ([]NameEntry, error) {
	rows, err := service.catalog.ListDislikedBy(userID)
	if err != nil {
		return nil, err
	}
	return foldRows(rows), nil
}

// foldRows groups per-country rows by name id, keeping first-seen order.
func foldRows(rows []db.NameRow) []NameEntry {
	entries := make([]NameEntry, 0)
	index := make(map[uint]int)

	for _, row := range rows {
		at, seen := index[row.ID]
		if !seen {
			index[row.ID] = len(entries)
			entries = append(entries, NameEntry{
				ID:          row.ID,
				Name:        row.Name,
				Gender:      row.Gender,
				Countries:   []string{row.Country},
				Populations: []int{row.Pop},
			})
			continue
		}
		entries[at].Countries = append(entries[at].Countries, row.Country)
		entries[at].Populations = append(entries[at].Populations, row.Pop)
	}
	return entries
}

// normalizeLetter title-cases the prefix the way names are stored.
func normalizeLetter(letter string) string {
	return titleCase(strings.TrimSpace(letter))
}

// expandGenders widens each requested gender to cover its uncertain
// notation: M also matches ?M, F also matches ?F, and a bare ? matches
// every uncertain variant.
func expandGenders(genders []string) []string {
	seen := make(map[string]struct{})
	expanded := make([]string, 0, 2*len(genders))

	add := func(gender string) {
		if _, dup := seen[gender]; dup {
			return
		}
		seen[gender] = struct{}{}
		expanded = append(expanded, gender)
	}

	for _, raw := range genders {
		gender := strings.ToUpper(strings.TrimSpace(raw))
		switch gender {
		case "":
		case "?":
			add("?")
			add("?M")
			add("?F")
		default:
			add(gender)
			if !strings.HasPrefix(gender, "?") {
				add("?" + gender)
			}
		}
	}
	return expanded
}

// normalizeCountries maps country input onto the catalog's spelling: the
// United States is stored as USA, everything else title-cased.
func normalizeCountries(countries []string) []string {
	normalized := make([]string, 0, len(countries))
	for _, raw := range countries {
		country := strings.TrimSpace(raw)
		if country == "" {
			continue
		}
		switch strings.ToLower(country) {
		case "us", "usa", "united states":
			normalized = append(normalized, "USA")
		default:
			normalized = append(normalized, titleCase(country))
		}
	}
	return normalized
}

func titleCase(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(strings.ToLower(value))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
