package api

import (
	"regexp"
	"unicode/utf8"
)

var (
	usernameRegex      = regexp.MustCompile(`^[a-zA-Z0-9_.-]{4,12}$`)
	groupCodeRegex     = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)
	recoveryTokenRegex = regexp.MustCompile(`^[0-9a-fA-F]{16}$`)
	searchLetterRegex  = regexp.MustCompile(`^\p{L}$`)
	searchGenderRegex  = regexp.MustCompile(`^\??[MFmf]?$`)
)

func validateUsername(username string) string {
	if !usernameRegex.MatchString(username) {
		return "error: username must be 4-12 characters (letters, digits, _ . -)."
	}
	return ""
}

func validatePassword(password string) string {
	length := utf8.RuneCountInString(password)
	if length < 8 || length > 32 {
		return "error: password must be 8-32 characters."
	}
	return ""
}

func validateGroupCode(code string) string {
	if !groupCodeRegex.MatchString(code) {
		return "error: group code must be 6 hex characters."
	}
	return ""
}

func validateRecoveryToken(token string) string {
	if !recoveryTokenRegex.MatchString(token) {
		return "error: recovery token must be 16 hex characters."
	}
	return ""
}

func validateSearchLetter(letter string) string {
	if letter != "" && !searchLetterRegex.MatchString(letter) {
		return "error: letter must be a single letter."
	}
	return ""
}

func validateSearchGender(gender string) string {
	if gender != "" && !searchGenderRegex.MatchString(gender) {
		return "error: gender must be M, F or ? (optionally combined)."
	}
	return ""
}
