package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for request fields.
const (
	maxTitleLen    = 300
	maxContentLen  = 100_000
	maxNameLen     = 100
	maxDescLen     = 1_000
	maxEmailLen    = 320
	maxUsernameLen = 50
	maxBioLen      = 2_000
	minPasswordLen = 8
)

// validatePostInput checks post fields and returns the first error found.
// An empty string means the input is valid.
func validatePostInput(title, content string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validatePostPatch checks the fields present in a partial post update.
func validatePostPatch(title, content *string) string {
	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return "Title cannot be empty."
		}
		if utf8.RuneCountInString(*title) > maxTitleLen {
			return "Title is too long (max 300 characters)."
		}
	}
	if content != nil && utf8.RuneCountInString(*content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validateCategoryInput checks category fields.
func validateCategoryInput(name string, description *string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 100 characters)."
	}
	if description != nil && utf8.RuneCountInString(*description) > maxDescLen {
		return "Description is too long (max 1,000 characters)."
	}
	return ""
}

// validateRegisterInput checks registration fields. Email validation is
// shallow: the unique index and the confirmation flow are the real checks.
func validateRegisterInput(email, password, username string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen || !strings.Contains(email, "@") {
		return "Email is not valid."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	if strings.TrimSpace(username) == "" {
		return "Username is required."
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return "Username is too long (max 50 characters)."
	}
	return ""
}

// validateProfileInput checks profile update fields.
func validateProfileInput(username, bio *string) string {
	if username != nil {
		if strings.TrimSpace(*username) == "" {
			return "Username cannot be empty."
		}
		if utf8.RuneCountInString(*username) > maxUsernameLen {
			return "Username is too long (max 50 characters)."
		}
	}
	if bio != nil && utf8.RuneCountInString(*bio) > maxBioLen {
		return "Bio is too long (max 2,000 characters)."
	}
	return ""
}
