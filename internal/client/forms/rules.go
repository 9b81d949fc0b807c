package forms

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Client-side validation rules. The backend enforces all of these too (plus
// uniqueness, which only it can check); the mirrors here give immediate
// feedback for forms that have no backend validation route.

const (
	MsgWeetLength     = "A weet must be between 1 to 250 characters in length."
	MsgWeetWhitespace = "A weet cannot consist of just blank spaces, nor start with a blank space."

	MsgHandleLength       = "A handle must be between 8 to 20 characters in length."
	MsgHandleAlphanumeric = "A handle can only contain letters and numbers."

	MsgUsernameLength     = "A username must be between 8 to 20 characters in length."
	MsgUsernameWhitespace = "A username cannot consist of just blank spaces, nor start with a blank space."

	MsgPasswordLength     = "A password must be between 8 to 20 characters in length."
	MsgPasswordComplexity = "A password must contain at least 1 capital letter, 1 lowercase letter, 1 number and 1 special character."

	MsgEmailFormat = "An email must contain an @ symbol and end with either .com, .edu or .net."

	MsgDescriptionLength     = "A description must be no more than 250 characters in length."
	MsgDescriptionWhitespace = "A description cannot consist of just blank spaces, nor start with a blank space."

	MsgPictureURL = "A picture must be a url containing either http or https as a protocol, followed by a valid image extension (jpg, jpeg or png)."
)

var (
	reHasNonSpace  = regexp.MustCompile(`\S`)
	reAlphanumeric = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	reUpper        = regexp.MustCompile(`[A-Z]`)
	reLower        = regexp.MustCompile(`[a-z]`)
	reDigit        = regexp.MustCompile(`[0-9]`)
	reSpecial      = regexp.MustCompile(`[^A-Za-z0-9\s]`)
	rePictureURL   = regexp.MustCompile(`^https?://\S+\.(jpg|jpeg|png)$`)
)

// CheckWeetContent validates a weet body: 1–250 characters, not
// all-whitespace, no leading whitespace. At most one message is produced
// per rule family, matching the backend's behavior.
func CheckWeetContent(content string) []string {
	var msgs []string
	if n := utf8.RuneCountInString(content); n == 0 || n > 250 {
		msgs = append(msgs, MsgWeetLength)
	}
	if len(content) > 0 && (!reHasNonSpace.MatchString(content) || startsWithSpace(content)) {
		msgs = append(msgs, MsgWeetWhitespace)
	}
	return msgs
}

// CheckHandle validates a handle: 8–20 characters, alphanumeric only.
// Uniqueness is backend-owned.
func CheckHandle(handle string) []string {
	var msgs []string
	if n := utf8.RuneCountInString(handle); n < 8 || n > 20 {
		msgs = append(msgs, MsgHandleLength)
	}
	if len(handle) > 0 && !reAlphanumeric.MatchString(handle) {
		msgs = append(msgs, MsgHandleAlphanumeric)
	}
	return msgs
}

// CheckUsername validates a username: 8–20 characters, contains a
// non-whitespace character, no leading whitespace.
func CheckUsername(username string) []string {
	var msgs []string
	if n := utf8.RuneCountInString(username); n < 8 || n > 20 {
		msgs = append(msgs, MsgUsernameLength)
	}
	if len(username) > 0 && (!reHasNonSpace.MatchString(username) || startsWithSpace(username)) {
		msgs = append(msgs, MsgUsernameWhitespace)
	}
	return msgs
}

// CheckPassword validates a new password: 8–20 characters with at least one
// uppercase letter, one lowercase letter, one digit and one special
// character.
func CheckPassword(password string) []string {
	var msgs []string
	if n := utf8.RuneCountInString(password); n < 8 || n > 20 {
		msgs = append(msgs, MsgPasswordLength)
	}
	if !reUpper.MatchString(password) || !reLower.MatchString(password) ||
		!reDigit.MatchString(password) || !reSpecial.MatchString(password) {
		msgs = append(msgs, MsgPasswordComplexity)
	}
	return msgs
}

// CheckEmail validates an email address shape. Uniqueness is backend-owned.
func CheckEmail(email string) []string {
	if !strings.Contains(email, "@") || !hasAllowedTLD(email) {
		return []string{MsgEmailFormat}
	}
	return nil
}

// CheckDescription validates a profile description. It is optional; when
// present it follows the weet content rules except that it may be up to 250
// characters without a lower bound.
func CheckDescription(desc string) []string {
	if desc == "" {
		return nil
	}
	var msgs []string
	if utf8.RuneCountInString(desc) > 250 {
		msgs = append(msgs, MsgDescriptionLength)
	}
	if !reHasNonSpace.MatchString(desc) || startsWithSpace(desc) {
		msgs = append(msgs, MsgDescriptionWhitespace)
	}
	return msgs
}

// CheckPictureURL validates an optional profile or banner picture URL.
func CheckPictureURL(url string) []string {
	if url == "" {
		return nil
	}
	if !rePictureURL.MatchString(url) {
		return []string{MsgPictureURL}
	}
	return nil
}

func hasAllowedTLD(email string) bool {
	for _, suffix := range []string{".com", ".edu", ".net"} {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}
	return false
}

func startsWithSpace(s string) bool {
	return strings.TrimLeft(s, " \t") != s
}
