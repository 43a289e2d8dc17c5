package account

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidCountry  = errors.New("invalid country")
	ErrInvalidStatus   = errors.New("invalid status")
)

type Country string

const (
	Germany       Country = "Germany"
	UnitedKingdom Country = "United Kingdom"
	Spain         Country = "Spain"
	France        Country = "France"
)

var Countries = []Country{Germany, UnitedKingdom, Spain, France}

func ParseCountry(s string) (Country, error) {
	switch Country(s) {
	case Germany, UnitedKingdom, Spain, France:
		return Country(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCountry, s)
}

type Status string

const (
	Active   Status = "active"
	Pending  Status = "pending"
	Inactive Status = "inactive"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Active, Pending, Inactive:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Color is the badge color of the status.
func (s Status) Color() string {
	switch s {
	case Active:
		return "green"
	case Pending:
		return "yellow"
	case Inactive:
		return "gray"
	}
	panic(fmt.Sprintf("account: unknown status %q", string(s)))
}

// Account is an Instagram account managed from the dashboard.
type Account struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Country   Country `json:"country"`
	Followers string  `json:"followers"`
	Status    Status  `json:"status"`
}

// ProfileURL is the Instagram profile of the account.
func (a Account) ProfileURL() string {
	return "https://instagram.com/" + strings.TrimPrefix(a.Username, "@")
}

// NormalizeUsername trims spaces and makes sure the handle starts with "@".
func NormalizeUsername(username string) string {
	username = strings.TrimSpace(username)
	if username == "" || strings.HasPrefix(username, "@") {
		return username
	}
	return "@" + username
}
