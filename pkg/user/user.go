package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	Id           int
	Uid          string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// SetPassword stores the bcrypt hash of pwd.
func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}
