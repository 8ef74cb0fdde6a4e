package store

import (
	errs "errors"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/scribblehq/scribble/types"
)

const bcryptCost = 10

// dummyHash keeps Authenticate doing a bcrypt comparison even when the
// username does not exist, so both failure paths take the same time.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("scribble-dummy"), bcryptCost)
	if err != nil {
		panic(err)
	}
	return h
}()

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) usernameExists(username string) (bool, error) {
	var user types.User
	err := s.db.First(&user, "username = ?", username).Error
	if errs.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "Looking for user %q", username)
	}
	return true, nil
}

// Register creates a new account. All field problems are reported together as
// a ValidationError and nothing is written in that case. The first account
// ever created becomes the admin.
func (s *UserStore) Register(username, email, password, confirm string) (*types.User, error) {
	v := ValidationError{}

	username = strings.TrimSpace(username)
	if username == "" {
		v["username"] = "Username is required"
	} else {
		exists, err := s.usernameExists(username)
		if err != nil {
			return nil, err
		}
		if exists {
			v["username"] = "Oops! It appears you are already registered"
		}
	}

	parsedEmail, err := mail.ParseAddress(email)
	if err != nil {
		v["email"] = "Oops! That email address appears to be invalid"
	} else {
		email = parsedEmail.Address
	}

	if len(password) < 8 {
		v["password"] = "Password must be at least 8 characters"
	}
	if password != confirm {
		v["password_confirm"] = "Passwords do not match"
	}

	if len(v) > 0 {
		return nil, v
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "Hashing password")
	}

	var count int64
	if err := s.db.Model(&types.User{}).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "Counting users")
	}
	role := types.RoleUser
	if count == 0 {
		role = types.RoleAdmin
	}

	user := types.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, errors.Wrap(err, "Saving user to db")
	}
	return &user, nil
}

// Authenticate verifies a username/password pair. The error never says
// whether the username exists.
func (s *UserStore) Authenticate(username, password string) (*types.User, error) {
	var user types.User
	err := s.db.First(&user, "username = ?", username).Error
	if errs.Is(err, gorm.ErrRecordNotFound) {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Looking for user %q", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return &user, nil
}
