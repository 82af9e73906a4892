package services

import (
	"context"
	"errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"storefront/models"
	"storefront/notify"
	"storefront/repository"
	"strings"
	"time"
)

// passwordCost is lowered by tests.
var passwordCost = bcrypt.DefaultCost

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func passwordMatches(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
	Img      string
	Phone    string
	Address  string
}

// ProfileInput replaces every editable profile field; empty values clear the field.
type ProfileInput struct {
	Username string
	Email    string
	Phone    string
	Address  string
	Img      string
}

type IdentityService struct {
	store    repository.Store
	notifier notify.Notifier
}

func NewIdentityService(store repository.Store, notifier notify.Notifier) *IdentityService {
	return &IdentityService{store: store, notifier: notifier}
}

func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case in.Username == "":
		return nil, validationError("username is required")
	case in.Password == "":
		return nil, validationError("password is required")
	case in.Email == "":
		return nil, validationError("email is required")
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, &StoreError{Op: "hash password", Err: err}
	}

	user := &models.User{
		Username: in.Username,
		Password: hashed,
		Email:    in.Email,
		Img:      in.Img,
		Phone:    in.Phone,
		Address:  in.Address,
	}
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		taken, err := tx.Users().EmailTaken(ctx, user.Email, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateKey
		}
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, storeError("register user", err)
	}

	return user, nil
}

// Login accepts either the username or the email as login.
func (s *IdentityService) Login(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.store.Users().FindByUsernameOrEmail(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("find user", err)
	}
	if !passwordMatches(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *IdentityService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, storeError("get user", err)
	}
	return user, nil
}

func (s *IdentityService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		user, err = tx.Users().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if in.Email != "" && in.Email != user.Email {
			taken, err := tx.Users().EmailTaken(ctx, in.Email, userID)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateKey
			}
		}

		user.Username = in.Username
		user.Email = in.Email
		user.Phone = in.Phone
		user.Address = in.Address
		user.Img = in.Img
		return tx.Users().Save(ctx, user)
	})
	if err != nil {
		return nil, storeError("update user", err)
	}
	return user, nil
}

func (s *IdentityService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return validationError("new password is required")
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if !passwordMatches(user.Password, oldPassword) {
			return ErrInvalidCredentials
		}

		hashed, err := hashPassword(newPassword)
		if err != nil {
			return err
		}
		user.Password = hashed
		return tx.Users().Save(ctx, user)
	})
	return storeError("change password", err)
}

// DeleteAccount removes the user and every cart item the user owns in one transaction.
// The user row lock serializes this against other account operations; cart writes do
// not take it, so an add racing the delete either lands before the cart purge or
// leaves a row keyed by a user id that no longer exists.
func (s *IdentityService) DeleteAccount(ctx context.Context, userID, password string) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if !passwordMatches(user.Password, password) {
			return ErrInvalidCredentials
		}

		removed, err := tx.Cart().DeleteByUser(ctx, userID)
		if err != nil {
			return err
		}
		if _, err := tx.Users().Delete(ctx, userID); err != nil {
			return err
		}

		log.Info().Str("userId", userID).Int64("cartItems", removed).Msg("account deleted")
		return nil
	})
	return storeError("delete account", err)
}

func (s *IdentityService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return storeError("find user by email", err)
	}

	err = s.notifier.PasswordReset(ctx, notify.PasswordReset{
		UserID:      user.ID,
		Email:       user.Email,
		Username:    user.Username,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return &StoreError{Op: "dispatch password reset", Err: err}
	}
	return nil
}

// SetProfileImage points the user's img at url.
func (s *IdentityService) SetProfileImage(ctx context.Context, userID, url string) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		user, err = tx.Users().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		user.Img = url
		return tx.Users().Save(ctx, user)
	})
	if err != nil {
		return nil, storeError("set profile image", err)
	}
	return user, nil
}
