package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/policy"
	"github.com/pitaka-app/pitaka-api/internal/service/auth"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// LoginResult carries the authenticated user and their access token.
type LoginResult struct {
	User  *domain.User
	Token string
}

// UserService provides registration, login and profile operations.
type UserService interface {
	// Register validates the registration form, hashes the password and
	// persists a new account. Returns store.ErrEmailExists when the email
	// is already registered and a policy error when the form is invalid.
	Register(ctx context.Context, in policy.RegistrationInput) (*domain.User, error)

	// Login validates credentials and issues an access token.
	// Returns ErrInvalidCredentials when the email or password is wrong.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// GetProfile retrieves the user's profile.
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)

	// UpdateProfile applies a partial name update.
	UpdateProfile(ctx context.Context, userID int64, in policy.ProfileEditInput) (*domain.User, error)

	// DeleteAccount removes the user and every row they own. Funding-leg
	// rows are cleared explicitly; the rest cascades off the user delete.
	DeleteAccount(ctx context.Context, userID int64) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	uow      *store.UnitOfWork
	policy   policy.UserPolicy
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	jwt      auth.JWTService
	logger   *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	uow *store.UnitOfWork,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwt auth.JWTService,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		uow:      uow,
		hasher:   hasher,
		verifier: verifier,
		jwt:      jwt,
		logger:   logger.With("component", "user_service"),
	}
}

// Register validates the registration form and persists a new account.
func (s *UserServiceImpl) Register(ctx context.Context, in policy.RegistrationInput) (*domain.User, error) {
	reg, err := s.policy.ValidateRegistration(in)
	if err != nil {
		s.logger.Debug("registration rejected by policy", "error", err)
		return nil, err
	}

	user, err := domain.NewUser(reg.Firstname, reg.Lastname, reg.Email)
	if err != nil {
		s.logger.Debug("registration rejected by domain rules", "error", err)
		return nil, err
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := user.SetPasswordHash(hash); err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		_, err := uow.Users.Save(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted registration with existing email",
				"email", reg.Email)
			return nil, store.ErrEmailExists
		}
		s.logger.Error("failed to save user", "error", err, "email", reg.Email)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"email", user.Email)
	return user, nil
}

// Login validates credentials and issues an access token.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	cleanEmail, err := s.policy.ValidateLogin(email, password)
	if err != nil {
		s.logger.Debug("login rejected by policy", "error", err)
		return nil, err
	}

	user, err := s.uow.Users.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email", "email", cleanEmail)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.PasswordHash, password); err != nil {
		s.logger.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate token", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in successfully", "user_id", user.ID)
	return &LoginResult{User: user, Token: token}, nil
}

// GetProfile retrieves the user's profile.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.uow.Users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial name update inside a transaction,
// following the pattern of loading the full user, mutating it through
// the domain entity, and writing the whole row back.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID int64, in policy.ProfileEditInput) (*domain.User, error) {
	edit, err := s.policy.ValidateProfileEdit(in)
	if err != nil {
		s.logger.Debug("profile edit rejected by policy", "error", err)
		return nil, err
	}

	var updated *domain.User
	err = s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		user, err := uow.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.UpdateProfile(edit.Firstname, edit.Lastname); err != nil {
			return err
		}
		if err := uow.Users.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, store.ErrUserNotFound
		}
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated successfully", "user_id", userID)
	return updated, nil
}

// DeleteAccount removes the user and everything they own. Debt payments
// and saving transactions hold foreign keys into incomes and expenses, so
// they go first; the remaining owned rows cascade off the user delete.
func (s *UserServiceImpl) DeleteAccount(ctx context.Context, userID int64) error {
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		if _, err := uow.DebtPayments.DeleteAllByUserID(ctx, userID); err != nil {
			return err
		}
		if _, err := uow.SavingTransactions.DeleteAllByUserID(ctx, userID); err != nil {
			return err
		}
		deleted, err := uow.Users.Delete(ctx, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return store.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return store.ErrUserNotFound
		}
		s.logger.Error("failed to delete account", "error", err, "user_id", userID)
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("account deleted", "user_id", userID)
	return nil
}
