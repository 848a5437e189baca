package utils

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/normalization"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

func InputValidation(ctx context.Context, ffor string, userRepo repos.UserRepo, log *logger.Logger, user *types.User, email, password string) error {
	validatedFor := normalization.ParseInputString(ffor)
	if validatedFor == "" {
		return fmt.Errorf("for string is empty, needs to be login or registration")
	}
	switch validatedFor {
	case "registration":
		if err := handleRegisterInputValidation(ctx, userRepo, log, user); err != nil {
			return err
		}
	case "login":
		if err := handleLoginInputValidation(ctx, log, email, password); err != nil {
			return err
		}
	}
	return nil
}

func handleRegisterInputValidation(ctx context.Context, userRepo repos.UserRepo, log *logger.Logger, user *types.User) error {
	if user == nil {
		return fmt.Errorf("no user given, cannot proceed with registration")
	}
	if user.Email == "" {
		return fmt.Errorf("an email is required to register")
	}
	emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check user email")
	}
	if emailExists {
		return fmt.Errorf("email is already in use")
	}
	if user.Password == "" {
		return fmt.Errorf("a password is required to register")
	}
	if user.FullName == "" {
		return fmt.Errorf("a full name is required to register")
	}
	return nil
}

func handleLoginInputValidation(ctx context.Context, log *logger.Logger, email, password string) error {
	if email == "" {
		return fmt.Errorf("email is required to login")
	}
	if password == "" {
		return fmt.Errorf("password is required to login")
	}
	return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		if log != nil {
			log.Warn("Failed to hash password", "error", err)
		}
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return nil
}

func NormalizeUserFields(ctx context.Context, user *types.User) {
	if user == nil {
		return
	}
	user.Email = normalization.ParseInputString(user.Email)
	user.FullName = normalization.TrimInputString(user.FullName)
}
