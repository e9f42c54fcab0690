package domain

import (
	"errors"
	"strings"
)

var (
	MessageSuccessRegister         = "User registered successfully"
	MessageSuccessLogin            = "login successful"
	MessageSuccessGetProfile       = "success get user profile"
	MessageSuccessUpdateProfile    = "User profile updated successfully"
	MessageProfileUnchanged        = "No changes detected in profile"
	MessageSuccessGetUserRecipes   = "success get user recipes"
	MessageNoUserRecipes           = "No recipes found for this user, start creating some!"
	MessageSuccessGetUserFavorites = "success get user favorites"

	MessageFailedRegister         = "failed to register user"
	MessageFailedLogin            = "failed to login"
	MessageFailedGetProfile       = "failed to get user profile"
	MessageFailedUpdateProfile    = "failed to update user profile"
	MessageFailedGetUserRecipes   = "failed to get user recipes"
	MessageFailedGetUserFavorites = "failed to get user favorites"

	ErrUserNotFound              = errors.New("User not found")
	ErrEmailInUse                = errors.New("Email already in use")
	ErrHandleInUse               = errors.New("Handle already in use")
	ErrInvalidCredentials        = errors.New("Invalid password")
	ErrUnauthorizedProfileAccess = errors.New("Unauthorized to update this profile")
	ErrInvalidHandle             = errors.New("Handle must contain letters or digits")
)

type (
	RegisterRequest struct {
		Handle          string `json:"handle" validate:"required" msg:"Handle is required"`
		Name            string `json:"name"`
		Email           string `json:"email" validate:"required,email" msg:"Valid email is required"`
		Password        string `json:"password" validate:"min=8" msg:"Password must be at least 8 characters long"`
		ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password" msg:"Confirm Password is required" msg_eqfield:"Passwords do not match"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email" msg:"Email is required"`
		Password string `json:"password" validate:"required" msg:"Password is required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	UpdateProfileRequest struct {
		Handle string `json:"handle" validate:"required" msg:"Handle is required"`
		Name   string `json:"name" validate:"required" msg:"Name is required"`
		Email  string `json:"email" validate:"required,email" msg:"Valid email is required"`
	}

	UserProfileResponse struct {
		ID     string `json:"id"`
		Handle string `json:"handle"`
		Name   string `json:"name"`
		Email  string `json:"email"`
	}
)

func (r *RegisterRequest) Sanitize() {
	r.Handle = strings.TrimSpace(r.Handle)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Sanitize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *UpdateProfileRequest) Sanitize() {
	r.Handle = strings.TrimSpace(r.Handle)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}
