package auth

import (
	"time"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/pkg/validate"
)

// LoginInput holds username and password credentials.
type LoginInput struct {
	Username string `json:"username" validate:"notblank,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// Validate validates the login input.
func (i LoginInput) Validate() error { return validate.Struct(i) }

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Principal   domain.Principal
}
