package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tonyspizza/infras/jwt"
	userModel "tonyspizza/internal/domains/user/model"
	"tonyspizza/shared/constant"
	gModel "tonyspizza/shared/model"
	"tonyspizza/shared/timezone"
)

// Credentials is the login form.
type Credentials struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (c *Credentials) Normalize() {
	c.Username = strings.TrimSpace(c.Username)
}

// SignupRequest is the registration form.
type SignupRequest struct {
	Username  string `form:"username"  validate:"required,max=150,usernames"`
	Email     string `form:"email"     validate:"omitempty,email,max=254"`
	Password1 string `form:"password1" validate:"required,min=8,max=128"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

func (r *SignupRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

func (r *SignupRequest) ToUserModel(hashedPassword string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Email:    r.Email,
		Password: hashedPassword,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  constant.ContextGuest,
			ModifiedBy: constant.ContextGuest,
		},
	}
}

// Identity is the authenticated principal of a request.
type Identity struct {
	UserID   string
	Username string
	TokenID  string
}

func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// Session is an issued login, carried by the session cookie.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Identity  Identity
}

func (s *Session) FromJWT(session *jwt.Session, user userModel.User) {
	s.Token = session.Token
	s.ExpiresAt = session.ExpiresAt
	s.Identity = Identity{
		UserID:   user.ID,
		Username: user.Username,
		TokenID:  session.TokenID,
	}
}
