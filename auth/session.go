package auth

import (
	"time"

	"gallery/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	userIdKey   = "userId"
	emailKey    = "email"
	issuedAtKey = "issuedAt"

	// SessionMaxAge bounds the lifetime of a session cookie (seconds).
	SessionMaxAge = 7 * 86400
)

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) error {
	s.Set(userIdKey, user.ID)
	s.Set(emailKey, user.Email)
	s.Set(issuedAtKey, time.Now().Unix())
	return s.Save()
}

func (s *Session) LogoutUser() {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	s.Save()
}

// User resolves the session cookie to a User record. Expired sessions
// are cleared at read time. A zero-ID result means "not authenticated" -
// either no valid cookie, or the referenced user no longer exists.
func (s *Session) User() models.User {
	id, ok := s.Get(userIdKey).(string)
	if !ok || id == "" {
		return models.User{}
	}
	issuedAt, ok := s.Get(issuedAtKey).(int64)
	if !ok || time.Now().Unix()-issuedAt > SessionMaxAge {
		s.LogoutUser()
		return models.User{}
	}
	user, found := models.UserGet(id)
	if !found {
		return models.User{}
	}
	return user
}
