package auth

import (
	"travelworld/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	userIdKey   = "id"
	userNameKey = "name"
	userRoleKey = "role"
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
	s.Clear()
	s.Set(userIdKey, user.ID)
	s.Set(userNameKey, user.DisplayName())
	s.Set(userRoleKey, string(user.Role))
	return s.Save()
}

func (s *Session) LogoutUser() error {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

// UserID returns 0 for an anonymous session
func (s *Session) UserID() uint64 {
	id, _ := s.Get(userIdKey).(uint64)
	return id
}

// User reloads the session's user, so role changes and deleted accounts take effect immediately
func (s *Session) User() (user models.User) {
	id := s.UserID()
	if id == 0 {
		return
	}
	user, err := models.UserByID(id)
	if err != nil {
		user.ID = 0
	}
	return
}
