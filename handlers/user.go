package handlers

import (
	"errors"
	"net/http"
	"travelworld/auth"
	"travelworld/models"
	"travelworld/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserRegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required"`
	LastName  string `json:"last_name" form:"last_name" binding:"required"`
	Contact   string `json:"contact" form:"contact" binding:"required,max=20"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required"`
}

type UserLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Home shows the login / registration page
func Home(c *gin.Context) {
	session := auth.LoadSession(c)
	c.HTML(http.StatusOK, "login.tmpl", gin.H{"loggedIn": session.UserID() != 0})
}

func UserRegister(c *gin.Context) {
	req := UserRegisterRequest{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{err.Error()})
		return
	}
	user, err := models.UserCreate(req.FirstName, req.LastName, req.Contact, req.Email, req.Password)
	if errors.Is(err, models.ErrEmailExists) {
		c.JSON(http.StatusBadRequest, EmailExistsResponse)
		return
	} else if err != nil {
		utils.Logger.Error("register", zap.Error(err))
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	utils.Logger.Info("user registered", zap.Uint64("user_id", user.ID))
	c.JSON(http.StatusCreated, AccountCreatedResponse)
}

func UserLogin(c *gin.Context) {
	req := UserLoginRequest{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{err.Error()})
		return
	}
	user, err := models.UserLogin(req.Email, req.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, InvalidCredentialsResponse)
		return
	} else if err != nil {
		utils.Logger.Error("login", zap.Error(err))
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		utils.Logger.Error("session save", zap.Error(err))
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, LoginOKResponse)
}

// UserLogout works with or without a session
func UserLogout(c *gin.Context) {
	if err := auth.LoadSession(c).LogoutUser(); err != nil {
		utils.Logger.Warn("session clear", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/")
}
