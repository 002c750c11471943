package controllers

import (
	"invoiceapi/constants"
	"invoiceapi/dto"
	"invoiceapi/response"
	"invoiceapi/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Users *services.UserService
}

func NewAuthController(users *services.UserService) AuthController {
	return AuthController{Users: users}
}

// RegisterUser godoc
// @Summary  Register a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body dto.RegisterInput true "user"
// @Success  200 {object} response.Response{data=dto.UserResponse}
// @Failure  400 {object} response.Response
// @Failure  422 {object} response.Response
// @Router   /users/store [post]
func (a AuthController) RegisterUser(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}

	user, err := a.Users.Register(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response.Success(c, dto.NewUserResponse(user))
}

// Login godoc
// @Summary  Log in with email and password
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body dto.LoginInput true "credentials"
// @Success  200 {object} response.Response{data=dto.LoginResponse}
// @Failure  401 {object} response.Response
// @Failure  422 {object} response.Response
// @Router   /login/ [post]
func (a AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}

	user, token, err := a.Users.Login(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response.Success(c, dto.LoginResponse{
		Status:      "Successful",
		User:        dto.NewUserResponse(user),
		AccessToken: token,
	})
}

// GetProfile godoc
// @Summary   Current user
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} response.Response{data=dto.UserResponse}
// @Failure   401 {object} response.Response
// @Router    /users/me [get]
func (a AuthController) GetProfile(c *gin.Context) {
	userID := c.GetUint(constants.ContextUserID)
	user, err := a.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}
