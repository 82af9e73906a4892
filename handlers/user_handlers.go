package handlers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"storefront/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Img      string `json:"img"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// username may hold either the username or the email.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type profileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Img      string `json:"img"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func RegisterHandler(c *gin.Context, identity *services.IdentityService) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := identity.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Img:      req.Img,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func LoginHandler(c *gin.Context, identity *services.IdentityService) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := identity.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func ForgotPasswordHandler(c *gin.Context, identity *services.IdentityService) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := identity.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reset password link has been sent to your email."})
}

func GetUserProfileHandler(c *gin.Context, identity *services.IdentityService) {
	user, err := identity.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateUserProfileHandler(c *gin.Context, identity *services.IdentityService) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := identity.UpdateProfile(c.Request.Context(), c.Param("id"), services.ProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Img:      req.Img,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func ChangePasswordHandler(c *gin.Context, identity *services.IdentityService) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := identity.ChangePassword(c.Request.Context(), c.Param("id"), req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func DeleteAccountHandler(c *gin.Context, identity *services.IdentityService) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := identity.DeleteAccount(c.Request.Context(), c.Param("id"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
