package handlers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"storefront/services"
)

type adminLoginRequest struct {
	Adminname string `json:"adminname"`
	Adminpass string `json:"adminpass"`
}

func AdminLoginHandler(c *gin.Context, admins *services.AdminService) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	admin, err := admins.Login(c.Request.Context(), req.Adminname, req.Adminpass)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func GetAdminListHandler(c *gin.Context, admins *services.AdminService) {
	list, err := admins.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
