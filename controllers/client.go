package controllers

import (
	"errors"
	"net/http"

	"invoicing-backend/repository"
	"invoicing-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientController struct {
	clients *repository.ClientRepository
}

func NewClientController(clients *repository.ClientRepository) *ClientController {
	return &ClientController{clients: clients}
}

// ClientInput defines the expected JSON structure for creating or updating
// a client. Update is a full replace, so create and update share a shape.
type ClientInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
}

func (ci ClientInput) fields() repository.ClientFields {
	return repository.ClientFields{
		Name:        ci.Name,
		Email:       ci.Email,
		Phone:       ci.Phone,
		CompanyName: ci.CompanyName,
		Address:     ci.Address,
	}
}

func (cc *ClientController) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, err := cc.clients.Create(c.Request.Context(), uid, input.fields())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (cc *ClientController) List(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	clients, err := cc.clients.ListForUser(c.Request.Context(), uid)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (cc *ClientController) Get(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	client, err := cc.clients.Get(c.Request.Context(), uid, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) Update(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, err := cc.clients.Update(c.Request.Context(), uid, id, input.fields())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) Delete(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	if err := cc.clients.Delete(c.Request.Context(), uid, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		case errors.Is(err, repository.ErrClientHasInvoices):
			utils.RespondWithError(c, http.StatusConflict, "Client still has invoices")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
