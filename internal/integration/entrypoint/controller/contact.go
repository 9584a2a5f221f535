package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjeet0505/Expense/internal/application/usecase/contact"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/dto"
)

// ContactController handles the public contact form.
type ContactController struct {
	sendUseCase *contact.SendContactMessageUseCase
}

// NewContactController creates a new contact controller instance.
func NewContactController(sendUseCase *contact.SendContactMessageUseCase) *ContactController {
	return &ContactController{sendUseCase: sendUseCase}
}

// Send handles POST /contact requests.
func (c *ContactController) Send(ctx *gin.Context) {
	var req dto.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidContactMessage), err)
		return
	}

	err := c.sendUseCase.Execute(ctx.Request.Context(), contact.SendContactMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.MessageResponse{Message: "Thanks, your message has been sent."})
}
