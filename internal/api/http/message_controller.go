package http

import (
	"net/http"
	"strconv"

	"batepapo-uol/internal/service"
	"batepapo-uol/internal/validation"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	messages service.MessageInteractor
}

func NewMessageController(messages service.MessageInteractor) *MessageController {
	return &MessageController{messages: messages}
}

type messageBody struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
}

func (c *MessageController) Send(ctx *gin.Context) {
	var req messageBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message, err := c.messages.Send(ctx.Request.Context(), ctx.GetHeader(userHeader), req.To, req.Text, req.Type)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, message)
}

func (c *MessageController) List(ctx *gin.Context) {
	var limit *int64
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(ctx, validation.NewError(`"limit" must be a number`))
			return
		}
		limit = &parsed
	}

	messages, err := c.messages.List(ctx.Request.Context(), ctx.GetHeader(userHeader), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

func (c *MessageController) Edit(ctx *gin.Context) {
	var req messageBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message, err := c.messages.Edit(ctx.Request.Context(),
		ctx.GetHeader(userHeader), ctx.Param("id"), req.To, req.Text, req.Type)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, message)
}

func (c *MessageController) Delete(ctx *gin.Context) {
	err := c.messages.Delete(ctx.Request.Context(), ctx.GetHeader(userHeader), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}
