package http

import (
	"net/http"

	"batepapo-uol/internal/service"

	"github.com/gin-gonic/gin"
)

// userHeader carries the caller's display name on every identified request.
const userHeader = "user"

type ParticipantController struct {
	presence service.PresenceInteractor
}

func NewParticipantController(presence service.PresenceInteractor) *ParticipantController {
	return &ParticipantController{presence: presence}
}

func (c *ParticipantController) Register(ctx *gin.Context) {
	type RegisterRequest struct {
		Name string `json:"name"`
	}
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	participant, err := c.presence.Register(ctx.Request.Context(), req.Name)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, participant)
}

func (c *ParticipantController) List(ctx *gin.Context) {
	participants, err := c.presence.ListParticipants(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, participants)
}

// Ping refreshes the caller's liveness timestamp. A missing or unknown
// name answers 404, same as the participant being absent.
func (c *ParticipantController) Ping(ctx *gin.Context) {
	if err := c.presence.Ping(ctx.Request.Context(), ctx.GetHeader(userHeader)); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}
