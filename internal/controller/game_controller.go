package controller

import (
	"errors"

	"cybersafe_backend/internal/middleware"
	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/service"
	"cybersafe_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// GameController exposes the red-flag game.
type GameController struct {
	GameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{GameService: gameService}
}

func (ctl *GameController) GetGame(c *gin.Context) {
	view, err := ctl.GameService.GetGame(c.Param("phase"))
	if err != nil {
		if errors.Is(err, util.ErrGameNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, view)
}

func (ctl *GameController) SubmitGame(c *gin.Context) {
	phase := model.QuizPhase(c.Param("phase"))

	var body service.GameSubmission
	if err := c.ShouldBindJSON(&body); err != nil {
		util.BadRequest(c, "invalid request body")
		return
	}

	res, err := ctl.GameService.SubmitGame(middleware.GetSessionID(c), phase, body)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUnknownPhase):
			util.BadRequest(c, "Unsupported phase")
		case errors.Is(err, util.ErrGameNotFound):
			util.NotFound(c)
		case errors.Is(err, util.ErrInvalidGameResult):
			util.BadRequest(c, "invalid game result")
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, res)
}
