package controller

import (
	"errors"
	"net/http"
	"strconv"

	"cybersafe_backend/internal/middleware"
	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/service"
	"cybersafe_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CourseController exposes the learner-facing course flow.
type CourseController struct {
	CourseService      *service.CourseService
	FeedbackService    *service.FeedbackService
	CertificateService *service.CertificateService
}

func NewCourseController(
	courseService *service.CourseService,
	feedbackService *service.FeedbackService,
	certificateService *service.CertificateService,
) *CourseController {
	return &CourseController{
		CourseService:      courseService,
		FeedbackService:    feedbackService,
		CertificateService: certificateService,
	}
}

func (ctl *CourseController) Landing(c *gin.Context) {
	landing, err := ctl.CourseService.Landing()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, landing)
}

func (ctl *CourseController) ModuleByStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		util.BadRequest(c, "step must be a number")
		return
	}

	mod, err := ctl.CourseService.ModuleByStep(step)
	if err != nil {
		if errors.Is(err, util.ErrStepOutOfRange) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, mod)
}

func (ctl *CourseController) GetQuiz(c *gin.Context) {
	phase := model.QuizPhase(c.Param("phase"))
	questions, err := ctl.CourseService.QuizForPhase(phase)
	if err != nil {
		if errors.Is(err, util.ErrUnknownPhase) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, questions)
}

type quizSubmission struct {
	Answers map[string]string `json:"answers"`
}

func (ctl *CourseController) SubmitQuiz(c *gin.Context) {
	phase := model.QuizPhase(c.Param("phase"))

	var body quizSubmission
	if err := c.ShouldBindJSON(&body); err != nil {
		util.BadRequest(c, "invalid request body")
		return
	}

	res, err := ctl.CourseService.SubmitQuiz(middleware.GetSessionID(c), phase, body.Answers)
	if err != nil {
		if errors.Is(err, util.ErrUnknownPhase) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, res)
}

func (ctl *CourseController) Result(c *gin.Context) {
	view, err := ctl.CourseService.Result(middleware.GetSessionID(c))
	if err != nil {
		if errors.Is(err, util.ErrNotCompleted) {
			util.Error(c, http.StatusNotFound, "Not completed")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, view)
}

func (ctl *CourseController) HomeTips(c *gin.Context) {
	util.Success(c, ctl.CourseService.HomeTips())
}

func (ctl *CourseController) SubmitFeedback(c *gin.Context) {
	var body service.FeedbackInput
	if err := c.ShouldBindJSON(&body); err != nil {
		util.BadRequest(c, "invalid request body")
		return
	}

	if err := ctl.FeedbackService.Submit(middleware.GetSessionID(c), body); err != nil {
		if errors.Is(err, util.ErrInvalidFeedback) {
			util.BadRequest(c, "invalid feedback answers")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Created(c, nil)
}

type certificateRequest struct {
	Name string `json:"name"`
}

// Certificate streams the completion PDF. Completion is checked first so the
// certificate cannot be fetched by skipping the course.
func (ctl *CourseController) Certificate(c *gin.Context) {
	if _, err := ctl.CourseService.Result(middleware.GetSessionID(c)); err != nil {
		if errors.Is(err, util.ErrNotCompleted) {
			util.Error(c, http.StatusNotFound, "Not completed")
			return
		}
		util.LogInternalError(c, err)
		return
	}

	var body certificateRequest
	c.ShouldBindJSON(&body)

	pdf, err := ctl.CertificateService.Render(body.Name)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.CertificateFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
