package controller

import (
	"errors"
	"net/http"
	"strconv"

	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/service"
	"cybersafe_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController exposes the back office. Every handler here sits behind
// the admin auth middleware.
type AdminController struct {
	AdminService   *service.AdminService
	StorageService *service.StorageService
}

func NewAdminController(adminService *service.AdminService, storageService *service.StorageService) *AdminController {
	return &AdminController{AdminService: adminService, StorageService: storageService}
}

func adminUser(c *gin.Context) string {
	if claims := util.GetAdminFromContext(c); claims != nil {
		return claims.Username
	}
	return ""
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "id must be a number")
		return 0, false
	}
	return uint(id), true
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, util.ErrDemoReadOnly) {
		util.Forbidden(c, "demo mode is read-only")
		return
	}
	util.LogInternalError(c, err)
}

func (ctl *AdminController) Dashboard(c *gin.Context) {
	dash, err := ctl.AdminService.Dashboard()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, dash)
}

func (ctl *AdminController) ListQuestions(c *gin.Context) {
	qs, err := ctl.AdminService.ListQuestions()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, qs)
}

func (ctl *AdminController) SaveQuestion(c *gin.Context) {
	var q model.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		util.BadRequest(c, "invalid request body")
		return
	}

	if err := ctl.AdminService.SaveQuestion(adminUser(c), &q); err != nil {
		if errors.Is(err, util.ErrDemoReadOnly) {
			util.Forbidden(c, "demo mode is read-only")
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.Success(c, q)
}

func (ctl *AdminController) DeleteQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.AdminService.DeleteQuestion(adminUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	util.Success(c, nil)
}

func (ctl *AdminController) ListModules(c *gin.Context) {
	ms, err := ctl.AdminService.ListModules()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, ms)
}

func (ctl *AdminController) SaveModule(c *gin.Context) {
	var m model.CourseModule
	if err := c.ShouldBindJSON(&m); err != nil {
		util.BadRequest(c, "invalid request body")
		return
	}

	if err := ctl.AdminService.SaveModule(adminUser(c), &m); err != nil {
		if errors.Is(err, util.ErrDemoReadOnly) {
			util.Forbidden(c, "demo mode is read-only")
			return
		}
		util.BadRequest(c, err.Error())
		return
	}
	util.Success(c, m)
}

func (ctl *AdminController) DeleteModule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.AdminService.DeleteModule(adminUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	util.Success(c, nil)
}

// UploadModuleImage takes a multipart upload, stores it, and points the
// module at the stored file.
func (ctl *AdminController) UploadModuleImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if ctl.AdminService.ReadOnly() {
		util.Forbidden(c, "demo mode is read-only")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		util.BadRequest(c, "image file is required")
		return
	}

	url, err := ctl.StorageService.UploadModuleImage(c.Request.Context(), file)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.AdminService.SetModuleImage(adminUser(c), id, url); err != nil {
		writeError(c, err)
		return
	}
	util.Success(c, gin.H{"image": url})
}

func (ctl *AdminController) ExportCSV(c *gin.Context) {
	data, err := ctl.AdminService.ExportSessionsCSV(adminUser(c))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cybersafe-statistiky.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
