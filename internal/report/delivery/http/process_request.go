package http

import (
	"strconv"

	"renov-srv/internal/model"
	"renov-srv/pkg/paginator"
	"renov-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h *handler) processUploadRequest(c *gin.Context) (uploadReq, model.Scope, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return uploadReq{}, model.Scope{}, errFileRequired
	}

	f, err := fh.Open()
	if err != nil {
		return uploadReq{}, model.Scope{}, errFileRequired
	}

	req := uploadReq{
		fileName:    fh.Filename,
		contentType: fh.Header.Get("Content-Type"),
		size:        fh.Size,
		file:        f,
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processScanCompanyRequest(c *gin.Context) (scanCompanyReq, model.Scope, error) {
	var req scanCompanyReq

	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, errCompanyNameRequired
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processAnalyzeAcceptanceRequest(c *gin.Context) (analyzeAcceptanceReq, model.Scope, error) {
	var req analyzeAcceptanceReq

	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, errInvalidBody
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processGetReportRequest(c *gin.Context, variant string) (getReportReq, model.Scope, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return getReportReq{}, model.Scope{}, errInvalidReportID
	}

	req := getReportReq{
		ReportID: id,
		Variant:  variant,
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processListReportsRequest(c *gin.Context, variant string) (listReportsReq, model.Scope, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	deleted := c.Query("deleted") == "true"

	req := listReportsReq{
		Variant: variant,
		Deleted: deleted,
		PaginateQuery: paginator.PaginateQuery{
			Page:  page,
			Limit: limit,
		},
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processReportIDRequest(c *gin.Context) (int64, model.Scope, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.Scope{}, errInvalidReportID
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return id, sc, nil
}

func (h *handler) processRecheckRequest(c *gin.Context) (recheckReq, model.Scope, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return recheckReq{}, model.Scope{}, errInvalidReportID
	}

	var req recheckReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, errInvalidBody
	}
	req.ReportID = id

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}
