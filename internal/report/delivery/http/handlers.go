package http

import (
	"renov-srv/internal/model"
	"renov-srv/internal/report"
	"renov-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary Upload a renovation quote
// @Description Upload a quote document and start background analysis
// @Tags Quotes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Quote image or PDF"
// @Success 200 {object} submitResp
// @Failure 422 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/quotes/upload [post]
func (h *handler) UploadQuote(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processUploadRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.UploadQuote: processUploadRequest failed: %v", err)
		response.Error(c, err)
		return
	}
	defer req.file.Close()

	o, err := h.uc.SubmitQuote(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.UploadQuote: usecase SubmitQuote failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSubmitResp(o))
}

// @Summary Upload a renovation contract
// @Description Upload a contract document and start background analysis
// @Tags Contracts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Contract image or PDF"
// @Success 200 {object} submitResp
// @Failure 422 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/contracts/upload [post]
func (h *handler) UploadContract(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processUploadRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.UploadContract: processUploadRequest failed: %v", err)
		response.Error(c, err)
		return
	}
	defer req.file.Close()

	o, err := h.uc.SubmitContract(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.UploadContract: usecase SubmitContract failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSubmitResp(o))
}

// @Summary Scan a renovation company
// @Description Look up a company by name and start a background check analysis
// @Tags Companies
// @Accept json
// @Produce json
// @Param body body scanCompanyReq true "Scan request"
// @Success 200 {object} submitResp
// @Failure 422 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/companies/scan [post]
func (h *handler) ScanCompany(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processScanCompanyRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ScanCompany: processScanCompanyRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.SubmitCompany(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ScanCompany: usecase SubmitCompany failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSubmitResp(o))
}

// @Summary Upload an acceptance photo
// @Description Store one site photo and return its reference for a later analyze call
// @Tags Acceptance
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Site photo"
// @Success 200 {object} uploadPhotoResp
// @Failure 422 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/acceptance/upload-photo [post]
func (h *handler) UploadAcceptancePhoto(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processUploadRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.UploadAcceptancePhoto: processUploadRequest failed: %v", err)
		response.Error(c, err)
		return
	}
	defer req.file.Close()

	o, err := h.uc.UploadAcceptancePhoto(ctx, sc, req.toPhotoInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.UploadAcceptancePhoto: usecase UploadAcceptancePhoto failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newUploadPhotoResp(o))
}

// @Summary Start an acceptance analysis
// @Description Analyze uploaded site photos for a construction stage
// @Tags Acceptance
// @Accept json
// @Produce json
// @Param body body analyzeAcceptanceReq true "Analyze request"
// @Success 200 {object} submitResp
// @Failure 422 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/acceptance/analyze [post]
func (h *handler) AnalyzeAcceptance(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processAnalyzeAcceptanceRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.AnalyzeAcceptance: processAnalyzeAcceptanceRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.SubmitAcceptance(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.AnalyzeAcceptance: usecase SubmitAcceptance failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSubmitResp(o))
}

// @Summary Get a quote report
// @Tags Quotes
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} reportResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/quotes/quote/{id} [get]
func (h *handler) GetQuote(c *gin.Context) {
	h.getReport(c, model.VariantQuote)
}

// @Summary Get a contract report
// @Tags Contracts
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} reportResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/contracts/contract/{id} [get]
func (h *handler) GetContract(c *gin.Context) {
	h.getReport(c, model.VariantContract)
}

// @Summary Get a company scan report
// @Tags Companies
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} reportResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/companies/scan/{id} [get]
func (h *handler) GetCompany(c *gin.Context) {
	h.getReport(c, model.VariantCompany)
}

// @Summary Get an acceptance report
// @Tags Acceptance
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} reportResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/acceptance/{id} [get]
func (h *handler) GetAcceptance(c *gin.Context) {
	h.getReport(c, model.VariantAcceptance)
}

func (h *handler) getReport(c *gin.Context, variant string) {
	ctx := c.Request.Context()

	req, sc, err := h.processGetReportRequest(c, variant)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.getReport: processGetReportRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.GetReport(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.getReport: usecase GetReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReportResp(o))
}

// @Summary List quote reports
// @Tags Quotes
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param deleted query bool false "List recycle bin instead"
// @Success 200 {object} listReportsResp
// @Router /api/v1/quotes/list [get]
func (h *handler) ListQuotes(c *gin.Context) {
	h.listReports(c, model.VariantQuote)
}

// @Summary List contract reports
// @Tags Contracts
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param deleted query bool false "List recycle bin instead"
// @Success 200 {object} listReportsResp
// @Router /api/v1/contracts/list [get]
func (h *handler) ListContracts(c *gin.Context) {
	h.listReports(c, model.VariantContract)
}

// @Summary List company scan reports
// @Tags Companies
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} listReportsResp
// @Router /api/v1/companies/list [get]
func (h *handler) ListCompanies(c *gin.Context) {
	h.listReports(c, model.VariantCompany)
}

// @Summary List acceptance reports
// @Tags Acceptance
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} listReportsResp
// @Router /api/v1/acceptance/list [get]
func (h *handler) ListAcceptance(c *gin.Context) {
	h.listReports(c, model.VariantAcceptance)
}

func (h *handler) listReports(c *gin.Context, variant string) {
	ctx := c.Request.Context()

	req, sc, err := h.processListReportsRequest(c, variant)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.listReports: processListReportsRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.ListReports(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.listReports: usecase ListReports failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListReportsResp(o))
}

// @Summary Delete a report
// @Description Move a report to the recycle bin
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/quotes/quote/{id} [delete]
func (h *handler) DeleteReport(c *gin.Context) {
	ctx := c.Request.Context()

	id, sc, err := h.processReportIDRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DeleteReport: processReportIDRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	if err := h.uc.DeleteReport(ctx, sc, report.DeleteReportInput{ReportID: id}); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DeleteReport: usecase DeleteReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// @Summary Restore a deleted report
// @Description Restore a report from the recycle bin (members only)
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} reportResp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/quotes/quote/{id}/restore [post]
func (h *handler) RestoreReport(c *gin.Context) {
	ctx := c.Request.Context()

	id, sc, err := h.processReportIDRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.RestoreReport: processReportIDRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.RestoreReport(ctx, sc, report.RestoreReportInput{ReportID: id})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.RestoreReport: usecase RestoreReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReportResp(o))
}

// @Summary Request an acceptance recheck
// @Description Submit rectified photos for a follow-up inspection
// @Tags Acceptance
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param body body recheckReq true "Recheck request"
// @Success 200 {object} reportResp
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/acceptance/{id}/request-recheck [post]
func (h *handler) RequestRecheck(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processRecheckRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.RequestRecheck: processRecheckRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.RequestRecheck(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.RequestRecheck: usecase RequestRecheck failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReportResp(o))
}
