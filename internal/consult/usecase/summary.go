package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"renov-srv/internal/model"
	"renov-srv/internal/report"
)

// summaryItems caps how many issue lines travel with the prompt.
const summaryItems = 5

// linkedReportSummary condenses the linked report's findings into a few
// lines. Only issue and risk entries are carried, never the full
// payload.
func (uc *implUseCase) linkedReportSummary(ctx context.Context, sc model.Scope, sess *model.ConsultSession) string {
	if sess.LinkedReportID == nil {
		return ""
	}

	o, err := uc.reportUC.GetReport(ctx, sc, report.GetReportInput{ReportID: *sess.LinkedReportID})
	if err != nil {
		uc.l.Warnf(ctx, "consult.usecase.linkedReportSummary: Failed to load report %d: %v", *sess.LinkedReportID, err)
		return ""
	}
	rpt := o.Report
	if rpt.Status != model.ReportStatusCompleted || len(rpt.Result) == 0 {
		return ""
	}

	var full map[string]json.RawMessage
	if err := json.Unmarshal(rpt.Result, &full); err != nil {
		return ""
	}

	var lines []string
	switch rpt.Variant {
	case model.VariantQuote:
		lines = append(lines, itemLines(full["high_risk_items"], "item", "description")...)
		lines = append(lines, itemLines(full["missing_items"], "item", "description")...)
	case model.VariantContract:
		lines = append(lines, itemLines(full["risk_items"], "clause", "description")...)
	case model.VariantCompany:
		lines = append(lines, stringLines(full["risk_reasons"])...)
	case model.VariantAcceptance:
		lines = append(lines, itemLines(full["issues"], "category", "description")...)
	}

	if len(lines) > summaryItems {
		lines = lines[:summaryItems]
	}
	return strings.Join(lines, "\n")
}

func itemLines(raw json.RawMessage, titleKey, detailKey string) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	var lines []string
	for _, item := range items {
		title := stringField(item[titleKey])
		detail := stringField(item[detailKey])
		switch {
		case title != "" && detail != "":
			lines = append(lines, fmt.Sprintf("- %s: %s", title, detail))
		case title != "":
			lines = append(lines, "- "+title)
		case detail != "":
			lines = append(lines, "- "+detail)
		}
	}
	return lines
}

func stringLines(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	lines := make([]string, 0, len(items))
	for _, s := range items {
		if s != "" {
			lines = append(lines, "- "+s)
		}
	}
	return lines
}

func stringField(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
