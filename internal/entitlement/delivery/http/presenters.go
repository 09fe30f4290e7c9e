package http

import (
	"renov-srv/internal/entitlement"
	"renov-srv/internal/model"
)

type consumeReq struct {
	ReportID int64 `json:"report_id" binding:"required"`
}

func (r consumeReq) toInput() entitlement.ConsumeInput {
	return entitlement.ConsumeInput{
		ReportID: r.ReportID,
	}
}

type consumeResp struct {
	Unlocked bool `json:"unlocked"`
}

type invitationResp struct {
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"`
}

func (h *handler) newInvitationResp(o entitlement.InvitationOutput) invitationResp {
	return invitationResp{
		Code:      o.Code,
		ExpiresAt: o.ExpiresAt.Unix(),
	}
}

type entitlementResp struct {
	ID           int64  `json:"id"`
	Source       string `json:"source"`
	Status       string `json:"status"`
	UsedReportID *int64 `json:"used_report_id,omitempty"`
	ExpiresAt    int64  `json:"expires_at"`
	ConsumedAt   *int64 `json:"consumed_at,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

type listEntitlementsResp struct {
	Items []entitlementResp `json:"items"`
}

func (h *handler) newListEntitlementsResp(o entitlement.ListOutput) listEntitlementsResp {
	items := make([]entitlementResp, 0, len(o.Entitlements))
	for _, ent := range o.Entitlements {
		items = append(items, newEntitlementResp(ent))
	}
	return listEntitlementsResp{Items: items}
}

func newEntitlementResp(ent model.UnlockEntitlement) entitlementResp {
	resp := entitlementResp{
		ID:           ent.ID,
		Source:       ent.Source,
		Status:       ent.Status,
		UsedReportID: ent.UsedReportID,
		ExpiresAt:    ent.ExpiresAt.Unix(),
		CreatedAt:    ent.CreatedAt.Unix(),
	}
	if ent.ConsumedAt != nil {
		ts := ent.ConsumedAt.Unix()
		resp.ConsumedAt = &ts
	}
	return resp
}
