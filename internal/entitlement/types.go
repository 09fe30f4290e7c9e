package entitlement

import (
	"time"

	"renov-srv/internal/model"
)

type InvitationOutput struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ConsumeInput struct {
	ReportID int64
}

type ListOutput struct {
	Entitlements []model.UnlockEntitlement
}
