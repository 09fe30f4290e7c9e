package repository

type CreateSessionOptions struct {
	OwnerID             string
	LinkedReportID      *int64
	LinkedReportVariant string
	Stage               string
}

type AppendMessageOptions struct {
	SessionID int64
	Role      string
	Content   string
	ImageRefs []string
}

// QuotaIncrement is the guarded quota bump applied inside an exchange.
type QuotaIncrement struct {
	OwnerID   string
	YearMonth string
	Ceiling   int
}

type AppendExchangeOptions struct {
	SessionID int64

	UserContent   string
	UserImageRefs []string

	AssistantContent string

	// Quota is nil for members, who bypass the monthly ceiling.
	Quota *QuotaIncrement
}
