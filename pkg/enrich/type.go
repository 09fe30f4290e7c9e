package enrich

import (
	"time"

	pkghttp "renov-srv/pkg/http"
	"renov-srv/pkg/log"
	"renov-srv/pkg/resilience"
)

// Config holds the enrichment provider credentials and endpoints.
type Config struct {
	RegistryToken   string
	RegistryURL     string
	LitigationToken string
	LitigationURL   string
	Timeout         time.Duration
}

// CompanyProfile is the normalized business-registry record.
type CompanyProfile struct {
	Name              string    `json:"name"`
	CreditCode        string    `json:"credit_code"`
	LegalPerson       string    `json:"legal_person"`
	RegisteredCapital string    `json:"registered_capital"`
	EstablishedAt     time.Time `json:"established_at"`
	Status            string    `json:"status"`
	Address           string    `json:"address"`
	BusinessScope     string    `json:"business_scope"`
}

// LitigationRecord is one normalized court record for a company.
type LitigationRecord struct {
	CaseNo   string    `json:"case_no"`
	Title    string    `json:"title"`
	Role     string    `json:"role"`
	Court    string    `json:"court"`
	CaseDate time.Time `json:"case_date"`
	Amount   string    `json:"amount"`
}

// implEnrichment implements IEnrichment.
type implEnrichment struct {
	config Config
	client pkghttp.IClient
	exec   *resilience.Executor
	l      log.Logger
}
