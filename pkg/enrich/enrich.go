package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// Registry provider wire shapes. Dates arrive as "2006-01-02".

type registryResponse struct {
	Code int    `json:"error_code"`
	Msg  string `json:"reason"`
	Data struct {
		Name              string `json:"name"`
		CreditCode        string `json:"credit_code"`
		OperName          string `json:"oper_name"`
		RegisteredCapital string `json:"registered_capital"`
		StartDate         string `json:"start_date"`
		Status            string `json:"status"`
		Address           string `json:"address"`
		Scope             string `json:"scope"`
	} `json:"result"`
}

type litigationResponse struct {
	Code int    `json:"error_code"`
	Msg  string `json:"reason"`
	Data struct {
		Items []struct {
			CaseNo    string `json:"case_no"`
			CaseName  string `json:"case_name"`
			PartyRole string `json:"party_role"`
			Court     string `json:"court"`
			Date      string `json:"date"`
			Amount    string `json:"amount"`
		} `json:"items"`
	} `json:"result"`
}

func (e *implEnrichment) CompanyProfile(ctx context.Context, companyName string) (*CompanyProfile, error) {
	if companyName == "" {
		return nil, fmt.Errorf("enrich: company name is required")
	}

	q := url.Values{}
	q.Set("keyword", companyName)
	q.Set("key", e.config.RegistryToken)

	var resp registryResponse
	err := e.exec.Execute(ctx, "enrich.registry", func(ctx context.Context) error {
		body, status, err := e.client.Get(ctx, e.config.RegistryURL+"?"+q.Encode(), nil)
		if err != nil {
			return err
		}
		if status >= 500 {
			return fmt.Errorf("enrich: registry returned %d", status)
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("enrich: decode registry response: %w", err)
		}
		if resp.Code != 0 {
			return fmt.Errorf("enrich: registry error %d: %s", resp.Code, resp.Msg)
		}
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	if resp.Data.Name == "" {
		return nil, fmt.Errorf("enrich: no registry record for %q", companyName)
	}

	return &CompanyProfile{
		Name:              resp.Data.Name,
		CreditCode:        resp.Data.CreditCode,
		LegalPerson:       resp.Data.OperName,
		RegisteredCapital: resp.Data.RegisteredCapital,
		EstablishedAt:     parseDate(resp.Data.StartDate),
		Status:            resp.Data.Status,
		Address:           resp.Data.Address,
		BusinessScope:     resp.Data.Scope,
	}, nil
}

func (e *implEnrichment) Litigation(ctx context.Context, companyName string) ([]LitigationRecord, error) {
	if companyName == "" {
		return nil, fmt.Errorf("enrich: company name is required")
	}

	q := url.Values{}
	q.Set("keyword", companyName)
	q.Set("key", e.config.LitigationToken)

	var resp litigationResponse
	err := e.exec.Execute(ctx, "enrich.litigation", func(ctx context.Context) error {
		body, status, err := e.client.Get(ctx, e.config.LitigationURL+"?"+q.Encode(), nil)
		if err != nil {
			return err
		}
		if status >= 500 {
			return fmt.Errorf("enrich: litigation provider returned %d", status)
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("enrich: decode litigation response: %w", err)
		}
		if resp.Code != 0 {
			return fmt.Errorf("enrich: litigation error %d: %s", resp.Code, resp.Msg)
		}
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}

	records := make([]LitigationRecord, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		records = append(records, LitigationRecord{
			CaseNo:   item.CaseNo,
			Title:    item.CaseName,
			Role:     item.PartyRole,
			Court:    item.Court,
			CaseDate: parseDate(item.Date),
			Amount:   item.Amount,
		})
	}
	return records, nil
}

func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", "2006/01/02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
