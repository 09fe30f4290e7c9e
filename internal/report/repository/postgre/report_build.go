package postgre

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"renov-srv/internal/model"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReport maps one reports row into the domain model. Column order
// must match reportColumns.
func scanReport(row rowScanner) (*model.Report, error) {
	var (
		rpt           model.Report
		progressJSON  []byte
		resultJSON    []byte
		fileName      sql.NullString
		normalized    sql.NullString
		stage         sql.NullString
		ocrText       sql.NullString
		resultStatus  sql.NullString
		photoRefs     pq.StringArray
		entitlementID sql.NullInt64
		deletedAt     sql.NullTime
	)

	err := row.Scan(
		&rpt.ID, &rpt.Variant, &rpt.OwnerID, &rpt.Status, &progressJSON,
		&rpt.SourceRef, &fileName, &normalized, &stage, &ocrText, &resultJSON,
		&rpt.IsUnlocked, &rpt.UnlockReason, &resultStatus, &photoRefs,
		&rpt.RecheckCount, &entitlementID, &rpt.CreatedAt, &rpt.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(progressJSON) > 0 {
		if err := json.Unmarshal(progressJSON, &rpt.Progress); err != nil {
			return nil, err
		}
	}
	rpt.Result = resultJSON
	rpt.FileName = fileName.String
	rpt.NormalizedName = normalized.String
	rpt.Stage = stage.String
	rpt.OCRText = ocrText.String
	rpt.ResultStatus = resultStatus.String
	rpt.RectifiedPhotoRefs = photoRefs
	if entitlementID.Valid {
		rpt.EntitlementID = &entitlementID.Int64
	}
	if deletedAt.Valid {
		rpt.DeletedAt = &deletedAt.Time
	}

	return &rpt, nil
}

func nullJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
