package storage

import (
	"database/sql"

	"github.com/mmynk/roomieboard/internal/models"
)

// SplitColumns flattens a split into the columns shared by every backend.
func SplitColumns(split models.Split) (mode, debtor sql.NullString, members []string) {
	switch s := split.(type) {
	case models.SplitEvenly:
		mode = sql.NullString{String: string(models.SplitModeEven), Valid: true}
		members = s.Members
	case models.FullyOwedBy:
		mode = sql.NullString{String: string(models.SplitModeFull), Valid: true}
		debtor = sql.NullString{String: s.Debtor, Valid: true}
	}
	return mode, debtor, members
}

// BuildSplit is the inverse of SplitColumns.
func BuildSplit(mode, debtor sql.NullString, members []string) models.Split {
	if !mode.Valid {
		return nil
	}
	switch models.SplitMode(mode.String) {
	case models.SplitModeEven:
		return models.SplitEvenly{Members: members}
	case models.SplitModeFull:
		return models.FullyOwedBy{Debtor: debtor.String}
	default:
		return nil
	}
}
