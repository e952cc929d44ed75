package errors

import (
	stdErrors "errors"

	"github.com/jackc/pgconn"
)

// DumpInfo collects loggable facts about an error chain, including any
// Postgres driver details buried inside it.
type DumpInfo struct {
	TopMessage   string
	Code         string
	Chain        []string
	PGCode       string
	PGMessage    string
	PGDetail     string
	PGTable      string
	PGColumn     string
	PGConstraint string
}

// Dump walks the error chain and extracts structured diagnostics.
func Dump(err error) DumpInfo {
	info := DumpInfo{}
	if err == nil {
		return info
	}

	info.TopMessage = err.Error()
	if typed := As(err); typed != nil {
		info.Code = string(typed.Code())
	}

	for cursor := err; cursor != nil; cursor = stdErrors.Unwrap(cursor) {
		info.Chain = append(info.Chain, cursor.Error())
	}

	var pgErr *pgconn.PgError
	if stdErrors.As(err, &pgErr) {
		info.PGCode = pgErr.Code
		info.PGMessage = pgErr.Message
		info.PGDetail = pgErr.Detail
		info.PGTable = pgErr.TableName
		info.PGColumn = pgErr.ColumnName
		info.PGConstraint = pgErr.ConstraintName
	}

	return info
}
