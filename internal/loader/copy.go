package loader

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finrefdata/secsync/internal/series"
)

// copySQL targets the minute price table in the reader's field order.
const copySQL = `COPY security_data (security_id, ts, o, h, l, c, v, notional, txns) ` +
	`FROM STDIN WITH (FORMAT text, DELIMITER '|')`

// CopyInto bulk-loads a bar stream into security_data on the caller's
// transaction, returning the number of rows copied. Any formatting or stream
// error aborts the copy and propagates; the caller rolls the transaction
// back.
func CopyInto(ctx context.Context, tx pgx.Tx, stream series.BarStream, bufSize int) (int64, error) {
	reader := NewRecordReader(stream, bufSize)

	tag, err := tx.Conn().PgConn().CopyFrom(ctx, reader, copySQL)
	if err != nil {
		return 0, fmt.Errorf("copy into security_data: %w", err)
	}

	return tag.RowsAffected(), nil
}
