package pgxutil

import (
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestTxOptions(t *testing.T) {
	assert.Equal(t, pgx.TxOptions{}, txOptions(nil))

	got := txOptions(&sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	assert.Equal(t, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadWrite}, got)

	got = txOptions(&sql.TxOptions{Isolation: sql.LevelSerializable, ReadOnly: true})
	assert.Equal(t, pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadOnly}, got)

	assert.Equal(t, pgx.TxIsoLevel(""), isoLevel(sql.LevelDefault))
}
