package database

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jmoiron/sqlx"

	"github.com/bimakw/token-holdings/internal/domain/entities"
	"github.com/bimakw/token-holdings/internal/domain/repositories"
)

// Ensure SnapshotRepo implements SnapshotRepository
var _ repositories.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implements SnapshotRepository using PostgreSQL
type SnapshotRepo struct {
	db *sqlx.DB
}

// NewSnapshotRepo creates a new snapshot repository
func NewSnapshotRepo(db *sqlx.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// LatestSnapshots returns the owner's snapshots at the highest block number
// recorded for each token
func (r *SnapshotRepo) LatestSnapshots(ctx context.Context, owner common.Address) ([]entities.BalanceSnapshot, error) {
	query := `
		SELECT address_hash, token_contract_address_hash, value, block_number, inserted_at
		FROM (
			SELECT
				address_hash,
				token_contract_address_hash,
				COALESCE(value, 0) AS value,
				block_number,
				inserted_at,
				id,
				MAX(block_number) OVER (PARTITION BY token_contract_address_hash) AS max_block
			FROM address_token_balances
			WHERE address_hash = $1
		) s
		WHERE block_number = max_block
		ORDER BY token_contract_address_hash, id
	`

	snapshots := []entities.BalanceSnapshot{}
	if err := r.db.SelectContext(ctx, &snapshots, query, owner.Bytes()); err != nil {
		return nil, storageError("get latest snapshots", err)
	}

	return snapshots, nil
}
