package repositories

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bimakw/token-holdings/internal/domain/entities"
)

// SnapshotRepository reads raw balance snapshots
type SnapshotRepository interface {
	// LatestSnapshots returns every snapshot of owner whose block number is
	// the highest recorded for its token. Ties are returned as-is.
	LatestSnapshots(ctx context.Context, owner common.Address) ([]entities.BalanceSnapshot, error)
}
