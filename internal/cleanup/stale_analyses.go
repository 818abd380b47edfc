package cleanup

import (
	"context"
	"fmt"

	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/db"
	"go.uber.org/zap"
)

// RunStaleAnalysisCleanup deletes analyses that were started but never received
// emotions, once they are older than STALE_ANALYSIS_MAX_AGE.
func RunStaleAnalysisCleanup(ctx context.Context) error {
	deleted, err := db.CleanupStaleAnalyses(ctx)
	if err != nil {
		return fmt.Errorf("stale analysis cleanup failed: %w", err)
	}
	internalctx.GetLogger(ctx).Info("stale analyses cleaned up", zap.Int64("deleted", deleted))
	return nil
}
