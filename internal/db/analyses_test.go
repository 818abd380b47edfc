package db_test

import (
	"context"
	"testing"

	"github.com/anima-music/anima/internal/apierrors"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/gomega"
)

type execRecorder struct {
	tag        pgconn.CommandTag
	statements []string
}

func (r *execRecorder) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.statements = append(r.statements, sql)
	return r.tag, nil
}

func (r *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("unexpected query")
}

func (r *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("unexpected query")
}

func TestDeleteAnalysisScopedToOwner(t *testing.T) {
	g := NewWithT(t)

	// an analysis of another user must not lose any row, not even cascaded ones
	recorder := &execRecorder{tag: pgconn.NewCommandTag("DELETE 0")}
	ctx := internalctx.WithDb(context.Background(), recorder)
	err := db.DeleteAnalysis(ctx, uuid.New(), uuid.New())
	g.Expect(err).To(MatchError(apierrors.ErrNotFound))
	g.Expect(recorder.statements).To(HaveLen(1))
	g.Expect(recorder.statements[0]).To(ContainSubstring("user_account_id = @userId"))

	recorder = &execRecorder{tag: pgconn.NewCommandTag("DELETE 1")}
	ctx = internalctx.WithDb(context.Background(), recorder)
	g.Expect(db.DeleteAnalysis(ctx, uuid.New(), uuid.New())).To(Succeed())
	g.Expect(recorder.statements).To(HaveLen(1))
}
