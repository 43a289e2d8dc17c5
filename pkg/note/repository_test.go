package note

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/creatordash/internal/test_utils"
	"github.com/klokku/creatordash/pkg/user"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	var err error
	pgContainer, openDb, err = test_utils.TestWithDB()
	if err != nil {
		log.Warnf("repository tests disabled: %v", err)
		openDb = nil
	}
	code := m.Run()
	if pgContainer != nil {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, int) {
	if openDb == nil {
		t.Skip("postgres container not available")
	}
	ctx := context.Background()
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})

	u := user.User{Uid: uuid.NewString(), Name: "Test User", Email: "test@example.com", CreatedAt: time.Now()}
	require.NoError(t, u.SetPassword("secret1"))
	userId, err := user.NewUserRepo(db).CreateUser(ctx, u)
	require.NoError(t, err)

	return ctx, NewRepository(db), userId
}

func TestRepositoryImpl_NotesAreListedNewestFirst(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)
	ideas := Note{ID: uuid.NewString(), Title: "Ideas", Content: "New feature ideas", DateCreated: "2025-10-19", DateModified: "2025-10-19"}
	meeting := Note{ID: uuid.NewString(), Title: "Meeting Notes", Content: "Timeline", DateCreated: "2025-10-20", DateModified: "2025-10-20"}

	require.NoError(t, repo.StoreNote(ctx, userId, ideas))
	require.NoError(t, repo.StoreNote(ctx, userId, meeting))

	notes, err := repo.GetNotes(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, []Note{meeting, ideas}, notes)
}

func TestRepositoryImpl_UpdateAndDeleteNote(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)
	n := Note{ID: uuid.NewString(), Title: "Draft", Content: "", DateCreated: "2025-10-19", DateModified: "2025-10-19"}
	require.NoError(t, repo.StoreNote(ctx, userId, n))

	n.Content = "Finished"
	n.DateModified = "2025-10-21"
	_, err := repo.UpdateNote(ctx, userId, n)
	require.NoError(t, err)

	stored, err := repo.GetNote(ctx, userId, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, stored)

	require.NoError(t, repo.DeleteNote(ctx, userId, n.ID))
	_, err = repo.GetNote(ctx, userId, n.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}
