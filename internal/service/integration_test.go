package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/helpdesk/internal/migrate"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	pkgdb "github.com/Skotchmaster/helpdesk/pkg/db"
	"github.com/Skotchmaster/helpdesk/pkg/events"
)

func newPostgresRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := os.Getenv("HELPDESK_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("HELPDESK_TEST_DATABASE_URL is required for tests")
	}

	ctx := context.Background()
	db, err := pkgdb.Open(ctx, pkgdb.DriverPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { pkgdb.Close(db) })

	require.NoError(t, migrate.AutoMigrate(ctx, db))
	require.NoError(t, migrate.Seed(ctx, db, migrate.Options{}))
	return repo.New(db)
}

func TestIntegration_ConcurrentTicketNumbersAreUnique(t *testing.T) {
	r := newPostgresRepo(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	ca := createServiceCenter(t, r, suffix)
	customer := createCustomer(t, r, ca.ID, suffix)
	refs := seededRefs(t, r)
	owner := createUser(t, r, "pg-"+suffix+"@example.com", "senha-segura", false)

	svc := &TicketService{
		Repo:     r,
		Settings: NewSettingService(r, time.Minute),
		Events:   &events.Recorder{},
	}

	const workers = 3
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []string
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Create(ctx, identityOf(owner), transport.CreateTicketRequest{
				ServiceCenterID: ca.ID,
				CustomerID:      customer.ID,
				ModuleID:        refs.Module.ID,
				SubjectID:       refs.Subject.ID,
				TypeID:          refs.Type.ID,
				Title:           "Concorrência",
				Description:     "Criação simultânea",
			})
			if err != nil {
				return
			}
			mu.Lock()
			numbers = append(numbers, got.Number)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.NotEmpty(t, numbers)
	seen := map[string]bool{}
	for _, n := range numbers {
		assert.False(t, seen[n], "duplicate number %s", n)
		seen[n] = true
	}
}
