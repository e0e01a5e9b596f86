package service

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/helpdesk/internal/access"
	"github.com/Skotchmaster/helpdesk/internal/migrate"
	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	pkgdb "github.com/Skotchmaster/helpdesk/pkg/db"
	"github.com/Skotchmaster/helpdesk/pkg/hash"
)

func TestMain(m *testing.M) {
	hash.SetCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

// newTestRepo returns a repo over a private in-memory database with the
// reference rows seeded.
func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	ctx := context.Background()
	db, err := pkgdb.Open(ctx, pkgdb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { pkgdb.Close(db) })

	require.NoError(t, migrate.AutoMigrate(ctx, db))
	require.NoError(t, migrate.Seed(ctx, db, migrate.Options{}))
	return repo.New(db)
}

func createUser(t *testing.T, r *repo.GormRepo, email, password string, admin bool) *models.User {
	t.Helper()

	pw, err := hash.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{
		Name:         "Usuário " + email,
		Email:        email,
		PasswordHash: pw,
		IsAdmin:      admin,
		IsActive:     true,
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func identityOf(u *models.User) access.Identity {
	return access.Identity{UserID: u.ID, IsAdmin: u.IsAdmin, Name: u.Name, Email: u.Email}
}

func createServiceCenter(t *testing.T, r *repo.GormRepo, code string) *models.ServiceCenter {
	t.Helper()

	ca := &models.ServiceCenter{Code: code, Name: "CA " + code, IsActive: true}
	require.NoError(t, r.CreateServiceCenter(context.Background(), ca))
	return ca
}

func createCustomer(t *testing.T, r *repo.GormRepo, caID uint, code string) *models.Customer {
	t.Helper()

	c := &models.Customer{
		ServiceCenterID: caID,
		Code:            code,
		Name:            "Cliente " + code,
		Status:          models.CustomerActive,
		IsActive:        true,
	}
	require.NoError(t, r.CreateCustomer(context.Background(), c))
	return c
}

type catalogRefs struct {
	Module  models.Module
	Subject models.Subject
	Type    models.TicketType
}

// seededRefs returns a module, one of its subjects and a ticket type from
// the seed data.
func seededRefs(t *testing.T, r *repo.GormRepo) catalogRefs {
	t.Helper()

	var refs catalogRefs
	require.NoError(t, r.DB.Where("nome_modulo = ?", "Suporte Técnico").First(&refs.Module).Error)
	require.NoError(t, r.DB.Where("modulo_id = ?", refs.Module.ID).Order("id").First(&refs.Subject).Error)
	require.NoError(t, r.DB.Where("nome = ?", "Suporte").First(&refs.Type).Error)
	return refs
}

type recordingIndexer struct {
	mu      sync.Mutex
	indexed []uint
	deleted []uint
}

func (x *recordingIndexer) IndexTicket(_ context.Context, t models.Ticket) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.indexed = append(x.indexed, t.ID)
	return nil
}

func (x *recordingIndexer) DeleteTicket(_ context.Context, id uint) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.deleted = append(x.deleted, id)
	return nil
}
