package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplylink/backend/internal/domain/partner"
	"github.com/supplylink/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSupplierRepository creates a GormSupplierRepository with a mocked SQL connection
func newMockSupplierRepository(t *testing.T) (*GormSupplierRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSupplierRepository(gormDB), mock, mockDB
}

func TestGormSupplierRepository_FindByID(t *testing.T) {
	t.Run("finds existing supplier", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "tax_id", "email"}).
			AddRow(1, "Acme Foods", "12.345.678/0001-90", "contact@acme.example")

		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(1, 1).
			WillReturnRows(rows)

		supplier, err := repo.FindByID(context.Background(), 1)

		assert.NoError(t, err)
		assert.NotNil(t, supplier)
		assert.Equal(t, uint(1), supplier.ID)
		assert.Equal(t, "Acme Foods", supplier.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		supplier, err := repo.FindByID(context.Background(), 99)

		assert.Error(t, err)
		assert.Nil(t, supplier)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_FindAll(t *testing.T) {
	t.Run("orders by name by default", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow(2, "Acme Foods").
			AddRow(1, "Zenith Dairy")

		mock.ExpectQuery(`SELECT \* FROM "suppliers" ORDER BY name ASC`).
			WillReturnRows(rows)

		suppliers, err := repo.FindAll(context.Background(), shared.DefaultFilter())

		assert.NoError(t, err)
		require.Len(t, suppliers, 2)
		assert.Equal(t, "Acme Foods", suppliers[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("orders by a whitelisted column", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		filter := shared.Filter{OrderBy: "created_at", OrderDir: "desc"}

		mock.ExpectQuery(`SELECT \* FROM "suppliers" ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to name for a hostile order_by value", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		filter := shared.Filter{
			OrderBy: "(SELECT CASE WHEN (SELECT count(*) FROM products)>=0 THEN name ELSE name END)",
		}

		mock.ExpectQuery(`SELECT \* FROM "suppliers" ORDER BY name ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies the search pattern", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		filter := shared.DefaultFilter()
		filter.Search = "acme"

		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE name ILIKE \$1 OR tax_id ILIKE \$2 OR email ILIKE \$3 ORDER BY name ASC`).
			WithArgs("%acme%", "%acme%", "%acme%").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		suppliers, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Empty(t, suppliers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_Save(t *testing.T) {
	t.Run("inserts a new supplier", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		supplier, err := partner.NewSupplier("Acme Foods")
		require.NoError(t, err)

		mock.ExpectQuery(`INSERT INTO "suppliers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err = repo.Save(context.Background(), supplier)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates an existing supplier", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		supplier, err := partner.NewSupplier("Acme Foods")
		require.NoError(t, err)
		supplier.ID = 1

		mock.ExpectExec(`UPDATE "suppliers" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), supplier)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a duplicate key to already exists", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		supplier, err := partner.NewSupplier("Acme Foods")
		require.NoError(t, err)

		mock.ExpectQuery(`INSERT INTO "suppliers"`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err = repo.Save(context.Background(), supplier)

		assert.Equal(t, shared.ErrAlreadyExists, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_Delete(t *testing.T) {
	t.Run("deletes existing supplier", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "suppliers" WHERE id = \$1`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), 1)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "suppliers" WHERE id = \$1`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 99)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_Count(t *testing.T) {
	t.Run("counts suppliers", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

		count, err := repo.Count(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(15), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements SupplierRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		var _ partner.SupplierRepository = repo
	})
}
