package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"garage-backend/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the
// full schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("garage_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Apply the embedded schema.
	if err := database.RunMigrations(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedReferenceData inserts a driver, a store and write permissions for
// employee 1, returning the generated driver and store ids.
func SeedReferenceData(t *testing.T, pool *pgxpool.Pool) (driverID, storeID int64) {
	t.Helper()

	ctx := context.Background()

	err := pool.QueryRow(ctx,
		`INSERT INTO drivers (first_name, last_name, email, phone, city, country)
		 VALUES ('Eva', 'Lind', 'eva@example.com', '+46701234567', 'Stockholm', 'SE')
		 RETURNING driver_id`,
	).Scan(&driverID)
	if err != nil {
		t.Fatalf("failed to seed driver: %v", err)
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO stores (name, address, currency)
		 VALUES ('Södermalm Garage', 'Hornsgatan 4', 'SEK')
		 RETURNING store_id`,
	).Scan(&storeID)
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	for _, permission := range []string{"orders:write", "bills:write", "bookings:write"} {
		if _, err := pool.Exec(ctx,
			"INSERT INTO employee_permissions (employee_id, permission) VALUES (1, $1)",
			permission,
		); err != nil {
			t.Fatalf("failed to seed permission %s: %v", permission, err)
		}
	}

	return driverID, storeID
}

// CleanupDB cleans all data from test tables in dependency order.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"bill_orders",
		"bills",
		"order_services",
		"order_local_services",
		"rent_car_bookings",
		"orders",
		"employee_permissions",
		"stores",
		"drivers",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
