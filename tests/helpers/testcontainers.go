// This file starts the backing services for integration tests and the cmd/devdb launcher.
// Expects environment variables to be loaded from .env files, with defaults for a local run.
//

package helpers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/localnerve/guau-api/data"
	"github.com/localnerve/guau-api/internal/config"
	"github.com/localnerve/guau-api/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const dbNetworkAlias = "guau-db"

type TestContainers struct {
	Network             *testcontainers.DockerNetwork
	DBContainer         testcontainers.Container
	AuthorizerContainer testcontainers.Container

	dbType string
	dbPort nat.Port
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.AuthorizerContainer != nil {
		if err := tc.AuthorizerContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Authorizer: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// DBConfig returns an application config pointing at the mapped database port.
func (tc *TestContainers) DBConfig(ctx context.Context) (*config.Config, error) {
	host, err := tc.DBContainer.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := tc.DBContainer.MappedPort(ctx, tc.dbPort)
	if err != nil {
		return nil, err
	}
	return &config.Config{
		DBType:            tc.dbType,
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        getEnv("DB_DATABASE", "guau"),
		DBUser:            getEnv("DB_USER", "guau"),
		DBPassword:        getEnv("DB_PASSWORD", "guau"),
		DBConnectionLimit: 20,
		DBLogSlow:         time.Second,
		AuthProvider:      "jwt",
		JWTSecret:         getEnv("JWT_SECRET", "integration-secret"),
		JWTTTL:            time.Hour,
	}, nil
}

// AuthzURL returns the host-reachable Authorizer URL, or "" when it was not started.
func (tc *TestContainers) AuthzURL(ctx context.Context) string {
	if tc.AuthorizerContainer == nil {
		return ""
	}
	host, _ := tc.AuthorizerContainer.Host(ctx)
	port, _ := tc.AuthorizerContainer.MappedPort(ctx, nat.Port(getEnv("AUTHZ_PORT", "8080")+"/tcp"))
	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

// CreateAllTestContainers starts the database selected by DB_TYPE (postgres or
// mariadb) and, with AUTH_PROVIDER=authorizer, an Authorizer wired to it.
// A nil t exits the process on failure.
func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{
		dbType: strings.ToLower(getEnv("DB_TYPE", "postgres")),
	}

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw
	networkName := nw.Name

	dbImage := getEnv("DB_IMAGE", defaultDBImage(testContainers.dbType))
	if exists, err := imageExists(ctx, dbImage); err == nil && exists {
		logMessage(t, "Image %s exists, reusing...", dbImage)
	}

	tcpDbPort, err := nat.NewPort("tcp", defaultDBPort(testContainers.dbType))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}
	testContainers.dbPort = tcpDbPort

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:              dbImage,
			ExposedPorts:       []string{string(tcpDbPort)},
			Env:                getDBInitEnvMap(testContainers.dbType),
			HostConfigModifier: tmpfsData(testContainers.dbType),
			WaitingFor:         dbWaitStrategy(testContainers.dbType, tcpDbPort),
			Networks:           []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start database")
	}
	testContainers.DBContainer = dbContainer

	if err := performDBInit(ctx, testContainers); err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to initialize databases")
	}

	cfg, _ := testContainers.DBConfig(ctx)
	logMessage(t, "DB_TYPE=%s", cfg.DBType)
	logMessage(t, "DB_HOST=%s", cfg.DBHost)
	logMessage(t, "DB_PORT=%s", cfg.DBPort)

	if strings.ToLower(os.Getenv("AUTH_PROVIDER")) != "authorizer" {
		return testContainers, nil
	}

	authzPort := getEnv("AUTHZ_PORT", "8080")
	tcpAuthzPort, err := nat.NewPort("tcp", authzPort)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create Authorizer port")
	}
	authzLogLevel := "info"
	if os.Getenv("DEBUG_CONTAINER") == "true" {
		authzLogLevel = "debug"
	}
	authorizerContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getEnv("AUTHZ_IMAGE", "lakhansamani/authorizer:latest"),
			ExposedPorts: []string{string(tcpAuthzPort)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     getEnv("AUTHZ_CLIENT_ID", "guau-dev"),
				"PORT":          authzPort,
				"DATABASE_TYPE": authzDatabaseType(testContainers.dbType),
				"DATABASE_NAME": getEnv("AUTHZ_DATABASE", "authorizer"),
				"DATABASE_URL":  authzDatabaseURL(testContainers.dbType),
				"ADMIN_SECRET":  getEnv("AUTHZ_ADMIN_SECRET", "admin-secret"),
				"ROLES":         "admin,user",
				"DEFAULT_ROLES": "user",
				"LOG_LEVEL":     authzLogLevel,
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(30 * time.Second),
			Networks:   []string{networkName},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Authorizer")
	}
	testContainers.AuthorizerContainer = authorizerContainer

	logMessage(t, "AUTHZ_URL=%s", testContainers.AuthzURL(ctx))
	return testContainers, nil
}

func defaultDBImage(dbType string) string {
	if dbType == "postgres" {
		return "postgres:17-alpine"
	}
	return "mariadb:11"
}

func defaultDBPort(dbType string) string {
	if dbType == "postgres" {
		return "5432"
	}
	return "3306"
}

func dbWaitStrategy(dbType string, port nat.Port) wait.Strategy {
	if dbType == "postgres" {
		// the entrypoint restarts the server once after init
		return wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second)
	}
	return wait.ForListeningPort(port).WithStartupTimeout(60 * time.Second)
}

func tmpfsData(dbType string) func(*container.HostConfig) {
	dataDir := "/var/lib/mysql"
	if dbType == "postgres" {
		dataDir = "/var/lib/postgresql/data"
	}
	return func(hostConfig *container.HostConfig) {
		hostConfig.Tmpfs = map[string]string{dataDir: "rw"}
	}
}

func getDBInitEnvMap(dbType string) map[string]string {
	switch dbType {
	case "postgres":
		return map[string]string{
			"POSTGRES_PASSWORD": getEnv("DB_PASSWORD", "guau"),
			"POSTGRES_USER":     getEnv("DB_USER", "guau"),
			"POSTGRES_DB":       getEnv("DB_DATABASE", "guau"),
		}
	case "mariadb", "mysql":
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": getEnv("DB_ROOT_PASSWORD", "root"),
			"MYSQL_DATABASE":      getEnv("DB_DATABASE", "guau"),
			"MYSQL_USER":          getEnv("DB_USER", "guau"),
			"MYSQL_PASSWORD":      getEnv("DB_PASSWORD", "guau"),
		}
	}
	return nil
}

func authzDatabaseType(dbType string) string {
	if dbType == "postgres" {
		return "postgres"
	}
	return "mariadb"
}

func authzDatabaseURL(dbType string) string {
	authzDatabase := getEnv("AUTHZ_DATABASE", "authorizer")
	if dbType == "postgres" {
		return fmt.Sprintf("postgres://%s:%s@%s:5432/%s?sslmode=disable",
			getEnv("DB_USER", "guau"), getEnv("DB_PASSWORD", "guau"), dbNetworkAlias, authzDatabase)
	}
	return fmt.Sprintf("root:%s@tcp(%s:3306)/%s",
		getEnv("DB_ROOT_PASSWORD", "root"), dbNetworkAlias, authzDatabase)
}

// performDBInit creates the Authorizer database and applies the MariaDB grants.
// The application tables are created by AutoMigrate.
func performDBInit(ctx context.Context, tc *TestContainers) error {
	cfg, err := tc.DBConfig(ctx)
	if err != nil {
		return err
	}
	admin := *cfg
	if tc.dbType != "postgres" {
		admin.DBUser = "root"
		admin.DBPassword = getEnv("DB_ROOT_PASSWORD", "root")
		admin.DBDatabase = ""
	}

	var db *gorm.DB
	for i := 0; i < 30; i++ {
		db, err = database.Connect(&admin, nil)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("database not ready after 30 seconds: %w", err)
	}
	defer database.Close(db)

	authzDatabase := getEnv("AUTHZ_DATABASE", "authorizer")
	if tc.dbType == "postgres" {
		var exists int64
		if err := db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", authzDatabase).Scan(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return db.Exec(fmt.Sprintf("CREATE DATABASE %s", authzDatabase)).Error
		}
		return nil
	}

	if err := db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", authzDatabase)).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", authzDatabase, err)
	}
	if err := executeSQL(db, data.InitdbMariaDBDatabase); err != nil {
		return fmt.Errorf("failed to execute database init sql: %w", err)
	}
	if err := executeSQL(db, data.InitdbMariaDBPrivileges); err != nil {
		return fmt.Errorf("failed to execute privileges init sql: %w", err)
	}
	return nil
}

func executeSQL(db *gorm.DB, sql string) error {
	lines := strings.Split(sql, "\n")

	var ncls []string
	for _, l := range lines {
		ncls = append(ncls, excludeComment(l))
	}

	queries := strings.Split(strings.Join(ncls, " "), ";")
	for _, q := range queries {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if err := db.Exec(q).Error; err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

// excludeComment strips a trailing -- comment that is not inside a quoted string
func excludeComment(line string) string {
	inQuote := byte(0)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuote != 0:
			if ch == inQuote {
				inQuote = 0
			}
		case ch == '\'' || ch == '"':
			inQuote = ch
		case ch == '-' && i+1 < len(line) && line[i+1] == '-':
			return line[:i]
		}
	}
	return line
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
