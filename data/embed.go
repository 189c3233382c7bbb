package data

import (
	_ "embed"
)

// CatalogAchievements is the default achievement catalog, upserted by code at startup
//
//go:embed catalog/achievements.json
var CatalogAchievements []byte

// CatalogConfig is the default public app configuration
//
//go:embed catalog/config.json
var CatalogConfig []byte

//go:embed initdb/mariadb/001-ddl-database.sql
var InitdbMariaDBDatabase string

//go:embed initdb/mariadb/002-ddl-privileges.sql
var InitdbMariaDBPrivileges string
