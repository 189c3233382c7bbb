package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON is a wrapper around gorm.io/datatypes.JSON to allow for custom data type mapping
type JSON struct {
	datatypes.JSON
}

// NewJSON marshals v into a JSON column value
func NewJSON(v any) (JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return JSON{}, err
	}
	return JSON{JSON: datatypes.JSON(b)}, nil
}

// Value promotes the embedded JSON's Value method
func (j JSON) Value() (driver.Value, error) {
	return j.JSON.Value()
}

// Scan promotes the embedded JSON's Scan method. Drivers that hand back a
// scalar (sqlite numeric affinity) get it re-marshalled into JSON text.
func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64, float64, bool:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		j.JSON = datatypes.JSON(b)
		return nil
	}
	return j.JSON.Scan(value)
}

// GormDBDataType picks the column type per dialect. MSSQL has no json type and
// sqlite's JSON type has numeric affinity, so both store text.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	}
	return "TEXT"
}
