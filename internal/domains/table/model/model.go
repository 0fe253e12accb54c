package model

import "tonyspizza/shared/model"

const (
	TableName  = "dining_tables"
	EntityName = "table"

	FieldID       = "id"
	FieldNumber   = "number"
	FieldCapacity = "capacity"
)

// Table is a physical restaurant table. Rows are managed by migrations and
// administrative tooling, the web application only reads them.
type Table struct {
	ID       string `db:"id"`
	Number   int    `db:"number"`
	Capacity int    `db:"capacity"`
	model.Metadata
}
