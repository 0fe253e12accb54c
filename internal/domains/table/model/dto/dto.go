package dto

import (
	"fmt"

	"tonyspizza/internal/domains/table/model"
)

type TableResponse struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
}

func (r *TableResponse) FromModel(table model.Table) {
	r.ID = table.ID
	r.Number = table.Number
	r.Capacity = table.Capacity
}

// Label is the text shown for the table in lists and select boxes.
func (r TableResponse) Label() string {
	return fmt.Sprintf("Table %d (seats %d)", r.Number, r.Capacity)
}

func FromModels(tables []model.Table) []TableResponse {
	res := make([]TableResponse, len(tables))
	for i, table := range tables {
		res[i].FromModel(table)
	}

	return res
}
