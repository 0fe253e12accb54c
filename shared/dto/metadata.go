package dto

import (
	"tonyspizza/shared/constant"
	"tonyspizza/shared/model"
	"tonyspizza/shared/timezone"
)

type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	m.CreatedAt = timezone.Format(source.CreatedAt, constant.DateFormat)
	m.ModifiedAt = timezone.Format(source.ModifiedAt, constant.DateFormat)
	m.CreatedBy = source.CreatedBy
	m.ModifiedBy = source.ModifiedBy
}
