package models

// Requests for the analyze HTTP endpoints. Defined in domain for consistency and reuse.

type AnalyzeRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Days   int    `query:"days" json:"days" default:"7" validate:"gte=3,lte=30"`
	Source string `query:"source" json:"source" default:"auto" validate:"oneof=auto polygon coingecko"`
}
