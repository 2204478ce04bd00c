package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available string `json:"available,omitempty"`
	Required  string `json:"required,omitempty"`
}

// Quantity es un decimal tolerante para campos de cantidad: un valor no numérico,
// vacío o null se coacciona a 0 en lugar de rechazar el cuerpo, y Coerced queda en
// true para que el caller lo registre como advertencia (no es un fallo de usuario).
type Quantity struct {
	decimal.Decimal
	Coerced bool
}

// UnmarshalJSON nunca devuelve error: la higiene numérica degrada a cero.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		q.Decimal = decimal.Zero
		q.Coerced = true
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		q.Decimal = decimal.Zero
		q.Coerced = true
		return nil
	}
	q.Decimal = d
	return nil
}

// MarshalJSON serializa como número plano.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.Decimal.String()), nil
}
