package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxScale decimales que admiten cantidades, precios y montos de entrada (columnas NUMERIC(18,4)).
// Los subtotales y totales derivados se guardan con 8 decimales para que subtotal = cantidad × precio sea exacto.
const MaxScale = 4

// CheckScale devuelve ValidationError si d tiene más de MaxScale decimales significativos.
// 1.50000 pasa; 0.00004 no (se guardaría como 0).
func CheckScale(field string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(MaxScale)) {
		return NewValidation(field, fmt.Sprintf("admite hasta %d decimales", MaxScale))
	}
	return nil
}
