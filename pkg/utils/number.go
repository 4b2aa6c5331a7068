package utils

import (
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseMoneyToCents converte um valor monetário em texto ("12.34") para
// centavos. Plataformas como o Meta retornam gasto como string decimal.
func ParseMoneyToCents(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return int64(math.Round(value * 100)), nil
}
