package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL выводит сумму в бразильском формате: "R$ 1.500,50".
func FormatBRL(amount float32) string {
	return brPrinter.Sprintf("R$ %v", number.Decimal(
		amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
