package view

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fleet-dashboard-backend/internal/parse"
)

// Placeholders rendered instead of values that cannot be displayed.
const (
	DateUnavailable  = "Data não disponível"
	DateInvalid      = "Data inválida"
	ModelUnavailable = "Modelo não disponível"
	NoHistory        = "Nenhum histórico disponível"
)

// OperatingStateName is the state for which no "last update" line is shown.
const OperatingStateName = "Operando"

const displayDateLayout = "02/01/2006 15:04"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatDate renders an ISO-8601 date as dd/MM/yyyy HH:mm, or a placeholder.
func FormatDate(raw string) string {
	if raw == "" {
		return DateUnavailable
	}
	t, err := parse.ParseTimestamp(raw)
	if err != nil {
		return DateInvalid
	}
	return t.Format(displayDateLayout)
}

// FormatCurrency renders an hourly rate in Brazilian reais.
func FormatCurrency(v float64) string {
	s := printer.Sprintf("R$ %.2f", math.Abs(v))
	if v < 0 {
		return "-" + s
	}
	return s
}
