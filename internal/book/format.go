package book

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	idPrinter = message.NewPrinter(language.Indonesian)
	usPrinter = message.NewPrinter(language.AmericanEnglish)
)

// FormatAmount renders n with Indonesian digit grouping, e.g. "IDR 150.000".
func FormatAmount(n float64) string {
	return "IDR " + idPrinter.Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
}

// FormatPrice renders p as US dollars, e.g. "$1,234.50". A missing or NaN
// price renders as "$0.00".
func FormatPrice(p *float64) string {
	if p == nil || math.IsNaN(*p) {
		return "$0.00"
	}
	v := *p
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + usPrinter.Sprint(number.Decimal(v, number.Scale(2)))
}

// StatusStyle is the display treatment for a book status.
type StatusStyle struct {
	Label string
	Color string
}

func StyleFor(s Status) StatusStyle {
	switch s {
	case StatusAvailable:
		return StatusStyle{Label: string(s), Color: "green"}
	case StatusBorrowed:
		return StatusStyle{Label: string(s), Color: "yellow"}
	case StatusReserved:
		return StatusStyle{Label: string(s), Color: "red"}
	default:
		return StatusStyle{Label: "Unknown", Color: "gray"}
	}
}
