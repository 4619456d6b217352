package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatPrice formats a whole-dollar price the way en-US currency
// formatting does without fraction digits: 1000 becomes "$1,000".
func FormatPrice(price int64) string {
	if price < 0 {
		return usd.Sprintf("-$%d", -price)
	}
	return usd.Sprintf("$%d", price)
}
