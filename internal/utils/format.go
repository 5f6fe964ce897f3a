package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/julianstephens/pact/internal/constants"
)

var currencyPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatDate renders a backend date (date-only or RFC 3339) as "Jan 2, 2006".
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Not set"
	}
	t, err := parseBackendDate(raw)
	if err != nil {
		return "Invalid date"
	}
	return t.Format(constants.DisplayDateFormat)
}

// FormatDateRange describes a pact's run, tolerating either end being unset.
func FormatDateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return "Not set"
	case end == "":
		return "Starts " + FormatDate(start)
	case start == "":
		return "Ends " + FormatDate(end)
	}
	return FormatDate(start) + " - " + FormatDate(end)
}

// FormatCurrency formats a fine amount in rupees.
func FormatCurrency(amount float64) string {
	return currencyPrinter.Sprint(currency.Symbol(currency.INR.Amount(amount)))
}

// FormatSize renders an attachment size like "2.4 MB".
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}

// FormatAgo renders how long ago t was, relative to now.
func FormatAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatProgress renders "logged/target days".
func FormatProgress(done, target int) string {
	return fmt.Sprintf("%d/%d days", done, target)
}

func parseBackendDate(raw string) (time.Time, error) {
	if len(raw) == len(constants.DateFormat) {
		return time.Parse(constants.DateFormat, raw)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	// Timestamps carry the calendar date the backend stored; keep its UTC date.
	return t.UTC(), nil
}
