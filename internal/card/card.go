// Package card renders the offer and rejection detail cards shown on an
// application. Absent fields stay absent; a card is only rendered at all
// when its value object exists.
package card

import (
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/applytrack/applytrack/internal/application"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "C$",
	"AUD": "A$",
	"JPY": "¥",
	"INR": "₹",
	"CHF": "CHF ",
}

// FormatMoney renders an amount with its currency symbol and thousands
// separators, e.g. 155000 USD -> "$155,000". Unknown currencies fall back
// to the ISO code as prefix.
func FormatMoney(amount int64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	return fmt.Sprintf("%s%s", symbol, humanize.Comma(amount))
}

// Countdown renders the response-deadline label, computed on UTC calendar
// days: "Today" when the deadline is today, "1 day remaining" /
// "N days remaining" while in the future, "Expired" once past.
func Countdown(deadline, now time.Time) string {
	days := calendarDays(now, deadline)
	switch {
	case days < 0:
		return "Expired"
	case days == 0:
		return "Today"
	case days == 1:
		return "1 day remaining"
	}
	return fmt.Sprintf("%d days remaining", days)
}

func calendarDays(from, to time.Time) int {
	f := from.UTC().Truncate(24 * time.Hour)
	t := to.UTC().Truncate(24 * time.Hour)
	return int(t.Sub(f).Hours() / 24)
}

// OfferCard is the rendered read model for an offer_details value object.
type OfferCard struct {
	Salary        string
	Bonus         string
	Equity        string
	StartDate     string
	Deadline      string
	DeadlineLabel string
	Benefits      string
	Notes         string
}

// BuildOfferCard renders the card for an application. The second return is
// false when there is nothing to render: no offer details means no card,
// not an empty one.
func BuildOfferCard(app application.Application, now time.Time) (OfferCard, bool) {
	details := app.OfferDetails
	if details == nil {
		return OfferCard{}, false
	}
	c := OfferCard{}
	currency := "USD"
	if details.SalaryCurrency != nil {
		currency = *details.SalaryCurrency
	}
	if details.BaseSalary != nil {
		c.Salary = FormatMoney(*details.BaseSalary, currency)
	}
	if details.BonusPercent != nil {
		c.Bonus = fmt.Sprintf("%g%% bonus", *details.BonusPercent)
	}
	if details.EquityValue != nil {
		c.Equity = FormatMoney(*details.EquityValue, currency)
		if details.EquityType != nil {
			c.Equity += fmt.Sprintf(" (%s)", *details.EquityType)
		}
		if details.VestingYears != nil {
			c.Equity += fmt.Sprintf(", %d-year vesting", *details.VestingYears)
		}
	}
	if details.StartDate != nil {
		c.StartDate = details.StartDate.Format("January 2, 2006")
	}
	if details.ResponseDeadline != nil {
		c.Deadline = details.ResponseDeadline.Format("January 2, 2006")
		c.DeadlineLabel = Countdown(*details.ResponseDeadline, now)
	}
	if details.Benefits != nil {
		c.Benefits = *details.Benefits
	}
	if details.Notes != nil {
		c.Notes = *details.Notes
	}
	return c, true
}

// RejectionCard is the rendered read model for rejection_details.
type RejectionCard struct {
	Stage      string
	Reason     string
	Feedback   string
	RejectedAt string
}

func BuildRejectionCard(app application.Application) (RejectionCard, bool) {
	details := app.RejectionDetails
	if details == nil {
		return RejectionCard{}, false
	}
	c := RejectionCard{}
	if details.Stage != nil {
		c.Stage = string(*details.Stage)
	}
	if details.Reason != nil {
		c.Reason = *details.Reason
	}
	if details.Feedback != nil {
		c.Feedback = *details.Feedback
	}
	if details.RejectedAt != nil {
		c.RejectedAt = humanize.Time(*details.RejectedAt)
	}
	return c, true
}
