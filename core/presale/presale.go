package presale

import (
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/golang-sql/civil"
	"github.com/pkg/errors"

	"github.com/robofi/sdk-go/core/types"
)

// DefaultWindow is how long a presale runs when no end is configured
const DefaultWindow = 60*24*time.Hour + 12*time.Hour

// Terms describes a token presale. End is a wall-clock time in UTC.
// Supply is the number of tokens offered and Sold how many are gone.
type Terms struct {
	End            civil.DateTime
	TokenPrice     types.Amount
	MonthlyRevenue types.Amount
	Utilization    types.Amount
	OwnershipShare types.Amount
	Supply         int
	Sold           int
}

// DefaultTerms opens a presale of DefaultWindow starting at now, to the
// whole second
func DefaultTerms(now time.Time) Terms {
	return Terms{
		End:            civil.DateTimeOf(now.UTC().Truncate(time.Second).Add(DefaultWindow)),
		TokenPrice:     types.MustAmount("1.5 ETH"),
		MonthlyRevenue: types.MustAmount("0.15 ETH"),
		Utilization:    types.MustAmount("95%"),
		OwnershipShare: types.MustAmount("10%"),
		Supply:         50,
		Sold:           15,
	}
}

// Validate checks the token counts
func (t Terms) Validate() error {
	if t.Supply < 0 {
		return errors.Errorf("presale supply %d is negative", t.Supply)
	}
	if t.Sold < 0 || t.Sold > t.Supply {
		return errors.Errorf("presale sold %d outside [0, %d]", t.Sold, t.Supply)
	}
	return nil
}

// Available is the number of tokens left, never negative
func (t Terms) Available() int {
	if t.Sold >= t.Supply {
		return 0
	}
	return t.Supply - t.Sold
}

var percentContext = &apd.Context{
	Precision:   34,
	MaxExponent: apd.MaxExponent,
	MinExponent: apd.MinExponent,
	Traps:       apd.DefaultTraps,
	Rounding:    apd.RoundHalfUp,
}

// SoldPercent is Sold as a percentage of Supply, rounded half-up to two
// decimal places. An empty supply counts as sold out.
func (t Terms) SoldPercent() (apd.Decimal, error) {
	var pct apd.Decimal
	if t.Supply <= 0 {
		pct.SetInt64(100)
		return pct, nil
	}

	if _, err := percentContext.Mul(&pct, apd.New(int64(t.Sold), 0), apd.New(100, 0)); err != nil {
		return apd.Decimal{}, errors.Wrap(err, "sold percent")
	}
	if _, err := percentContext.Quo(&pct, &pct, apd.New(int64(t.Supply), 0)); err != nil {
		return apd.Decimal{}, errors.Wrap(err, "sold percent")
	}
	if _, err := percentContext.Quantize(&pct, &pct, -2); err != nil {
		return apd.Decimal{}, errors.Wrap(err, "sold percent")
	}
	pct.Reduce(&pct)
	return pct, nil
}

// ParseEnd parses an RFC 3339 style local date-time such as
// "2026-12-31T12:00:00", interpreted as UTC
func ParseEnd(s string) (civil.DateTime, error) {
	dt, err := civil.ParseDateTime(s)
	if err != nil {
		return civil.DateTime{}, errors.Wrapf(err, "invalid presale end %q", s)
	}
	return dt, nil
}

func (t Terms) EndTime() time.Time {
	return t.End.In(time.UTC)
}

// TimeLeft is the remaining presale duration split for display
type TimeLeft struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Ended   bool `json:"ended"`
}

// Countdown returns the time from now until end, truncated to whole
// seconds. Once end is reached every component is zero and Ended is set.
func Countdown(now, end time.Time) TimeLeft {
	d := end.Sub(now)
	if d <= 0 {
		return TimeLeft{Ended: true}
	}

	total := int64(d / time.Second)
	return TimeLeft{
		Days:    int(total / 86400),
		Hours:   int(total / 3600 % 24),
		Minutes: int(total / 60 % 60),
		Seconds: int(total % 60),
	}
}

// Progress is how far the token sale has come
type Progress struct {
	Supply      int
	Sold        int
	Available   int
	SoldPercent apd.Decimal
}

// Status is the presale state at a point in time
type Status struct {
	Terms    Terms
	TimeLeft TimeLeft
	Progress Progress
}

func (t Terms) StatusAt(now time.Time) (Status, error) {
	pct, err := t.SoldPercent()
	if err != nil {
		return Status{}, errors.WithStack(err)
	}
	return Status{
		Terms:    t,
		TimeLeft: Countdown(now, t.EndTime()),
		Progress: Progress{
			Supply:      t.Supply,
			Sold:        t.Sold,
			Available:   t.Available(),
			SoldPercent: pct,
		},
	}, nil
}
