package calculation

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
	"github.com/stretchr/testify/assert"
)

func m(s string) decimal.Money { return decimal.MustMoney(s) }

func day(y int, mo time.Month, d int) civil.Date { return civil.Date{Year: y, Month: mo, Day: d} }

func assertMoney(t *testing.T, want string, got decimal.Money) {
	t.Helper()
	assert.True(t, m(want).Equal(got), "expected %s, got %s", want, got.String())
}
