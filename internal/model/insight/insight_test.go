package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarketReturnsFreshCopy(t *testing.T) {
	report := Market()
	assert.Len(t, report.Prices, 4)
	assert.Equal(t, TrendStable, report.Prices[3].Trend)

	report.Prices[0].Price = 99
	assert.Equal(t, 1.25, Market().Prices[0].Price)
}

func TestWeatherLocation(t *testing.T) {
	assert.Equal(t, "Your Farm", Weather("  ").Location)

	report := Weather("Nakuru")
	assert.Equal(t, "Nakuru", report.Location)
	assert.Equal(t, 28, report.CurrentTemp)
	assert.Len(t, report.Forecast, 3)
}
