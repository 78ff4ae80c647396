package services

import (
	"math"
	"time"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

const (
	ForecastWindow  = 7
	ForecastHorizon = 7
)

// ForecastSeries fits a least-squares line over the last ForecastWindow points
// of a chronological series and projects ForecastHorizon points past it.
//
// The projected dates start the day after now, whatever the last date of the
// series is. Callers that show the forecast next to the series must say so.
func ForecastSeries(series []types.DailyCount, now time.Time) ([]types.ForecastPoint, bool) {
	if len(series) < ForecastWindow {
		return nil, false
	}

	window := series[len(series)-ForecastWindow:]
	slope, intercept := linearRegression(window)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	forecast := make([]types.ForecastPoint, 0, ForecastHorizon)
	for i := 0; i < ForecastHorizon; i++ {
		x := float64(ForecastWindow + i)
		value := math.Round(intercept + slope*x)
		if value < 0 || math.IsNaN(value) {
			value = 0
		}

		forecast = append(forecast, types.ForecastPoint{
			Date:  FormatDay(today.AddDate(0, 0, i+1)),
			Count: int64(value),
		})
	}

	return forecast, true
}

// linearRegression returns slope and intercept of counts against indexes 0..n-1.
func linearRegression(points []types.DailyCount) (slope, intercept float64) {
	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		y := float64(p.Count)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n

	return slope, intercept
}
