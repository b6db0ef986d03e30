package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"apluscharge_backend/pkg/roi"
)

// Number is a float that also accepts numeric strings such as "12.5".
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("value is not a valid float: %s", string(b))
	}
	*n = Number(f)
	return nil
}

type ROIRequest struct {
	DailySessions    *Number `json:"daily_sessions" validate:"required"`
	AvgKWhPerSession *Number `json:"avg_kwh_per_session" validate:"required"`
	TariffPerKWh     *Number `json:"tariff_per_kwh" validate:"required"`
	CostPerKWh       *Number `json:"cost_per_kwh" validate:"required"`
	StationCost      *Number `json:"station_cost" validate:"required"`
	OpexPerMonth     *Number `json:"opex_per_month"`
}

func (r ROIRequest) Input() roi.Input {
	return roi.Input{
		DailySessions:    num(r.DailySessions),
		AvgKWhPerSession: num(r.AvgKWhPerSession),
		TariffPerKWh:     num(r.TariffPerKWh),
		CostPerKWh:       num(r.CostPerKWh),
		StationCost:      num(r.StationCost),
		OpexPerMonth:     num(r.OpexPerMonth),
	}
}

func num(n *Number) float64 {
	if n == nil {
		return 0
	}
	return float64(*n)
}
