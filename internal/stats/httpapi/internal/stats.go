package internal

import (
	"foodops-server/internal/stats/usecases"
)

type StatsTableRowResponse struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
	Total  string            `json:"total"`
}

type IncomingStatsResponse struct {
	Mode       string                  `json:"mode"`
	Unit       string                  `json:"unit"`
	Donors     []string                `json:"donors"`
	TableData  []StatsTableRowResponse `json:"table_data"`
	Totals     map[string]string       `json:"totals"`
	RowTotals  []string                `json:"row_totals"`
	GrandTotal string                  `json:"grand_total"`
}

func ToIncomingStatsResponse(stats usecases.IncomingStats) IncomingStatsResponse {
	rows := make([]StatsTableRowResponse, len(stats.TableData))
	for i, row := range stats.TableData {
		rows[i] = StatsTableRowResponse{
			Label:  row.Label,
			Values: row.Values,
			Total:  row.Total,
		}
	}

	return IncomingStatsResponse{
		Mode:       string(stats.Mode),
		Unit:       stats.Unit,
		Donors:     stats.Donors,
		TableData:  rows,
		Totals:     stats.Totals,
		RowTotals:  stats.RowTotals,
		GrandTotal: stats.GrandTotal,
	}
}
