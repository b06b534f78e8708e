package domain

import "sort"

// LeaderboardEntry es una fila del ranking de traders.
type LeaderboardEntry struct {
	Rank     int
	Username string
	Profit   float64 // P&L no realizado total
	ROI      float64 // porcentaje sobre capital desplegado
}

// BuildLeaderboard ordena las cuentas por beneficio descendente y asigna
// rangos consecutivos empezando en 1. A igual beneficio desempata por
// nombre para que el orden sea estable entre ejecuciones.
func BuildLeaderboard(accounts []Account) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(accounts))
	for _, acc := range accounts {
		entries = append(entries, LeaderboardEntry{
			Username: acc.Name,
			Profit:   acc.TotalPnL(),
			ROI:      acc.ROI(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Profit != entries[j].Profit {
			return entries[i].Profit > entries[j].Profit
		}
		return entries[i].Username < entries[j].Username
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
