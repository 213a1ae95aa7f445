package domain

// HealthMetrics son los valores trackeados del día (sueño, agua, pasos).
type HealthMetrics struct {
	SleepHours  float64 `json:"sleep_hours"`
	WaterIntake float64 `json:"water_intake"`
	Steps       int     `json:"steps"`
}

// IsZero indica que la fila existe pero no registra nada; el pipeline la
// trata igual que la ausencia de datos.
func (m HealthMetrics) IsZero() bool {
	return m.SleepHours == 0 && m.WaterIntake == 0 && m.Steps == 0
}
