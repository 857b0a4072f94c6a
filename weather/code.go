package weather

// Describe turns an Open-Meteo weather code into a short readable label.
func Describe(code int) string {
	switch code {
	case 0:
		return "Clear"
	case 1, 2, 3:
		return "Mainly clear / partly cloudy"
	case 45, 48:
		return "Foggy"
	case 51, 53, 55, 56, 57:
		return "Drizzle"
	case 61, 63, 65, 66, 67:
		return "Rain"
	case 80, 81, 82:
		return "Rain showers"
	case 95, 96, 99:
		return "Thunderstorm"
	default:
		return "Variable"
	}
}
