package config

// Color constants for logging
const (
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorReset   = "\033[0m"
)

// LogColor returns color unless coloured logs are turned off.
func LogColor(color string) string {
	if Envs.LogNoColor {
		return ""
	}
	return color
}
