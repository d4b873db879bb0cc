package portal

// Screen indicates which screen is currently displayed
type Screen int

const (
	LoginScreen Screen = iota
	DashboardScreen
	DetailScreen
)
