package settings

// Settings are the user preferences shown on the settings screen.
type Settings struct {
	DarkMode       bool   `json:"darkMode"`
	Notifications  bool   `json:"notifications"`
	Language       string `json:"language"`
	OfflineEnabled bool   `json:"offlineEnabled"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	DarkMode       *bool   `json:"darkMode,omitempty"`
	Notifications  *bool   `json:"notifications,omitempty"`
	Language       *string `json:"language,omitempty"`
	OfflineEnabled *bool   `json:"offlineEnabled,omitempty"`
}

// Languages the client can display.
var Languages = []string{"English", "Spanish", "French", "Swahili", "Hindi", "Portuguese"}

// Defaults returns the settings of a fresh install.
func Defaults() Settings {
	return Settings{
		DarkMode:       false,
		Notifications:  true,
		Language:       "English",
		OfflineEnabled: true,
	}
}
