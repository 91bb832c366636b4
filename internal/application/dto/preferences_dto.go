package dto

// PreferencesDTO preferencias de accesibilidad.
type PreferencesDTO struct {
	FontSize                  string `json:"font_size"`
	HighContrast              bool   `json:"high_contrast"`
	ReduceMotion              bool   `json:"reduce_motion"`
	EnhanceScreenReaderCompat bool   `json:"enhance_screen_reader_compat"`
	FocusIndicatorsEnhanced   bool   `json:"focus_indicators_enhanced"`
}
