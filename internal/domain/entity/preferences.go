package entity

import "strconv"

// Tamaños de fuente admitidos.
const (
	FontSizeSmall  = "small"
	FontSizeMedium = "medium"
	FontSizeLarge  = "large"
)

// Claves de persistencia de cada preferencia (una clave por preferencia).
const (
	PrefFontSize        = "accessibility-font-size"
	PrefHighContrast    = "accessibility-high-contrast"
	PrefReduceMotion    = "accessibility-reduce-motion"
	PrefScreenReader    = "accessibility-screen-reader"
	PrefFocusIndicators = "accessibility-focus-indicators"
)

// Preferences preferencias de accesibilidad de un usuario.
type Preferences struct {
	FontSize                  string
	HighContrast              bool
	ReduceMotion              bool
	EnhanceScreenReaderCompat bool
	FocusIndicatorsEnhanced   bool
}

// DefaultPreferences valores iniciales cuando no hay nada persistido.
func DefaultPreferences() Preferences {
	return Preferences{FontSize: FontSizeMedium}
}

// ValidFontSize informa si s es un tamaño admitido.
func ValidFontSize(s string) bool {
	return s == FontSizeSmall || s == FontSizeMedium || s == FontSizeLarge
}

// Encode serializa las preferencias como pares clave → string ("true"/"false" para booleanos).
func (p Preferences) Encode() map[string]string {
	return map[string]string{
		PrefFontSize:        p.FontSize,
		PrefHighContrast:    strconv.FormatBool(p.HighContrast),
		PrefReduceMotion:    strconv.FormatBool(p.ReduceMotion),
		PrefScreenReader:    strconv.FormatBool(p.EnhanceScreenReaderCompat),
		PrefFocusIndicators: strconv.FormatBool(p.FocusIndicatorsEnhanced),
	}
}

// DecodePreferences reconstruye las preferencias; claves ausentes o inválidas toman el valor por defecto.
func DecodePreferences(raw map[string]string) Preferences {
	p := DefaultPreferences()
	if v, ok := raw[PrefFontSize]; ok && ValidFontSize(v) {
		p.FontSize = v
	}
	p.HighContrast = raw[PrefHighContrast] == "true"
	p.ReduceMotion = raw[PrefReduceMotion] == "true"
	p.EnhanceScreenReaderCompat = raw[PrefScreenReader] == "true"
	p.FocusIndicatorsEnhanced = raw[PrefFocusIndicators] == "true"
	return p
}
