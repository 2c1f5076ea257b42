package model

// PoolSettings holds the pool selector configuration.
type PoolSettings struct {
	UrgentDaysThreshold int     `json:"urgent_days_threshold" yaml:"urgent_days_threshold"` // Days left at or below which an order is urgent
	SheetWidth          float64 `json:"sheet_width" yaml:"sheet_width"`                     // m
	SheetHeight         float64 `json:"sheet_height" yaml:"sheet_height"`                   // m
	MaxSheetsPerPool    int     `json:"max_sheets_per_pool" yaml:"max_sheets_per_pool"`
}

// DefaultPoolSettings returns the settings for a 2750x2050 mm MDF sheet.
func DefaultPoolSettings() PoolSettings {
	return PoolSettings{
		UrgentDaysThreshold: 3,
		SheetWidth:          2.75,
		SheetHeight:         2.05,
		MaxSheetsPerPool:    4,
	}
}

// SheetArea returns the area of one sheet in m².
func (s PoolSettings) SheetArea() float64 {
	return s.SheetWidth * s.SheetHeight
}

// LargeOrderThreshold returns the area of MaxSheetsPerPool sheets. Orders at or
// above it are never combined with others.
func (s PoolSettings) LargeOrderThreshold() float64 {
	return s.SheetArea() * float64(s.MaxSheetsPerPool)
}

// Normalize replaces invalid fields with their defaults. Sheet dimensions and
// MaxSheetsPerPool must be positive. UrgentDaysThreshold may be zero, meaning
// only orders due today or overdue are urgent; only a negative threshold is
// replaced.
func (s PoolSettings) Normalize() PoolSettings {
	d := DefaultPoolSettings()
	if s.UrgentDaysThreshold < 0 {
		s.UrgentDaysThreshold = d.UrgentDaysThreshold
	}
	if s.SheetWidth <= 0 {
		s.SheetWidth = d.SheetWidth
	}
	if s.SheetHeight <= 0 {
		s.SheetHeight = d.SheetHeight
	}
	if s.MaxSheetsPerPool <= 0 {
		s.MaxSheetsPerPool = d.MaxSheetsPerPool
	}
	return s
}
