// internal/newsletter/csvdata/limits.go
package csvdata

// Upload size and row limits for CSV processing.
const (
	MaxUploadSize = 5 << 20 // 5 MB
	MaxRows       = 5000
)
