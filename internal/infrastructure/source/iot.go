package source

import (
	"context"
	"fmt"

	"github.com/smartretail/pipeline/internal/infrastructure/csvsource"
)

// IoTLoader reads the IoT sensor-stream CSV.
type IoTLoader struct {
	path string
}

// NewIoTLoader creates an IoTLoader for the given file.
func NewIoTLoader(path string) *IoTLoader {
	return &IoTLoader{path: path}
}

// Load reads every sensor reading from the CSV.
func (l *IoTLoader) Load(ctx context.Context) ([]RawIoT, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, closeFn, err := csvsource.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("load iot readings: %w", err)
	}
	defer closeFn()

	if err := reader.RequireHeaders("timestamp", "footfall", "temperature"); err != nil {
		return nil, fmt.Errorf("load iot readings: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load iot readings: %w", err)
	}

	readings := make([]RawIoT, len(rows))
	for i, row := range rows {
		readings[i] = RawIoT{
			Timestamp:   row.Get("timestamp"),
			Footfall:    row.Get("footfall"),
			Temperature: row.Get("temperature"),
		}
	}
	return readings, nil
}
