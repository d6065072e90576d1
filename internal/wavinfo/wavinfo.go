// Package wavinfo reads WAV headers to validate and measure synthesized
// clips before they are handed to the concat stage.
package wavinfo

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// Duration returns the clip duration, failing on a missing or malformed
// file. A clip that does not pass here must never be concatenated.
func Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("wav %s: %w", path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return 0, fmt.Errorf("wav %s: not a valid wav file", path)
	}
	dur, err := d.Duration()
	if err != nil {
		return 0, fmt.Errorf("wav %s: %w", path, err)
	}
	return dur, nil
}
