package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"glitchvid/models"
)

// Instructions describe one queued render: where the input lives and what to
// do with it. Persisted as instructions.json inside the job's temp directory
// so pending work survives a restart.
type Instructions struct {
	FilePath     string           `json:"file_path"`               // job temp directory
	OriginalFile string           `json:"original_file,omitempty"` // uploaded filename, empty for URL sources
	SourceURL    string           `json:"source_url,omitempty"`    // image URL, empty for uploads
	Hash         string           `json:"hash"`                    // SHA256 of the input
	Job          models.RenderJob `json:"job"`
}

// WriteInstructions writes the instructions to instructions.json in dir.
func WriteInstructions(dir string, instr Instructions) error {
	path := filepath.Join(dir, "instructions.json")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create instructions file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(instr); err != nil {
		return fmt.Errorf("failed to encode instructions: %w", err)
	}
	return nil
}

// ReadInstructions reads instructions.json from dir.
func ReadInstructions(dir string) (Instructions, error) {
	path := filepath.Join(dir, "instructions.json")
	file, err := os.Open(path)
	if err != nil {
		return Instructions{}, fmt.Errorf("failed to open instructions file: %w", err)
	}
	defer file.Close()

	var instr Instructions
	if err := json.NewDecoder(file).Decode(&instr); err != nil {
		return Instructions{}, fmt.Errorf("failed to decode instructions: %w", err)
	}
	return instr, nil
}
