package job

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"glitchvid/config"
	"glitchvid/encoder"
	"glitchvid/failures"
	"glitchvid/logger"
	"glitchvid/metrics"
	"glitchvid/models"
	"glitchvid/publishers"
	"glitchvid/success"
)

// PublishedName is the filename a render is published under: hash.<ext>.
func PublishedName(hash, format string) string {
	return fmt.Sprintf("%s.%s", hash, encoder.Extension(format))
}

// ServedPath returns the URL path a directServe-published render is
// reachable at.
func ServedPath(subDir, filename string) string {
	if subDir == "" {
		return "/files/" + filename
	}
	return "/files/" + subDir + "/" + filename
}

// Process runs a single queued render end to end: render the video, publish
// it to every configured backend, record the outcome, fire the callback, and
// clean up the job directory.
func Process(ctx context.Context, jobDir string) error {
	// A cancelled job must not leave its temp directory behind. Checked on
	// the way out rather than from a watcher goroutine, so Process always
	// returns as soon as the work does.
	defer func() {
		if ctx.Err() == context.Canceled {
			logger.Infof("Render cancelled, cleaning up %s", jobDir)
			if err := os.RemoveAll(jobDir); err != nil {
				logger.Errorf("Failed to cleanup cancelled job directory %s: %v", jobDir, err)
			}
		}
	}()

	instr, err := ReadInstructions(jobDir)
	if err != nil {
		logger.Errorf("Failed to read instructions for %s: %v", jobDir, err)
		hash := HashFromDir(jobDir)
		return storeFailure(Instructions{Hash: hash}, err)
	}

	logger.Infof("Processing render in %s (hash %s)", jobDir, instr.Hash)

	outputPath, err := Render(ctx, jobDir, instr.SourceURL, instr.OriginalFile, instr.Job.Params)
	if err != nil {
		logger.Errorf("Render failed for %s: %v", jobDir, err)
		metrics.RendersTotal.WithLabelValues("failed").Inc()
		return storeFailure(instr, err)
	}

	published, err := publish(ctx, instr, outputPath)
	if err != nil {
		logger.Errorf("Failed to publish render for %s: %v", jobDir, err)
		metrics.RendersTotal.WithLabelValues("failed").Inc()
		return storeFailure(instr, err)
	}
	metrics.RendersTotal.WithLabelValues("completed").Inc()

	if err := success.StoreSuccess(instr.Hash, instr.Job, published); err != nil {
		logger.Errorf("Failed to store success record for %s: %v", jobDir, err)
		// Don't fail the render for bookkeeping errors
	}

	if err := sendCallback(instr, published); err != nil {
		logger.Errorf("Failed to send callback for %s: %v", jobDir, err)
		// Don't fail the render for callback errors
	}

	if err := os.RemoveAll(jobDir); err != nil {
		logger.Errorf("Failed to cleanup job directory %s: %v", jobDir, err)
	}

	logger.Infof("Successfully processed render in %s", jobDir)
	return nil
}

// publish writes the rendered video to every configured backend and returns
// the name it was published under.
func publish(ctx context.Context, instr Instructions, outputPath string) (string, error) {
	filename := PublishedName(instr.Hash, instr.Job.Params.Format)

	targets := instr.Job.PublishJobs
	if len(targets) == 0 {
		// No explicit backends: the result still has to land somewhere
		// reachable, so directServe is the default.
		targets = []models.PublishJob{{Type: "directServe"}}
	}

	for _, target := range targets {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("render cancelled during publishing: %w", ctx.Err())
		default:
		}

		reader, err := os.Open(outputPath)
		if err != nil {
			return "", fmt.Errorf("failed to open rendered output %s: %w", outputPath, err)
		}

		accessInfo := prepareAccessInfo(target, filename, instr.Job.SubDir)
		if err := publishers.WriteVideo(ctx, accessInfo, reader, target.Type); err != nil {
			reader.Close()
			return "", fmt.Errorf("failed to publish %s to %s: %w", filename, target.Type, err)
		}
		reader.Close()
	}

	return filename, nil
}

// prepareAccessInfo builds the access info map for a publisher backend.
func prepareAccessInfo(target models.PublishJob, filename, subDir string) map[string]string {
	accessInfo := make(map[string]string)
	for k, v := range target.Credentials {
		accessInfo[k] = v
	}

	accessInfo["filename"] = filename
	accessInfo["folder"] = subDir

	switch target.Type {
	case "directServe":
		accessInfo["baseDir"] = config.GetServeDir()
	}
	return accessInfo
}

// storeFailure records a processing failure and passes the error through.
func storeFailure(instr Instructions, err error) error {
	if instr.Hash == "" {
		logger.Errorf("Cannot store failure: missing hash")
		return err
	}
	if storeErr := failures.StoreFailure(instr.Hash, err, instr); storeErr != nil {
		logger.Errorf("Failed to store failure for hash %s: %v", instr.Hash, storeErr)
	}
	return err
}

// sendCallback sends the completion callback if the job carries one.
func sendCallback(instr Instructions, published string) error {
	if instr.Job.CallbackURL == "" {
		return nil
	}

	payload := map[string]interface{}{
		"hash":      instr.Hash,
		"status":    "completed",
		"file":      published,
		"timestamp": time.Now().Unix(),
		"job_data":  instr.Job,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal callback payload: %w", err)
	}

	req, err := http.NewRequest("POST", instr.Job.CallbackURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Glitchvid/1.0")
	for key, value := range instr.Job.CallbackHeaders {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("callback request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("callback returned non-2xx status: %d", resp.StatusCode)
	}

	logger.Infof("Successfully sent callback to %s", instr.Job.CallbackURL)
	return nil
}
