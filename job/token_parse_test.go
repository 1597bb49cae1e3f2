package job

import (
	"path/filepath"
	"testing"

	"glitchvid/credentials"
	"glitchvid/models"
)

func TestParseClaimsIntoJobNilClaims(t *testing.T) {
	params := models.RenderParams{DurationSecs: 2, FPS: 10, Format: "mp4"}

	renderJob, err := ParseClaimsIntoJob(nil, params)
	if err != nil {
		t.Fatalf("ParseClaimsIntoJob failed: %v", err)
	}
	if len(renderJob.PublishJobs) != 1 || renderJob.PublishJobs[0].Type != "directServe" {
		t.Errorf("Expected a single directServe target, got %+v", renderJob.PublishJobs)
	}
	if renderJob.Params.DurationSecs != 2 {
		t.Errorf("Params did not carry over: %+v", renderJob.Params)
	}
}

func TestParseClaimsIntoJobResolvesStorageKeys(t *testing.T) {
	if err := credentials.OpenDB(filepath.Join(t.TempDir(), "credentials.db")); err != nil {
		t.Fatalf("Failed to open credentials store: %v", err)
	}
	defer credentials.CloseDB()

	key, err := credentials.Store(map[string]string{"bucket": "renders"})
	if err != nil {
		t.Fatalf("Failed to store credentials: %v", err)
	}

	claims := &models.GlitchJWT{
		Job: models.JobSpec{
			StorageKeys:        map[string]string{"s3": key},
			CompletionCallback: "https://example.com/done",
			SubDir:             "tenant-a",
		},
	}

	renderJob, err := ParseClaimsIntoJob(claims, models.RenderParams{DurationSecs: 1, FPS: 10})
	if err != nil {
		t.Fatalf("ParseClaimsIntoJob failed: %v", err)
	}

	if len(renderJob.PublishJobs) != 1 {
		t.Fatalf("Expected one publish target, got %d", len(renderJob.PublishJobs))
	}
	target := renderJob.PublishJobs[0]
	if target.Type != "s3" {
		t.Errorf("Expected an s3 target, got %s", target.Type)
	}
	if target.Credentials["bucket"] != "renders" {
		t.Errorf("Expected resolved credentials, got %+v", target.Credentials)
	}
	if renderJob.CallbackURL != "https://example.com/done" {
		t.Errorf("Callback did not carry over: %s", renderJob.CallbackURL)
	}
	if renderJob.SubDir != "tenant-a" {
		t.Errorf("SubDir did not carry over: %s", renderJob.SubDir)
	}
}

func TestParseClaimsIntoJobUnknownKey(t *testing.T) {
	if err := credentials.OpenDB(filepath.Join(t.TempDir(), "credentials.db")); err != nil {
		t.Fatalf("Failed to open credentials store: %v", err)
	}
	defer credentials.CloseDB()

	claims := &models.GlitchJWT{
		Job: models.JobSpec{StorageKeys: map[string]string{"s3": "never-registered"}},
	}

	if _, err := ParseClaimsIntoJob(claims, models.RenderParams{}); err == nil {
		t.Error("Expected an error for an unregistered storage key")
	}
}

func TestParseClaimsIntoJobDirectHostFallback(t *testing.T) {
	claims := &models.GlitchJWT{Job: models.JobSpec{DirectHost: true}}

	renderJob, err := ParseClaimsIntoJob(claims, models.RenderParams{})
	if err != nil {
		t.Fatalf("ParseClaimsIntoJob failed: %v", err)
	}
	if len(renderJob.PublishJobs) != 1 || renderJob.PublishJobs[0].Type != "directServe" {
		t.Errorf("Expected directServe for a direct-host token, got %+v", renderJob.PublishJobs)
	}
}
