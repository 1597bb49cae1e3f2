package job

import (
	"fmt"

	"glitchvid/credentials"
	"glitchvid/models"
)

// ParseClaimsIntoJob turns verified upload-token claims plus the request's
// render parameters into a RenderJob, resolving each storage key against the
// credentials store. Nil claims (no auth configured) yield a directServe job.
func ParseClaimsIntoJob(claims *models.GlitchJWT, params models.RenderParams) (models.RenderJob, error) {
	if claims == nil {
		return models.RenderJob{
			Params:      params,
			PublishJobs: []models.PublishJob{{Type: "directServe"}},
		}, nil
	}

	var publishJobs []models.PublishJob

	for backend, key := range claims.Job.StorageKeys {
		creds, err := credentials.Get(key)
		if err != nil {
			return models.RenderJob{}, fmt.Errorf("unknown storage key for backend %s: %w", backend, err)
		}
		publishJobs = append(publishJobs, models.PublishJob{
			Type:        backend,
			Credentials: creds,
		})
	}

	if claims.Job.DirectHost || len(publishJobs) == 0 {
		publishJobs = append(publishJobs, models.PublishJob{Type: "directServe"})
	}

	return models.RenderJob{
		Params:          params,
		PublishJobs:     publishJobs,
		CallbackURL:     claims.Job.CompletionCallback,
		CallbackHeaders: claims.Job.CallbackHeaders,
		SubDir:          claims.Job.SubDir,
	}, nil
}
