package routes

import (
	"html/template"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"glitchvid/job"
	"glitchvid/logger"
	"glitchvid/models"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>glitchvid</title>
<style>
body { font-family: monospace; max-width: 640px; margin: 2em auto; background: #111; color: #ddd; }
label { display: block; margin-top: 0.8em; }
input, select { width: 100%; box-sizing: border-box; background: #222; color: #ddd; border: 1px solid #444; padding: 0.3em; }
button { margin-top: 1.2em; padding: 0.5em 2em; background: #2a2; color: #000; border: none; cursor: pointer; }
.error { color: #f55; margin-top: 1em; }
video, img { max-width: 100%; margin-top: 1em; }
</style>
</head>
<body>
<h1>glitchvid</h1>
<p>Feed it a still image, get back a glitched video.</p>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Result}}
<p>Done. <a href="{{.Result}}">Download</a></p>
<video controls autoplay loop src="{{.Result}}"></video>
{{end}}
<form method="POST" action="/" enctype="multipart/form-data">
<label>Image URL <input type="text" name="image_url" placeholder="https://..."></label>
<label>Or upload <input type="file" name="image" accept="image/*"></label>
<label>Duration (seconds) <input type="number" step="0.1" name="duration" value="{{.Params.DurationSecs}}"></label>
<label>FPS <input type="number" name="fps" value="{{.Params.FPS}}"></label>
<label>Base glitch intensity (0-10) <input type="number" step="0.1" name="base_intensity" value="{{.Params.BaseIntensity}}"></label>
<label>Heavy glitch onset (seconds, 0 = off) <input type="number" step="0.1" name="glitch2_secs" value="{{.Params.SecondaryOnsetSecs}}"></label>
<label>Wobble amplitude <input type="number" step="0.01" name="wobble_amp" value="{{.Params.WobbleAmp}}"></label>
<label>Wobble jitter <input type="number" step="0.01" name="wobble_jitter" value="{{.Params.WobbleJitter}}"></label>
<label>Wobble frequency 1 (Hz) <input type="number" step="0.1" name="wobble_freq1" value="{{.Params.WobbleFreq1}}"></label>
<label>Wobble frequency 2 (Hz) <input type="number" step="0.1" name="wobble_freq2" value="{{.Params.WobbleFreq2}}"></label>
<label>Transition blur sigma <input type="number" step="0.1" name="sigma" value="{{.Params.Sigma}}"></label>
<label>Format <select name="format">
<option value="mp4"{{if eq .Params.Format "mp4"}} selected{{end}}>mp4</option>
<option value="webm"{{if eq .Params.Format "webm"}} selected{{end}}>webm</option>
<option value="gif"{{if eq .Params.Format "gif"}} selected{{end}}>gif</option>
</select></label>
<button type="submit">Glitch it</button>
</form>
</body>
</html>
`))

// indexPage is the template context for the web form.
type indexPage struct {
	Params models.RenderParams
	Result string
	Error  string
}

// formFloat parses a form field as a float, falling back to def when the
// field is empty or malformed.
func formFloat(r *http.Request, name string, def float64) float64 {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// paramsFromForm reads the render parameters from the submitted form.
func paramsFromForm(r *http.Request) models.RenderParams {
	return models.RenderParams{
		DurationSecs:       formFloat(r, "duration", 0),
		FPS:                int(formFloat(r, "fps", 0)),
		BaseIntensity:      formFloat(r, "base_intensity", 0),
		SecondaryOnsetSecs: formFloat(r, "glitch2_secs", 0),
		WobbleAmp:          formFloat(r, "wobble_amp", 0),
		WobbleJitter:       formFloat(r, "wobble_jitter", 0),
		WobbleFreq1:        formFloat(r, "wobble_freq1", 0),
		WobbleFreq2:        formFloat(r, "wobble_freq2", 0),
		Sigma:              formFloat(r, "sigma", 0),
		Format:             r.FormValue("format"),
	}
}

// IndexHandler serves the web form and runs form-submitted renders.
func IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := indexPage{Params: models.DefaultParams()}

	switch r.Method {
	case http.MethodGet:
		renderIndex(w, page)
		return
	case http.MethodPost:
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		page.Error = "Failed to parse form"
		renderIndex(w, page)
		return
	}

	params := paramsFromForm(r)
	imageURL := strings.TrimSpace(r.FormValue("image_url"))

	var upload *multipart.FileHeader
	if parts := r.MultipartForm.File["image"]; len(parts) > 0 && parts[0].Size > 0 {
		upload = parts[0]
	}

	if err := job.ValidateParams(&params); err != nil {
		page.Params = params
		page.Error = err.Error()
		renderIndex(w, page)
		return
	}
	page.Params = params

	servedPath, err := renderSync(r.Context(), imageURL, upload, params)
	if err != nil {
		logger.Errorf("Form render failed: %v", err)
		page.Error = err.Error()
		renderIndex(w, page)
		return
	}

	page.Result = servedPath
	renderIndex(w, page)
}

// renderIndex writes the form page, logging instead of failing on template
// errors since headers may already be out.
func renderIndex(w http.ResponseWriter, page indexPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		logger.Errorf("Failed to render index template: %v", err)
	}
}
