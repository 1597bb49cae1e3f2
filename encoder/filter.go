package encoder

import "fmt"

// TransitionFilter builds the ffmpeg filter applying the intro/outro styling:
// a rotation wobble plus a gaussian blur, both enabled only during the first
// and last half second of the clip. Returns "" when the options disable it.
func TransitionFilter(o EncodeOptions) string {
	if o.Sigma <= 0 && o.WobbleAmp <= 0 && o.WobbleJitter <= 0 {
		return ""
	}

	endStart := o.DurationSecs - 0.5
	if endStart < 0 {
		endStart = 0
	}

	angle := fmt.Sprintf(
		"( if(lte(t,0.5),1,0) + if(gte(t,%g),1,0) ) * "+
			"(%g*sin(2*PI*t*%g) + %g*sin(2*PI*t*%g))",
		endStart, o.WobbleAmp, o.WobbleFreq1, o.WobbleJitter, o.WobbleFreq2)

	filt := fmt.Sprintf("rotate='%s':ow=iw:oh=ih:c=black", angle)

	if o.Sigma > 0 {
		enable := fmt.Sprintf("between(t,0,0.5)+between(t,%g,%g)", endStart, endStart+0.5)
		filt += fmt.Sprintf(",gblur=sigma=%g:steps=3:enable='%s'", o.Sigma, enable)
	}
	return filt
}
