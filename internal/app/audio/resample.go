package audio

// Resample converts samples from one rate to another by linear interpolation.
// Good enough for stitching synthesized speech; not meant for hi-fi use.
func Resample(samples []float64, fromRate, toRate int) []float64 {
	if fromRate <= 0 || toRate <= 0 || len(samples) == 0 || fromRate == toRate {
		return samples
	}
	outLen := int(float64(len(samples)) * float64(toRate) / float64(fromRate))
	if outLen < 1 {
		outLen = 1
	}
	out := make([]float64, outLen)
	ratio := float64(fromRate) / float64(toRate)
	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = samples[j]*(1-frac) + samples[j+1]*frac
	}
	return out
}
