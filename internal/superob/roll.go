package superob

// rollAzimuth centers a source elevation's (azimuth, range) grid by
// shifting it zmax positions along the azimuth axis (spec section 4.8):
// rolled[(a+zmax) % naz][r] = orig[a][r]. This aligns the integer ray
// borders computed in adaptiveRayBins symmetrically around each coarse
// azimuth bundle.
func rollAzimuth(src [][]float64, zmax int) [][]float64 {
	naz := len(src)
	if naz == 0 {
		return src
	}
	rolled := make([][]float64, naz)
	for a, row := range src {
		dst := (a + zmax) % naz
		rolled[dst] = row
	}
	return rolled
}
