package growth

// Band is a coarse z-score severity band, following the WHO cutoff
// convention (-3, -2, +2, +3).
type Band string

const (
	BandSeverelyBelow Band = "severely_below"
	BandBelow         Band = "below"
	BandNormal        Band = "normal"
	BandAbove         Band = "above"
	BandSeverelyAbove Band = "severely_above"
)

// Band classifies the result's z-score against the WHO cutoffs. It is a
// labelling convenience only; interpretation stays with the caller.
func (r Result) Band() Band {
	switch z := r.ZScore; {
	case z < -3:
		return BandSeverelyBelow
	case z < -2:
		return BandBelow
	case z <= 2:
		return BandNormal
	case z <= 3:
		return BandAbove
	default:
		return BandSeverelyAbove
	}
}
