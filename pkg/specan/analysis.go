package specan

import "sort"

// NoSignalLevel is reported for empty frames (dB)
const NoSignalLevel float32 = -200.0

// Peak is the level of one bin
type Peak struct {
	Bin         int
	FrequencyHz uint64
	Level       float32
}

// Stats summarizes the levels of a frame
type Stats struct {
	Peak    Peak    // strongest bin
	Floor   Peak    // weakest bin
	Average float32 // dB
}

// SNR returns the distance between the strongest and the weakest bin in dB
func (s Stats) SNR() float32 {
	return s.Peak.Level - s.Floor.Level
}

// Analyze computes the frame statistics in a single pass. An empty frame
// reports NoSignalLevel at bin -1.
func Analyze(frame *Frame) Stats {
	n := len(frame.Samples)
	if n == 0 {
		none := Peak{Bin: -1, FrequencyHz: frame.FreqStart, Level: NoSignalLevel}
		return Stats{Peak: none, Floor: none, Average: NoSignalLevel}
	}

	hi, lo := 0, 0
	var sum float64
	for i, v := range frame.Samples {
		if v > frame.Samples[hi] {
			hi = i
		}
		if v < frame.Samples[lo] {
			lo = i
		}
		sum += float64(v)
	}

	return Stats{
		Peak:    binPeak(frame, hi),
		Floor:   binPeak(frame, lo),
		Average: float32(sum / float64(n)),
	}
}

// Carriers returns one peak per run of adjacent bins at or above
// thresholdDB, placed on the strongest bin of the run. Strongest first.
func Carriers(frame *Frame, thresholdDB float32) []Peak {
	var carriers []Peak
	best := -1
	for i, v := range frame.Samples {
		if v < thresholdDB {
			if best >= 0 {
				carriers = append(carriers, binPeak(frame, best))
				best = -1
			}
			continue
		}
		if best < 0 || v > frame.Samples[best] {
			best = i
		}
	}
	if best >= 0 {
		carriers = append(carriers, binPeak(frame, best))
	}

	sort.SliceStable(carriers, func(i, j int) bool {
		return carriers[i].Level > carriers[j].Level
	})
	return carriers
}

func binPeak(frame *Frame, bin int) Peak {
	return Peak{Bin: bin, FrequencyHz: BinFrequency(frame, bin), Level: frame.Samples[bin]}
}
