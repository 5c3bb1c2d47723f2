package dto

// Same field names as the cached document, so a stored value can be posted back as-is.
type HazardCurveRequest struct {
	Longitude                 *float64  `json:"longitude"`
	Latitude                  *float64  `json:"latitude"`
	GroundMotionLevels        []float64 `json:"groundMotionLevels"`
	ProbabilitiesOfExceedance []float64 `json:"probabilitiesOfExceedance"`
}

type SerializeResponse struct {
	Key    string `json:"key"`
	Stored int    `json:"stored"`
}

type HazardCurveResponse struct {
	Key                       string    `json:"key"`
	Longitude                 float64   `json:"longitude"`
	Latitude                  float64   `json:"latitude"`
	GroundMotionLevels        []float64 `json:"groundMotionLevels"`
	ProbabilitiesOfExceedance []float64 `json:"probabilitiesOfExceedance"`
	// Set only when the request asked for a single ground motion level.
	Level                   *float64 `json:"level,omitempty"`
	ProbabilityOfExceedance *float64 `json:"probabilityOfExceedance,omitempty"`
}
