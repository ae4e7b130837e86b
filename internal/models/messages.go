package models

import "time"

// PositionEstimate is the JSON payload published after localising the device
// against the stored landmarks.
type PositionEstimate struct {
	DeviceID     string    `json:"device_id"`
	Timestamp    time.Time `json:"timestamp"`
	LatitudeDeg  float64   `json:"latitude_deg"`
	LongitudeDeg float64   `json:"longitude_deg"`
	AltitudeM    float64   `json:"altitude_m"`
	// VisibleNetworks is how many access points the scan returned,
	// ResolvedLandmarks how many of them had stored observations.
	VisibleNetworks   int `json:"visible_networks"`
	ResolvedLandmarks int `json:"resolved_landmarks"`
}

// SurveyStatus is the periodic status payload for the agent.
type SurveyStatus struct {
	DeviceID      string    `json:"device_id"`
	Timestamp     time.Time `json:"timestamp"`
	Status        string    `json:"status"`
	LandmarkCount int       `json:"landmark_count"`
}
