package api

import "github.com/anima-music/anima/internal/detection"

type FaceDetectionResponse struct {
	Faces           []detection.Face `json:"faces"`
	DominantEmotion string           `json:"dominantEmotion"`
}
