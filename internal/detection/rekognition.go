package detection

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/anima-music/anima/internal/env"
	"github.com/anima-music/anima/internal/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

const topEmotionCount = 3

type BoundingBox struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
}

type Face struct {
	Confidence       float64              `json:"confidence"`
	BoundingBox      BoundingBox          `json:"boundingBox"`
	AgeLow           int                  `json:"ageLow"`
	AgeHigh          int                  `json:"ageHigh"`
	Gender           string               `json:"gender"`
	GenderConfidence float64              `json:"genderConfidence"`
	Smile            bool                 `json:"smile"`
	Eyeglasses       bool                 `json:"eyeglasses"`
	Sunglasses       bool                 `json:"sunglasses"`
	Emotions         []types.EmotionScore `json:"emotions"`
	LandmarksCount   int                  `json:"landmarksCount"`
}

type Client struct {
	rekognition *rekognition.Client
}

func NewClientFromContext(ctx context.Context) (*Client, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(env.AWSRegion()))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Client{rekognition: rekognition.NewFromConfig(awsConfig)}, nil
}

// DetectFaces runs facial analysis on the given image bytes and returns one
// entry per detected face, with emotions ordered by descending confidence.
func (c *Client) DetectFaces(ctx context.Context, image []byte) ([]Face, error) {
	out, err := c.rekognition.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image:      &rektypes.Image{Bytes: image},
		Attributes: []rektypes.Attribute{rektypes.AttributeAll},
	})
	if err != nil {
		return nil, fmt.Errorf("face detection failed: %w", err)
	}
	faces := make([]Face, 0, len(out.FaceDetails))
	for _, detail := range out.FaceDetails {
		faces = append(faces, mapFaceDetail(detail))
	}
	return faces, nil
}

func mapFaceDetail(detail rektypes.FaceDetail) Face {
	face := Face{
		Confidence:     float64(aws.ToFloat32(detail.Confidence)),
		LandmarksCount: len(detail.Landmarks),
		Emotions:       topEmotions(detail.Emotions),
	}
	if box := detail.BoundingBox; box != nil {
		face.BoundingBox = BoundingBox{
			Width:  float64(aws.ToFloat32(box.Width)),
			Height: float64(aws.ToFloat32(box.Height)),
			Left:   float64(aws.ToFloat32(box.Left)),
			Top:    float64(aws.ToFloat32(box.Top)),
		}
	}
	if age := detail.AgeRange; age != nil {
		face.AgeLow = int(aws.ToInt32(age.Low))
		face.AgeHigh = int(aws.ToInt32(age.High))
	}
	if gender := detail.Gender; gender != nil {
		face.Gender = string(gender.Value)
		face.GenderConfidence = float64(aws.ToFloat32(gender.Confidence))
	}
	if smile := detail.Smile; smile != nil {
		face.Smile = smile.Value
	}
	if eyeglasses := detail.Eyeglasses; eyeglasses != nil {
		face.Eyeglasses = eyeglasses.Value
	}
	if sunglasses := detail.Sunglasses; sunglasses != nil {
		face.Sunglasses = sunglasses.Value
	}
	return face
}

func topEmotions(emotions []rektypes.Emotion) []types.EmotionScore {
	scores := make([]types.EmotionScore, 0, len(emotions))
	for _, emotion := range emotions {
		scores = append(scores, types.EmotionScore{
			Name:  string(emotion.Type),
			Score: float64(aws.ToFloat32(emotion.Confidence)),
		})
	}
	slices.SortFunc(scores, func(a, b types.EmotionScore) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(scores) > topEmotionCount {
		scores = scores[:topEmotionCount]
	}
	return scores
}
