package detection

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	. "github.com/onsi/gomega"
)

func TestTopEmotions(t *testing.T) {
	g := NewWithT(t)

	emotions := []rektypes.Emotion{
		{Type: rektypes.EmotionNameCalm, Confidence: aws.Float32(12.5)},
		{Type: rektypes.EmotionNameHappy, Confidence: aws.Float32(80.1)},
		{Type: rektypes.EmotionNameSad, Confidence: aws.Float32(3.2)},
		{Type: rektypes.EmotionNameSurprised, Confidence: aws.Float32(2.9)},
		{Type: rektypes.EmotionNameAngry, Confidence: aws.Float32(1.3)},
	}

	top := topEmotions(emotions)
	g.Expect(top).To(HaveLen(3))
	g.Expect(top[0].Name).To(Equal("HAPPY"))
	g.Expect(top[1].Name).To(Equal("CALM"))
	g.Expect(top[2].Name).To(Equal("SAD"))
	g.Expect(top[0].Score).To(BeNumerically("~", 80.1, 0.01))
}

func TestTopEmotions_FewerThanThree(t *testing.T) {
	g := NewWithT(t)

	top := topEmotions([]rektypes.Emotion{
		{Type: rektypes.EmotionNameFear, Confidence: aws.Float32(55)},
	})
	g.Expect(top).To(HaveLen(1))
	g.Expect(top[0].Name).To(Equal("FEAR"))

	g.Expect(topEmotions(nil)).To(BeEmpty())
}

func TestMapFaceDetail(t *testing.T) {
	g := NewWithT(t)

	detail := rektypes.FaceDetail{
		Confidence: aws.Float32(99.9),
		BoundingBox: &rektypes.BoundingBox{
			Width:  aws.Float32(0.5),
			Height: aws.Float32(0.6),
			Left:   aws.Float32(0.1),
			Top:    aws.Float32(0.2),
		},
		AgeRange: &rektypes.AgeRange{Low: aws.Int32(20), High: aws.Int32(30)},
		Gender: &rektypes.Gender{
			Value:      rektypes.GenderTypeFemale,
			Confidence: aws.Float32(97.5),
		},
		Smile:      &rektypes.Smile{Value: true},
		Eyeglasses: &rektypes.Eyeglasses{Value: false},
		Sunglasses: &rektypes.Sunglasses{Value: true},
		Emotions: []rektypes.Emotion{
			{Type: rektypes.EmotionNameHappy, Confidence: aws.Float32(92)},
		},
		Landmarks: make([]rektypes.Landmark, 27),
	}

	face := mapFaceDetail(detail)
	g.Expect(face.Confidence).To(BeNumerically("~", 99.9, 0.01))
	g.Expect(face.BoundingBox.Width).To(BeNumerically("~", 0.5, 0.001))
	g.Expect(face.BoundingBox.Top).To(BeNumerically("~", 0.2, 0.001))
	g.Expect(face.AgeLow).To(Equal(20))
	g.Expect(face.AgeHigh).To(Equal(30))
	g.Expect(face.Gender).To(Equal("Female"))
	g.Expect(face.Smile).To(BeTrue())
	g.Expect(face.Eyeglasses).To(BeFalse())
	g.Expect(face.Sunglasses).To(BeTrue())
	g.Expect(face.Emotions).To(HaveLen(1))
	g.Expect(face.LandmarksCount).To(Equal(27))
}

func TestMapFaceDetail_MissingAttributes(t *testing.T) {
	g := NewWithT(t)

	face := mapFaceDetail(rektypes.FaceDetail{})
	g.Expect(face.Confidence).To(BeZero())
	g.Expect(face.Gender).To(BeEmpty())
	g.Expect(face.Emotions).To(BeEmpty())
}
